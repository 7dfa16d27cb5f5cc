// Package handler contains the HTTP handlers for the request-info form and
// the address lookup API.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Lookuper

import (
	"context"

	"github.com/dukerupert/brochure/internal/address"
)

// Lookuper is the part of service.LookupService the handlers use.
type Lookuper interface {
	Lookup(ctx context.Context, query string) (bool, error)
	ParseAddress(query string) (address.Address, error)
}
