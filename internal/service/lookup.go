package service

import (
	"context"
	"errors"
	"time"

	"github.com/dukerupert/brochure/internal/address"
	"github.com/dukerupert/brochure/internal/domain"
	"github.com/dukerupert/brochure/internal/geocode"
	"github.com/dukerupert/brochure/internal/telemetry"
)

// LookupService decides whether a user-entered address is known to the geocoder.
type LookupService interface {
	// Lookup validates query and, when it has an accepted shape, asks the
	// geocoder about the raw query. It reports true iff at least one
	// candidate came back. Malformed input is returned as an EINVALID error
	// and never reaches the geocoder.
	Lookup(ctx context.Context, query string) (bool, error)

	// ParseAddress validates query and returns its extracted parts.
	ParseAddress(query string) (address.Address, error)
}

type lookupService struct {
	geocoder geocode.Searcher
	metrics  *telemetry.LookupMetrics
}

// NewLookupService creates a lookup service backed by geocoder.
// metrics may be nil.
func NewLookupService(geocoder geocode.Searcher, metrics *telemetry.LookupMetrics) (LookupService, error) {
	if geocoder == nil {
		return nil, ErrGeocoderRequired
	}

	return &lookupService{
		geocoder: geocoder,
		metrics:  metrics,
	}, nil
}

func (s *lookupService) Lookup(ctx context.Context, query string) (bool, error) {
	start := time.Now()

	// The parsed parts are not forwarded; the geocoder gets the query verbatim.
	if err := address.Validate(query); err != nil {
		s.metrics.ObserveLookup(telemetry.OutcomeInvalid, time.Since(start))
		return false, domain.Invalid(err, "lookup.validate", err.Error())
	}

	candidates, err := s.geocoder.Search(ctx, query)
	if err != nil {
		s.metrics.ObserveLookup(telemetry.OutcomeError, time.Since(start))
		return false, s.classify(err)
	}

	found := len(candidates) > 0

	outcome := telemetry.OutcomeNotFound
	if found {
		outcome = telemetry.OutcomeFound
	}
	s.metrics.ObserveLookup(outcome, time.Since(start))

	return found, nil
}

func (s *lookupService) ParseAddress(query string) (address.Address, error) {
	addr, err := address.Parse(query)
	if err != nil {
		return address.Address{}, domain.Invalid(err, "lookup.parse", err.Error())
	}
	return addr, nil
}

// classify maps geocoder failures onto domain error codes, keeping the
// original error reachable through errors.As.
func (s *lookupService) classify(err error) error {
	const op = "lookup.search"

	switch {
	case errors.Is(err, geocode.ErrTransport):
		s.metrics.ObserveGeocoderError("transport")
		return domain.Unavailable(err, op, ErrGeocoderUnavailable.Error())
	case errors.Is(err, geocode.ErrResponseFormat):
		s.metrics.ObserveGeocoderError("response_format")
		return domain.BadGateway(err, op, ErrGeocoderBadResponse.Error())
	default:
		s.metrics.ObserveGeocoderError("other")
		return domain.WrapError(err, domain.EINTERNAL, op, "geocoder search failed")
	}
}
