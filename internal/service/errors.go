package service

import (
	"github.com/dukerupert/brochure/internal/domain"
)

// Configuration errors
var (
	ErrGeocoderRequired = domain.Errorf(domain.EINTERNAL, "", "Geocoder is required")
)

// Geocoder errors - messages are shown to users
var (
	ErrGeocoderUnavailable = domain.Errorf(domain.EUNAVAILABLE, "", "The address service is unavailable. Please try again later.")
	ErrGeocoderBadResponse = domain.Errorf(domain.EBADGATEWAY, "", "The address service returned an unexpected response.")
)
