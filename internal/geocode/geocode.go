// Package geocode talks to the external geocoding service that decides
// whether an address resolves to a known location.
package geocode

import (
	"context"
	"encoding/json"
)

// DefaultEndpoint is the public Nominatim search endpoint.
const DefaultEndpoint = "https://nominatim.openstreetmap.org/search.php"

// Searcher defines the interface for geocoding lookups.
// Implementations issue one best-effort request per call: no retries, no caching.
type Searcher interface {
	// Search sends query to the geocoder as-is and returns every candidate
	// record it found. An empty slice means no match.
	Search(ctx context.Context, query string) ([]Candidate, error)
}

// Candidate is a single address candidate returned by the geocoder.
// Its fields are not interpreted; callers only count candidates.
type Candidate = json.RawMessage
