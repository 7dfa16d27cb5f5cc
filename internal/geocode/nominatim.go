package geocode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultUserAgent = "brochure/1.0"
	maxResponseBytes = 4 << 20
	snippetLength    = 64
)

// NominatimConfig contains configuration for the Nominatim client.
type NominatimConfig struct {
	// Endpoint is the search URL. Defaults to DefaultEndpoint.
	Endpoint string

	// UserAgent identifies the application, as the Nominatim usage policy requires.
	UserAgent string

	// Timeout bounds a whole request. Zero means no timeout.
	// Ignored when HTTPClient is set.
	Timeout time.Duration

	HTTPClient *http.Client
	Logger     *slog.Logger // Optional: defaults to slog.Default()
}

// NominatimClient implements Searcher against the Nominatim search API.
type NominatimClient struct {
	endpoint  *url.URL
	userAgent string
	client    *http.Client
	logger    *slog.Logger
}

// NewNominatimClient creates a new Nominatim geocoding client.
func NewNominatimClient(cfg NominatimConfig) (*NominatimClient, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid geocoder endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid geocoder endpoint %q: scheme must be http or https", endpoint)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &NominatimClient{
		endpoint:  u,
		userAgent: userAgent,
		client:    client,
		logger:    logger,
	}, nil
}

// Search issues GET <endpoint>?format=jsonv2&q=<query>.
func (c *NominatimClient) Search(ctx context.Context, query string) ([]Candidate, error) {
	u := *c.endpoint
	params := u.Query()
	params.Set("format", "jsonv2")
	params.Set("q", query)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("geocoder search", "host", u.Host)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	return decodeCandidates(body)
}

// decodeCandidates requires body to be a JSON array. A literal null or an
// object is rejected rather than treated as "no candidates".
func decodeCandidates(body []byte) ([]Candidate, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ResponseFormatError{Snippet: snippet(trimmed)}
	}

	var candidates []Candidate
	if err := json.Unmarshal(trimmed, &candidates); err != nil {
		return nil, &ResponseFormatError{Snippet: snippet(trimmed), Err: err}
	}
	if candidates == nil {
		candidates = []Candidate{}
	}
	return candidates, nil
}

func snippet(b []byte) string {
	if len(b) > snippetLength {
		return string(b[:snippetLength])
	}
	return string(b)
}
