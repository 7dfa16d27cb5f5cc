package geocode_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dukerupert/brochure/internal/geocode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*geocode.NominatimClient, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := geocode.NewNominatimClient(geocode.NominatimConfig{
		Endpoint:  srv.URL + "/search.php",
		UserAgent: "brochure-test",
	})
	require.NoError(t, err)

	return client, &hits
}

func TestNominatimClient_Search_SendsOneRequestWithQuery(t *testing.T) {
	var gotFormat, gotQ, gotPath, gotUA, gotMethod string
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotFormat = r.URL.Query().Get("format")
		gotQ = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	query := "Main Street 42, 10115 Berlin"
	_, err := client.Search(context.Background(), query)

	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/search.php", gotPath)
	assert.Equal(t, "jsonv2", gotFormat)
	assert.Equal(t, query, gotQ)
	assert.Equal(t, "brochure-test", gotUA)
}

func TestNominatimClient_Search_Candidates(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		count int
	}{
		{"empty array", `[]`, 0},
		{"one candidate", `[{"place_id":1,"display_name":"Main Street 42"}]`, 1},
		{"two candidates", `[{"place_id":1},{"place_id":2}]`, 2},
		{"surrounding whitespace", "\n  [ {} ]\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := client.Search(context.Background(), "Main Street 42")

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Len(t, got, tt.count)
		})
	}
}

func TestNominatimClient_Search_ResponseFormatError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object", `{"error":"rate limited"}`},
		{"null", `null`},
		{"empty body", ``},
		{"truncated array", `[{"place_id":1}`},
		{"html", `<html>maintenance</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := client.Search(context.Background(), "Main Street 42")

			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, geocode.ErrResponseFormat))

			var formatErr *geocode.ResponseFormatError
			assert.True(t, errors.As(err, &formatErr))
		})
	}
}

func TestNominatimClient_Search_NonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	_, err := client.Search(context.Background(), "Main Street 42")

	require.Error(t, err)
	assert.True(t, errors.Is(err, geocode.ErrTransport))

	var transportErr *geocode.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusTooManyRequests, transportErr.StatusCode)
	assert.Contains(t, err.Error(), "429")
}

func TestNominatimClient_Search_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	client, err := geocode.NewNominatimClient(geocode.NominatimConfig{Endpoint: endpoint})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "Main Street 42")

	require.Error(t, err)
	assert.True(t, errors.Is(err, geocode.ErrTransport))

	var transportErr *geocode.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Zero(t, transportErr.StatusCode)
}

func TestNominatimClient_Search_CanceledContext(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, "Main Street 42")

	require.Error(t, err)
	assert.True(t, errors.Is(err, geocode.ErrTransport))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, int32(0), hits.Load())
}

func TestNominatimClient_Search_KeepsEndpointParams(t *testing.T) {
	var gotLimit, gotQ string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		gotQ = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := geocode.NewNominatimClient(geocode.NominatimConfig{Endpoint: srv.URL + "/search?limit=1"})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "Main Street 42 & Co")
	require.NoError(t, err)

	assert.Equal(t, "1", gotLimit)
	assert.Equal(t, "Main Street 42 & Co", gotQ)
}

func TestNewNominatimClient_InvalidEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		{"unsupported scheme", "ftp://example.com/search"},
		{"relative", "search.php"},
		{"unparseable", "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := geocode.NewNominatimClient(geocode.NominatimConfig{Endpoint: tt.endpoint})
			assert.Error(t, err)
		})
	}
}

func TestNewNominatimClient_DefaultEndpoint(t *testing.T) {
	client, err := geocode.NewNominatimClient(geocode.NominatimConfig{})

	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestMockSearcher_RecordsQueries(t *testing.T) {
	mock := geocode.NewMockSearcher(geocode.Candidate(`{}`))

	got, err := mock.Search(context.Background(), "Main Street 42")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, _ = mock.Search(context.Background(), "Domgasse 5")
	assert.Equal(t, []string{"Main Street 42", "Domgasse 5"}, mock.Queries())
}
