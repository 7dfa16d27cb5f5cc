package routes

import (
	"io/fs"
	"net/http"

	"github.com/dukerupert/brochure/internal/handler"
	"github.com/dukerupert/brochure/internal/router"
)

// SiteDeps contains dependencies for the HTML form routes
type SiteDeps struct {
	RequestInfoHandler *handler.RequestInfoHandler

	// Static assets, served under /static/
	Static fs.FS

	// Applied to POST /request-info only
	LookupLimit router.Middleware
}

// APIDeps contains dependencies for the JSON API routes
type APIDeps struct {
	APIHandler *handler.APIHandler

	// Applied to every /api route
	LookupLimit router.Middleware
}

// OpsDeps contains dependencies for health and metrics routes
type OpsDeps struct {
	MetricsHandler http.Handler
}
