package routes

import (
	"github.com/dukerupert/brochure/internal/handler"
	"github.com/dukerupert/brochure/internal/router"
)

// RegisterAPIRoutes registers the JSON lookup API.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	api := r
	if deps.LookupLimit != nil {
		api = r.Group(deps.LookupLimit)
	}

	api.Get("/api/lookup", deps.APIHandler.Lookup)
	api.Post("/api/address/validate", deps.APIHandler.ValidateAddress)
}

// RegisterOpsRoutes registers health and metrics endpoints and the fallback
// not-found handler. None of them are rate limited.
func RegisterOpsRoutes(r *router.Router, deps OpsDeps) {
	r.Get("/health", handler.Health)
	r.NotFound(handler.NotFound)

	if deps.MetricsHandler != nil {
		r.Handle("GET", "/metrics", deps.MetricsHandler)
	}
}
