package routes

import (
	"github.com/dukerupert/brochure/internal/router"
)

// RegisterSiteRoutes registers the request-info form and static assets.
func RegisterSiteRoutes(r *router.Router, deps SiteDeps) {
	r.Get("/{$}", deps.RequestInfoHandler.Show)
	r.Get("/request-info", deps.RequestInfoHandler.Show)

	// Each submission costs one geocoder request
	if deps.LookupLimit != nil {
		r.Post("/request-info", deps.RequestInfoHandler.Submit, deps.LookupLimit)
	} else {
		r.Post("/request-info", deps.RequestInfoHandler.Submit)
	}

	if deps.Static != nil {
		r.Static("/static/", deps.Static)
	}
}
