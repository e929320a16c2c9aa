package routes

import (
	"github.com/dukerupert/outreach/internal/middleware"
	"github.com/dukerupert/outreach/internal/router"
)

// RegisterAPIRoutes registers campaign, prospect and scheduling routes.
// There is no authentication; ownership is filtered by the email query
// parameter or body field.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	r.Get("/{$}", deps.Health.Root)

	// Campaigns
	r.Get("/campaigns", deps.Campaigns.List)
	r.Get("/single-campaign/{id}", deps.Campaigns.Get)
	r.Delete("/campaigns/{id}", deps.Campaigns.Delete)

	// Prospects
	r.Get("/prospects", deps.Prospects.List)
	r.Delete("/prospects/{id}", deps.Prospects.Delete)

	// Request bodies are small JSON documents
	body := r.Group(middleware.MaxBodySize())
	body.Post("/campaigns", deps.Campaigns.Create)
	body.Post("/prospects", deps.Prospects.Create)

	// Scheduled sends
	body.Post("/campaigns/{id}/schedule", deps.Jobs.Schedule)
	r.Get("/jobs", deps.Jobs.List)
	r.Get("/jobs/{id}", deps.Jobs.Get)
	r.Delete("/jobs/{id}", deps.Jobs.Cancel)
}

// RegisterOpsRoutes registers health and metrics endpoints.
func RegisterOpsRoutes(r *router.Router, api APIDeps, ops OpsDeps) {
	r.Get("/health", api.Health.Health)
	if ops.Metrics != nil {
		r.Handle("GET", "/metrics", ops.Metrics)
	}
}
