package routes

import (
	"net/http"

	"github.com/dukerupert/outreach/internal/handler/api"
)

// APIDeps contains dependencies for the JSON API routes
type APIDeps struct {
	Campaigns *api.CampaignHandler
	Prospects *api.ProspectHandler
	Jobs      *api.JobHandler
	Health    *api.HealthHandler
}

// OpsDeps contains dependencies for operational routes
type OpsDeps struct {
	Metrics http.Handler // Prometheus exposition handler
}
