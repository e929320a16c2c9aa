package api

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/outreach/internal/domain"
	"github.com/dukerupert/outreach/internal/handler"
	"github.com/dukerupert/outreach/internal/middleware"
)

// CampaignHandler serves campaign CRUD.
type CampaignHandler struct {
	store  domain.CampaignStore
	logger *slog.Logger
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(store domain.CampaignStore, logger *slog.Logger) *CampaignHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CampaignHandler{
		store:  store,
		logger: logger,
	}
}

// List handles GET /campaigns?email=owner@example.com
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	email, err := requiredQuery(r, "campaign.list", "email")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	campaigns, err := h.store.ListCampaigns(r.Context(), email)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, campaigns)
}

// Get handles GET /single-campaign/{id}
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "campaign.get")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	campaign, err := h.store.GetCampaign(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, campaign)
}

type createCampaignRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// Create handles POST /campaigns
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := decodeJSON(r, "campaign.create", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	campaign := &domain.Campaign{
		UserEmail: req.UserEmail,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := h.store.CreateCampaign(r.Context(), campaign); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	middleware.GetLogger(r.Context(), h.logger).Info("campaign created", "campaign_id", campaign.ID)
	handler.JSON(w, http.StatusCreated, map[string]interface{}{"inserted_id": campaign.ID})
}

// Delete handles DELETE /campaigns/{id}. Prospects are left in place.
func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "campaign.delete")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	n, err := h.store.DeleteCampaign(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]int64{"deleted_count": n})
}
