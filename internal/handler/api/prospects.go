package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dukerupert/outreach/internal/domain"
	"github.com/dukerupert/outreach/internal/handler"
	"github.com/dukerupert/outreach/internal/middleware"
)

// ProspectHandler serves prospect CRUD.
type ProspectHandler struct {
	store  domain.ProspectStore
	logger *slog.Logger
}

// NewProspectHandler creates a new prospect handler
func NewProspectHandler(store domain.ProspectStore, logger *slog.Logger) *ProspectHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProspectHandler{
		store:  store,
		logger: logger,
	}
}

// List handles GET /prospects?id={campaign_id}&email=owner@example.com
func (h *ProspectHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "prospect.list"

	rawID, err := requiredQuery(r, op, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	campaignID, err := uuid.Parse(rawID)
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid(op, "Invalid campaign id"))
		return
	}
	email, err := requiredQuery(r, op, "email")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	prospects, err := h.store.ListProspects(r.Context(), campaignID, email)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, prospects)
}

type createProspectRequest struct {
	CampaignID uuid.UUID `json:"campaign_id" validate:"required"`
	Email      string    `json:"email" validate:"required,email"`
	UserEmail  string    `json:"user_email" validate:"required,email"`
}

// Create handles POST /prospects
func (h *ProspectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProspectRequest
	if err := decodeJSON(r, "prospect.create", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	prospect := &domain.Prospect{
		CampaignID: req.CampaignID,
		Email:      req.Email,
		UserEmail:  req.UserEmail,
	}
	if err := h.store.CreateProspect(r.Context(), prospect); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	middleware.GetLogger(r.Context(), h.logger).Info("prospect created",
		"prospect_id", prospect.ID,
		"campaign_id", prospect.CampaignID,
	)
	handler.JSON(w, http.StatusCreated, map[string]interface{}{"inserted_id": prospect.ID})
}

// Delete handles DELETE /prospects/{id}
func (h *ProspectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "prospect.delete")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	n, err := h.store.DeleteProspect(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]int64{"deleted_count": n})
}
