package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ysw-crm/crm-backend/internal/features"
	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/middleware"
)

type FeatureHandler struct {
	store *features.Store
}

func NewFeatureHandler(store *features.Store) *FeatureHandler {
	return &FeatureHandler{store: store}
}

// --------- Requests ---------

type SetFeaturesRequest struct {
	SelectedFeatures []string `json:"selected_features" binding:"required"`
}

// --------- Handlers ---------

func (h *FeatureHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"features": features.Catalog()})
}

func (h *FeatureHandler) Get(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	keys, err := h.store.Get(c.Request.Context(), companyID)
	if err != nil {
		if httperr.IsBusiness(err, "company_not_found") {
			httperr.NotFound(c, "company_not_found", "Company not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_features", "Could not load features.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"selected_features": keys})
}

func (h *FeatureHandler) Set(c *gin.Context) {
	actor := currentActor(c)

	var req SetFeaturesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid features payload.")
		return
	}

	if err := h.store.Set(c.Request.Context(), actor.CompanyID, req.SelectedFeatures, actor); err != nil {
		if httperr.IsBusiness(err, "company_not_found") {
			httperr.NotFound(c, "company_not_found", "Company not found.")
			return
		}
		httperr.Internal(c, "failed_to_save_features", "Could not save features.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Features saved successfully"})
}
