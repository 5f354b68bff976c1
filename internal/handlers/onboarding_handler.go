package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/features"
	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type OnboardingHandler struct {
	db *gorm.DB
}

func NewOnboardingHandler(db *gorm.DB) *OnboardingHandler {
	return &OnboardingHandler{db: db}
}

// --------- Requests ---------

type OnboardingRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	CompanySize string `json:"company_size" binding:"required"`
	CrmType     string `json:"crm_type" binding:"required"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
}

// --------- Handlers ---------

func (h *OnboardingHandler) Create(c *gin.Context) {
	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid onboarding payload.")
		return
	}

	industry := req.Industry
	if industry == "" {
		industry = "Default Industry"
	}
	location := req.Location
	if location == "" {
		location = "Default Location"
	}

	defaults, _ := json.Marshal(features.Defaults())

	company := models.Company{
		CompanyName:      req.CompanyName,
		CompanySize:      req.CompanySize,
		Industry:         industry,
		Location:         location,
		CrmType:          strings.ReplaceAll(strings.ToLower(req.CrmType), " ", "_"),
		SelectedFeatures: string(defaults),
	}

	if err := h.db.Create(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_create_company", "Could not create company.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Company created successfully",
		"company_id": company.ID,
		"crm_type":   company.CrmType,
	})
}
