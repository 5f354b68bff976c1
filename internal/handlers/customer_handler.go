package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/audit"
	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/httpresp"
	"github.com/ysw-crm/crm-backend/internal/middleware"
	"github.com/ysw-crm/crm-backend/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type CustomerHandler struct {
	db  *gorm.DB
	rec *audit.Recorder
}

func NewCustomerHandler(db *gorm.DB, rec *audit.Recorder) *CustomerHandler {
	return &CustomerHandler{db: db, rec: rec}
}

// --------- Requests ---------

type CustomValueInput struct {
	FieldID uint   `json:"field_id" binding:"required"`
	Value   string `json:"value"`
}

type CreateCustomerRequest struct {
	Name          string `json:"name" binding:"required"`
	CompanyName   string `json:"company_name"`
	ContactNumber string `json:"contact_number" binding:"required"`
	Email         string `json:"email"`
	Notes         string `json:"notes"`
	PipelineStage string `json:"pipeline_stage" binding:"required"`
	LeadStatus    string `json:"lead_status" binding:"required"`
	AssignedTo    *uint  `json:"assigned_to"`

	CustomValues []CustomValueInput `json:"custom_values"`
}

// UpdateCustomerRequest lists the mutable fields explicitly; absent fields
// stay untouched.
type UpdateCustomerRequest struct {
	Name          *string `json:"name,omitempty"`
	CompanyName   *string `json:"company_name,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	Email         *string `json:"email,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	PipelineStage *string `json:"pipeline_stage,omitempty"`
	LeadStatus    *string `json:"lead_status,omitempty"`
	AssignedTo    *uint   `json:"assigned_to,omitempty"`
}

func applyCustomerUpdate(customer *models.Customer, req *UpdateCustomerRequest) {
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.CompanyName != nil {
		customer.CompanyName = *req.CompanyName
	}
	if req.ContactNumber != nil {
		customer.ContactNumber = *req.ContactNumber
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	if req.PipelineStage != nil {
		customer.PipelineStage = *req.PipelineStage
	}
	if req.LeadStatus != nil {
		customer.LeadStatus = *req.LeadStatus
	}
	if req.AssignedTo != nil {
		customer.AssignedTo = req.AssignedTo
	}
}

// --------- Helpers ---------

// validateCustomValues checks a custom-value payload against the company's
// field definitions: every field id must exist and required fields cannot
// be blank.
func (h *CustomerHandler) validateCustomValues(
	companyID uint,
	values []CustomValueInput,
) error {

	if len(values) == 0 {
		return nil
	}

	var fields []models.CustomField
	if err := h.db.Where("company_id = ?", companyID).Find(&fields).Error; err != nil {
		return err
	}

	known := make(map[uint]models.CustomField, len(fields))
	for _, f := range fields {
		known[f.ID] = f
	}

	for _, v := range values {
		field, ok := known[v.FieldID]
		if !ok {
			return httperr.ErrBusiness("unknown_custom_field")
		}
		if field.IsRequired && strings.TrimSpace(v.Value) == "" {
			return httperr.ErrBusiness("missing_required_custom_value")
		}
	}

	return nil
}

// assigneeInCompany rejects cross-company ownership: assigned_to must be a
// user of the customer's own company.
func (h *CustomerHandler) assigneeInCompany(companyID uint, userID uint) bool {
	var count int64
	h.db.Model(&models.User{}).
		Where("id = ? AND company_id = ?", userID, companyID).
		Count(&count)
	return count > 0
}

// ======================================================
// CREATE
// ======================================================

func (h *CustomerHandler) Create(c *gin.Context) {
	actor := currentActor(c)

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid customer payload.")
		return
	}

	if req.AssignedTo != nil && !h.assigneeInCompany(actor.CompanyID, *req.AssignedTo) {
		httperr.NotFound(c, "assignee_not_found", "Assigned user not found in this company.")
		return
	}

	if err := h.validateCustomValues(actor.CompanyID, req.CustomValues); err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Invalid custom field values.")
			return
		}
		httperr.Internal(c, "failed_to_validate_custom_values", "Could not validate custom values.")
		return
	}

	customer := models.Customer{
		CompanyID:     actor.CompanyID,
		Name:          req.Name,
		CompanyName:   req.CompanyName,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Notes:         req.Notes,
		PipelineStage: req.PipelineStage,
		LeadStatus:    req.LeadStatus,
		AssignedTo:    req.AssignedTo,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}

		for _, v := range req.CustomValues {
			cv := models.CustomerCustomValue{
				CustomerID: customer.ID,
				FieldID:    v.FieldID,
				Value:      v.Value,
			}
			if err := tx.Create(&cv).Error; err != nil {
				return err
			}
		}

		id := customer.ID
		return h.rec.Record(tx, actor, "customer_created", "customer", &id, nil, &customer)
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_customer", "Could not create customer.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Customer created",
		"customer_id": customer.ID,
	})
}

// ======================================================
// LIST / GET
// ======================================================

func (h *CustomerHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	stage := strings.TrimSpace(c.Query("pipeline_stage"))
	status := strings.TrimSpace(c.Query("lead_status"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("company_id = ?", companyID)

	if stage != "" {
		q = q.Where("pipeline_stage = ?", stage)
	}

	if status != "" {
		q = q.Where("lead_status = ?", status)
	}

	if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		if assignedTo == "none" {
			q = q.Where("assigned_to IS NULL")
		} else {
			q = q.Where("assigned_to = ?", assignedTo)
		}
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR contact_number LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var customers []models.Customer
	if err := q.
		Order("created_at DESC").
		Find(&customers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_customers", "Could not list customers.")
		return
	}

	httpresp.List(c, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&customer).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "customer_not_found", "Customer not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_customer", "Could not load customer.")
		return
	}

	var values []models.CustomerCustomValue
	h.db.Where("customer_id = ?", customer.ID).Find(&values)

	c.JSON(http.StatusOK, gin.H{
		"customer":      customer,
		"custom_values": values,
	})
}

// ======================================================
// UPDATE
// ======================================================

func (h *CustomerHandler) Update(c *gin.Context) {
	actor := currentActor(c)
	id := c.Param("id")

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND company_id = ?", id, actor.CompanyID).
		First(&customer).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "customer_not_found", "Customer not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_customer", "Could not load customer.")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid customer payload.")
		return
	}

	if req.AssignedTo != nil && !h.assigneeInCompany(actor.CompanyID, *req.AssignedTo) {
		httperr.NotFound(c, "assignee_not_found", "Assigned user not found in this company.")
		return
	}

	before := customer.AuditSnapshot()
	applyCustomerUpdate(&customer, &req)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&customer).Error; err != nil {
			return err
		}

		cid := customer.ID
		return h.rec.Record(tx, actor, "customer_updated", "customer", &cid, before, &customer)
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_customer", "Could not update customer.")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// ======================================================
// DELETE
// ======================================================

func (h *CustomerHandler) Delete(c *gin.Context) {
	actor := currentActor(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_customer_id", "Invalid customer id.")
		return
	}

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND company_id = ?", id, actor.CompanyID).
		First(&customer).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "customer_not_found", "Customer not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_customer", "Could not load customer.")
		return
	}

	before := customer.AuditSnapshot()

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", customer.ID).
			Delete(&models.CustomerCustomValue{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&customer).Error; err != nil {
			return err
		}

		cid := customer.ID
		return h.rec.Record(tx, actor, "customer_deleted", "customer", &cid, before, nil)
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_customer", "Could not delete customer.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}
