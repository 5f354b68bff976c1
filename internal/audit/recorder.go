package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/models"
)

// Actor is the authenticated identity performing a mutation, as resolved
// by the auth middleware, plus the request context it arrived with.
type Actor struct {
	UserID    uint
	CompanyID uint
	Role      string

	IPAddress  string
	DeviceInfo string
}

type Recorder struct {
	db  *gorm.DB
	log zerolog.Logger
}

func New(db *gorm.DB, log zerolog.Logger) *Recorder {
	return &Recorder{db: db, log: log}
}

// Record writes one AuditLog row on the supplied handle. Callers pass the
// transaction running the mutation itself, so a failed audit write rolls
// the whole operation back: a committed mutation always has its entry.
// The error is never swallowed.
func (r *Recorder) Record(
	tx *gorm.DB,
	actor Actor,
	action string,
	resourceType string,
	resourceID *uint,
	before any,
	after any,
) error {

	beforeJSON, err := encodeSnapshot(before)
	if err != nil {
		r.log.Error().Err(err).Str("action", action).Msg("audit before-snapshot failed")
		return err
	}

	afterJSON, err := encodeSnapshot(after)
	if err != nil {
		r.log.Error().Err(err).Str("action", action).Msg("audit after-snapshot failed")
		return err
	}

	entry := models.AuditLog{
		CompanyID:    actor.CompanyID,
		UserID:       actor.UserID,
		Role:         actor.Role,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		BeforeData:   beforeJSON,
		AfterData:    afterJSON,
		IPAddress:    actor.IPAddress,
		DeviceInfo:   actor.DeviceInfo,
	}

	if err := tx.Create(&entry).Error; err != nil {
		r.log.Error().Err(err).Str("action", action).Msg("audit write failed")
		return fmt.Errorf("audit: persist entry: %w", err)
	}

	return nil
}

// Filters narrows a tenant's audit trail. Action matches as a substring.
type Filters struct {
	From    *time.Time
	To      *time.Time
	Action  string
	ActorID *uint

	Page  int
	Limit int
}

// List returns a company's audit entries newest-first.
func (r *Recorder) List(
	ctx context.Context,
	companyID uint,
	f Filters,
) ([]models.AuditLog, int64, error) {

	page := f.Page
	if page <= 0 {
		page = 1
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("company_id = ?", companyID)

	if f.Action != "" {
		q = q.Where("action LIKE ?", "%"+f.Action+"%")
	}

	if f.ActorID != nil {
		q = q.Where("user_id = ?", *f.ActorID)
	}

	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}

	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
