package features

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/audit"
	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/models"
)

const cacheTTL = 10 * time.Minute

// Store holds each company's enabled feature set. The database column is
// authoritative; Redis is a read-through cache and may be absent.
type Store struct {
	db    *gorm.DB
	cache *redis.Client
	rec   *audit.Recorder
}

func NewStore(db *gorm.DB, cache *redis.Client, rec *audit.Recorder) *Store {
	return &Store{db: db, cache: cache, rec: rec}
}

func cacheKey(companyID uint) string {
	return fmt.Sprintf("features:%d", companyID)
}

// Get returns the enabled feature keys for a company.
func (s *Store) Get(ctx context.Context, companyID uint) ([]string, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey(companyID)).Result(); err == nil {
			var keys []string
			if err := json.Unmarshal([]byte(raw), &keys); err == nil {
				return keys, nil
			}
		}
	}

	var company models.Company
	if err := s.db.WithContext(ctx).First(&company, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("company_not_found")
		}
		return nil, err
	}

	keys := decodeKeys(company.SelectedFeatures)

	if s.cache != nil {
		if raw, err := json.Marshal(keys); err == nil {
			s.cache.Set(ctx, cacheKey(companyID), raw, cacheTTL)
		}
	}

	return keys, nil
}

// Set replaces a company's entire enabled set in one transaction and emits
// one audit entry diffing the old and new lists. There is no partial
// update; setting an identical set still produces a fresh audit entry.
func (s *Store) Set(
	ctx context.Context,
	companyID uint,
	keys []string,
	actor audit.Actor,
) error {

	if keys == nil {
		keys = []string{}
	}

	raw, err := json.Marshal(keys)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.First(&company, companyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("company_not_found")
			}
			return err
		}

		old := decodeKeys(company.SelectedFeatures)

		if err := tx.Model(&models.Company{}).
			Where("id = ?", companyID).
			Update("selected_features", string(raw)).Error; err != nil {
			return err
		}

		id := company.ID
		return s.rec.Record(
			tx,
			actor,
			"feature_settings_updated",
			"company_feature_settings",
			&id,
			map[string]any{"selected_features": old},
			map[string]any{"selected_features": keys},
		)
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Del(ctx, cacheKey(companyID))
	}

	return nil
}

func decodeKeys(raw string) []string {
	keys := []string{}
	if raw != "" {
		// a corrupt column falls back to the empty set rather than failing reads
		_ = json.Unmarshal([]byte(raw), &keys)
	}
	return keys
}
