package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/ysw-crm/crm-backend/internal/db"
	"github.com/ysw-crm/crm-backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func testActor() Actor {
	return Actor{
		UserID:     7,
		CompanyID:  1,
		Role:       models.RoleAdmin,
		IPAddress:  "10.0.0.1",
		DeviceInfo: "go-test",
	}
}

func TestEncodeSnapshotNormalizesDatetimes(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	due := time.Date(2026, 3, 14, 15, 0, 0, 0, loc)
	completed := due.Add(time.Hour)

	task := &models.TaskAssignment{
		ID:          4,
		CompanyID:   1,
		Title:       "call back",
		DueDate:     due,
		Status:      "completed",
		CompletedAt: &completed,
	}

	raw, err := encodeSnapshot(task)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))

	assert.Equal(t, "2026-03-14T12:00:00Z", fields["due_date"])
	assert.Equal(t, "2026-03-14T13:00:00Z", fields["completed_at"])
}

func TestEncodeSnapshotNilPointerTime(t *testing.T) {
	task := &models.TaskAssignment{ID: 1, Title: "open"}

	raw, err := encodeSnapshot(task)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))
	assert.Nil(t, fields["completed_at"])
}

func TestUserSnapshotExcludesPasswordHash(t *testing.T) {
	u := &models.User{
		ID:           3,
		CompanyID:    1,
		FullName:     "Dana",
		Email:        "dana@example.com",
		PasswordHash: "$2a$10$secret",
		Role:         models.RoleSalesman,
	}

	raw, err := encodeSnapshot(u)
	require.NoError(t, err)

	assert.NotContains(t, raw, "secret")
	assert.NotContains(t, raw, "password")
}

func TestEncodeSnapshotRejectsUnknownShape(t *testing.T) {
	_, err := encodeSnapshot(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported snapshot type")
}

func TestRecordWritesEntryOnTransaction(t *testing.T) {
	db := openTestDB(t)
	rec := New(db, zerolog.Nop())
	actor := testActor()

	id := uint(11)
	err := db.Transaction(func(tx *gorm.DB) error {
		return rec.Record(tx, actor, "customer_created", "customer", &id,
			nil, map[string]any{"name": "Acme"})
	})
	require.NoError(t, err)

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)

	assert.Equal(t, actor.CompanyID, entry.CompanyID)
	assert.Equal(t, actor.UserID, entry.UserID)
	assert.Equal(t, "customer_created", entry.Action)
	assert.Equal(t, "customer", entry.ResourceType)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, id, *entry.ResourceID)
	assert.Empty(t, entry.BeforeData)
	assert.JSONEq(t, `{"name":"Acme"}`, entry.AfterData)
	assert.Equal(t, "10.0.0.1", entry.IPAddress)
}

func TestRecordFailureRollsBackMutation(t *testing.T) {
	db := openTestDB(t)
	rec := New(db, zerolog.Nop())

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Customer{CompanyID: 1, Name: "Acme"}).Error; err != nil {
			return err
		}
		// misuse: a snapshot shape Record cannot encode fails the whole op
		return rec.Record(tx, testActor(), "customer_created", "customer", nil, nil, 42)
	})
	require.Error(t, err)

	var customers int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&customers).Error)
	assert.Zero(t, customers)
}

func TestMutationFailureDropsAuditEntry(t *testing.T) {
	db := openTestDB(t)
	rec := New(db, zerolog.Nop())
	boom := errors.New("boom")

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := rec.Record(tx, testActor(), "customer_created", "customer", nil,
			nil, map[string]any{"name": "Acme"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var entries int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&entries).Error)
	assert.Zero(t, entries)
}

func TestListScopesAndFilters(t *testing.T) {
	db := openTestDB(t)
	rec := New(db, zerolog.Nop())
	ctx := context.Background()

	seed := []models.AuditLog{
		{CompanyID: 1, UserID: 7, Action: "customer_created", CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)},
		{CompanyID: 1, UserID: 7, Action: "customer_updated", CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)},
		{CompanyID: 1, UserID: 9, Action: "task_created", CreatedAt: time.Date(2026, 1, 3, 10, 0, 0, 0, time.UTC)},
		{CompanyID: 2, UserID: 1, Action: "customer_created", CreatedAt: time.Date(2026, 1, 4, 10, 0, 0, 0, time.UTC)},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	logs, total, err := rec.List(ctx, 1, Filters{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, logs, 3)
	// newest first
	assert.Equal(t, "task_created", logs[0].Action)
	assert.Equal(t, "customer_created", logs[2].Action)

	logs, total, err = rec.List(ctx, 1, Filters{Action: "customer"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, logs, 2)

	actor := uint(9)
	logs, total, err = rec.List(ctx, 1, Filters{ActorID: &actor})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, logs, 1)
	assert.Equal(t, "task_created", logs[0].Action)

	from := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 2, 23, 59, 59, 0, time.UTC)
	logs, total, err = rec.List(ctx, 1, Filters{From: &from, To: &to})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, logs, 1)
	assert.Equal(t, "customer_updated", logs[0].Action)
}

func TestListPaginates(t *testing.T) {
	db := openTestDB(t)
	rec := New(db, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := models.AuditLog{
			CompanyID: 1,
			UserID:    7,
			Action:    "customer_created",
			CreatedAt: time.Date(2026, 1, 1, 10, i, 0, 0, time.UTC),
		}
		require.NoError(t, db.Create(&entry).Error)
	}

	logs, total, err := rec.List(ctx, 1, Filters{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, logs, 2)
}
