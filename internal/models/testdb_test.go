package models

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with foreign keys enforced, so the
// cascade rules behave like the real schema. A single connection keeps the
// memory database alive for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(RegisterModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, name, email string, role UserRole) *User {
	t.Helper()
	u, err := NewUser(context.Background(), db, name, email, "hashed-password", "Engineering", role)
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func mustCreateShoutout(t *testing.T, db *gorm.DB, sender *User, message string, recipients ...uuid.UUID) *Shoutout {
	t.Helper()
	s, err := NewShoutout(context.Background(), db, sender.ID, message, recipients)
	if err != nil {
		t.Fatalf("create shoutout: %v", err)
	}
	return s
}

func mustCreateComment(t *testing.T, db *gorm.DB, shoutoutID, userID uuid.UUID, content string) *Comment {
	t.Helper()
	c, _, err := NewComment(context.Background(), db, shoutoutID, userID, content)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return c
}

// setCreatedAt pins a row's created_at so ordering tests do not depend on
// clock resolution.
func setCreatedAt(t *testing.T, db *gorm.DB, model interface{}, id uuid.UUID, at time.Time) {
	t.Helper()
	if err := db.Model(model).Where("id = ?", id).Update("created_at", at).Error; err != nil {
		t.Fatalf("set created_at: %v", err)
	}
}
