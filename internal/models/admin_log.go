package models

import (
	"context"
	"time"

	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminLog is the audit trail. Every moderation mutation appends one row.
type AdminLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID    uuid.UUID `gorm:"type:uuid;not null;index:idx_adminlog_admin" json:"admin_id"`
	Action     string    `gorm:"type:text;not null" json:"action"`
	TargetID   uuid.UUID `gorm:"type:uuid;not null" json:"target_id"`
	TargetType string    `gorm:"size:100;not null" json:"target_type"`
	Timestamp  time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

func (l *AdminLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Audit targets.
const (
	TargetUser     = "user"
	TargetShoutout = "shoutout"
	TargetComment  = "comment"
	TargetReport   = "report"
)

// RecordAdminAction appends an audit row for a moderation mutation.
func RecordAdminAction(ctx context.Context, db *gorm.DB, adminID uuid.UUID, action string, targetID uuid.UUID, targetType string) error {
	entry := &AdminLog{
		AdminID:    adminID,
		Action:     action,
		TargetID:   targetID,
		TargetType: targetType,
	}
	if err := db.WithContext(ctx).Create(entry).Error; err != nil {
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to record admin action")
	}
	return nil
}

// AdminActions returns the audit trail newest first.
func AdminActions(ctx context.Context, db *gorm.DB) ([]AdminLog, error) {
	var logs []AdminLog
	if err := db.WithContext(ctx).Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to list admin actions")
	}
	return logs, nil
}
