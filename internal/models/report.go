package models

import (
	"context"
	"errors"
	"time"

	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report is a moderation request against a shoutout. Deleting the record is
// the only resolution; there is no status field.
type Report struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShoutoutID uuid.UUID `gorm:"type:uuid;not null;index:idx_report_shoutout" json:"shoutout_id"`
	ReportedBy uuid.UUID `gorm:"type:uuid;not null;index:idx_report_user" json:"reported_by"`
	Reason     string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Shoutout Shoutout `gorm:"foreignKey:ShoutoutID;constraint:OnDelete:CASCADE" json:"-"`
	Reporter User     `gorm:"foreignKey:ReportedBy;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// NewReport records a report against an existing shoutout. The reason is
// stored verbatim.
func NewReport(ctx context.Context, db *gorm.DB, shoutoutID, reporterID uuid.UUID, reason string) (*Report, error) {
	if err := shoutoutExists(ctx, db, shoutoutID); err != nil {
		return nil, err
	}

	r := &Report{
		ShoutoutID: shoutoutID,
		ReportedBy: reporterID,
		Reason:     reason,
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create report")
	}
	return r, nil
}

// GetReports returns every report with its shoutout (including the sender)
// and the reporting user.
func GetReports(ctx context.Context, db *gorm.DB) ([]Report, error) {
	var reports []Report
	if err := db.WithContext(ctx).
		Preload("Shoutout.Sender").
		Preload("Reporter").
		Find(&reports).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to list reports")
	}
	return reports, nil
}

// ResolveReport deletes the report, which is how reports are resolved.
func ResolveReport(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var r Report
	if err := db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewError(utils.ErrNotFound.Code, "Report not found")
		}
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get report")
	}

	if err := db.WithContext(ctx).Delete(&r).Error; err != nil {
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to delete report")
	}
	return nil
}
