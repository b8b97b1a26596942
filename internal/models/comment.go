package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShoutoutID uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_shoutout" json:"shoutout_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_user" json:"user_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Flag sub-state. Flagging is one-way; a re-flag overwrites the prior one.
	IsFlagged  bool       `gorm:"default:false;index" json:"is_flagged"`
	FlagReason string     `gorm:"type:text" json:"flag_reason,omitempty"`
	FlaggedBy  *uuid.UUID `gorm:"type:uuid" json:"flagged_by,omitempty"`
	FlaggedAt  *time.Time `json:"flagged_at,omitempty"`

	User    User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Flagger *User `gorm:"foreignKey:FlaggedBy;constraint:OnDelete:SET NULL" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NewComment stores a comment on an existing shoutout and returns it with the
// fresh comment count. Content is trimmed; an empty result is still accepted.
func NewComment(ctx context.Context, db *gorm.DB, shoutoutID, userID uuid.UUID, content string) (*Comment, int64, error) {
	if err := shoutoutExists(ctx, db, shoutoutID); err != nil {
		return nil, 0, err
	}

	c := &Comment{
		ShoutoutID: shoutoutID,
		UserID:     userID,
		Content:    strings.TrimSpace(content),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, 0, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create comment")
	}

	count, err := CountComments(ctx, db, shoutoutID)
	if err != nil {
		return nil, 0, err
	}
	return c, count, nil
}

// CommentsForShoutout returns the shoutout's comments oldest first, each with
// its author loaded.
func CommentsForShoutout(ctx context.Context, db *gorm.DB, shoutoutID uuid.UUID) ([]Comment, error) {
	if err := shoutoutExists(ctx, db, shoutoutID); err != nil {
		return nil, err
	}

	var comments []Comment
	if err := db.WithContext(ctx).
		Preload("User").
		Where("shoutout_id = ?", shoutoutID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to list comments")
	}
	return comments, nil
}

// FlagComment marks a comment for moderation. The reason is mandatory after
// trimming; any authenticated user may flag any comment, their own included.
func FlagComment(ctx context.Context, db *gorm.DB, commentID, flaggerID uuid.UUID, reason string) error {
	var c Comment
	if err := db.WithContext(ctx).First(&c, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewError(utils.ErrNotFound.Code, "Comment not found")
		}
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get comment")
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return utils.NewError(utils.ErrBadRequest.Code, "Reason is required")
	}

	now := time.Now().UTC()
	c.IsFlagged = true
	c.FlagReason = reason
	c.FlaggedBy = &flaggerID
	c.FlaggedAt = &now

	if err := db.WithContext(ctx).Save(&c).Error; err != nil {
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to flag comment")
	}
	return nil
}

// FlaggedComments returns every flagged comment with author and flagger.
func FlaggedComments(ctx context.Context, db *gorm.DB) ([]Comment, error) {
	var comments []Comment
	if err := db.WithContext(ctx).
		Preload("User").
		Preload("Flagger").
		Where("is_flagged = ?", true).
		Find(&comments).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to list flagged comments")
	}
	return comments, nil
}

// AllComments returns every comment newest first, for the admin overview.
func AllComments(ctx context.Context, db *gorm.DB) ([]Comment, error) {
	var comments []Comment
	if err := db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to list comments")
	}
	return comments, nil
}

// DeleteComment removes a comment unconditionally.
func DeleteComment(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var c Comment
	if err := db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewError(utils.ErrNotFound.Code, "Comment not found")
		}
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get comment")
	}

	if err := db.WithContext(ctx).Delete(&c).Error; err != nil {
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to delete comment")
	}
	return nil
}

// CountComments counts one shoutout's comments.
func CountComments(ctx context.Context, db *gorm.DB, shoutoutID uuid.UUID) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&Comment{}).Where("shoutout_id = ?", shoutoutID).Count(&count).Error; err != nil {
		return 0, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to count comments")
	}
	return count, nil
}

// CommentCountsByShoutout computes comment counts for a set of shoutouts in a
// single grouped query. Ids with no comments are absent from the result; the
// caller's zero-value lookup supplies the 0 default.
func CommentCountsByShoutout(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		ShoutoutID uuid.UUID
		Total      int64
	}
	if err := db.WithContext(ctx).
		Model(&Comment{}).
		Select("shoutout_id, count(*) as total").
		Where("shoutout_id IN ?", ids).
		Group("shoutout_id").
		Scan(&rows).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to count comments")
	}

	for _, row := range rows {
		counts[row.ShoutoutID] = row.Total
	}
	return counts, nil
}
