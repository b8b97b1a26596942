package models

import (
	"context"
	"errors"
	"time"

	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Shoutout struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null;index:idx_shoutout_sender" json:"sender_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	IsHidden  bool      `gorm:"default:false" json:"is_hidden"`

	Sender     User                `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Recipients []ShoutoutRecipient `gorm:"foreignKey:ShoutoutID;constraint:OnDelete:CASCADE" json:"-"`
	Comments   []Comment           `gorm:"foreignKey:ShoutoutID;constraint:OnDelete:CASCADE" json:"-"`
	Reactions  []Reaction          `gorm:"foreignKey:ShoutoutID;constraint:OnDelete:CASCADE" json:"-"`
	Reports    []Report            `gorm:"foreignKey:ShoutoutID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *Shoutout) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ShoutoutRecipient joins a shoutout to one recipient. Duplicates are allowed.
type ShoutoutRecipient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShoutoutID  uuid.UUID `gorm:"type:uuid;not null;index:idx_recipient_shoutout" json:"shoutout_id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index:idx_recipient_user" json:"recipient_id"`

	Recipient User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *ShoutoutRecipient) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// SenderOut is the sender shape embedded in shoutout responses.
type SenderOut struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Role       UserRole  `json:"role"`
}

// RecipientOut is the recipient shape embedded in shoutout responses.
type RecipientOut struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
}

// ShoutoutView is a shoutout enriched with sender, recipients, and the derived
// comment count.
type ShoutoutView struct {
	ID            uuid.UUID      `json:"id"`
	Message       string         `json:"message"`
	Sender        SenderOut      `json:"sender"`
	Recipients    []RecipientOut `json:"recipients"`
	CreatedAt     time.Time      `json:"created_at"`
	CommentsCount int64          `json:"comments_count"`
}

// NewShoutout persists the shoutout and its recipient rows in one transaction,
// so a failed write leaves nothing behind. Recipient ids are stored as given:
// duplicates included, existence left to the foreign key.
func NewShoutout(ctx context.Context, db *gorm.DB, senderID uuid.UUID, message string, recipientIDs []uuid.UUID) (*Shoutout, error) {
	s := &Shoutout{
		SenderID: senderID,
		Message:  message,
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		for _, rid := range recipientIDs {
			if err := tx.Create(&ShoutoutRecipient{
				ShoutoutID:  s.ID,
				RecipientID: rid,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create shoutout")
	}

	return s, nil
}

// GetShoutouts returns every shoutout newest first, enriched with sender,
// recipients, and comment counts computed in a single aggregation.
func GetShoutouts(ctx context.Context, db *gorm.DB) ([]ShoutoutView, error) {
	var shoutouts []Shoutout
	if err := db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipients.Recipient").
		Order("created_at DESC").
		Find(&shoutouts).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to list shoutouts")
	}

	ids := make([]uuid.UUID, len(shoutouts))
	for i, s := range shoutouts {
		ids[i] = s.ID
	}

	counts, err := CommentCountsByShoutout(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ShoutoutView, 0, len(shoutouts))
	for _, s := range shoutouts {
		views = append(views, buildShoutoutView(s, counts[s.ID]))
	}
	return views, nil
}

// GetShoutout returns one enriched shoutout.
func GetShoutout(ctx context.Context, db *gorm.DB, id uuid.UUID) (*ShoutoutView, error) {
	var s Shoutout
	if err := db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipients.Recipient").
		First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewError(utils.ErrNotFound.Code, "Shoutout not found")
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get shoutout")
	}

	count, err := CountComments(ctx, db, id)
	if err != nil {
		return nil, err
	}

	view := buildShoutoutView(s, count)
	return &view, nil
}

// DeleteShoutout removes the shoutout when the caller is its sender or an
// admin. Recipients, comments, reactions, and reports cascade with it.
func DeleteShoutout(ctx context.Context, db *gorm.DB, id uuid.UUID, caller *User) error {
	var s Shoutout
	if err := db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewError(utils.ErrNotFound.Code, "Shoutout not found")
		}
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get shoutout")
	}

	if !caller.IsAdmin() && s.SenderID != caller.ID {
		return utils.NewError(utils.ErrForbidden.Code, "Not authorized to delete")
	}

	if err := db.WithContext(ctx).Delete(&s).Error; err != nil {
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to delete shoutout")
	}
	return nil
}

// shoutoutExists returns NotFound when no shoutout carries the id.
func shoutoutExists(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := db.WithContext(ctx).Model(&Shoutout{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to check shoutout")
	}
	if count == 0 {
		return utils.NewError(utils.ErrNotFound.Code, "Shoutout not found")
	}
	return nil
}

func buildShoutoutView(s Shoutout, commentCount int64) ShoutoutView {
	recipients := make([]RecipientOut, 0, len(s.Recipients))
	for _, r := range s.Recipients {
		recipients = append(recipients, RecipientOut{
			ID:         r.Recipient.ID,
			Name:       r.Recipient.Name,
			Department: r.Recipient.Department,
		})
	}

	return ShoutoutView{
		ID:      s.ID,
		Message: s.Message,
		Sender: SenderOut{
			ID:         s.Sender.ID,
			Name:       s.Sender.Name,
			Email:      s.Sender.Email,
			Department: s.Sender.Department,
			Role:       s.Sender.Role,
		},
		Recipients:    recipients,
		CreatedAt:     s.CreatedAt,
		CommentsCount: commentCount,
	}
}
