package models

import (
	"context"
	"time"

	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reaction records one (shoutout, user, type) triple. No uniqueness is
// enforced: a user may react to the same shoutout repeatedly, same type
// included.
type Reaction struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ShoutoutID uuid.UUID    `gorm:"type:uuid;not null;index:idx_reaction_shoutout" json:"shoutout_id"`
	UserID     uuid.UUID    `gorm:"type:uuid;not null;index:idx_reaction_user" json:"user_id"`
	Type       ReactionType `gorm:"size:20;not null" json:"type"`
	CreatedAt  time.Time    `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// NewReaction inserts a reaction on an existing shoutout.
func NewReaction(ctx context.Context, db *gorm.DB, shoutoutID, userID uuid.UUID, rtype ReactionType) (*Reaction, error) {
	if err := shoutoutExists(ctx, db, shoutoutID); err != nil {
		return nil, err
	}

	r := &Reaction{
		ShoutoutID: shoutoutID,
		UserID:     userID,
		Type:       rtype,
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create reaction")
	}
	return r, nil
}
