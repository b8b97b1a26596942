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

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password   string    `gorm:"size:200;not null" json:"-"`
	Department string    `gorm:"size:100" json:"department"`
	Role       UserRole  `gorm:"size:20;not null" json:"role"`
	JoinedAt   time.Time `gorm:"autoCreateTime" json:"joined_at"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	IsBlocked  bool      `gorm:"default:false" json:"is_blocked"`

	SentShoutouts []Shoutout `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Comments      []Comment  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reactions     []Reaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reports       []Report   `gorm:"foreignKey:ReportedBy;constraint:OnDelete:CASCADE" json:"-"`
	AdminLogs     []AdminLog `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// isDuplicateErr matches unique-constraint violations across drivers that do
// not translate to gorm.ErrDuplicatedKey.
func isDuplicateErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "UNIQUE constraint")
}

// NewUser persists a user with an already-hashed password. A duplicate email
// surfaces as a conflict.
func NewUser(ctx context.Context, db *gorm.DB, name, email, hashedPassword, department string, role UserRole) (*User, error) {
	u := &User{
		Name:       name,
		Email:      email,
		Password:   hashedPassword,
		Department: department,
		Role:       role,
	}

	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateErr(err) {
			return nil, utils.NewError(utils.ErrConflict.Code, "Email already registered")
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create user")
	}

	return u, nil
}

// GetUserBy retrieves a single user matching the condition.
func GetUserBy(ctx context.Context, db *gorm.DB, condition string, args ...interface{}) (*User, error) {
	var u User
	if err := db.WithContext(ctx).Where(condition, args...).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewError(utils.ErrNotFound.Code, "User not found")
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get user")
	}
	return &u, nil
}

// GetUsers returns every user, unfiltered.
func GetUsers(ctx context.Context, db *gorm.DB) ([]User, error) {
	var users []User
	if err := db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to list users")
	}
	return users, nil
}

// SetUserRole overwrites the user's role unconditionally. An admin may demote
// anyone, themselves included.
func SetUserRole(ctx context.Context, db *gorm.DB, id uuid.UUID, role UserRole) (*User, error) {
	u, err := GetUserBy(ctx, db, "id = ?", id)
	if err != nil {
		return nil, err
	}

	u.Role = role
	if err := db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to update role")
	}
	return u, nil
}

// ToggleUserActive flips the is_active flag.
func ToggleUserActive(ctx context.Context, db *gorm.DB, id uuid.UUID) (*User, error) {
	u, err := GetUserBy(ctx, db, "id = ?", id)
	if err != nil {
		return nil, err
	}

	u.IsActive = !u.IsActive
	if err := db.WithContext(ctx).Model(u).Update("is_active", u.IsActive).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to toggle active status")
	}
	return u, nil
}

// BlockUser sets the punitive is_blocked flag. Deactivation is a separate
// concept handled by ToggleUserActive.
func BlockUser(ctx context.Context, db *gorm.DB, id uuid.UUID) (*User, error) {
	u, err := GetUserBy(ctx, db, "id = ?", id)
	if err != nil {
		return nil, err
	}

	u.IsBlocked = true
	if err := db.WithContext(ctx).Model(u).Update("is_blocked", true).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to block user")
	}
	return u, nil
}

// DeleteUser removes the user. Everything they authored goes with them via
// the schema's cascading foreign keys.
func DeleteUser(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	u, err := GetUserBy(ctx, db, "id = ?", id)
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Delete(u).Error; err != nil {
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to delete user")
	}
	return nil
}
