// Package models holds the recognition-domain entities and the operations on
// them. Handlers stay thin; the rules live here.
package models

// RegisterModels lists every entity for migration, parents before children so
// the cascading foreign keys can be created.
func RegisterModels() []interface{} {
	return []interface{}{
		&User{},
		&Shoutout{},
		&ShoutoutRecipient{},
		&Comment{},
		&Reaction{},
		&Report{},
		&AdminLog{},
	}
}

type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleAdmin    UserRole = "admin"
)

type ReactionType string

const (
	ReactionLike ReactionType = "like"
	ReactionClap ReactionType = "clap"
	ReactionStar ReactionType = "star"
)
