// Package v1 contains the HTTP handlers. Collaborators are injected once at
// route registration.
package v1

import (
	"github.com/bragboard/bragboard/internal/auth"
	"github.com/bragboard/bragboard/pkg/logger"
	storage "github.com/bragboard/bragboard/pkg/redis"
	"github.com/bragboard/bragboard/pkg/utils"
	"gorm.io/gorm"
)

var (
	DB        *gorm.DB
	Redis     *storage.RedisClient
	Logger    *logger.Logger
	JWT       *auth.JWT
	Validator = utils.NewValidator()
)

// Setup wires the package collaborators before routes are registered.
func Setup(db *gorm.DB, rclient *storage.RedisClient, log *logger.Logger, jwt *auth.JWT) {
	DB = db
	Redis = rclient
	Logger = log
	JWT = jwt
}
