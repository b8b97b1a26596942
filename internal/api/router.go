// Package routes wires the middleware stack and the endpoint surface.
package routes

import (
	v1 "github.com/bragboard/bragboard/internal/api/v1"
	"github.com/bragboard/bragboard/internal/auth"
	"github.com/bragboard/bragboard/internal/config"
	"github.com/bragboard/bragboard/pkg/logger"
	storage "github.com/bragboard/bragboard/pkg/redis"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// NewRoutes installs middleware and registers every endpoint. The admin group
// carries the single RequireAdmin guard; individual handlers never re-check
// the role.
func NewRoutes(app *fiber.App, cfg *config.Config, db *gorm.DB, log *logger.Logger, rclient *storage.RedisClient) {
	app.Use(
		logger.SetupLogger(log),
		recover.New(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigin,
			AllowCredentials: true,
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		}),
	)
	app.Use(log.Middleware())

	jwt := auth.NewJWT(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	v1.Setup(db, rclient, log, jwt)

	requireAuth := auth.RequireAuth(auth.Options{
		DB:      db,
		JWT:     jwt,
		Rclient: rclient,
		Logger:  log,
	})

	authGroup := app.Group("/auth")
	authGroup.Post("/register", v1.Register)
	authGroup.Post("/login", v1.Login)
	authGroup.Post("/refresh", v1.Refresh)
	authGroup.Get("/me", requireAuth, v1.Me)

	shoutouts := app.Group("/shoutouts", requireAuth)
	shoutouts.Post("/", v1.CreateShoutout)
	shoutouts.Get("/", v1.GetShoutouts)
	shoutouts.Get("/:id", v1.GetShoutout)
	shoutouts.Delete("/:id", v1.DeleteShoutout)

	comments := app.Group("/comments", requireAuth)
	comments.Post("/:id/flag", v1.FlagComment)
	comments.Post("/:shoutout_id", v1.AddComment)
	comments.Get("/:shoutout_id", v1.GetComments)

	reactions := app.Group("/reactions", requireAuth)
	reactions.Post("/:shoutout_id", v1.AddReaction)

	reports := app.Group("/reports", requireAuth)
	reports.Post("/:shoutout_id", v1.ReportShoutout)

	admin := app.Group("/admin", requireAuth, auth.RequireAdmin())
	admin.Get("/reports", v1.GetReports)
	admin.Delete("/reports/:id", v1.ResolveReport)
	admin.Get("/users", v1.GetUsers)
	admin.Patch("/users/:id/role", v1.UpdateUserRole)
	admin.Patch("/users/:id/active", v1.ToggleUserActive)
	admin.Post("/users/:id/block", v1.BlockUser)
	admin.Delete("/users/:id", v1.DeleteUser)
	admin.Delete("/shoutouts/:id", v1.AdminDeleteShoutout)
	admin.Get("/comments", v1.GetAllComments)
	admin.Get("/comments/flagged", v1.GetFlaggedComments)
	admin.Delete("/comments/:id", v1.DeleteComment)
}
