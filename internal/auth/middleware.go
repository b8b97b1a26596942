package auth

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bragboard/bragboard/internal/models"
	"github.com/bragboard/bragboard/pkg/logger"
	storage "github.com/bragboard/bragboard/pkg/redis"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const userCacheTTL = 30 * time.Minute

// Options carries the collaborators the middleware needs.
type Options struct {
	DB      *gorm.DB
	JWT     *JWT
	Rclient *storage.RedisClient
	Logger  *logger.Logger
}

// RequireAuth resolves the bearer token to exactly one user or rejects the
// request. Tokens that are missing, malformed, expired, or signed with the
// wrong key fail with 401, as does an unknown subject. A resolved user who is
// blocked or deactivated is rejected with 403: moderation flags gate the door,
// not just individual features.
func RequireAuth(opt Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing bearer token",
			})
		}

		claims, err := opt.JWT.VerifyToken(tokenString)
		if err != nil {
			if opt.Logger != nil {
				opt.Logger.Warn(c.UserContext()).WithMeta(map[string]string{"error": err.Error()}).Logs("Token rejected")
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired credentials",
			})
		}

		user, err := resolveUser(c, opt, claims.Subject)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired credentials",
			})
		}

		if user.IsBlocked || !user.IsActive {
			if opt.Logger != nil {
				opt.Logger.Warn(c.UserContext()).WithMeta(map[string]string{"email": user.Email}).Logs("Blocked or inactive user rejected")
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Account is disabled",
			})
		}

		c.Locals("user", user)
		c.Locals("user_id", user.ID.String())
		return c.Next()
	}
}

// RequireAdmin gates a route group on the admin role. Keeping the check in one
// middleware means a new admin endpoint cannot forget it.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		if !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admins only",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the caller resolved by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// resolveUser looks the subject email up, consulting the Redis cache first
// when one is configured.
func resolveUser(c *fiber.Ctx, opt Options, email string) (*models.User, error) {
	cacheKey := "user:email:" + email

	if opt.Rclient != nil {
		if cached, err := opt.Rclient.Get(c.Context(), cacheKey).Result(); err == nil && cached != "" {
			var user models.User
			if err := json.Unmarshal([]byte(cached), &user); err == nil {
				return &user, nil
			}
		}
	}

	user, err := models.GetUserBy(c.UserContext(), opt.DB, "email = ?", email)
	if err != nil {
		return nil, err
	}

	if opt.Rclient != nil {
		if userJSON, err := json.Marshal(user); err == nil {
			opt.Rclient.Set(c.Context(), cacheKey, userJSON, userCacheTTL)
		}
	}

	return user, nil
}

// InvalidateUserCache drops a cached user after a moderation mutation so
// role/flag changes take effect on the next request.
func InvalidateUserCache(c *fiber.Ctx, rclient *storage.RedisClient, email string) {
	if rclient == nil {
		return
	}
	rclient.Del(c.Context(), "user:email:"+email)
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
