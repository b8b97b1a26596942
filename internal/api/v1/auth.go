package v1

import (
	"strings"

	"github.com/bragboard/bragboard/internal/auth"
	"github.com/bragboard/bragboard/internal/models"
	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// Register creates a user account.
func Register(c *fiber.Ctx) error {
	type RegisterInput struct {
		Name       string `json:"name" validate:"required,min=2,max=100"`
		Email      string `json:"email" validate:"required,email,max=100"`
		Password   string `json:"password" validate:"required,min=6"`
		Department string `json:"department" validate:"omitempty,max=100"`
		Role       string `json:"role" validate:"required,oneof=employee admin"`
	}

	ri := new(RegisterInput)
	if err := utils.StrictBodyParser(c, ri); err != nil {
		Logger.Warn(c.UserContext()).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to parse register request")
		return utils.SendError(c, utils.ErrBadRequest.WithCause(err))
	}

	if verr := Validator.Validate(ri); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": verr,
		})
	}

	ri.Email = strings.ToLower(strings.TrimSpace(ri.Email))

	hashed, err := utils.HashPassword(ri.Password)
	if err != nil {
		Logger.Error(c.UserContext()).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to hash password")
		return utils.SendError(c, utils.ErrInternalServerError)
	}

	user, err := models.NewUser(c.UserContext(), DB, ri.Name, ri.Email, hashed, ri.Department, models.UserRole(ri.Role))
	if err != nil {
		return utils.SendError(c, err)
	}

	Logger.Info(c.UserContext()).WithMeta(utils.Map{"email": user.Email}).Logs("User registered")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"user":    user,
	})
}

// Login verifies credentials and issues an access/refresh token pair.
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	li := new(LoginInput)
	if err := utils.StrictBodyParser(c, li); err != nil {
		return utils.SendError(c, utils.ErrBadRequest.WithCause(err))
	}
	if verr := Validator.Validate(li); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": verr,
		})
	}

	email := strings.ToLower(strings.TrimSpace(li.Email))
	user, err := models.GetUserBy(c.UserContext(), DB, "email = ?", email)
	if err != nil {
		Logger.Warn(c.UserContext()).WithMeta(utils.Map{"email": email}).Logs("Login for unknown email")
		return utils.SendError(c, utils.NewError(fiber.StatusUnauthorized, "Incorrect email or password"))
	}

	if err := utils.ComparePasswords(user.Password, li.Password); err != nil {
		Logger.Warn(c.UserContext()).WithMeta(utils.Map{"email": email}).Logs("Login with wrong password")
		return utils.SendError(c, utils.NewError(fiber.StatusUnauthorized, "Incorrect email or password"))
	}

	return sendTokenPair(c, user.Email)
}

// Refresh exchanges a valid refresh token for a new token pair.
func Refresh(c *fiber.Ctx) error {
	type RefreshInput struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}

	ri := new(RefreshInput)
	if err := utils.StrictBodyParser(c, ri); err != nil {
		return utils.SendError(c, utils.ErrBadRequest.WithCause(err))
	}
	if verr := Validator.Validate(ri); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": verr,
		})
	}

	claims, err := JWT.VerifyToken(ri.RefreshToken)
	if err != nil || claims.TokenType != auth.TokenRefresh {
		Logger.Warn(c.UserContext()).Logs("Refresh with invalid token")
		return utils.SendError(c, utils.NewError(fiber.StatusUnauthorized, "Invalid or expired refresh token"))
	}

	// The subject must still resolve to a user.
	user, err := models.GetUserBy(c.UserContext(), DB, "email = ?", claims.Subject)
	if err != nil {
		return utils.SendError(c, utils.NewError(fiber.StatusUnauthorized, "Invalid or expired refresh token"))
	}

	// Same door the auth gate closes: a blocked or deactivated user must not
	// keep minting fresh token pairs.
	if user.IsBlocked || !user.IsActive {
		Logger.Warn(c.UserContext()).WithMeta(utils.Map{"email": user.Email}).Logs("Refresh for disabled account rejected")
		return utils.SendError(c, utils.NewError(fiber.StatusForbidden, "Account is disabled"))
	}

	return sendTokenPair(c, user.Email)
}

// Me returns the resolved caller.
func Me(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return utils.SendError(c, utils.ErrUnauthorized)
	}
	return c.JSON(user)
}

func sendTokenPair(c *fiber.Ctx, email string) error {
	accessToken, err := JWT.GenerateAccessToken(email)
	if err != nil {
		Logger.Error(c.UserContext()).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to sign access token")
		return utils.SendError(c, utils.ErrInternalServerError)
	}
	refreshToken, err := JWT.GenerateRefreshToken(email)
	if err != nil {
		Logger.Error(c.UserContext()).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to sign refresh token")
		return utils.SendError(c, utils.ErrInternalServerError)
	}

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	})
}
