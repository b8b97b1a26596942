package utils

import "github.com/gofiber/fiber/v2"

// SendError sends a standardized error envelope. Unrecognized errors are
// reported as 500 with the details stripped so internals never leak.
func SendError(c *fiber.Ctx, err error) error {
	var appErr *CustomError
	if !As(err, &appErr) {
		appErr = ErrInternalServerError
	}

	details := appErr.Details
	if appErr.Code >= fiber.StatusInternalServerError {
		details = ""
	}

	return c.Status(appErr.Code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    appErr.Code,
			"message": appErr.Message,
			"details": details,
		},
	})
}

// SendJSON sends a success payload with the given status code.
func SendJSON(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// SendMessage sends a plain confirmation message, matching the shape the
// frontend expects from mutation endpoints.
func SendMessage(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}
