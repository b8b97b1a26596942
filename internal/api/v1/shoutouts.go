package v1

import (
	"github.com/bragboard/bragboard/internal/auth"
	"github.com/bragboard/bragboard/internal/models"
	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateShoutout posts a recognition message addressed to zero or more
// recipients.
func CreateShoutout(c *fiber.Ctx) error {
	type ShoutoutInput struct {
		Message      string      `json:"message" validate:"required"`
		RecipientIDs []uuid.UUID `json:"recipient_ids"`
	}

	si := new(ShoutoutInput)
	if err := utils.StrictBodyParser(c, si); err != nil {
		Logger.Warn(c.UserContext()).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to parse shoutout request")
		return utils.SendError(c, utils.ErrBadRequest.WithCause(err))
	}
	if verr := Validator.Validate(si); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": verr,
		})
	}

	caller := auth.CurrentUser(c)
	shoutout, err := models.NewShoutout(c.UserContext(), DB, caller.ID, si.Message, si.RecipientIDs)
	if err != nil {
		return utils.SendError(c, err)
	}

	Logger.Info(c.UserContext()).WithMeta(utils.Map{"shoutout_id": shoutout.ID.String()}).Logs("Shoutout created")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Shoutout created successfully",
		"id":      shoutout.ID,
	})
}

// GetShoutouts lists every shoutout, newest first.
func GetShoutouts(c *fiber.Ctx) error {
	views, err := models.GetShoutouts(c.UserContext(), DB)
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.JSON(views)
}

// GetShoutout returns a single enriched shoutout.
func GetShoutout(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	view, gerr := models.GetShoutout(c.UserContext(), DB, id)
	if gerr != nil {
		return utils.SendError(c, gerr)
	}
	return c.JSON(view)
}

// DeleteShoutout removes a shoutout when the caller owns it or is an admin.
func DeleteShoutout(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	caller := auth.CurrentUser(c)
	if derr := models.DeleteShoutout(c.UserContext(), DB, id, caller); derr != nil {
		return utils.SendError(c, derr)
	}

	Logger.Info(c.UserContext()).WithMeta(utils.Map{"shoutout_id": id.String()}).Logs("Shoutout deleted")
	return utils.SendMessage(c, fiber.StatusOK, "Shoutout deleted successfully")
}

// parseIDParam parses a uuid path parameter or fails with 400.
func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, utils.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}
