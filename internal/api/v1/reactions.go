package v1

import (
	"fmt"

	"github.com/bragboard/bragboard/internal/auth"
	"github.com/bragboard/bragboard/internal/models"
	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// AddReaction records a like/clap/star on a shoutout. Repeated reactions are
// allowed and each inserts a new row.
func AddReaction(c *fiber.Ctx) error {
	shoutoutID, err := parseIDParam(c, "shoutout_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	type ReactionInput struct {
		Type string `json:"type" validate:"required,oneof=like clap star"`
	}
	ri := new(ReactionInput)
	if perr := utils.StrictBodyParser(c, ri); perr != nil {
		return utils.SendError(c, utils.ErrBadRequest.WithCause(perr))
	}
	if verr := Validator.Validate(ri); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": verr,
		})
	}

	caller := auth.CurrentUser(c)
	reaction, rerr := models.NewReaction(c.UserContext(), DB, shoutoutID, caller.ID, models.ReactionType(ri.Type))
	if rerr != nil {
		return utils.SendError(c, rerr)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Reaction '%s' added successfully", reaction.Type),
	})
}
