package v1

import (
	"github.com/bragboard/bragboard/internal/auth"
	"github.com/bragboard/bragboard/internal/models"
	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// ReportShoutout files a moderation request against a shoutout. The reason is
// stored as given.
func ReportShoutout(c *fiber.Ctx) error {
	shoutoutID, err := parseIDParam(c, "shoutout_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	type ReportInput struct {
		Reason string `json:"reason" validate:"required"`
	}
	ri := new(ReportInput)
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
	if _, rerr := models.NewReport(c.UserContext(), DB, shoutoutID, caller.ID, ri.Reason); rerr != nil {
		return utils.SendError(c, rerr)
	}

	Logger.Info(c.UserContext()).WithMeta(utils.Map{"shoutout_id": shoutoutID.String()}).Logs("Shoutout reported")
	return utils.SendMessage(c, fiber.StatusCreated, "Shoutout reported successfully")
}
