package v1

import (
	"github.com/bragboard/bragboard/internal/auth"
	"github.com/bragboard/bragboard/internal/models"
	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// All handlers in this file sit behind auth.RequireAdmin; none of them repeat
// the role check. Every mutation appends to the audit trail.

// GetReports lists every open report with its shoutout and reporter.
func GetReports(c *fiber.Ctx) error {
	reports, err := models.GetReports(c.UserContext(), DB)
	if err != nil {
		return utils.SendError(c, err)
	}

	out := make([]fiber.Map, 0, len(reports))
	for _, r := range reports {
		out = append(out, fiber.Map{
			"id":         r.ID,
			"reason":     r.Reason,
			"created_at": r.CreatedAt,
			"shoutout": fiber.Map{
				"id":      r.Shoutout.ID,
				"message": r.Shoutout.Message,
				"sender": fiber.Map{
					"id":         r.Shoutout.Sender.ID,
					"name":       r.Shoutout.Sender.Name,
					"department": r.Shoutout.Sender.Department,
				},
			},
			"reported_by": fiber.Map{
				"id":         r.Reporter.ID,
				"name":       r.Reporter.Name,
				"department": r.Reporter.Department,
			},
		})
	}
	return c.JSON(out)
}

// ResolveReport deletes the report record; deletion is the resolution.
func ResolveReport(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if rerr := models.ResolveReport(c.UserContext(), DB, id); rerr != nil {
		return utils.SendError(c, rerr)
	}

	audit(c, "resolve_report", id, models.TargetReport)
	return utils.SendMessage(c, fiber.StatusOK, "Report resolved (deleted)")
}

// GetUsers lists every user.
func GetUsers(c *fiber.Ctx) error {
	users, err := models.GetUsers(c.UserContext(), DB)
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.JSON(users)
}

// UpdateUserRole overwrites a user's role.
func UpdateUserRole(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	type RoleInput struct {
		Role string `json:"role" validate:"required,oneof=employee admin"`
	}
	ri := new(RoleInput)
	if perr := utils.StrictBodyParser(c, ri); perr != nil {
		return utils.SendError(c, utils.ErrBadRequest.WithCause(perr))
	}
	if verr := Validator.Validate(ri); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": verr,
		})
	}

	user, uerr := models.SetUserRole(c.UserContext(), DB, id, models.UserRole(ri.Role))
	if uerr != nil {
		return utils.SendError(c, uerr)
	}

	auth.InvalidateUserCache(c, Redis, user.Email)
	audit(c, "update_role:"+ri.Role, id, models.TargetUser)
	return utils.SendMessage(c, fiber.StatusOK, "User role updated")
}

// ToggleUserActive flips a user's active flag.
func ToggleUserActive(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	user, uerr := models.ToggleUserActive(c.UserContext(), DB, id)
	if uerr != nil {
		return utils.SendError(c, uerr)
	}

	auth.InvalidateUserCache(c, Redis, user.Email)
	audit(c, "toggle_active", id, models.TargetUser)
	return utils.SendMessage(c, fiber.StatusOK, "User active status toggled")
}

// BlockUser sets a user's punitive block flag.
func BlockUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	user, uerr := models.BlockUser(c.UserContext(), DB, id)
	if uerr != nil {
		return utils.SendError(c, uerr)
	}

	auth.InvalidateUserCache(c, Redis, user.Email)
	audit(c, "block", id, models.TargetUser)
	return utils.SendMessage(c, fiber.StatusOK, "User blocked")
}

// DeleteUser removes a user and, via cascade, everything they authored.
func DeleteUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	user, gerr := models.GetUserBy(c.UserContext(), DB, "id = ?", id)
	if gerr != nil {
		return utils.SendError(c, gerr)
	}

	if derr := models.DeleteUser(c.UserContext(), DB, id); derr != nil {
		return utils.SendError(c, derr)
	}

	auth.InvalidateUserCache(c, Redis, user.Email)
	audit(c, "delete_user", id, models.TargetUser)
	return utils.SendMessage(c, fiber.StatusOK, "User deleted successfully")
}

// AdminDeleteShoutout removes any shoutout regardless of ownership.
func AdminDeleteShoutout(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	caller := auth.CurrentUser(c)
	if derr := models.DeleteShoutout(c.UserContext(), DB, id, caller); derr != nil {
		return utils.SendError(c, derr)
	}

	audit(c, "delete_shoutout", id, models.TargetShoutout)
	return utils.SendMessage(c, fiber.StatusOK, "Shoutout deleted successfully")
}

// GetAllComments returns every comment with author and flag state.
func GetAllComments(c *fiber.Ctx) error {
	comments, err := models.AllComments(c.UserContext(), DB)
	if err != nil {
		return utils.SendError(c, err)
	}

	out := make([]fiber.Map, 0, len(comments))
	for _, cm := range comments {
		out = append(out, fiber.Map{
			"id":         cm.ID,
			"content":    cm.Content,
			"created_at": cm.CreatedAt,
			"user": fiber.Map{
				"id":         cm.User.ID,
				"name":       cm.User.Name,
				"email":      cm.User.Email,
				"department": cm.User.Department,
			},
			"is_flagged":  cm.IsFlagged,
			"flag_reason": cm.FlagReason,
		})
	}
	return c.JSON(out)
}

// GetFlaggedComments returns every flagged comment with author and flagger.
func GetFlaggedComments(c *fiber.Ctx) error {
	comments, err := models.FlaggedComments(c.UserContext(), DB)
	if err != nil {
		return utils.SendError(c, err)
	}

	out := make([]fiber.Map, 0, len(comments))
	for _, cm := range comments {
		entry := fiber.Map{
			"id":          cm.ID,
			"content":     cm.Content,
			"flag_reason": cm.FlagReason,
			"created_at":  cm.CreatedAt,
			"user": fiber.Map{
				"id":         cm.User.ID,
				"name":       cm.User.Name,
				"department": cm.User.Department,
			},
		}
		if cm.Flagger != nil {
			entry["flagged_by"] = fiber.Map{
				"id":         cm.Flagger.ID,
				"name":       cm.Flagger.Name,
				"department": cm.Flagger.Department,
			}
		}
		out = append(out, entry)
	}
	return c.JSON(out)
}

// DeleteComment removes any comment regardless of ownership.
func DeleteComment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if derr := models.DeleteComment(c.UserContext(), DB, id); derr != nil {
		return utils.SendError(c, derr)
	}

	audit(c, "delete_comment", id, models.TargetComment)
	return utils.SendMessage(c, fiber.StatusOK, "Comment deleted successfully")
}

// audit appends an AdminLog row for the calling admin. A failed audit write is
// logged but does not fail the already-committed mutation.
func audit(c *fiber.Ctx, action string, targetID uuid.UUID, targetType string) {
	caller := auth.CurrentUser(c)
	if caller == nil {
		return
	}
	if err := models.RecordAdminAction(c.UserContext(), DB, caller.ID, action, targetID, targetType); err != nil {
		Logger.Warn(c.UserContext()).WithMeta(utils.Map{
			"action": action,
			"error":  err.Error(),
		}).Logs("Failed to write admin log")
	}
}
