package v1

import (
	"github.com/bragboard/bragboard/internal/auth"
	"github.com/bragboard/bragboard/internal/models"
	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// AddComment stores a comment on a shoutout and echoes the fresh count.
func AddComment(c *fiber.Ctx) error {
	shoutoutID, err := parseIDParam(c, "shoutout_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	type CommentInput struct {
		Content string `json:"content"`
	}
	ci := new(CommentInput)
	if perr := utils.StrictBodyParser(c, ci); perr != nil {
		return utils.SendError(c, utils.ErrBadRequest.WithCause(perr))
	}

	caller := auth.CurrentUser(c)
	comment, count, cerr := models.NewComment(c.UserContext(), DB, shoutoutID, caller.ID, ci.Content)
	if cerr != nil {
		return utils.SendError(c, cerr)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":            comment.ID,
		"content":       comment.Content,
		"created_at":    comment.CreatedAt,
		"comment_count": count,
		"user": fiber.Map{
			"id":    caller.ID,
			"name":  caller.Name,
			"email": caller.Email,
		},
	})
}

// GetComments lists a shoutout's comments, oldest first.
func GetComments(c *fiber.Ctx) error {
	shoutoutID, err := parseIDParam(c, "shoutout_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	comments, cerr := models.CommentsForShoutout(c.UserContext(), DB, shoutoutID)
	if cerr != nil {
		return utils.SendError(c, cerr)
	}

	out := make([]fiber.Map, 0, len(comments))
	for _, cm := range comments {
		out = append(out, fiber.Map{
			"id":         cm.ID,
			"content":    cm.Content,
			"created_at": cm.CreatedAt,
			"user": fiber.Map{
				"id":    cm.User.ID,
				"name":  cm.User.Name,
				"email": cm.User.Email,
			},
		})
	}
	return c.JSON(out)
}

// FlagComment marks a comment for moderation with a mandatory reason.
func FlagComment(c *fiber.Ctx) error {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	type FlagInput struct {
		Reason string `json:"reason"`
	}
	fi := new(FlagInput)
	if perr := utils.StrictBodyParser(c, fi); perr != nil {
		return utils.SendError(c, utils.ErrBadRequest.WithCause(perr))
	}

	caller := auth.CurrentUser(c)
	if ferr := models.FlagComment(c.UserContext(), DB, commentID, caller.ID, fi.Reason); ferr != nil {
		return utils.SendError(c, ferr)
	}

	Logger.Info(c.UserContext()).WithMeta(utils.Map{"comment_id": commentID.String()}).Logs("Comment flagged")
	return utils.SendMessage(c, fiber.StatusOK, "Comment flagged successfully")
}
