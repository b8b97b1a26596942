package models

import (
	"context"
	"testing"
	"time"

	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func TestNewCommentTrimsAndCounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)
	s := mustCreateShoutout(t, db, alice, "Great work!")

	c, count, err := NewComment(ctx, db, s.ID, alice.ID, "  Thanks!  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Content != "Thanks!" {
		t.Fatalf("expected trimmed content, got %q", c.Content)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	// Whitespace-only content trims to empty and is still stored.
	c, count, err = NewComment(ctx, db, s.ID, alice.ID, "   ")
	if err != nil {
		t.Fatalf("create empty: %v", err)
	}
	if c.Content != "" {
		t.Fatalf("expected empty content, got %q", c.Content)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
}

func TestNewCommentMissingShoutout(t *testing.T) {
	db := newTestDB(t)
	alice := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)

	_, _, err := NewComment(context.Background(), db, uuid.New(), alice.ID, "hello")
	if !utils.IsStatus(err, fiber.StatusNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCommentsOrderedOldestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)
	s := mustCreateShoutout(t, db, alice, "Great work!")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := mustCreateComment(t, db, s.ID, alice.ID, "first")
	second := mustCreateComment(t, db, s.ID, alice.ID, "second")
	third := mustCreateComment(t, db, s.ID, alice.ID, "third")
	setCreatedAt(t, db, &Comment{}, first.ID, base)
	setCreatedAt(t, db, &Comment{}, second.ID, base.Add(time.Minute))
	setCreatedAt(t, db, &Comment{}, third.ID, base.Add(2*time.Minute))

	comments, err := CommentsForShoutout(ctx, db, s.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(comments) != len(want) {
		t.Fatalf("expected %d comments, got %d", len(want), len(comments))
	}
	for i, msg := range want {
		if comments[i].Content != msg {
			t.Fatalf("position %d: expected %q, got %q", i, msg, comments[i].Content)
		}
		if comments[i].User.ID != alice.ID {
			t.Fatalf("expected author preloaded, got %+v", comments[i].User)
		}
	}
}

func TestFlagCommentReasonValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)
	s := mustCreateShoutout(t, db, alice, "Great work!")
	c := mustCreateComment(t, db, s.ID, alice.ID, "Thanks!")

	tests := []struct {
		name   string
		reason string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"tabs and newlines", "\t\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FlagComment(ctx, db, c.ID, alice.ID, tt.reason)
			if !utils.IsStatus(err, fiber.StatusBadRequest) {
				t.Fatalf("expected bad request, got %v", err)
			}
		})
	}

	// The failed flags must not have touched the comment.
	var got Comment
	if err := db.First(&got, "id = ?", c.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.IsFlagged {
		t.Fatal("comment must not be flagged after rejected reasons")
	}
}

func TestFlagCommentSuccess(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)
	bob := mustCreateUser(t, db, "Bob", "bob@corp.test", RoleEmployee)
	s := mustCreateShoutout(t, db, alice, "Great work!")
	c := mustCreateComment(t, db, s.ID, bob.ID, "Thanks!")

	if err := FlagComment(ctx, db, c.ID, alice.ID, "  spam  "); err != nil {
		t.Fatalf("flag: %v", err)
	}

	flagged, err := FlaggedComments(ctx, db)
	if err != nil {
		t.Fatalf("list flagged: %v", err)
	}
	if len(flagged) != 1 {
		t.Fatalf("expected 1 flagged comment, got %d", len(flagged))
	}

	got := flagged[0]
	if got.FlagReason != "spam" {
		t.Fatalf("expected trimmed reason %q, got %q", "spam", got.FlagReason)
	}
	if got.FlaggedBy == nil || *got.FlaggedBy != alice.ID {
		t.Fatalf("expected flagger alice, got %v", got.FlaggedBy)
	}
	if got.FlaggedAt == nil {
		t.Fatal("expected flagged_at set")
	}
	if got.User.ID != bob.ID {
		t.Fatalf("expected author preloaded, got %+v", got.User)
	}
	if got.Flagger == nil || got.Flagger.ID != alice.ID {
		t.Fatalf("expected flagger preloaded, got %+v", got.Flagger)
	}
}

func TestFlagCommentOwnCommentAllowed(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)
	s := mustCreateShoutout(t, db, alice, "Great work!")
	c := mustCreateComment(t, db, s.ID, alice.ID, "my own comment")

	if err := FlagComment(ctx, db, c.ID, alice.ID, "regret"); err != nil {
		t.Fatalf("self-flag: %v", err)
	}
}

func TestReflagOverwritesPriorFlag(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)
	bob := mustCreateUser(t, db, "Bob", "bob@corp.test", RoleEmployee)
	s := mustCreateShoutout(t, db, alice, "Great work!")
	c := mustCreateComment(t, db, s.ID, alice.ID, "Thanks!")

	if err := FlagComment(ctx, db, c.ID, alice.ID, "spam"); err != nil {
		t.Fatalf("first flag: %v", err)
	}
	if err := FlagComment(ctx, db, c.ID, bob.ID, "harassment"); err != nil {
		t.Fatalf("second flag: %v", err)
	}

	var got Comment
	if err := db.First(&got, "id = ?", c.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.FlagReason != "harassment" {
		t.Fatalf("expected overwritten reason, got %q", got.FlagReason)
	}
	if got.FlaggedBy == nil || *got.FlaggedBy != bob.ID {
		t.Fatalf("expected flagger bob, got %v", got.FlaggedBy)
	}
}

func TestFlagCommentNotFound(t *testing.T) {
	db := newTestDB(t)
	alice := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)

	err := FlagComment(context.Background(), db, uuid.New(), alice.ID, "spam")
	if !utils.IsStatus(err, fiber.StatusNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteCommentResetsCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)
	s := mustCreateShoutout(t, db, alice, "Great work!")
	c := mustCreateComment(t, db, s.ID, alice.ID, "Thanks!")

	if err := DeleteComment(ctx, db, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	comments, err := CommentsForShoutout(ctx, db, s.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("expected no comments, got %d", len(comments))
	}

	count, err := CountComments(ctx, db, s.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected count 0, got %d", count)
	}

	if err := DeleteComment(ctx, db, c.ID); !utils.IsStatus(err, fiber.StatusNotFound) {
		t.Fatalf("expected not found on double delete, got %v", err)
	}
}

func TestCommentCountsByShoutoutDefaultsToZero(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)
	commented := mustCreateShoutout(t, db, alice, "busy")
	quiet := mustCreateShoutout(t, db, alice, "quiet")
	mustCreateComment(t, db, commented.ID, alice.ID, "hello")

	counts, err := CommentCountsByShoutout(ctx, db, []uuid.UUID{commented.ID, quiet.ID})
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[commented.ID] != 1 {
		t.Fatalf("expected 1, got %d", counts[commented.ID])
	}
	// The quiet shoutout is absent from the aggregation; the map's zero value
	// is the documented default.
	if counts[quiet.ID] != 0 {
		t.Fatalf("expected 0, got %d", counts[quiet.ID])
	}

	empty, err := CommentCountsByShoutout(ctx, db, nil)
	if err != nil {
		t.Fatalf("empty counts: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty map, got %v", empty)
	}
}
