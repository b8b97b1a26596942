package models

import (
	"context"
	"testing"
	"time"

	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// TestModerationLifecycle walks a comment from creation through flagging to
// admin deletion, checking the flagged queue and comment counts at each step.
func TestModerationLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)
	bob := mustCreateUser(t, db, "Bob", "bob@corp.test", RoleEmployee)
	carol := mustCreateUser(t, db, "Carol", "carol@corp.test", RoleAdmin)

	s := mustCreateShoutout(t, db, alice, "Great work!", bob.ID)

	c, count, err := NewComment(ctx, db, s.ID, bob.ID, "Thanks!")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	// A blank reason must not flag anything.
	if err := FlagComment(ctx, db, c.ID, alice.ID, "   "); !utils.IsStatus(err, fiber.StatusBadRequest) {
		t.Fatalf("expected bad request for blank reason, got %v", err)
	}
	flagged, err := FlaggedComments(ctx, db)
	if err != nil {
		t.Fatalf("list flagged: %v", err)
	}
	if len(flagged) != 0 {
		t.Fatalf("expected empty flagged queue, got %d", len(flagged))
	}

	if err := FlagComment(ctx, db, c.ID, alice.ID, "inappropriate"); err != nil {
		t.Fatalf("flag: %v", err)
	}

	flagged, err = FlaggedComments(ctx, db)
	if err != nil {
		t.Fatalf("list flagged: %v", err)
	}
	if len(flagged) != 1 {
		t.Fatalf("expected 1 flagged comment, got %d", len(flagged))
	}
	if flagged[0].Content != "Thanks!" || flagged[0].FlagReason != "inappropriate" {
		t.Fatalf("unexpected flagged comment %+v", flagged[0])
	}

	// The admin removes the comment and the action is audited.
	if err := DeleteComment(ctx, db, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := RecordAdminAction(ctx, db, carol.ID, "delete_comment", c.ID, TargetComment); err != nil {
		t.Fatalf("audit: %v", err)
	}

	flagged, err = FlaggedComments(ctx, db)
	if err != nil {
		t.Fatalf("list flagged: %v", err)
	}
	if len(flagged) != 0 {
		t.Fatalf("expected flagged queue drained, got %d", len(flagged))
	}

	remaining, err := CountComments(ctx, db, s.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected count 0 after deletion, got %d", remaining)
	}

	logs, err := AdminActions(ctx, db)
	if err != nil {
		t.Fatalf("audit list: %v", err)
	}
	if len(logs) != 1 || logs[0].AdminID != carol.ID || logs[0].TargetType != TargetComment {
		t.Fatalf("unexpected audit trail %+v", logs)
	}
}

func TestAllCommentsNewestFirstAcrossShoutouts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)
	first := mustCreateShoutout(t, db, alice, "one")
	second := mustCreateShoutout(t, db, alice, "two")

	older := mustCreateComment(t, db, first.ID, alice.ID, "older")
	newer := mustCreateComment(t, db, second.ID, alice.ID, "newer")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	setCreatedAt(t, db, &Comment{}, older.ID, base)
	setCreatedAt(t, db, &Comment{}, newer.ID, base.Add(time.Hour))

	all, err := AllComments(ctx, db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(all))
	}
	if all[0].Content != "newer" || all[1].Content != "older" {
		t.Fatalf("expected newest first, got %q then %q", all[0].Content, all[1].Content)
	}
	if all[0].User.ID != alice.ID {
		t.Fatalf("expected author preloaded, got %+v", all[0].User)
	}
}
