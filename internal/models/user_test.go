package models

import (
	"context"
	"testing"

	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

func TestNewUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)

	_, err := NewUser(ctx, db, "Other Alice", "alice@corp.test", "hash", "Sales", RoleEmployee)
	if err == nil {
		t.Fatal("expected duplicate email to fail")
	}
	if !utils.IsStatus(err, fiber.StatusConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSetUserRoleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)

	if _, err := SetUserRole(ctx, db, u.ID, RoleAdmin); err != nil {
		t.Fatalf("set role: %v", err)
	}

	got, err := GetUserBy(ctx, db, "id = ?", u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Role != RoleAdmin {
		t.Fatalf("expected role admin, got %s", got.Role)
	}

	// Demoting an admin is allowed too, even the last one.
	if _, err := SetUserRole(ctx, db, u.ID, RoleEmployee); err != nil {
		t.Fatalf("demote: %v", err)
	}
	got, _ = GetUserBy(ctx, db, "id = ?", u.ID)
	if got.Role != RoleEmployee {
		t.Fatalf("expected role employee, got %s", got.Role)
	}
}

func TestToggleUserActiveTwiceRestoresOriginal(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)
	if !u.IsActive {
		t.Fatal("expected new user to start active")
	}

	toggled, err := ToggleUserActive(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.IsActive {
		t.Fatal("expected user inactive after first toggle")
	}

	toggled, err = ToggleUserActive(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.IsActive {
		t.Fatal("expected user active again after second toggle")
	}
}

func TestBlockUserSetsBlockedFlag(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)

	blocked, err := BlockUser(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("block: %v", err)
	}
	if !blocked.IsBlocked {
		t.Fatal("expected is_blocked set")
	}
	if !blocked.IsActive {
		t.Fatal("blocking must not touch is_active")
	}
}

func TestUserMutationsOnMissingUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	missing := mustCreateUser(t, db, "Ghost", "ghost@corp.test", RoleEmployee).ID

	if err := DeleteUser(ctx, db, missing); err != nil {
		t.Fatalf("delete: %v", err)
	}

	tests := []struct {
		name string
		call func() error
	}{
		{"set role", func() error { _, err := SetUserRole(ctx, db, missing, RoleAdmin); return err }},
		{"toggle active", func() error { _, err := ToggleUserActive(ctx, db, missing); return err }},
		{"block", func() error { _, err := BlockUser(ctx, db, missing); return err }},
		{"delete", func() error { return DeleteUser(ctx, db, missing) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !utils.IsStatus(err, fiber.StatusNotFound) {
				t.Fatalf("expected not found, got %v", err)
			}
		})
	}
}

func TestDeleteUserCascadesToAuthoredContent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "Alice", "alice@corp.test", RoleEmployee)
	bob := mustCreateUser(t, db, "Bob", "bob@corp.test", RoleEmployee)

	// Alice authors one of everything; Bob's shoutout receives her comment,
	// reaction, and report so those rows exist independently of her own posts.
	aliceShoutout := mustCreateShoutout(t, db, alice, "Great work!", bob.ID)
	bobShoutout := mustCreateShoutout(t, db, bob, "Kudos all around", alice.ID)

	mustCreateComment(t, db, bobShoutout.ID, alice.ID, "Well deserved")
	if _, err := NewReaction(ctx, db, bobShoutout.ID, alice.ID, ReactionClap); err != nil {
		t.Fatalf("reaction: %v", err)
	}
	if _, err := NewReport(ctx, db, bobShoutout.ID, alice.ID, "too loud"); err != nil {
		t.Fatalf("report: %v", err)
	}
	if err := RecordAdminAction(ctx, db, alice.ID, "delete_comment", bobShoutout.ID, TargetComment); err != nil {
		t.Fatalf("admin log: %v", err)
	}

	if err := DeleteUser(ctx, db, alice.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	assertCount := func(model interface{}, cond string, args []interface{}, want int64) {
		t.Helper()
		var count int64
		if err := db.Model(model).Where(cond, args...).Count(&count).Error; err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != want {
			t.Fatalf("expected %d rows for %T, got %d", want, model, count)
		}
	}

	assertCount(&Shoutout{}, "sender_id = ?", []interface{}{alice.ID}, 0)
	assertCount(&Comment{}, "user_id = ?", []interface{}{alice.ID}, 0)
	assertCount(&Reaction{}, "user_id = ?", []interface{}{alice.ID}, 0)
	assertCount(&Report{}, "reported_by = ?", []interface{}{alice.ID}, 0)
	assertCount(&AdminLog{}, "admin_id = ?", []interface{}{alice.ID}, 0)

	// Her shoutout's recipient rows cascade with the shoutout itself.
	assertCount(&ShoutoutRecipient{}, "shoutout_id = ?", []interface{}{aliceShoutout.ID}, 0)

	// Bob's content is untouched.
	assertCount(&Shoutout{}, "sender_id = ?", []interface{}{bob.ID}, 1)
}
