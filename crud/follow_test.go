package crud

import (
	"testing"

	"chirp/domain"
	"chirp/errs"
)

func TestFollowService_Follow_Idempotent(t *testing.T) {
	db := testDB(t)
	fs := NewFollowService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	if err := fs.Follow(alice.ID, bob.ID); err != nil {
		t.Fatalf("first follow: %v", err)
	}
	if err := fs.Follow(alice.ID, bob.ID); err != nil {
		t.Fatalf("second follow should be a no-op success, got %v", err)
	}
	if n := count(t, db, &domain.Follow{}, "follower_id = ? AND followed_id = ?", alice.ID, bob.ID); n != 1 {
		t.Errorf("expected exactly one follow edge, got %d", n)
	}
}

func TestFollowService_Follow_Self(t *testing.T) {
	db := testDB(t)
	fs := NewFollowService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")

	err := fs.Follow(alice.ID, alice.ID)
	if errs.ErrorCode(err) != errs.EINVALID {
		t.Fatalf("expected invalid for self-follow, got %v", err)
	}
	if n := count(t, db, &domain.Follow{}, ""); n != 0 {
		t.Errorf("expected no follow edges, got %d", n)
	}
}

func TestFollowService_Follow_TargetNotFound(t *testing.T) {
	db := testDB(t)
	fs := NewFollowService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")

	err := fs.Follow(alice.ID, 99999)
	if errs.ErrorCode(err) != errs.ENOTFOUND {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFollowService_Unfollow(t *testing.T) {
	db := testDB(t)
	fs := NewFollowService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	if err := fs.Follow(alice.ID, bob.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := fs.Unfollow(alice.ID, bob.ID); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	if n := count(t, db, &domain.Follow{}, ""); n != 0 {
		t.Errorf("expected no follow edges, got %d", n)
	}

	// Unfollowing a user never followed is a no-op success.
	if err := fs.Unfollow(alice.ID, bob.ID); err != nil {
		t.Fatalf("repeated unfollow should be a no-op success, got %v", err)
	}
}
