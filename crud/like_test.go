package crud

import (
	"testing"

	"chirp/domain"
	"chirp/errs"
)

func TestLikeService_Like_Idempotent(t *testing.T) {
	db := testDB(t)
	ls := NewLikeService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	tweet := createTestTweet(t, db, alice.ID, "like me")

	if err := ls.Like(bob.ID, tweet.ID); err != nil {
		t.Fatalf("first like: %v", err)
	}
	if err := ls.Like(bob.ID, tweet.ID); err != nil {
		t.Fatalf("second like should be a no-op success, got %v", err)
	}
	if n := count(t, db, &domain.Like{}, "user_id = ? AND tweet_id = ?", bob.ID, tweet.ID); n != 1 {
		t.Errorf("expected exactly one like edge, got %d", n)
	}
}

func TestLikeService_Like_OwnTweet(t *testing.T) {
	db := testDB(t)
	ls := NewLikeService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	tweet := createTestTweet(t, db, alice.ID, "self-appreciation")

	if err := ls.Like(alice.ID, tweet.ID); err != nil {
		t.Fatalf("liking one's own tweet is allowed, got %v", err)
	}
}

func TestLikeService_Like_TweetNotFound(t *testing.T) {
	db := testDB(t)
	ls := NewLikeService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")

	err := ls.Like(alice.ID, 99999)
	if errs.ErrorCode(err) != errs.ENOTFOUND {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLikeService_Unlike(t *testing.T) {
	db := testDB(t)
	ls := NewLikeService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	tweet := createTestTweet(t, db, alice.ID, "like me")

	if err := ls.Like(bob.ID, tweet.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := ls.Unlike(bob.ID, tweet.ID); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if n := count(t, db, &domain.Like{}, "tweet_id = ?", tweet.ID); n != 0 {
		t.Errorf("expected no like edges, got %d", n)
	}

	// Unliking a never-liked pair is a no-op success.
	if err := ls.Unlike(bob.ID, tweet.ID); err != nil {
		t.Fatalf("repeated unlike should be a no-op success, got %v", err)
	}
}
