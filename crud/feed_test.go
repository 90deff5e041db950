package crud

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"chirp/domain"
)

// insertTweetAt stores a tweet with a fixed creation timestamp, bypassing the
// service so the ordering cases can pin exact times.
func insertTweetAt(t *testing.T, db *gorm.DB, userID int, content string, createdAt time.Time) *domain.Tweet {
	t.Helper()
	tweet := &domain.Tweet{
		UserID:    userID,
		Content:   content,
		CreatedAt: createdAt,
	}
	if err := db.Create(tweet).Error; err != nil {
		t.Fatalf("insert tweet: %v", err)
	}
	return tweet
}

func TestFeedService_Ordering(t *testing.T) {
	db := testDB(t)
	feed := NewFeedService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	t1 := insertTweetAt(t, db, alice.ID, "T1", base.Add(10*time.Second))
	t2 := insertTweetAt(t, db, alice.ID, "T2", base.Add(20*time.Second))
	// Same timestamp as T2 but a higher id: ties break by descending id.
	t3 := insertTweetAt(t, db, alice.ID, "T3", base.Add(20*time.Second))

	got, err := feed.Feed()
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	want := []int{t3.ID, t2.ID, t1.ID}
	if len(got) != len(want) {
		t.Fatalf("expected %d tweets, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected tweet %d, got %d", i, id, got[i].ID)
		}
	}
}

func TestFeedService_Projection(t *testing.T) {
	db := testDB(t)
	feed := NewFeedService(db)
	ts := NewTweetService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")

	tweet := &domain.Tweet{UserID: alice.ID, Content: "Hello Skillbox!"}
	if err := ts.Create(tweet, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := feed.Feed()
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one tweet, got %d", len(got))
	}
	entry := got[0]
	if entry.Content != "Hello Skillbox!" {
		t.Errorf("unexpected content %q", entry.Content)
	}
	if entry.Author.ID != alice.ID || entry.Author.Name != "Alice" {
		t.Errorf("unexpected author %+v", entry.Author)
	}
	if entry.Attachments == nil || len(entry.Attachments) != 0 {
		t.Errorf("expected empty attachments, got %+v", entry.Attachments)
	}
	if entry.Likes == nil || len(entry.Likes) != 0 {
		t.Errorf("expected empty likes, got %+v", entry.Likes)
	}
}

func TestFeedService_LikesAndAttachments(t *testing.T) {
	db := testDB(t)
	feed := NewFeedService(db)
	ts := NewTweetService(db)
	ls := NewLikeService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	first := createTestMedia(t, db, "blob-1")
	second := createTestMedia(t, db, "blob-2")

	tweet := &domain.Tweet{UserID: alice.ID, Content: "with everything"}
	if err := ts.Create(tweet, []int{second.ID, first.ID}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := ls.Like(bob.ID, tweet.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	got, err := feed.Feed()
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one tweet, got %d", len(got))
	}
	entry := got[0]

	if len(entry.Likes) != 1 || entry.Likes[0].UserID != bob.ID || entry.Likes[0].Name != "Bob" {
		t.Errorf("unexpected likes %+v", entry.Likes)
	}

	// Attachments keep submission order, URLs point at the serving route.
	if len(entry.Attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(entry.Attachments))
	}
	if entry.Attachments[0].ID != second.ID || entry.Attachments[1].ID != first.ID {
		t.Errorf("unexpected attachment order %+v", entry.Attachments)
	}
	if want := fmt.Sprintf("/medias/%d", second.ID); entry.Attachments[0].URL != want {
		t.Errorf("expected url %q, got %q", want, entry.Attachments[0].URL)
	}

	// The feed reflects current state: unlike and re-read.
	if err := ls.Unlike(bob.ID, tweet.ID); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	got, err = feed.Feed()
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(got[0].Likes) != 0 {
		t.Errorf("expected no likes after unlike, got %+v", got[0].Likes)
	}
}
