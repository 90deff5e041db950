package crud

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chirp/domain"
)

// testDB opens a fresh in-memory sqlite database for a single test and runs
// the migrations. The database name is derived from the test name so parallel
// tests never share state.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Tweet{},
		&domain.Media{},
		&domain.TweetAttachment{},
		&domain.Follow{},
		&domain.Like{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

const testPepper = "test-pepper"

// createTestUser registers a user straight through the UserService, so it
// carries a real password hash and API key.
func createTestUser(t *testing.T, db *gorm.DB, name, email string) *domain.User {
	t.Helper()
	us := NewUserService(db, testPepper)
	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: "testpassword",
	}
	if err := us.Create(user); err != nil {
		t.Fatalf("create test user %q: %v", email, err)
	}
	return user
}

// createTestTweet stores a tweet for the given author.
func createTestTweet(t *testing.T, db *gorm.DB, userID int, content string) *domain.Tweet {
	t.Helper()
	ts := NewTweetService(db)
	tweet := &domain.Tweet{
		UserID:  userID,
		Content: content,
	}
	if err := ts.Create(tweet, nil); err != nil {
		t.Fatalf("create test tweet: %v", err)
	}
	return tweet
}

// createTestMedia inserts a media record directly, bytes don't matter here.
func createTestMedia(t *testing.T, db *gorm.DB, locator string) *domain.Media {
	t.Helper()
	media := &domain.Media{
		FilePath: locator,
		FileType: "image/png",
	}
	if err := db.Create(media).Error; err != nil {
		t.Fatalf("create test media: %v", err)
	}
	return media
}

// count returns the number of rows of the given model matching the query.
func count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
