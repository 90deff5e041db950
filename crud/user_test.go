package crud

import (
	"testing"

	"chirp/domain"
	"chirp/errs"
)

func TestUserService_Create(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, testPepper)

	user := &domain.User{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "testpassword",
	}
	if err := us.Create(user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected id to be set")
	}
	if user.ApiKey == "" {
		t.Error("expected an api key to be provisioned")
	}
	if user.Password != "" {
		t.Error("expected plaintext password to be cleared")
	}
	if user.PasswordHash == "" || user.PasswordHash == "testpassword" {
		t.Errorf("expected a password hash, got %q", user.PasswordHash)
	}

	second := createTestUser(t, db, "Bob", "bob@example.com")
	if second.ApiKey == user.ApiKey {
		t.Error("expected api keys to be unique per user")
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, testPepper)

	createTestUser(t, db, "Alice", "alice@example.com")

	dup := &domain.User{
		Name:     "Impostor",
		Email:    "alice@example.com",
		Password: "otherpassword",
	}
	err := us.Create(dup)
	if errs.ErrorCode(err) != errs.ECONFLICT {
		t.Fatalf("expected conflict, got %v", err)
	}
	if n := count(t, db, &domain.User{}, "email = ?", "alice@example.com"); n != 1 {
		t.Errorf("expected exactly one user with that email, got %d", n)
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, testPepper)

	tests := []struct {
		name string
		user domain.User
	}{
		{"missing password", domain.User{Name: "A", Email: "a@example.com"}},
		{"short password", domain.User{Name: "A", Email: "a@example.com", Password: "short"}},
		{"missing email", domain.User{Name: "A", Password: "testpassword"}},
		{"bad email", domain.User{Name: "A", Email: "not-an-email", Password: "testpassword"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user
			err := us.Create(&user)
			if errs.ErrorCode(err) != errs.EINVALID {
				t.Fatalf("expected invalid, got %v", err)
			}
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, testPepper)
	registered := createTestUser(t, db, "Alice", "alice@example.com")

	found, err := us.Authenticate("alice@example.com", "testpassword")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if found.ID != registered.ID {
		t.Errorf("expected user %d, got %d", registered.ID, found.ID)
	}

	_, err = us.Authenticate("alice@example.com", "wrongpassword")
	if errs.ErrorCode(err) != errs.EUNAUTHORIZED {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}

	_, err = us.Authenticate("nobody@example.com", "testpassword")
	if errs.ErrorCode(err) != errs.EUNAUTHORIZED {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestUserService_ByApiKey(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, testPepper)
	registered := createTestUser(t, db, "Alice", "alice@example.com")

	found, err := us.ByApiKey(registered.ApiKey)
	if err != nil {
		t.Fatalf("by api key: %v", err)
	}
	if found.ID != registered.ID {
		t.Errorf("expected user %d, got %d", registered.ID, found.ID)
	}

	_, err = us.ByApiKey("no-such-key")
	if errs.ErrorCode(err) != errs.EUNAUTHORIZED {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestUserService_ByID_ResolvesFollowEdges(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, testPepper)
	fs := NewFollowService(db)

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	if err := fs.Follow(alice.ID, bob.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	loaded, err := us.ByID(bob.ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if len(loaded.Followers) != 1 || loaded.Followers[0].Follower.Name != "Alice" {
		t.Errorf("expected Alice as follower, got %+v", loaded.Followers)
	}

	_, err = us.ByID(99999)
	if errs.ErrorCode(err) != errs.ENOTFOUND {
		t.Fatalf("expected not found, got %v", err)
	}
}
