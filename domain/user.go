package domain

import "time"

// User is a registered account. The Email is unique and matched exactly
// (case-sensitive), the ApiKey is an opaque secret generated at registration
// and never rotated. Password only ever carries the plaintext between the
// transport layer and the validator that bcrypts it; it is not persisted.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email" gorm:"uniqueIndex;not null"`

	Password     string `json:"password,omitempty" gorm:"-"`
	PasswordHash string `json:"-" gorm:"not null"`
	ApiKey       string `json:"api_key,omitempty" gorm:"uniqueIndex;not null"`
	Superuser    bool   `json:"is_superuser"`

	// Followers are edges pointing at this user, Followeds are edges this
	// user created by following others.
	Followers []Follow `json:"-" gorm:"foreignKey:FollowedID"`
	Followeds []Follow `json:"-" gorm:"foreignKey:FollowerID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService is a set of methods to manipulate and work with the User model.
// It doubles as the credential store: Authenticate and ByApiKey are the two
// ways an inbound credential resolves to a User.
type UserService interface {
	Create(user *User) error
	Authenticate(email, password string) (*User, error)
	ByID(id int) (*User, error)
	ByEmail(email string) (*User, error)
	ByApiKey(key string) (*User, error)
}

// UserRef is the denormalized {id, name} pair used wherever another entity
// points at a user (feed authors, follower lists).
type UserRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Profile is the projection returned by the profile endpoints. ApiKey is only
// populated when a user requests their own profile.
type Profile struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	ApiKey    string    `json:"api_key,omitempty"`
	Followers []UserRef `json:"followers"`
	Following []UserRef `json:"following"`
}
