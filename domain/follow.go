package domain

import "time"

// Follow represents a directed edge between two users. The FollowerID is the
// user that follows, the FollowedID the user being followed. The unique pair
// index makes duplicate edges impossible at the storage layer, which is what
// lets two racing follow calls converge without in-process locking.
type Follow struct {
	ID         int  `json:"id"`
	FollowerID int  `json:"-" gorm:"not null;uniqueIndex:idx_follower_followed"`
	Follower   User `json:"follower"`
	FollowedID int  `json:"-" gorm:"not null;uniqueIndex:idx_follower_followed"`
	Followed   User `json:"followed"`

	CreatedAt time.Time `json:"created_at"`
}

// FollowService is a set of methods to manipulate and work with the Follow
// model. Both operations are idempotent: following twice or unfollowing a
// user never followed are no-op successes.
type FollowService interface {
	Follow(followerID, followedID int) error
	Unfollow(followerID, followedID int) error
}
