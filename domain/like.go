package domain

import "time"

// Like represents an edge between a User and a Tweet. At most one edge per
// pair, enforced by the unique index. A user may like their own tweet.
type Like struct {
	ID      int  `json:"id"`
	UserID  int  `json:"user_id" gorm:"not null;uniqueIndex:idx_user_tweet"`
	User    User `json:"user"`
	TweetID int  `json:"tweet_id" gorm:"not null;uniqueIndex:idx_user_tweet"`

	CreatedAt time.Time `json:"created_at"`
}

// LikeService is a set of methods to manipulate and work with the Like model.
// Like and Unlike are idempotent, repeating either is a no-op success.
type LikeService interface {
	Like(userID, tweetID int) error
	Unlike(userID, tweetID int) error
}
