package domain

import "time"

// MaxContentLength is the maximum number of characters (runes) a tweet may have.
const MaxContentLength = 280

// Tweet is a short text message owned by its author. Attachments and Likes are
// explicit edge rows, not ORM-synced collections: the services insert and
// delete them one by one. Tweets are hard-deleted, deletion removes the edge
// rows but never the Media rows they point at.
type Tweet struct {
	ID      int    `json:"id"`
	UserID  int    `json:"user_id" gorm:"not null;index"`
	User    User   `json:"user"`
	Content string `json:"content"`

	Attachments []TweetAttachment `json:"attachments" gorm:"foreignKey:TweetID"`
	Likes       []Like            `json:"likes" gorm:"foreignKey:TweetID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TweetAttachment links a Tweet to a Media. Position preserves the order in
// which the media ids were submitted on creation. A media may be attached to
// any number of tweets, but only once per tweet.
type TweetAttachment struct {
	ID       int   `json:"id"`
	TweetID  int   `json:"tweet_id" gorm:"not null;uniqueIndex:idx_tweet_media"`
	MediaID  int   `json:"media_id" gorm:"not null;uniqueIndex:idx_tweet_media"`
	Media    Media `json:"media"`
	Position int   `json:"position" gorm:"not null"`
}

// TweetService is a set of methods to manipulate and work with the Tweet model.
type TweetService interface {
	// Create stores the tweet and links it to every media id, all or nothing.
	Create(tweet *Tweet, mediaIDs []int) error
	// Delete removes the tweet with its like and attachment edges, if the
	// requester is its author.
	Delete(tweetID, requesterID int) error
	ByID(id int) (*Tweet, error)
}
