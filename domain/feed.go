package domain

// FeedTweet is the materialized feed entry: the tweet with its author,
// attachments and likers denormalized into plain values. It is built by an
// explicit projection over loaded associations, nothing in here lazy-loads.
type FeedTweet struct {
	ID          int        `json:"id"`
	Content     string     `json:"content"`
	Author      UserRef    `json:"author"`
	Attachments []MediaRef `json:"attachments"`
	Likes       []LikeRef  `json:"likes"`
}

// MediaRef points a feed entry at an attached media. URL is the route the
// bytes are served from, not the storage locator.
type MediaRef struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// LikeRef identifies a user that liked a tweet.
type LikeRef struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
}

// FeedService produces the global reverse-chronological feed.
type FeedService interface {
	// Feed returns all tweets, newest first, ties broken by descending id.
	// Every call re-reads current state.
	Feed() ([]FeedTweet, error)
}
