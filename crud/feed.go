package crud

import (
	"fmt"

	"gorm.io/gorm"

	"chirp/domain"
)

// FeedService assembles the global feed: every tweet, newest first, with
// author, attachments and likers denormalized. It is a read-only projection
// over current state, there is no caching in between.
// It implements the domain.FeedService interface.
type FeedService struct {
	feedGorm
}

// feedGorm loads tweets with exactly the associations the projection needs.
type feedGorm struct {
	db *gorm.DB
}

// NewFeedService returns an instance of FeedService.
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{
		feedGorm{
			db: db,
		},
	}
}

// Ensure the FeedService struct properly implements the domain.FeedService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FeedService = &FeedService{}

// Feed returns all tweets ordered by creation time descending. Ties on the
// timestamp break by descending id, so the output is a total order.
func (fg *feedGorm) Feed() ([]domain.FeedTweet, error) {
	var tweets []domain.Tweet
	err := fg.db.
		Preload("User").
		Preload("Likes.User").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("tweet_attachments.position ASC")
		}).
		Preload("Attachments.Media").
		Order("created_at DESC, id DESC").
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}

	feed := make([]domain.FeedTweet, 0, len(tweets))
	for i := range tweets {
		feed = append(feed, projectTweet(&tweets[i]))
	}
	return feed, nil
}

// projectTweet builds the feed entry for a tweet whose User, Likes.User and
// Attachments.Media associations are already loaded. The attachment URL is
// the serving route, not the storage locator.
func projectTweet(tweet *domain.Tweet) domain.FeedTweet {
	attachments := make([]domain.MediaRef, 0, len(tweet.Attachments))
	for _, att := range tweet.Attachments {
		attachments = append(attachments, domain.MediaRef{
			ID:  att.MediaID,
			URL: fmt.Sprintf("/medias/%d", att.MediaID),
		})
	}
	likes := make([]domain.LikeRef, 0, len(tweet.Likes))
	for _, like := range tweet.Likes {
		likes = append(likes, domain.LikeRef{
			UserID: like.UserID,
			Name:   like.User.Name,
		})
	}
	return domain.FeedTweet{
		ID:      tweet.ID,
		Content: tweet.Content,
		Author: domain.UserRef{
			ID:   tweet.User.ID,
			Name: tweet.User.Name,
		},
		Attachments: attachments,
		Likes:       likes,
	}
}
