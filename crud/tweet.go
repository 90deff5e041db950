package crud

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"chirp/domain"
	"chirp/errs"
)

// TweetService manages Tweets and their attachment links.
// It implements the domain.TweetService interface.
type TweetService struct {
	tweetValidator
}

// tweetValidator runs validations on incoming Tweet data.
// On success, it passes the data on to tweetGorm.
// Otherwise, it returns the error of the validation that has failed.
type tweetValidator struct {
	tweetGorm
}

// tweetGorm runs CRUD operations on the database using incoming Tweet data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type tweetGorm struct {
	db *gorm.DB
}

// NewTweetService returns an instance of TweetService.
func NewTweetService(db *gorm.DB) *TweetService {
	return &TweetService{
		tweetValidator{
			tweetGorm{
				db: db,
			},
		},
	}
}

// Ensure the TweetService struct properly implements the domain.TweetService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.TweetService = &TweetService{}

// Create runs validations needed for creating new Tweet database records,
// then stores the tweet together with its attachment links.
func (tv *tweetValidator) Create(tweet *domain.Tweet, mediaIDs []int) error {
	err := runTweetValFns(tweet,
		tv.userIdValid,
		tv.contentMinLength,
		tv.contentMaxLength)
	if err != nil {
		return err
	}
	return tv.tweetGorm.Create(tweet, mediaIDs)
}

// Delete checks that the tweet exists and belongs to the requester, then
// removes it along with its like edges and attachment links.
func (tv *tweetValidator) Delete(tweetID, requesterID int) error {
	var tweet domain.Tweet
	err := tv.db.First(&tweet, "id = ?", tweetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Errorf(errs.ENOTFOUND, "Tweet not found.")
		}
		return err
	}
	if tweet.UserID != requesterID {
		return errs.Errorf(errs.EFORBIDDEN, "You do not have permission to delete this tweet.")
	}
	return tv.tweetGorm.Delete(&tweet)
}

// runTweetValFns runs any number of functions of type tweetValFn on the passed in Tweet object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runTweetValFns(tweet *domain.Tweet, fns ...tweetValFn) error {
	for _, fn := range fns {
		if err := fn(tweet); err != nil {
			return err
		}
	}
	return nil
}

// A tweetValFn is any function that takes in a pointer to a domain.Tweet object and returns an error.
type tweetValFn = func(tweet *domain.Tweet) error

// contentMinLength makes sure that the Tweet's content is not empty.
func (tv *tweetValidator) contentMinLength(tweet *domain.Tweet) error {
	if strings.TrimSpace(tweet.Content) == "" {
		return errs.Errorf(errs.EINVALID, "Tweet content must not be empty.")
	}
	return nil
}

// contentMaxLength makes sure that the Tweet's content does not exceed the maximum content length.
func (tv *tweetValidator) contentMaxLength(tweet *domain.Tweet) error {
	if utf8.RuneCountInString(tweet.Content) > domain.MaxContentLength {
		return errs.Errorf(errs.EINVALID, "Tweet content max length is 280 characters.")
	}
	return nil
}

// userIdValid ensures that the userId is not empty.
func (tv *tweetValidator) userIdValid(tweet *domain.Tweet) error {
	if tweet.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "A user id is required.")
	}
	return nil
}

// ByID retrieves a single Tweet by ID, along with its author.
func (tg *tweetGorm) ByID(id int) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := tg.db.
		Preload("User").
		First(&tweet, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "Tweet not found.")
		}
		return nil, err
	}
	return &tweet, nil
}

// Create stores the Tweet and one attachment link per media id in a single
// transaction. All requested media ids must resolve to existing Media rows,
// a partial match aborts the whole creation.
func (tg *tweetGorm) Create(tweet *domain.Tweet, mediaIDs []int) error {
	return tg.db.Transaction(func(tx *gorm.DB) error {
		if len(mediaIDs) > 0 {
			var count int64
			err := tx.Model(&domain.Media{}).Where("id IN ?", mediaIDs).Count(&count).Error
			if err != nil {
				return err
			}
			if count != int64(len(mediaIDs)) {
				return errs.Errorf(errs.EINVALID, "One or more media ids are invalid.")
			}
		}
		if err := tx.Create(tweet).Error; err != nil {
			return err
		}
		for i, mediaID := range mediaIDs {
			attachment := domain.TweetAttachment{
				TweetID:  tweet.ID,
				MediaID:  mediaID,
				Position: i,
			}
			if err := tx.Create(&attachment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a Tweet record from the database, along with its like edges
// and attachment links. The Media rows the links point at stay untouched,
// media lifetime is independent of any referencing tweet.
func (tg *tweetGorm) Delete(tweet *domain.Tweet) error {
	return tg.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", tweet.ID).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", tweet.ID).Delete(&domain.TweetAttachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(tweet).Error
	})
}
