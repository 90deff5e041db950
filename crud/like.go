package crud

import (
	"errors"

	"gorm.io/gorm"

	"chirp/domain"
	"chirp/errs"
)

// LikeService manages Likes.
// It implements the domain.LikeService interface.
type LikeService struct {
	likeValidator
}

// likeValidator runs validations on incoming Like data.
// On success, it passes the data on to likeGorm.
// Otherwise, it returns the error of the validation that has failed.
type likeValidator struct {
	likeGorm
}

// likeGorm runs CRUD operations on the database using incoming Like data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type likeGorm struct {
	db *gorm.DB
}

// NewLikeService returns an instance of LikeService.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		likeValidator{
			likeGorm{
				db: db,
			},
		},
	}
}

// Ensure the LikeService struct properly implements the domain.LikeService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.LikeService = &LikeService{}

// Like inserts a like edge for the given pair. Liking a tweet that is already
// liked is a no-op success, liking one's own tweet is allowed.
func (lv *likeValidator) Like(userID, tweetID int) error {
	if err := lv.tweetExists(tweetID); err != nil {
		return err
	}
	return lv.likeGorm.Create(&domain.Like{UserID: userID, TweetID: tweetID})
}

// Unlike removes the like edge for the given pair. Unliking a tweet that was
// never liked is a no-op success.
func (lv *likeValidator) Unlike(userID, tweetID int) error {
	if err := lv.tweetExists(tweetID); err != nil {
		return err
	}
	return lv.likeGorm.Delete(&domain.Like{UserID: userID, TweetID: tweetID})
}

// tweetExists makes sure that the tweet to be (un)liked actually exists.
func (lv *likeValidator) tweetExists(tweetID int) error {
	err := lv.db.First(&domain.Tweet{}, "id = ?", tweetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Errorf(errs.ENOTFOUND, "Tweet not found.")
		}
		return err
	}
	return nil
}

// Create stores the like edge unless it already exists. A duplicate insert
// racing past the existence check is absorbed by the unique pair index and
// reported as success, repeated likes must converge to a single edge.
func (lg *likeGorm) Create(like *domain.Like) error {
	var existing domain.Like
	err := lg.db.First(&existing, "user_id = ? AND tweet_id = ?", like.UserID, like.TweetID).Error
	if err == nil {
		*like = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := lg.db.Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}

// Delete removes the like edge matching the pair, if any.
func (lg *likeGorm) Delete(like *domain.Like) error {
	return lg.db.
		Where("user_id = ? AND tweet_id = ?", like.UserID, like.TweetID).
		Delete(&domain.Like{}).Error
}
