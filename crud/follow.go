package crud

import (
	"errors"

	"gorm.io/gorm"

	"chirp/domain"
	"chirp/errs"
)

// FollowService manages Follows.
// It implements the domain.FollowService interface.
type FollowService struct {
	followValidator
}

// followValidator runs validations on incoming Follow data.
// On success, it passes the data on to followGorm.
// Otherwise, it returns the error of the validation that has failed.
type followValidator struct {
	followGorm
}

// followGorm runs CRUD operations on the database using incoming Follow data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followValidator{
			followGorm{
				db: db,
			},
		},
	}
}

// Ensure the FollowService struct properly implements the domain.FollowService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FollowService = &FollowService{}

// Follow inserts a follow edge. Self-follows are rejected, following a user
// already followed is a no-op success.
func (fv *followValidator) Follow(followerID, followedID int) error {
	if followerID == followedID {
		return errs.Errorf(errs.EINVALID, "You cannot follow yourself.")
	}
	if err := fv.followedUserExists(followedID); err != nil {
		return err
	}
	return fv.followGorm.Create(&domain.Follow{FollowerID: followerID, FollowedID: followedID})
}

// Unfollow removes the follow edge. Unfollowing a user never followed is a
// no-op success.
func (fv *followValidator) Unfollow(followerID, followedID int) error {
	if err := fv.followedUserExists(followedID); err != nil {
		return err
	}
	return fv.followGorm.Delete(&domain.Follow{FollowerID: followerID, FollowedID: followedID})
}

// followedUserExists makes sure that the user on the receiving end of the edge exists.
func (fv *followValidator) followedUserExists(followedID int) error {
	err := fv.db.First(&domain.User{}, "id = ?", followedID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Errorf(errs.ENOTFOUND, "User not found.")
		}
		return err
	}
	return nil
}

// Create stores the follow edge unless it already exists. Duplicate inserts
// racing past the existence check hit the unique pair index and are reported
// as success.
func (fg *followGorm) Create(follow *domain.Follow) error {
	var existing domain.Follow
	err := fg.db.First(&existing, "follower_id = ? AND followed_id = ?", follow.FollowerID, follow.FollowedID).Error
	if err == nil {
		*follow = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := fg.db.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}

// Delete removes the follow edge matching the pair, if any.
func (fg *followGorm) Delete(follow *domain.Follow) error {
	return fg.db.
		Where("follower_id = ? AND followed_id = ?", follow.FollowerID, follow.FollowedID).
		Delete(&domain.Follow{}).Error
}
