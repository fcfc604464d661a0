package service

import (
	"microblog/api/model"

	"gorm.io/gorm"
)

// Follows manages the directed follow edges between users. The graph itself
// doesn't care about self-follows; rejecting those is the HTTP layer's
// policy.
type Follows struct {
	db *gorm.DB
}

func NewFollows(db *gorm.DB) *Follows {
	return &Follows{db: db}
}

// Follow inserts the edge follower -> followed. Calling it again for the
// same pair is a no-op: the existence check runs in the same transaction as
// the insert, and the unique index on the pair backs it up.
func (s *Follows) Follow(follower, followed *model.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var n int64

		if err := tx.Model(&model.Follow{}).
			Where("follower_id = ? AND followed_id = ?", follower.ID, followed.ID).
			Count(&n).Error; err != nil {
			return storageErr(err)
		}
		if n > 0 {
			return nil
		}

		if err := tx.Create(&model.Follow{
			FollowerID: follower.ID,
			FollowedID: followed.ID,
		}).Error; err != nil {
			return storageErr(err)
		}

		return nil
	})
}

// Unfollow removes the edge follower -> followed. Removing an edge that was
// never there is a no-op.
func (s *Follows) Unfollow(follower, followed *model.User) error {
	if err := s.db.
		Where("follower_id = ? AND followed_id = ?", follower.ID, followed.ID).
		Delete(&model.Follow{}).Error; err != nil {
		return storageErr(err)
	}

	return nil
}

func (s *Follows) IsFollowing(follower, followed *model.User) (bool, error) {
	var n int64

	if err := s.db.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", follower.ID, followed.ID).
		Count(&n).Error; err != nil {
		return false, storageErr(err)
	}

	return n > 0, nil
}

// Followers returns the users following u, in no particular order.
func (s *Follows) Followers(u *model.User) ([]model.User, error) {
	var users []model.User

	if err := s.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", u.ID).
		Find(&users).Error; err != nil {
		return nil, storageErr(err)
	}

	return users, nil
}

// Following returns the users u follows, in no particular order.
func (s *Follows) Following(u *model.User) ([]model.User, error) {
	var users []model.User

	if err := s.db.
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", u.ID).
		Find(&users).Error; err != nil {
		return nil, storageErr(err)
	}

	return users, nil
}

// Counts returns how many users follow u and how many u follows.
func (s *Follows) Counts(u *model.User) (followers, following int64, err error) {
	if err := s.db.Model(&model.Follow{}).
		Where("followed_id = ?", u.ID).
		Count(&followers).Error; err != nil {
		return 0, 0, storageErr(err)
	}

	if err := s.db.Model(&model.Follow{}).
		Where("follower_id = ?", u.ID).
		Count(&following).Error; err != nil {
		return 0, 0, storageErr(err)
	}

	return followers, following, nil
}
