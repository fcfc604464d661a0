package model

import "time"

// Follow is a directed edge meaning FollowerID follows FollowedID. The
// composite unique index keeps concurrent follow calls for the same pair
// from producing two edges.
type Follow struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID uint      `gorm:"index;uniqueIndex:idx_follower_followed;not null" json:"followerId"`
	FollowedID uint      `gorm:"uniqueIndex:idx_follower_followed;not null" json:"followedId"`
	CreatedAt  time.Time `json:"createdAt"`

	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Followed User `gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Follow) TableName() string { return "follows" }
