package model

import "time"

// Post is a single text item. Immutable once created.
type Post struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Body      string    `gorm:"size:140;not null" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UserID    uint      `gorm:"index;not null" json:"userId"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
