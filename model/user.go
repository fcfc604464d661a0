// Package model contains the gorm models persisted by the application
package model

import (
	"strconv"
	"time"
)

// User is a registered account. The password is only ever stored as a
// salted one-way hash, never in plaintext.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:120;not null" json:"-"`
	PasswordHash string    `gorm:"not null" json:"-"`
	AboutMe      string    `gorm:"size:140" json:"aboutMe"`
	LastSeen     time.Time `json:"lastSeen"`

	Posts []Post `gorm:"foreignKey:UserID" json:"-"`
}

// IsAuthenticated reports whether this is a persisted account rather than
// the anonymous zero value.
func (u *User) IsAuthenticated() bool {
	return u != nil && u.ID != 0
}

// SessionKey is the subject identifier embedded in session and reset tokens.
func (u *User) SessionKey() string {
	return strconv.FormatUint(uint64(u.ID), 10)
}
