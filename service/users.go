// Package service contains the user, follow, post and feed operations the
// handlers are built on, plus the outbound mail queue
package service

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"microblog/api/model"
	"microblog/api/security"

	"gorm.io/gorm"
)

// Users manages account records: registration, lookups, profile edits and
// credential changes.
type Users struct {
	db     *gorm.DB
	hasher *security.PasswordHasher
}

func NewUsers(db *gorm.DB, hasher *security.PasswordHasher) *Users {
	return &Users{db: db, hasher: hasher}
}

// Create registers a new account. Username and email uniqueness is checked
// inside the same transaction as the insert, so two concurrent registrations
// can't both win.
func (s *Users) Create(username, email, password string) (*model.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		LastSeen:     time.Now().UTC(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var n int64

		if err := tx.Model(&model.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
			return storageErr(err)
		}
		if n > 0 {
			return ErrDuplicateUsername
		}

		if err := tx.Model(&model.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
			return storageErr(err)
		}
		if n > 0 {
			return ErrDuplicateEmail
		}

		if err := tx.Create(user).Error; err != nil {
			return storageErr(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Users) FindByUsername(username string) (*model.User, error) {
	return s.findOne("username = ?", username)
}

func (s *Users) FindByEmail(email string) (*model.User, error) {
	return s.findOne("email = ?", email)
}

func (s *Users) FindByID(id uint) (*model.User, error) {
	return s.findOne("id = ?", id)
}

func (s *Users) findOne(query string, arg any) (*model.User, error) {
	var user model.User

	if err := s.db.Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentityNotFound
		}

		return nil, storageErr(err)
	}

	return &user, nil
}

// UpdateProfile changes the username and about-me text. A username that
// collides with another account fails with ErrUsernameUnavailable; the check
// and the update share one transaction. Concurrent edits to the same account
// are last-writer-wins.
func (s *Users) UpdateProfile(u *model.User, username, aboutMe string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if username != u.Username {
			var n int64

			if err := tx.Model(&model.User{}).
				Where("username = ? AND id <> ?", username, u.ID).
				Count(&n).Error; err != nil {
				return storageErr(err)
			}
			if n > 0 {
				return ErrUsernameUnavailable
			}
		}

		if err := tx.Model(u).Updates(map[string]any{
			"username": username,
			"about_me": aboutMe,
		}).Error; err != nil {
			return storageErr(err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	u.Username = username
	u.AboutMe = aboutMe
	return nil
}

// SetPassword overwrites the stored hash with one derived from password.
func (s *Users) SetPassword(u *model.User, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	if err := s.db.Model(u).Update("password_hash", hash).Error; err != nil {
		return storageErr(err)
	}

	u.PasswordHash = hash
	return nil
}

// CheckPassword reports whether password matches the stored hash. A mismatch
// or a malformed stored hash is just false, never an error.
func (s *Users) CheckPassword(u *model.User, password string) bool {
	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return false
	}

	return ok
}

// TouchLastSeen stamps the account with the current time. Called once per
// authenticated request.
func (s *Users) TouchLastSeen(u *model.User) error {
	now := time.Now().UTC()

	if err := s.db.Model(u).Update("last_seen", now).Error; err != nil {
		return storageErr(err)
	}

	u.LastSeen = now
	return nil
}

// Avatar returns the deterministic gravatar URL for an email address. Pure
// function of the lower-cased, trimmed email and the size; serving the image
// is the frontend's problem.
func Avatar(email string, size int) string {
	digest := md5.Sum([]byte(strings.TrimSpace(strings.ToLower(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=monsterid&s=%d", hex.EncodeToString(digest[:]), size)
}
