package service

import (
	"time"
	"unicode/utf8"

	"microblog/api/model"

	"gorm.io/gorm"
)

// MaxPostLen is the longest allowed post body, in characters.
const MaxPostLen = 140

// Posts stores the text items users publish.
type Posts struct {
	db *gorm.DB
}

func NewPosts(db *gorm.DB) *Posts {
	return &Posts{db: db}
}

// Create persists a new post owned by author, stamped with the current
// time. An empty or over-long body fails with ErrInvalidBody.
func (s *Posts) Create(author *model.User, body string) (*model.Post, error) {
	if n := utf8.RuneCountInString(body); n == 0 || n > MaxPostLen {
		return nil, ErrInvalidBody
	}

	post := &model.Post{
		Body:      body,
		UserID:    author.ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.db.Create(post).Error; err != nil {
		return nil, storageErr(err)
	}

	return post, nil
}

// ByAuthor returns author's posts, newest first. Posts sharing a timestamp
// come back in descending id order so the ordering is total.
func (s *Posts) ByAuthor(author *model.User) ([]model.Post, error) {
	var posts []model.Post

	if err := s.db.
		Where("user_id = ?", author.ID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		return nil, storageErr(err)
	}

	return posts, nil
}
