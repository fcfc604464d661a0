package service

import (
	"microblog/api/model"

	"gorm.io/gorm"
)

// Page is one window of a timeline.
type Page struct {
	Items   []model.Post `json:"items"`
	Page    int          `json:"page"`
	HasNext bool         `json:"hasNext"`
	HasPrev bool         `json:"hasPrev"`
}

// Feed computes paginated timelines. The page size is fixed at construction
// from configuration.
type Feed struct {
	db      *gorm.DB
	perPage int
}

func NewFeed(db *gorm.DB, perPage int) *Feed {
	return &Feed{db: db, perPage: perPage}
}

// ForUser returns one page of posts written by u or by anyone u follows,
// newest first, ties broken by descending id. The candidate set is built by
// a single query, so a post is never counted twice even when u both wrote
// it and follows themselves.
func (f *Feed) ForUser(u *model.User, page int) (*Page, error) {
	q := f.db.Model(&model.Post{}).
		Where("user_id = ? OR user_id IN (?)", u.ID,
			f.db.Model(&model.Follow{}).
				Select("followed_id").
				Where("follower_id = ?", u.ID))

	return f.paginate(q, page)
}

// Explore returns one page of every post on the site, newest first.
func (f *Feed) Explore(page int) (*Page, error) {
	return f.paginate(f.db.Model(&model.Post{}), page)
}

// ByAuthor returns one page of author's posts, newest first.
func (f *Feed) ByAuthor(author *model.User, page int) (*Page, error) {
	return f.paginate(f.db.Model(&model.Post{}).Where("user_id = ?", author.ID), page)
}

// paginate slices the candidate query into 1-indexed pages. Pages out of
// range never error: they come back empty with the flags still computed
// against the full candidate count.
func (f *Feed) paginate(q *gorm.DB, page int) (*Page, error) {
	var total int64

	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, storageErr(err)
	}

	p := &Page{Page: page, Items: []model.Post{}}

	if page < 1 {
		// The window ends before the first row, so rows remain whenever
		// there are any at all.
		p.HasNext = total > 0
		return p, nil
	}

	offset := (page - 1) * f.perPage

	if err := q.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(f.perPage).
		Offset(offset).
		Find(&p.Items).Error; err != nil {
		return nil, storageErr(err)
	}

	p.HasPrev = page > 1
	p.HasNext = int64(offset+len(p.Items)) < total

	return p, nil
}
