package service

import (
	"testing"
	"time"

	"microblog/api/model"

	"github.com/stretchr/testify/require"
)

func bodies(items []model.Post) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Body
	}
	return out
}

func TestFeedOrdering(t *testing.T) {
	t.Parallel()

	users, db := newTestUsers(t)
	follows := NewFollows(db)
	feed := NewFeed(db, 25)

	john := mustCreateUser(t, users, "john")
	susan := mustCreateUser(t, users, "susan")
	mary := mustCreateUser(t, users, "mary")
	david := mustCreateUser(t, users, "david")

	now := time.Now().UTC()

	seed := []model.Post{
		{Body: "post from john", UserID: john.ID, CreatedAt: now.Add(1 * time.Second)},
		{Body: "post from susan", UserID: susan.ID, CreatedAt: now.Add(4 * time.Second)},
		{Body: "post from mary", UserID: mary.ID, CreatedAt: now.Add(3 * time.Second)},
		{Body: "post from david", UserID: david.ID, CreatedAt: now.Add(2 * time.Second)},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	require.NoError(t, follows.Follow(john, susan))
	require.NoError(t, follows.Follow(john, david))
	require.NoError(t, follows.Follow(susan, mary))
	require.NoError(t, follows.Follow(mary, david))

	johnsFeed, err := feed.ForUser(john, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"post from susan", "post from david", "post from john"}, bodies(johnsFeed.Items))

	susansFeed, err := feed.ForUser(susan, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"post from susan", "post from mary"}, bodies(susansFeed.Items))

	marysFeed, err := feed.ForUser(mary, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"post from mary", "post from david"}, bodies(marysFeed.Items))

	davidsFeed, err := feed.ForUser(david, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"post from david"}, bodies(davidsFeed.Items))
}

func TestFeedPagination(t *testing.T) {
	t.Parallel()

	users, db := newTestUsers(t)
	feed := NewFeed(db, 1)

	u := mustCreateUser(t, users, "sozzifer")

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		p := model.Post{Body: "post", UserID: u.ID, CreatedAt: now.Add(time.Duration(i) * time.Second)}
		require.NoError(t, db.Create(&p).Error)
	}

	page1, err := feed.ForUser(u, 1)
	require.NoError(t, err)
	require.Len(t, page1.Items, 1)
	require.True(t, page1.HasNext)
	require.False(t, page1.HasPrev)

	page2, err := feed.ForUser(u, 2)
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	require.True(t, page2.HasNext)
	require.True(t, page2.HasPrev)

	page3, err := feed.ForUser(u, 3)
	require.NoError(t, err)
	require.Len(t, page3.Items, 1)
	require.False(t, page3.HasNext)
	require.True(t, page3.HasPrev)

	// Past the end: empty, but the flags still answer correctly
	page4, err := feed.ForUser(u, 4)
	require.NoError(t, err)
	require.Empty(t, page4.Items)
	require.False(t, page4.HasNext)
	require.True(t, page4.HasPrev)

	// Page numbers below 1 never error either
	for _, n := range []int{0, -1} {
		page, err := feed.ForUser(u, n)
		require.NoError(t, err)
		require.Empty(t, page.Items)
		require.False(t, page.HasPrev)
		require.True(t, page.HasNext)
	}
}

func TestFeedNoDoubleCountOnSelfFollow(t *testing.T) {
	t.Parallel()

	users, db := newTestUsers(t)
	follows := NewFollows(db)
	feed := NewFeed(db, 25)

	u := mustCreateUser(t, users, "sozzifer")
	require.NoError(t, follows.Follow(u, u))

	p := model.Post{Body: "only once", UserID: u.ID, CreatedAt: time.Now().UTC()}
	require.NoError(t, db.Create(&p).Error)

	page, err := feed.ForUser(u, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
}

func TestFeedTieBreakByID(t *testing.T) {
	t.Parallel()

	users, db := newTestUsers(t)
	feed := NewFeed(db, 25)

	u := mustCreateUser(t, users, "sozzifer")

	ts := time.Now().UTC().Truncate(time.Second)

	first := model.Post{Body: "inserted first", UserID: u.ID, CreatedAt: ts}
	require.NoError(t, db.Create(&first).Error)

	second := model.Post{Body: "inserted second", UserID: u.ID, CreatedAt: ts}
	require.NoError(t, db.Create(&second).Error)

	page, err := feed.ForUser(u, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"inserted second", "inserted first"}, bodies(page.Items))
}

func TestExplore(t *testing.T) {
	t.Parallel()

	users, db := newTestUsers(t)
	feed := NewFeed(db, 25)

	u1 := mustCreateUser(t, users, "sozzifer")
	u2 := mustCreateUser(t, users, "bill")

	now := time.Now().UTC()

	older := model.Post{Body: "older", UserID: u1.ID, CreatedAt: now.Add(-time.Second)}
	require.NoError(t, db.Create(&older).Error)

	newer := model.Post{Body: "newer", UserID: u2.ID, CreatedAt: now}
	require.NoError(t, db.Create(&newer).Error)

	// Everyone's posts show up regardless of follow edges
	page, err := feed.Explore(1)
	require.NoError(t, err)
	require.Equal(t, []string{"newer", "older"}, bodies(page.Items))
}

func TestFeedByAuthor(t *testing.T) {
	t.Parallel()

	users, db := newTestUsers(t)
	feed := NewFeed(db, 2)

	u := mustCreateUser(t, users, "sozzifer")
	other := mustCreateUser(t, users, "bill")

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		p := model.Post{Body: "mine", UserID: u.ID, CreatedAt: now.Add(time.Duration(i) * time.Second)}
		require.NoError(t, db.Create(&p).Error)
	}

	theirs := model.Post{Body: "theirs", UserID: other.ID, CreatedAt: now.Add(time.Hour)}
	require.NoError(t, db.Create(&theirs).Error)

	page, err := feed.ByAuthor(u, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.True(t, page.HasNext)
	require.False(t, page.HasPrev)

	for _, p := range page.Items {
		require.Equal(t, u.ID, p.UserID)
	}
}
