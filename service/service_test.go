package service

import (
	"fmt"
	"testing"

	"microblog/api/model"
	"microblog/api/security"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test its own in-memory database, shared across the
// pool's connections so transactions see the same data.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Follow{}))

	return db
}

func newTestUsers(t *testing.T) (*Users, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	return NewUsers(db, security.NewPasswordHasher()), db
}

func mustCreateUser(t *testing.T, users *Users, username string) *model.User {
	t.Helper()

	u, err := users.Create(username, username+"@example.com", "password123")
	require.NoError(t, err)

	return u
}
