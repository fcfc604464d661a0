package service

import (
	"strings"
	"testing"
	"time"

	"microblog/api/model"
	"microblog/api/security"

	"github.com/stretchr/testify/require"
)

func TestCreateAndFind(t *testing.T) {
	t.Parallel()

	users, _ := newTestUsers(t)

	created, err := users.Create("sozzifer", "sozzifer@gmail.com", "password123")
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// The password is only ever stored hashed
	require.True(t, strings.HasPrefix(created.PasswordHash, "$argon2id$"))
	require.NotContains(t, created.PasswordHash, "password123")

	byName, err := users.FindByUsername("sozzifer")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)

	byEmail, err := users.FindByEmail("sozzifer@gmail.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	byID, err := users.FindByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, "sozzifer", byID.Username)

	_, err = users.FindByUsername("nobody")
	require.ErrorIs(t, err, ErrIdentityNotFound)
}

func TestCreateDuplicateUsername(t *testing.T) {
	t.Parallel()

	users, db := newTestUsers(t)

	_, err := users.Create("bill", "bill@gmail.com", "password123")
	require.NoError(t, err)

	_, err = users.Create("bill", "other@gmail.com", "password123")
	require.ErrorIs(t, err, ErrDuplicateUsername)

	// The failed registration must not leave anything behind
	var n int64
	require.NoError(t, db.Model(&model.User{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestCreateDuplicateEmail(t *testing.T) {
	t.Parallel()

	users, _ := newTestUsers(t)

	_, err := users.Create("bill", "bill@gmail.com", "password123")
	require.NoError(t, err)

	_, err = users.Create("william", "bill@gmail.com", "password123")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	users, _ := newTestUsers(t)
	u := mustCreateUser(t, users, "sozzifer")

	require.True(t, users.CheckPassword(u, "password123"))
	require.False(t, users.CheckPassword(u, "otherpassword"))

	require.NoError(t, users.SetPassword(u, "пароль-новый"))
	require.True(t, users.CheckPassword(u, "пароль-новый"))
	require.False(t, users.CheckPassword(u, "password123"))
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	users, _ := newTestUsers(t)
	u := mustCreateUser(t, users, "sozzifer")
	mustCreateUser(t, users, "bill")

	// Colliding with another account fails and changes nothing
	err := users.UpdateProfile(u, "bill", "hello")
	require.ErrorIs(t, err, ErrUsernameUnavailable)

	fresh, err := users.FindByID(u.ID)
	require.NoError(t, err)
	require.Equal(t, "sozzifer", fresh.Username)
	require.Empty(t, fresh.AboutMe)

	// Keeping your own username is not a collision
	require.NoError(t, users.UpdateProfile(u, "sozzifer", "about me"))

	require.NoError(t, users.UpdateProfile(u, "sozz", "still me"))

	fresh, err = users.FindByID(u.ID)
	require.NoError(t, err)
	require.Equal(t, "sozz", fresh.Username)
	require.Equal(t, "still me", fresh.AboutMe)
}

func TestTouchLastSeen(t *testing.T) {
	t.Parallel()

	users, _ := newTestUsers(t)
	u := mustCreateUser(t, users, "sozzifer")

	before := u.LastSeen
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, users.TouchLastSeen(u))

	fresh, err := users.FindByID(u.ID)
	require.NoError(t, err)
	require.True(t, fresh.LastSeen.After(before))
}

func TestAvatarDeterministic(t *testing.T) {
	t.Parallel()

	// Known digest for this address, size appended verbatim
	require.Equal(t,
		"https://www.gravatar.com/avatar/1001746e8b5ebd9b1be9c67eaac5ce2d?d=monsterid&s=128",
		Avatar("sozzifer@gmail.com", 128))

	// Case and surrounding whitespace are normalized away
	require.Equal(t,
		Avatar("sozzifer@gmail.com", 128),
		Avatar("  SOZZifer@GMAIL.com ", 128))

	require.NotEqual(t,
		Avatar("sozzifer@gmail.com", 128),
		Avatar("sozzifer@gmail.com", 256))
}

func TestResetTokenForDeletedUser(t *testing.T) {
	t.Parallel()

	users, db := newTestUsers(t)
	u := mustCreateUser(t, users, "sozzifer")

	signer := security.NewTokenSigner([]byte("super-secret"))

	token, err := signer.IssueResetToken(u.ID, time.Hour)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&model.User{}, u.ID).Error)

	// The signature still verifies, the account no longer resolves
	userID, ok := signer.VerifyResetToken(token)
	require.True(t, ok)

	_, err = users.FindByID(userID)
	require.ErrorIs(t, err, ErrIdentityNotFound)
}
