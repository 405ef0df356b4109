package blog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Register(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("Success", func(t *testing.T) {
		user, err := f.manager.Register(ctx, SignupForm{Username: "nora", Email: "nora@example.com", Password: "correct horse"})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "nora", user.Username)
		assert.NotEqual(t, "correct horse", user.PasswordHash)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := f.manager.Register(ctx, SignupForm{Username: "leo", Password: "another secret"})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		_, err := f.manager.Register(ctx, SignupForm{Username: "ivan", Password: "short"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "at least 8 characters", verr.Fields["password"])
	})

	t.Run("MultibytePasswordTooLong", func(t *testing.T) {
		password := strings.Repeat("пароль", 7)
		require.Len(t, []rune(password), 42)

		_, err := f.manager.Register(ctx, SignupForm{Username: "ivan", Password: password})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "at most 72 bytes", verr.Fields["password"])
	})

	t.Run("MultibytePasswordWithinLimit", func(t *testing.T) {
		user, err := f.manager.Register(ctx, SignupForm{Username: "olga", Password: strings.Repeat("пароль", 6)})
		require.NoError(t, err)
		assert.Equal(t, "olga", user.Username)
	})
}

func TestManager_LoginLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.manager.Register(ctx, SignupForm{Username: "nora", Password: "correct horse"})
	require.NoError(t, err)

	t.Run("BadPassword", func(t *testing.T) {
		_, err := f.manager.Login(ctx, LoginForm{Username: "nora", Password: "wrong horse"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := f.manager.Login(ctx, LoginForm{Username: "nobody", Password: "correct horse"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("SessionLifecycle", func(t *testing.T) {
		session, err := f.manager.Login(ctx, LoginForm{Username: "nora", Password: "correct horse"})
		require.NoError(t, err)
		assert.Equal(t, "nora", session.User.Username)
		assert.True(t, session.ExpiresAt.Equal(baseTime.Add(DefaultSessionTTL)))

		viewer, err := f.manager.ViewerBySession(ctx, session.ID)
		require.NoError(t, err)
		require.NotNil(t, viewer)
		assert.Equal(t, "nora", viewer.Username)

		require.NoError(t, f.manager.Logout(ctx, session.ID))
		viewer, err = f.manager.ViewerBySession(ctx, session.ID)
		require.NoError(t, err)
		assert.Nil(t, viewer)
	})

	t.Run("ExpiredSessionIsAnonymous", func(t *testing.T) {
		session, err := f.manager.Login(ctx, LoginForm{Username: "nora", Password: "correct horse"})
		require.NoError(t, err)

		f.fixedNow = baseTime.Add(DefaultSessionTTL + time.Minute)
		defer func() { f.fixedNow = baseTime }()

		viewer, err := f.manager.ViewerBySession(ctx, session.ID)
		require.NoError(t, err)
		assert.Nil(t, viewer)

		_, ok := f.store.Session(session.ID)
		assert.False(t, ok, "expired session is removed")
	})

	t.Run("MalformedToken", func(t *testing.T) {
		viewer, err := f.manager.ViewerBySession(ctx, "not-a-token")
		require.NoError(t, err)
		assert.Nil(t, viewer)
	})
}

func TestManager_EditProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("Success", func(t *testing.T) {
		user, err := f.manager.EditProfile(ctx, f.author, ProfileForm{Username: "leonid", FirstName: " Leo ", LastName: "Tolstoy"})
		require.NoError(t, err)
		assert.Equal(t, "leonid", user.Username)
		assert.Equal(t, "Leo Tolstoy", user.FullName())
	})

	t.Run("TakenUsername", func(t *testing.T) {
		_, err := f.manager.EditProfile(ctx, f.author, ProfileForm{Username: "mia"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "username")
	})

	t.Run("Anonymous", func(t *testing.T) {
		_, err := f.manager.EditProfile(ctx, nil, ProfileForm{Username: "mia"})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}
