package sec

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/storage"
)

func newTestService(t *testing.T) (*Service, *storage.DB) {
	t.Helper()
	store, err := storage.NewDB(
		t.Context(),
		slog.New(slog.DiscardHandler),
		filepath.Join(t.TempDir(), "db.sqlite"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewService(store, store), store
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.CreateAccount(t.Context(), "admin", "hunter2secret")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		session, user, err := svc.Login(t.Context(), "admin", "hunter2secret")
		require.NoError(t, err)
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, "admin", user.Username)
		assert.WithinDuration(t, time.Now().Add(SessionTTL), session.ExpiresAt, time.Minute)

		validated, err := svc.ValidateSession(t.Context(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.ID, validated.ID)
	})

	// The two failure modes must be indistinguishable so usernames cannot be
	// probed through the login endpoint.
	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(t.Context(), "admin", "wrongpassword")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, _, err := svc.Login(t.Context(), "nobody", "hunter2secret")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSessionExpiry(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	_, err := svc.CreateAccount(t.Context(), "admin", "hunter2secret")
	require.NoError(t, err)

	session, _, err := svc.Login(t.Context(), "admin", "hunter2secret")
	require.NoError(t, err)

	_, err = svc.ValidateSession(t.Context(), session.ID)
	require.NoError(t, err)

	// Jump past the TTL. Validation must fail and delete the stale row.
	svc.now = func() time.Time { return time.Now().Add(SessionTTL + time.Hour) }

	_, err = svc.ValidateSession(t.Context(), session.ID)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = store.GetSession(t.Context(), session.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.CreateAccount(t.Context(), "admin", "hunter2secret")
	require.NoError(t, err)

	session, _, err := svc.Login(t.Context(), "admin", "hunter2secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(t.Context(), session.ID))

	_, err = svc.ValidateSession(t.Context(), session.ID)
	require.ErrorIs(t, err, ErrUnauthenticated)

	// Logging out again, or with a made-up id, still succeeds.
	require.NoError(t, svc.Logout(t.Context(), session.ID))
	require.NoError(t, svc.Logout(t.Context(), "not-a-session"))
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	acct, err := svc.CreateAccount(t.Context(), "admin", "hunter2secret")
	require.NoError(t, err)

	err = svc.ChangePassword(t.Context(), "admin", "wrongpassword", "newpassword1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	session, _, err := svc.Login(t.Context(), "admin", "hunter2secret")
	require.NoError(t, err)

	err = svc.ChangePassword(t.Context(), "admin", "hunter2secret", "newpassword1")
	require.NoError(t, err)

	_, _, err = svc.Login(t.Context(), "admin", "hunter2secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(t.Context(), "admin", "newpassword1")
	require.NoError(t, err)

	// Outstanding sessions survive a password change until explicitly revoked.
	_, err = svc.ValidateSession(t.Context(), session.ID)
	require.NoError(t, err)

	n, err := svc.RevokeSessions(t.Context(), acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = svc.ValidateSession(t.Context(), session.ID)
	require.ErrorIs(t, err, ErrUnauthenticated)
}
