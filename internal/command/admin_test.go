package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/sec"
	"github.com/foliohq/folio/internal/storage"
)

// These tests swap the process stdin to feed the password prompts, so they
// must not run in parallel.

func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db.sqlite")
	cfgPath := filepath.Join(dir, "folio.yaml")
	data := fmt.Sprintf("address: localhost:0\ndb_filepath: %s\nlog_level: error\n", dbPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(data), 0600))
	return cfgPath, dbPath
}

func openStore(t *testing.T, dbPath string) *storage.DB {
	t.Helper()
	store, err := storage.NewDB(t.Context(), slog.New(slog.DiscardHandler), dbPath)
	require.NoError(t, err)
	return store
}

func withStdin(t *testing.T, input string) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(input)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	orig := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = orig
		_ = r.Close()
	})
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	cmd := RootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.ExecuteContext(t.Context())
}

func TestAdminPasswd(t *testing.T) {
	cfgPath, dbPath := writeTestConfig(t)

	store := openStore(t, dbPath)
	svc := sec.NewService(store, store)
	_, err := svc.CreateAccount(t.Context(), "admin", "oldpassword1")
	require.NoError(t, err)
	session, _, err := svc.Login(t.Context(), "admin", "oldpassword1")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// The current password is re-verified before anything changes.
	withStdin(t, "wrongpassword\nnewpassword1\n")
	err = runCommand(t, "--config", cfgPath, "admin", "passwd", "admin")
	require.ErrorIs(t, err, sec.ErrInvalidCredentials)

	withStdin(t, "oldpassword1\nnewpassword1\n")
	require.NoError(t, runCommand(t, "--config", cfgPath, "admin", "passwd", "admin"))

	store = openStore(t, dbPath)
	t.Cleanup(func() { _ = store.Close() })

	acct, err := store.GetAccountByUsername(t.Context(), "admin")
	require.NoError(t, err)
	assert.True(t, sec.VerifyPassword("newpassword1", acct.PasswordHash, acct.Salt))
	assert.False(t, sec.VerifyPassword("oldpassword1", acct.PasswordHash, acct.Salt))

	// Without --revoke, outstanding sessions survive the change.
	_, err = store.GetSession(t.Context(), session.ID)
	require.NoError(t, err)
}

func TestAdminSessionsPurge(t *testing.T) {
	cfgPath, dbPath := writeTestConfig(t)

	store := openStore(t, dbPath)
	svc := sec.NewService(store, store)
	_, err := svc.CreateAccount(t.Context(), "admin", "hunter2secret")
	require.NoError(t, err)
	first, _, err := svc.Login(t.Context(), "admin", "hunter2secret")
	require.NoError(t, err)
	second, _, err := svc.Login(t.Context(), "admin", "hunter2secret")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	err = runCommand(t, "--config", cfgPath, "admin", "sessions", "purge", "ghost")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, runCommand(t, "--config", cfgPath, "admin", "sessions", "purge", "admin"))

	store = openStore(t, dbPath)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.GetSession(t.Context(), first.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.GetSession(t.Context(), second.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
