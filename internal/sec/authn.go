package sec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/foliohq/folio/internal/storage"
	"github.com/foliohq/folio/internal/storage/db"
)

// SessionTTL is the fixed validity duration of a session.
const SessionTTL = 24 * time.Hour

var (
	// ErrInvalidCredentials is returned on any login failure. Unknown
	// username, inactive account, and wrong password are deliberately
	// indistinguishable to prevent username enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is returned when a session is missing, unknown, or
	// expired.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// User is the minimal account descriptor returned to clients. It never
// carries the hash or salt.
type User struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// Service orchestrates login, logout, and per-request session validation on
// top of the credential and session stores.
type Service struct {
	accounts storage.Accounts
	sessions storage.Sessions
	now      func() time.Time
}

// NewService creates a Service over the given store.
func NewService(accounts storage.Accounts, sessions storage.Sessions) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		now:      time.Now,
	}
}

// Login verifies the credentials and, on success, issues a session valid for
// [SessionTTL] and stamps the account's last login. All failure modes return
// [ErrInvalidCredentials].
func (s *Service) Login(ctx context.Context, username, password string) (db.Session, User, error) {
	acct, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return db.Session{}, User{}, ErrInvalidCredentials
		}
		return db.Session{}, User{}, fmt.Errorf("failed to look up account: %w", err)
	}
	if !acct.Active || !VerifyPassword(password, acct.PasswordHash, acct.Salt) {
		return db.Session{}, User{}, ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := db.Session{
		ID:        uuid.NewString(),
		AccountID: acct.ID,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return db.Session{}, User{}, fmt.Errorf("failed to create session: %w", err)
	}
	if err := s.accounts.UpdateAccountLastLogin(ctx, acct.ID, now); err != nil {
		return db.Session{}, User{}, fmt.Errorf("failed to update last login: %w", err)
	}
	return session, User{ID: acct.ID, Username: acct.Username}, nil
}

// Logout deletes the session unconditionally. It succeeds even if the
// session never existed.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.DeleteSession(ctx, sessionID)
}

// ValidateSession re-reads the session from the store and checks expiry. An
// expired session is deleted as a side effect (lazy expiration), so checking
// a session is not a pure read. The delete is conditional on expiry so a
// concurrent logout cannot be undone.
func (s *Service) ValidateSession(ctx context.Context, sessionID string) (db.Session, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return db.Session{}, ErrUnauthenticated
		}
		return db.Session{}, fmt.Errorf("failed to look up session: %w", err)
	}
	now := s.now().UTC()
	if session.ExpiresAt.Before(now) {
		if err := s.sessions.DeleteSessionIfExpired(ctx, sessionID, now); err != nil {
			return db.Session{}, fmt.Errorf("failed to expire session: %w", err)
		}
		return db.Session{}, ErrUnauthenticated
	}
	return session, nil
}

// ChangePassword re-verifies the current password before replacing the hash
// and a freshly generated salt in a single update. Outstanding sessions are
// not revoked; callers that want revocation use [Service.RevokeSessions].
func (s *Service) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	acct, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if !acct.Active || !VerifyPassword(currentPassword, acct.PasswordHash, acct.Salt) {
		return ErrInvalidCredentials
	}

	salt, err := GenerateSalt()
	if err != nil {
		return err
	}
	hash := HashPassword(newPassword, salt)
	if err := s.accounts.UpdateAccountPassword(ctx, acct.ID, hash, salt); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// RevokeSessions deletes every session belonging to the account, returning
// how many were removed.
func (s *Service) RevokeSessions(ctx context.Context, accountID uint64) (int64, error) {
	return s.sessions.DeleteSessionsForAccount(ctx, accountID)
}

// CreateAccount creates an active account with a freshly salted hash for the
// given password.
func (s *Service) CreateAccount(ctx context.Context, username, password string) (db.Account, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return db.Account{}, err
	}
	return s.accounts.CreateAccount(ctx, db.Account{
		Username:     username,
		PasswordHash: HashPassword(password, salt),
		Salt:         salt,
		Active:       true,
	})
}
