package db

import (
	"context"
	"time"
)

// GetAccountByUsername returns the account with the given username, or
// [sql.ErrNoRows] via the row scan when absent.
func (q *Queries) GetAccountByUsername(ctx context.Context, username string) (Account, error) {
	const query = `
	select id, username, password_hash, salt, active, last_login_at, created_at
	from accounts where username = ?`
	var acct Account
	err := q.db.QueryRowContext(ctx, query, username).Scan(
		&acct.ID, &acct.Username, &acct.PasswordHash, &acct.Salt,
		&acct.Active, &acct.LastLoginAt, &acct.CreatedAt,
	)
	return acct, err
}

// GetAccount returns the account with the given id.
func (q *Queries) GetAccount(ctx context.Context, accountID uint64) (Account, error) {
	const query = `
	select id, username, password_hash, salt, active, last_login_at, created_at
	from accounts where id = ?`
	var acct Account
	err := q.db.QueryRowContext(ctx, query, int64(accountID)).Scan(
		&acct.ID, &acct.Username, &acct.PasswordHash, &acct.Salt,
		&acct.Active, &acct.LastLoginAt, &acct.CreatedAt,
	)
	return acct, err
}

// CountAccounts returns the total number of accounts.
func (q *Queries) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `select count(*) from accounts`).Scan(&count)
	return count, err
}

// InsertAccount creates a new account row.
func (q *Queries) InsertAccount(ctx context.Context, acct Account) error {
	const query = `
	insert into accounts (id, username, password_hash, salt, active)
	values (?, ?, ?, ?, ?)`
	_, err := q.db.ExecContext(ctx, query,
		int64(acct.ID), acct.Username, acct.PasswordHash, acct.Salt, acct.Active,
	)
	return err
}

// UpdateAccountPassword replaces the hash and salt in one statement so the
// pair can never be observed half-updated.
func (q *Queries) UpdateAccountPassword(ctx context.Context, accountID uint64, hash, salt string) error {
	const query = `update accounts set password_hash = ?, salt = ? where id = ?`
	_, err := q.db.ExecContext(ctx, query, hash, salt, int64(accountID))
	return err
}

// UpdateAccountLastLogin stamps the account's last successful login.
func (q *Queries) UpdateAccountLastLogin(ctx context.Context, accountID uint64, at time.Time) error {
	const query = `update accounts set last_login_at = ? where id = ?`
	_, err := q.db.ExecContext(ctx, query, at, int64(accountID))
	return err
}

// DeleteAccount removes an account; sessions cascade.
func (q *Queries) DeleteAccount(ctx context.Context, accountID uint64) error {
	_, err := q.db.ExecContext(ctx, `delete from accounts where id = ?`, int64(accountID))
	return err
}

// InsertSession persists a session row.
func (q *Queries) InsertSession(ctx context.Context, session Session) error {
	const query = `
	insert into sessions (id, account_id, expires_at, created_at)
	values (?, ?, ?, ?)`
	_, err := q.db.ExecContext(ctx, query,
		session.ID, int64(session.AccountID), session.ExpiresAt, session.CreatedAt,
	)
	return err
}

// GetSession returns the session row without checking expiry; expiry is the
// caller's responsibility.
func (q *Queries) GetSession(ctx context.Context, id string) (Session, error) {
	const query = `select id, account_id, expires_at, created_at from sessions where id = ?`
	var session Session
	err := q.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.AccountID, &session.ExpiresAt, &session.CreatedAt,
	)
	return session, err
}

// DeleteSession removes a session. Deleting an unknown id is not an error.
func (q *Queries) DeleteSession(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `delete from sessions where id = ?`, id)
	return err
}

// DeleteSessionIfExpired conditionally removes a session that expired before
// now. The single-statement predicate avoids the read-then-delete race with a
// concurrent logout.
func (q *Queries) DeleteSessionIfExpired(ctx context.Context, id string, now time.Time) error {
	const query = `delete from sessions where id = ? and expires_at < ?`
	_, err := q.db.ExecContext(ctx, query, id, now)
	return err
}

// DeleteSessionsForAccount removes every session owned by the account.
func (q *Queries) DeleteSessionsForAccount(ctx context.Context, accountID uint64) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`delete from sessions where account_id = ?`, int64(accountID))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteExpiredSessions sweeps all sessions that expired before now and
// reports how many rows were removed.
func (q *Queries) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `delete from sessions where expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
