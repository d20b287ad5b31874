// Package storage provides the state management for accounts, sessions, and
// site content. The persistent store is the single source of truth: nothing
// above this package caches session or credential state in memory, so any
// number of server processes can share one database.
package storage

import (
	"context"
	"time"

	"github.com/foliohq/folio/internal/storage/db"
)

const (
	// ErrNotFound is returned when a row cannot be found.
	ErrNotFound Error = "not found"
	// ErrAlreadyExists is returned if a unique row already exists.
	ErrAlreadyExists Error = "already exists"
	// ErrInternal is returned for any other type of error.
	ErrInternal Error = "internal error"
)

// Error is an error type returned by the storage implementation.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Accounts are the methods on a storage implementation responsible for
// administrative credential records. No other component may touch credential
// rows directly.
type Accounts interface {
	// GetAccountByUsername returns the account with the given username. An
	// [ErrNotFound] is returned if the username does not exist.
	GetAccountByUsername(ctx context.Context, username string) (db.Account, error)
	// GetAccount returns the account with the given id or [ErrNotFound].
	GetAccount(ctx context.Context, accountID uint64) (db.Account, error)
	// CountAccounts returns the number of accounts, used for first-run
	// bootstrapping.
	CountAccounts(ctx context.Context) (int64, error)
	// CreateAccount persists a new account. An [ErrAlreadyExists] is returned
	// if the username is taken.
	CreateAccount(ctx context.Context, acct db.Account) (db.Account, error)
	// UpdateAccountPassword atomically replaces the hash and salt.
	UpdateAccountPassword(ctx context.Context, accountID uint64, hash, salt string) error
	// UpdateAccountLastLogin stamps the last successful login time.
	UpdateAccountLastLogin(ctx context.Context, accountID uint64, at time.Time) error
	// DeleteAccount permanently removes the account. Its sessions cascade.
	DeleteAccount(ctx context.Context, accountID uint64) error
}

// Sessions are the methods on a storage implementation responsible for
// session records. The store exclusively owns these rows; callers decide
// expiry policy.
type Sessions interface {
	// CreateSession persists a session with the given id and expiry.
	CreateSession(ctx context.Context, session db.Session) error
	// GetSession returns the session or [ErrNotFound]. It does not check
	// expiry; that is the caller's responsibility.
	GetSession(ctx context.Context, id string) (db.Session, error)
	// DeleteSession removes the session. Deleting an unknown id is not an
	// error.
	DeleteSession(ctx context.Context, id string) error
	// DeleteSessionIfExpired removes the session only if it expired before
	// now, in a single conditional statement.
	DeleteSessionIfExpired(ctx context.Context, id string, now time.Time) error
	// DeleteSessionsForAccount removes every session owned by the account,
	// returning how many were removed. This is the revocation hook for
	// password changes.
	DeleteSessionsForAccount(ctx context.Context, accountID uint64) (int64, error)
	// DeleteExpiredSessions sweeps all sessions expired before now.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// Navigation manages the public site navigation entries.
type Navigation interface {
	ListNavigationItems(ctx context.Context) ([]db.NavigationItem, error)
	CreateNavigationItem(ctx context.Context, item db.NavigationItem) (db.NavigationItem, error)
	// UpdateNavigationItem fully replaces the row; [ErrNotFound] if absent.
	UpdateNavigationItem(ctx context.Context, item db.NavigationItem) (db.NavigationItem, error)
	DeleteNavigationItem(ctx context.Context, id uint64) error
}

// Content manages keyed site copy sections.
type Content interface {
	// GetContentSection returns the section for a key or [ErrNotFound].
	GetContentSection(ctx context.Context, sectionKey string) (db.ContentSection, error)
	// UpsertContentSection creates or replaces the section for its key.
	UpsertContentSection(ctx context.Context, section db.ContentSection) (db.ContentSection, error)
}

// Blog manages blog posts.
type Blog interface {
	ListBlogPosts(ctx context.Context, publishedOnly bool) ([]db.BlogPost, error)
	GetBlogPost(ctx context.Context, id uint64) (db.BlogPost, error)
	// CreateBlogPost persists a post; [ErrAlreadyExists] on a slug collision.
	CreateBlogPost(ctx context.Context, post db.BlogPost) (db.BlogPost, error)
	UpdateBlogPost(ctx context.Context, post db.BlogPost) (db.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id uint64) error
	IncrementBlogPostViews(ctx context.Context, id uint64) error
}

// Resume manages work history, education, and skills.
type Resume interface {
	ListExperiences(ctx context.Context) ([]db.Experience, error)
	CreateExperience(ctx context.Context, exp db.Experience) (db.Experience, error)
	UpdateExperience(ctx context.Context, exp db.Experience) (db.Experience, error)
	DeleteExperience(ctx context.Context, id uint64) error

	ListEducation(ctx context.Context) ([]db.Education, error)
	CreateEducation(ctx context.Context, edu db.Education) (db.Education, error)
	UpdateEducation(ctx context.Context, edu db.Education) (db.Education, error)
	DeleteEducation(ctx context.Context, id uint64) error

	ListSkillCategories(ctx context.Context) ([]db.SkillCategory, error)
	CreateSkillCategory(ctx context.Context, cat db.SkillCategory) (db.SkillCategory, error)
	DeleteSkillCategory(ctx context.Context, id uint64) error
	ListSkills(ctx context.Context) ([]db.Skill, error)
	CreateSkill(ctx context.Context, skill db.Skill) (db.Skill, error)
	DeleteSkill(ctx context.Context, id uint64) error
}

// Projects manages portfolio projects.
type Projects interface {
	ListProjects(ctx context.Context, featuredOnly bool) ([]db.Project, error)
	CreateProject(ctx context.Context, proj db.Project) (db.Project, error)
	UpdateProject(ctx context.Context, proj db.Project) (db.Project, error)
	DeleteProject(ctx context.Context, id uint64) error
}

// Profile manages the singleton owner profile.
type Profile interface {
	// GetProfile returns the profile or [ErrNotFound] if never set.
	GetProfile(ctx context.Context) (db.Profile, error)
	UpsertProfile(ctx context.Context, prof db.Profile) (db.Profile, error)
}

// Store is the combination interface over all storage concerns.
type Store interface {
	Accounts
	Sessions
	Navigation
	Content
	Blog
	Resume
	Projects
	Profile
	// Close releases any resources held by the store. An error is returned if
	// the store cannot be cleanly closed.
	Close() error
}
