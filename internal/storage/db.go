package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/influxdata/influxdb/pkg/snowflake"
	"modernc.org/sqlite"

	"github.com/foliohq/folio/internal/storage/db"
)

// Extended sqlite result codes for constraint violations.
const (
	sqliteConstraintUnique     = 2067
	sqliteConstraintPrimaryKey = 1555
)

// DB is a [Store] backed by a SQLite database.
type DB struct {
	ids     *snowflake.Generator
	db      *sql.DB
	queries *db.Queries
	now     func() time.Time
}

// NewDB initializes a DB at the given database path.
func NewDB(ctx context.Context, logger *slog.Logger, dbPath string) (*DB, error) {
	handle, err := db.Open(ctx, logger, dbPath)
	if err != nil {
		return nil, err
	}
	return &DB{
		ids:     snowflake.New(rand.IntN(1023)), //nolint:gosec,mnd // this isn't for crypto
		db:      handle,
		queries: db.New(handle),
		now:     time.Now,
	}, nil
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// wrapErr translates driver-level failures into the storage error taxonomy.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
			return ErrAlreadyExists
		}
	}
	return err
}

// GetAccountByUsername satisfies the [Accounts] interface.
func (d *DB) GetAccountByUsername(ctx context.Context, username string) (db.Account, error) {
	acct, err := d.queries.GetAccountByUsername(ctx, username)
	return acct, wrapErr(err)
}

// GetAccount satisfies the [Accounts] interface.
func (d *DB) GetAccount(ctx context.Context, accountID uint64) (db.Account, error) {
	acct, err := d.queries.GetAccount(ctx, accountID)
	return acct, wrapErr(err)
}

// CountAccounts satisfies the [Accounts] interface.
func (d *DB) CountAccounts(ctx context.Context) (int64, error) {
	return d.queries.CountAccounts(ctx)
}

// CreateAccount satisfies the [Accounts] interface.
func (d *DB) CreateAccount(ctx context.Context, acct db.Account) (db.Account, error) {
	if acct.ID == 0 {
		acct.ID = d.ids.Next()
	}
	if err := d.queries.InsertAccount(ctx, acct); err != nil {
		return db.Account{}, wrapErr(err)
	}
	return acct, nil
}

// UpdateAccountPassword satisfies the [Accounts] interface.
func (d *DB) UpdateAccountPassword(ctx context.Context, accountID uint64, hash, salt string) error {
	return wrapErr(d.queries.UpdateAccountPassword(ctx, accountID, hash, salt))
}

// UpdateAccountLastLogin satisfies the [Accounts] interface.
func (d *DB) UpdateAccountLastLogin(ctx context.Context, accountID uint64, at time.Time) error {
	return wrapErr(d.queries.UpdateAccountLastLogin(ctx, accountID, at))
}

// DeleteAccount satisfies the [Accounts] interface.
func (d *DB) DeleteAccount(ctx context.Context, accountID uint64) error {
	return wrapErr(d.queries.DeleteAccount(ctx, accountID))
}

// CreateSession satisfies the [Sessions] interface.
func (d *DB) CreateSession(ctx context.Context, session db.Session) error {
	return wrapErr(d.queries.InsertSession(ctx, session))
}

// GetSession satisfies the [Sessions] interface.
func (d *DB) GetSession(ctx context.Context, id string) (db.Session, error) {
	session, err := d.queries.GetSession(ctx, id)
	return session, wrapErr(err)
}

// DeleteSession satisfies the [Sessions] interface.
func (d *DB) DeleteSession(ctx context.Context, id string) error {
	return wrapErr(d.queries.DeleteSession(ctx, id))
}

// DeleteSessionIfExpired satisfies the [Sessions] interface.
func (d *DB) DeleteSessionIfExpired(ctx context.Context, id string, now time.Time) error {
	return wrapErr(d.queries.DeleteSessionIfExpired(ctx, id, now))
}

// DeleteSessionsForAccount satisfies the [Sessions] interface.
func (d *DB) DeleteSessionsForAccount(ctx context.Context, accountID uint64) (int64, error) {
	n, err := d.queries.DeleteSessionsForAccount(ctx, accountID)
	return n, wrapErr(err)
}

// DeleteExpiredSessions satisfies the [Sessions] interface.
func (d *DB) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	n, err := d.queries.DeleteExpiredSessions(ctx, now)
	return n, wrapErr(err)
}

// ListNavigationItems satisfies the [Navigation] interface.
func (d *DB) ListNavigationItems(ctx context.Context) ([]db.NavigationItem, error) {
	items, err := d.queries.ListNavigationItems(ctx)
	return items, wrapErr(err)
}

// CreateNavigationItem satisfies the [Navigation] interface.
func (d *DB) CreateNavigationItem(ctx context.Context, item db.NavigationItem) (db.NavigationItem, error) {
	if item.ID == 0 {
		item.ID = d.ids.Next()
	}
	if err := d.queries.InsertNavigationItem(ctx, item); err != nil {
		return db.NavigationItem{}, wrapErr(err)
	}
	return item, nil
}

// UpdateNavigationItem satisfies the [Navigation] interface.
func (d *DB) UpdateNavigationItem(ctx context.Context, item db.NavigationItem) (db.NavigationItem, error) {
	found, err := d.queries.UpdateNavigationItem(ctx, item)
	if err != nil {
		return db.NavigationItem{}, wrapErr(err)
	}
	if !found {
		return db.NavigationItem{}, ErrNotFound
	}
	return item, nil
}

// DeleteNavigationItem satisfies the [Navigation] interface.
func (d *DB) DeleteNavigationItem(ctx context.Context, id uint64) error {
	return wrapErr(d.queries.DeleteNavigationItem(ctx, id))
}

// GetContentSection satisfies the [Content] interface.
func (d *DB) GetContentSection(ctx context.Context, sectionKey string) (db.ContentSection, error) {
	section, err := d.queries.GetContentSection(ctx, sectionKey)
	return section, wrapErr(err)
}

// UpsertContentSection satisfies the [Content] interface.
func (d *DB) UpsertContentSection(ctx context.Context, section db.ContentSection) (db.ContentSection, error) {
	if section.ID == 0 {
		section.ID = d.ids.Next()
	}
	section.UpdatedAt = d.now().UTC()
	if err := d.queries.UpsertContentSection(ctx, section); err != nil {
		return db.ContentSection{}, wrapErr(err)
	}
	return d.GetContentSection(ctx, section.SectionKey)
}

// ListBlogPosts satisfies the [Blog] interface.
func (d *DB) ListBlogPosts(ctx context.Context, publishedOnly bool) ([]db.BlogPost, error) {
	posts, err := d.queries.ListBlogPosts(ctx, publishedOnly)
	return posts, wrapErr(err)
}

// GetBlogPost satisfies the [Blog] interface.
func (d *DB) GetBlogPost(ctx context.Context, id uint64) (db.BlogPost, error) {
	post, err := d.queries.GetBlogPost(ctx, id)
	return post, wrapErr(err)
}

// CreateBlogPost satisfies the [Blog] interface.
func (d *DB) CreateBlogPost(ctx context.Context, post db.BlogPost) (db.BlogPost, error) {
	if post.ID == 0 {
		post.ID = d.ids.Next()
	}
	now := d.now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if err := d.queries.InsertBlogPost(ctx, post); err != nil {
		return db.BlogPost{}, wrapErr(err)
	}
	return d.GetBlogPost(ctx, post.ID)
}

// UpdateBlogPost satisfies the [Blog] interface.
func (d *DB) UpdateBlogPost(ctx context.Context, post db.BlogPost) (db.BlogPost, error) {
	post.UpdatedAt = d.now().UTC()
	found, err := d.queries.UpdateBlogPost(ctx, post)
	if err != nil {
		return db.BlogPost{}, wrapErr(err)
	}
	if !found {
		return db.BlogPost{}, ErrNotFound
	}
	return d.GetBlogPost(ctx, post.ID)
}

// DeleteBlogPost satisfies the [Blog] interface.
func (d *DB) DeleteBlogPost(ctx context.Context, id uint64) error {
	return wrapErr(d.queries.DeleteBlogPost(ctx, id))
}

// IncrementBlogPostViews satisfies the [Blog] interface.
func (d *DB) IncrementBlogPostViews(ctx context.Context, id uint64) error {
	return wrapErr(d.queries.IncrementBlogPostViews(ctx, id))
}

// ListExperiences satisfies the [Resume] interface.
func (d *DB) ListExperiences(ctx context.Context) ([]db.Experience, error) {
	exps, err := d.queries.ListExperiences(ctx)
	return exps, wrapErr(err)
}

// CreateExperience satisfies the [Resume] interface.
func (d *DB) CreateExperience(ctx context.Context, exp db.Experience) (db.Experience, error) {
	if exp.ID == 0 {
		exp.ID = d.ids.Next()
	}
	if err := d.queries.InsertExperience(ctx, exp); err != nil {
		return db.Experience{}, wrapErr(err)
	}
	return exp, nil
}

// UpdateExperience satisfies the [Resume] interface.
func (d *DB) UpdateExperience(ctx context.Context, exp db.Experience) (db.Experience, error) {
	found, err := d.queries.UpdateExperience(ctx, exp)
	if err != nil {
		return db.Experience{}, wrapErr(err)
	}
	if !found {
		return db.Experience{}, ErrNotFound
	}
	return exp, nil
}

// DeleteExperience satisfies the [Resume] interface.
func (d *DB) DeleteExperience(ctx context.Context, id uint64) error {
	return wrapErr(d.queries.DeleteExperience(ctx, id))
}

// ListEducation satisfies the [Resume] interface.
func (d *DB) ListEducation(ctx context.Context) ([]db.Education, error) {
	edus, err := d.queries.ListEducation(ctx)
	return edus, wrapErr(err)
}

// CreateEducation satisfies the [Resume] interface.
func (d *DB) CreateEducation(ctx context.Context, edu db.Education) (db.Education, error) {
	if edu.ID == 0 {
		edu.ID = d.ids.Next()
	}
	if err := d.queries.InsertEducation(ctx, edu); err != nil {
		return db.Education{}, wrapErr(err)
	}
	return edu, nil
}

// UpdateEducation satisfies the [Resume] interface.
func (d *DB) UpdateEducation(ctx context.Context, edu db.Education) (db.Education, error) {
	found, err := d.queries.UpdateEducation(ctx, edu)
	if err != nil {
		return db.Education{}, wrapErr(err)
	}
	if !found {
		return db.Education{}, ErrNotFound
	}
	return edu, nil
}

// DeleteEducation satisfies the [Resume] interface.
func (d *DB) DeleteEducation(ctx context.Context, id uint64) error {
	return wrapErr(d.queries.DeleteEducation(ctx, id))
}

// ListSkillCategories satisfies the [Resume] interface.
func (d *DB) ListSkillCategories(ctx context.Context) ([]db.SkillCategory, error) {
	cats, err := d.queries.ListSkillCategories(ctx)
	return cats, wrapErr(err)
}

// CreateSkillCategory satisfies the [Resume] interface.
func (d *DB) CreateSkillCategory(ctx context.Context, cat db.SkillCategory) (db.SkillCategory, error) {
	if cat.ID == 0 {
		cat.ID = d.ids.Next()
	}
	if err := d.queries.InsertSkillCategory(ctx, cat); err != nil {
		return db.SkillCategory{}, wrapErr(err)
	}
	return cat, nil
}

// DeleteSkillCategory satisfies the [Resume] interface.
func (d *DB) DeleteSkillCategory(ctx context.Context, id uint64) error {
	return wrapErr(d.queries.DeleteSkillCategory(ctx, id))
}

// ListSkills satisfies the [Resume] interface.
func (d *DB) ListSkills(ctx context.Context) ([]db.Skill, error) {
	skills, err := d.queries.ListSkills(ctx)
	return skills, wrapErr(err)
}

// CreateSkill satisfies the [Resume] interface.
func (d *DB) CreateSkill(ctx context.Context, skill db.Skill) (db.Skill, error) {
	if skill.ID == 0 {
		skill.ID = d.ids.Next()
	}
	if err := d.queries.InsertSkill(ctx, skill); err != nil {
		return db.Skill{}, wrapErr(err)
	}
	return skill, nil
}

// DeleteSkill satisfies the [Resume] interface.
func (d *DB) DeleteSkill(ctx context.Context, id uint64) error {
	return wrapErr(d.queries.DeleteSkill(ctx, id))
}

// ListProjects satisfies the [Projects] interface.
func (d *DB) ListProjects(ctx context.Context, featuredOnly bool) ([]db.Project, error) {
	projs, err := d.queries.ListProjects(ctx, featuredOnly)
	return projs, wrapErr(err)
}

// CreateProject satisfies the [Projects] interface.
func (d *DB) CreateProject(ctx context.Context, proj db.Project) (db.Project, error) {
	if proj.ID == 0 {
		proj.ID = d.ids.Next()
	}
	now := d.now().UTC()
	proj.CreatedAt = now
	proj.UpdatedAt = now
	if err := d.queries.InsertProject(ctx, proj); err != nil {
		return db.Project{}, wrapErr(err)
	}
	return proj, nil
}

// UpdateProject satisfies the [Projects] interface.
func (d *DB) UpdateProject(ctx context.Context, proj db.Project) (db.Project, error) {
	proj.UpdatedAt = d.now().UTC()
	found, err := d.queries.UpdateProject(ctx, proj)
	if err != nil {
		return db.Project{}, wrapErr(err)
	}
	if !found {
		return db.Project{}, ErrNotFound
	}
	return proj, nil
}

// DeleteProject satisfies the [Projects] interface.
func (d *DB) DeleteProject(ctx context.Context, id uint64) error {
	return wrapErr(d.queries.DeleteProject(ctx, id))
}

// GetProfile satisfies the [Profile] interface.
func (d *DB) GetProfile(ctx context.Context) (db.Profile, error) {
	prof, err := d.queries.GetProfile(ctx)
	return prof, wrapErr(err)
}

// UpsertProfile satisfies the [Profile] interface.
func (d *DB) UpsertProfile(ctx context.Context, prof db.Profile) (db.Profile, error) {
	existing, err := d.queries.GetProfile(ctx)
	switch {
	case err == nil:
		prof.ID = existing.ID
		prof.CreatedAt = existing.CreatedAt
	case errors.Is(wrapErr(err), ErrNotFound):
		prof.ID = d.ids.Next()
		prof.CreatedAt = d.now().UTC()
	default:
		return db.Profile{}, wrapErr(err)
	}
	prof.UpdatedAt = d.now().UTC()
	if err := d.queries.UpsertProfile(ctx, prof); err != nil {
		return db.Profile{}, wrapErr(err)
	}
	return d.GetProfile(ctx)
}

var _ Store = (*DB)(nil)
