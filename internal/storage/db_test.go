package storage

import (
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/storage/db"
)

func TestDB(t *testing.T) {
	t.Parallel()

	store, err := NewDB(
		t.Context(),
		slog.New(slog.DiscardHandler),
		filepath.Join(t.TempDir(), "db.sqlite"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	count, err := store.CountAccounts(t.Context())
	require.NoError(t, err)
	assert.Zero(t, count)

	t.Run("AccountCRUD", func(t *testing.T) {
		t.Parallel()

		acct, err := store.CreateAccount(t.Context(), db.Account{
			Username:     "admin",
			PasswordHash: "hash",
			Salt:         "salt",
			Active:       true,
		})
		require.NoError(t, err)
		assert.NotZero(t, acct.ID)

		_, err = store.CreateAccount(t.Context(), db.Account{
			Username:     "admin",
			PasswordHash: "otherhash",
			Salt:         "othersalt",
		})
		require.ErrorIs(t, err, ErrAlreadyExists)

		actual, err := store.GetAccountByUsername(t.Context(), "admin")
		require.NoError(t, err)
		assert.Equal(t, acct.ID, actual.ID)
		assert.Equal(t, "hash", actual.PasswordHash)
		assert.Equal(t, "salt", actual.Salt)
		assert.True(t, actual.Active)

		_, err = store.GetAccountByUsername(t.Context(), "nobody")
		require.ErrorIs(t, err, ErrNotFound)

		_, err = store.GetAccount(t.Context(), 1)
		require.ErrorIs(t, err, ErrNotFound)

		err = store.UpdateAccountPassword(t.Context(), acct.ID, "newhash", "newsalt")
		require.NoError(t, err)
		actual, err = store.GetAccount(t.Context(), acct.ID)
		require.NoError(t, err)
		assert.Equal(t, "newhash", actual.PasswordHash)
		assert.Equal(t, "newsalt", actual.Salt)

		loginAt := time.Now().UTC()
		err = store.UpdateAccountLastLogin(t.Context(), acct.ID, loginAt)
		require.NoError(t, err)
		actual, err = store.GetAccount(t.Context(), acct.ID)
		require.NoError(t, err)
		require.True(t, actual.LastLoginAt.Valid)
		assert.WithinDuration(t, loginAt, actual.LastLoginAt.Time, time.Second)

		require.NoError(t, store.DeleteAccount(t.Context(), acct.ID))
		_, err = store.GetAccount(t.Context(), acct.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Sessions", func(t *testing.T) {
		t.Parallel()

		acct, err := store.CreateAccount(t.Context(), db.Account{
			Username:     "sessions_user",
			PasswordHash: "hash",
			Salt:         "salt",
			Active:       true,
		})
		require.NoError(t, err)

		now := time.Now().UTC()
		session := db.Session{
			ID:        "sess-1",
			AccountID: acct.ID,
			ExpiresAt: now.Add(time.Hour),
			CreatedAt: now,
		}
		require.NoError(t, store.CreateSession(t.Context(), session))

		err = store.CreateSession(t.Context(), session)
		require.ErrorIs(t, err, ErrAlreadyExists)

		// Session rows must belong to an account.
		err = store.CreateSession(t.Context(), db.Session{
			ID:        "sess-orphan",
			AccountID: 999,
			ExpiresAt: now.Add(time.Hour),
			CreatedAt: now,
		})
		require.Error(t, err)

		actual, err := store.GetSession(t.Context(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.AccountID, actual.AccountID)
		assert.WithinDuration(t, session.ExpiresAt, actual.ExpiresAt, time.Second)

		// The conditional delete must not remove a live session.
		require.NoError(t, store.DeleteSessionIfExpired(t.Context(), session.ID, now))
		_, err = store.GetSession(t.Context(), session.ID)
		require.NoError(t, err)

		require.NoError(t, store.DeleteSessionIfExpired(t.Context(), session.ID, now.Add(2*time.Hour)))
		_, err = store.GetSession(t.Context(), session.ID)
		require.ErrorIs(t, err, ErrNotFound)

		// Deleting is idempotent.
		require.NoError(t, store.DeleteSession(t.Context(), session.ID))

		expired := db.Session{
			ID:        "sess-expired",
			AccountID: acct.ID,
			ExpiresAt: now.Add(-time.Hour),
			CreatedAt: now.Add(-2 * time.Hour),
		}
		live := db.Session{
			ID:        "sess-live",
			AccountID: acct.ID,
			ExpiresAt: now.Add(time.Hour),
			CreatedAt: now,
		}
		require.NoError(t, store.CreateSession(t.Context(), expired))
		require.NoError(t, store.CreateSession(t.Context(), live))

		n, err := store.DeleteExpiredSessions(t.Context(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		_, err = store.GetSession(t.Context(), live.ID)
		require.NoError(t, err)

		n, err = store.DeleteSessionsForAccount(t.Context(), acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		_, err = store.GetSession(t.Context(), live.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Navigation", func(t *testing.T) {
		t.Parallel()

		items, err := store.ListNavigationItems(t.Context())
		require.NoError(t, err)
		assert.Empty(t, items)

		second, err := store.CreateNavigationItem(t.Context(), db.NavigationItem{
			Label: "Blog", Href: "/blog", Position: 1, Visible: true,
		})
		require.NoError(t, err)
		first, err := store.CreateNavigationItem(t.Context(), db.NavigationItem{
			Label: "Home", Href: "/", Position: 0, Visible: true,
		})
		require.NoError(t, err)

		items, err = store.ListNavigationItems(t.Context())
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, []db.NavigationItem{first, second}, items)

		first.Label = "Start"
		updated, err := store.UpdateNavigationItem(t.Context(), first)
		require.NoError(t, err)
		assert.Equal(t, "Start", updated.Label)

		_, err = store.UpdateNavigationItem(t.Context(), db.NavigationItem{ID: 12345, Label: "x"})
		require.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, store.DeleteNavigationItem(t.Context(), second.ID))
		require.NoError(t, store.DeleteNavigationItem(t.Context(), second.ID))
		items, err = store.ListNavigationItems(t.Context())
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("ContentSections", func(t *testing.T) {
		t.Parallel()

		_, err := store.GetContentSection(t.Context(), "hero")
		require.ErrorIs(t, err, ErrNotFound)

		created, err := store.UpsertContentSection(t.Context(), db.ContentSection{
			SectionKey: "hero",
			Title:      "Hello",
			Content:    "welcome",
			Metadata:   json.RawMessage(`{"cta":"Contact"}`),
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.JSONEq(t, `{"cta":"Contact"}`, string(created.Metadata))

		// Upserting the same key keeps the row identity.
		replaced, err := store.UpsertContentSection(t.Context(), db.ContentSection{
			SectionKey: "hero",
			Title:      "Hello again",
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, replaced.ID)
		assert.Equal(t, "Hello again", replaced.Title)
		assert.Nil(t, replaced.Metadata)
	})

	t.Run("Blog", func(t *testing.T) {
		t.Parallel()

		draft, err := store.CreateBlogPost(t.Context(), db.BlogPost{
			Title:   "Draft",
			Slug:    "draft",
			Content: "wip",
			Tags:    []string{"go", "sqlite"},
		})
		require.NoError(t, err)
		assert.NotZero(t, draft.ID)
		assert.Equal(t, []string{"go", "sqlite"}, draft.Tags)
		assert.Nil(t, draft.PublishedAt)
		assert.Zero(t, draft.Views)
		assert.False(t, draft.CreatedAt.IsZero())

		_, err = store.CreateBlogPost(t.Context(), db.BlogPost{Title: "Dup", Slug: "draft"})
		require.ErrorIs(t, err, ErrAlreadyExists)

		publishedAt := time.Now().UTC()
		published, err := store.CreateBlogPost(t.Context(), db.BlogPost{
			Title:       "Shipped",
			Slug:        "shipped",
			Content:     "done",
			Published:   true,
			PublishedAt: &publishedAt,
		})
		require.NoError(t, err)
		require.NotNil(t, published.PublishedAt)

		posts, err := store.ListBlogPosts(t.Context(), true)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, published.ID, posts[0].ID)

		posts, err = store.ListBlogPosts(t.Context(), false)
		require.NoError(t, err)
		assert.Len(t, posts, 2)

		require.NoError(t, store.IncrementBlogPostViews(t.Context(), draft.ID))
		actual, err := store.GetBlogPost(t.Context(), draft.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), actual.Views)

		draft.Title = "Draft v2"
		updated, err := store.UpdateBlogPost(t.Context(), draft)
		require.NoError(t, err)
		assert.Equal(t, "Draft v2", updated.Title)
		assert.Equal(t, int64(1), updated.Views) // views are not client-writable

		_, err = store.UpdateBlogPost(t.Context(), db.BlogPost{ID: 12345, Slug: "missing"})
		require.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, store.DeleteBlogPost(t.Context(), draft.ID))
		_, err = store.GetBlogPost(t.Context(), draft.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Resume", func(t *testing.T) {
		t.Parallel()

		exp, err := store.CreateExperience(t.Context(), db.Experience{
			Title:        "Engineer",
			Company:      "Initech",
			StartDate:    "2020-01",
			Achievements: []string{"shipped the thing"},
			Technologies: []string{"Go"},
		})
		require.NoError(t, err)

		exps, err := store.ListExperiences(t.Context())
		require.NoError(t, err)
		require.Len(t, exps, 1)
		assert.Equal(t, exp, exps[0])

		exp.EndDate = "2023-06"
		_, err = store.UpdateExperience(t.Context(), exp)
		require.NoError(t, err)
		_, err = store.UpdateExperience(t.Context(), db.Experience{ID: 12345})
		require.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, store.DeleteExperience(t.Context(), exp.ID))

		edu, err := store.CreateEducation(t.Context(), db.Education{
			Degree:      "B.S. Computer Science",
			Institution: "State",
			StartYear:   "2015",
			EndYear:     "2019",
		})
		require.NoError(t, err)
		edus, err := store.ListEducation(t.Context())
		require.NoError(t, err)
		require.Len(t, edus, 1)
		assert.Equal(t, edu, edus[0])

		cat, err := store.CreateSkillCategory(t.Context(), db.SkillCategory{Name: "Languages"})
		require.NoError(t, err)
		skill, err := store.CreateSkill(t.Context(), db.Skill{
			CategoryID: cat.ID,
			Name:       "Go",
			Level:      90,
		})
		require.NoError(t, err)

		skills, err := store.ListSkills(t.Context())
		require.NoError(t, err)
		require.Len(t, skills, 1)
		assert.Equal(t, skill, skills[0])

		// Deleting a category cascades to its skills.
		require.NoError(t, store.DeleteSkillCategory(t.Context(), cat.ID))
		skills, err = store.ListSkills(t.Context())
		require.NoError(t, err)
		assert.Empty(t, skills)
	})

	t.Run("Projects", func(t *testing.T) {
		t.Parallel()

		featured, err := store.CreateProject(t.Context(), db.Project{
			Name:         "folio",
			Description:  "portfolio backend",
			Technologies: []string{"Go", "SQLite"},
			Featured:     true,
		})
		require.NoError(t, err)
		_, err = store.CreateProject(t.Context(), db.Project{
			Name:         "scratchpad",
			Description:  "experiments",
			Technologies: []string{},
		})
		require.NoError(t, err)

		projs, err := store.ListProjects(t.Context(), true)
		require.NoError(t, err)
		require.Len(t, projs, 1)
		assert.Equal(t, featured.ID, projs[0].ID)

		projs, err = store.ListProjects(t.Context(), false)
		require.NoError(t, err)
		assert.Len(t, projs, 2)

		featured.Stars = 12
		updated, err := store.UpdateProject(t.Context(), featured)
		require.NoError(t, err)
		assert.Equal(t, int64(12), updated.Stars)

		_, err = store.UpdateProject(t.Context(), db.Project{ID: 12345})
		require.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, store.DeleteProject(t.Context(), featured.ID))
	})

	t.Run("Profile", func(t *testing.T) {
		t.Parallel()

		_, err := store.GetProfile(t.Context())
		require.ErrorIs(t, err, ErrNotFound)

		created, err := store.UpsertProfile(t.Context(), db.Profile{
			Name:  "Ada",
			Title: "Engineer",
			Email: "ada@example.com",
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		// The profile is a singleton: repeat upserts keep the row identity.
		replaced, err := store.UpsertProfile(t.Context(), db.Profile{
			Name:  "Ada L.",
			Title: "Staff Engineer",
			Email: "ada@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, replaced.ID)
		assert.Equal(t, "Ada L.", replaced.Name)
		assert.WithinDuration(t, created.CreatedAt, replaced.CreatedAt, time.Second)
	})
}
