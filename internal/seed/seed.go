// Package seed fills an empty database with plausible placeholder content so
// a fresh install renders a complete site before any real content exists.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/foliohq/folio/internal/storage"
	"github.com/foliohq/folio/internal/storage/db"
)

// ErrAlreadySeeded is returned when the database already holds a profile.
var ErrAlreadySeeded = errors.New("database already contains content")

// Run populates the store with placeholder content. The generator is seeded
// with a fixed value so repeated runs on fresh databases produce identical
// content.
func Run(ctx context.Context, logger *slog.Logger, store storage.Store) error {
	if _, err := store.GetProfile(ctx); err == nil {
		return ErrAlreadySeeded
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to check for existing content: %w", err)
	}

	faker := gofakeit.New(42)

	if err := seedProfile(ctx, store, faker); err != nil {
		return err
	}
	if err := seedNavigation(ctx, store); err != nil {
		return err
	}
	if err := seedSections(ctx, store, faker); err != nil {
		return err
	}
	if err := seedBlog(ctx, store, faker); err != nil {
		return err
	}
	if err := seedResume(ctx, store, faker); err != nil {
		return err
	}
	if err := seedProjects(ctx, store, faker); err != nil {
		return err
	}

	logger.InfoContext(ctx, "seeded placeholder content")
	return nil
}

func seedProfile(ctx context.Context, store storage.Store, faker *gofakeit.Faker) error {
	social, err := json.Marshal(map[string]string{
		"github":   "https://github.com/" + faker.Username(),
		"linkedin": "https://linkedin.com/in/" + faker.Username(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode social links: %w", err)
	}
	_, err = store.UpsertProfile(ctx, db.Profile{
		Name:        faker.Name(),
		Title:       faker.JobTitle(),
		Email:       faker.Email(),
		Phone:       faker.Phone(),
		Location:    faker.City() + ", " + faker.StateAbr(),
		Bio:         faker.Paragraph(1, 3, 12, " "),
		SocialLinks: social,
		Theme:       "dark",
	})
	if err != nil {
		return fmt.Errorf("failed to seed profile: %w", err)
	}
	return nil
}

func seedNavigation(ctx context.Context, store storage.Store) error {
	items := []db.NavigationItem{
		{Label: "Home", Href: "/", Icon: "home", Position: 0, Visible: true},
		{Label: "Projects", Href: "/projects", Icon: "code", Position: 1, Visible: true},
		{Label: "Blog", Href: "/blog", Icon: "pen", Position: 2, Visible: true},
		{Label: "Resume", Href: "/resume", Icon: "file", Position: 3, Visible: true},
		{Label: "Contact", Href: "/contact", Icon: "mail", Position: 4, Visible: true},
	}
	for _, item := range items {
		if _, err := store.CreateNavigationItem(ctx, item); err != nil {
			return fmt.Errorf("failed to seed navigation: %w", err)
		}
	}
	return nil
}

func seedSections(ctx context.Context, store storage.Store, faker *gofakeit.Faker) error {
	sections := []db.ContentSection{
		{
			SectionKey: "hero",
			Title:      "Hi, I build software.",
			Subtitle:   faker.JobTitle(),
			Content:    faker.Paragraph(1, 2, 10, " "),
		},
		{
			SectionKey: "about",
			Title:      "About",
			Content:    faker.Paragraph(2, 4, 12, "\n\n"),
		},
		{
			SectionKey: "contact",
			Title:      "Get in touch",
			Content:    "Drop me a line and I will get back to you.",
		},
	}
	for _, section := range sections {
		if _, err := store.UpsertContentSection(ctx, section); err != nil {
			return fmt.Errorf("failed to seed content section %q: %w", section.SectionKey, err)
		}
	}
	return nil
}

func seedBlog(ctx context.Context, store storage.Store, faker *gofakeit.Faker) error {
	now := time.Now().UTC()
	for i := range 3 {
		title := faker.Sentence(5)
		title = strings.TrimSuffix(title, ".")
		body := fmt.Sprintf("## %s\n\n%s\n\n%s\n",
			faker.Sentence(4),
			faker.Paragraph(2, 4, 10, "\n\n"),
			faker.Paragraph(1, 3, 10, " "),
		)
		post := db.BlogPost{
			Title:    title,
			Slug:     slugify(title),
			Excerpt:  faker.Sentence(12),
			Content:  body,
			Category: faker.RandomString([]string{"engineering", "notes", "tools"}),
			Tags:     []string{faker.HackerNoun(), faker.HackerNoun()},
			ReadTime: int64(3 + i),
		}
		if i < 2 {
			published := now.AddDate(0, 0, -7*(i+1))
			post.Published = true
			post.PublishedAt = &published
		}
		if _, err := store.CreateBlogPost(ctx, post); err != nil {
			return fmt.Errorf("failed to seed blog post: %w", err)
		}
	}
	return nil
}

func seedResume(ctx context.Context, store storage.Store, faker *gofakeit.Faker) error {
	experiences := []db.Experience{
		{
			Title:        faker.JobTitle(),
			Company:      faker.Company(),
			Location:     "Remote",
			StartDate:    "2022-03",
			Description:  faker.Paragraph(1, 3, 12, " "),
			Achievements: []string{faker.Sentence(8), faker.Sentence(8)},
			Technologies: []string{"Go", "SQLite", "Docker"},
			Position:     0,
		},
		{
			Title:        faker.JobTitle(),
			Company:      faker.Company(),
			Location:     faker.City() + ", " + faker.StateAbr(),
			StartDate:    "2019-06",
			EndDate:      "2022-02",
			Description:  faker.Paragraph(1, 3, 12, " "),
			Achievements: []string{faker.Sentence(8)},
			Technologies: []string{"TypeScript", "PostgreSQL"},
			Position:     1,
		},
	}
	for _, exp := range experiences {
		if _, err := store.CreateExperience(ctx, exp); err != nil {
			return fmt.Errorf("failed to seed experience: %w", err)
		}
	}

	_, err := store.CreateEducation(ctx, db.Education{
		Degree:      "B.S. Computer Science",
		Institution: faker.Company() + " University",
		Location:    faker.City() + ", " + faker.StateAbr(),
		StartYear:   "2015",
		EndYear:     "2019",
		Position:    0,
	})
	if err != nil {
		return fmt.Errorf("failed to seed education: %w", err)
	}

	categories := map[string][]string{
		"Languages":      {"Go", "TypeScript", "SQL"},
		"Infrastructure": {"Docker", "Linux", "SQLite"},
	}
	position := int64(0)
	for name, skills := range categories {
		cat, err := store.CreateSkillCategory(ctx, db.SkillCategory{Name: name, Position: position})
		if err != nil {
			return fmt.Errorf("failed to seed skill category: %w", err)
		}
		position++
		for i, skill := range skills {
			_, err := store.CreateSkill(ctx, db.Skill{
				CategoryID: cat.ID,
				Name:       skill,
				Level:      int64(faker.Number(60, 95)),
				Position:   int64(i),
			})
			if err != nil {
				return fmt.Errorf("failed to seed skill: %w", err)
			}
		}
	}
	return nil
}

func seedProjects(ctx context.Context, store storage.Store, faker *gofakeit.Faker) error {
	for i := range 4 {
		name := faker.AppName()
		proj := db.Project{
			Name:         name,
			Description:  faker.Sentence(14),
			Technologies: []string{"Go", faker.ProgrammingLanguage()},
			GithubURL:    "https://github.com/" + faker.Username() + "/" + slugify(name),
			Featured:     i < 2,
			Stars:        int64(faker.Number(0, 400)),
			Forks:        int64(faker.Number(0, 60)),
			Language:     "Go",
			Position:     int64(i),
		}
		if _, err := store.CreateProject(ctx, proj); err != nil {
			return fmt.Errorf("failed to seed project: %w", err)
		}
	}
	return nil
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
