package db

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Account is a credential record for an administrative account. The hash and
// salt never leave the server; they are excluded from JSON marshaling.
type Account struct {
	ID           uint64       `json:"id,string"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	Salt         string       `json:"-"`
	Active       bool         `json:"-"`
	LastLoginAt  sql.NullTime `json:"-"`
	CreatedAt    time.Time    `json:"-"`
}

// Session is a logged-in admin session. The ID is an opaque bearer token
// carried by cookie and must never be logged.
type Session struct {
	ID        string
	AccountID uint64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NavigationItem is a single entry of the public site navigation.
type NavigationItem struct {
	ID       uint64 `json:"id,string"`
	Label    string `json:"label"`
	Href     string `json:"href"`
	Icon     string `json:"icon"`
	Position int64  `json:"order"`
	Visible  bool   `json:"isVisible"`
}

// ContentSection is a keyed block of site copy (hero, about, contact, ...).
// Metadata carries free-form section extras (images, links) as raw JSON.
type ContentSection struct {
	ID         uint64          `json:"id,string"`
	SectionKey string          `json:"sectionKey"`
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle"`
	Content    string          `json:"content"`
	Metadata   json.RawMessage `json:"metadata"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// BlogPost is a single post. Content is CommonMark Markdown; rendering to
// HTML happens at read time, not at rest.
type BlogPost struct {
	ID          uint64     `json:"id,string"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Published   bool       `json:"isPublished"`
	ReadTime    int64      `json:"readTime"`
	Views       int64      `json:"views"`
}

// Experience is a resume work-history entry. Dates use YYYY-MM; an empty
// EndDate marks a current position.
type Experience struct {
	ID           uint64   `json:"id,string"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	Technologies []string `json:"technologies"`
	Position     int64    `json:"order"`
}

// Education is a resume education entry.
type Education struct {
	ID          uint64 `json:"id,string"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	StartYear   string `json:"startYear"`
	EndYear     string `json:"endYear"`
	Description string `json:"description"`
	GPA         string `json:"gpa"`
	Position    int64  `json:"order"`
}

// SkillCategory groups skills for display.
type SkillCategory struct {
	ID       uint64 `json:"id,string"`
	Name     string `json:"name"`
	Position int64  `json:"order"`
}

// Skill is a single skill with a 1-100 proficiency level.
type Skill struct {
	ID         uint64 `json:"id,string"`
	CategoryID uint64 `json:"categoryId,string"`
	Name       string `json:"name"`
	Level      int64  `json:"level"`
	Position   int64  `json:"order"`
}

// Project is a portfolio project card.
type Project struct {
	ID           uint64    `json:"id,string"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	GithubURL    string    `json:"githubUrl"`
	LiveURL      string    `json:"liveUrl"`
	ImageURL     string    `json:"imageUrl"`
	Featured     bool      `json:"featured"`
	Stars        int64     `json:"stars"`
	Forks        int64     `json:"forks"`
	Language     string    `json:"language"`
	Position     int64     `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the site owner's profile and settings. There is at most one row.
type Profile struct {
	ID          uint64          `json:"id,string"`
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Location    string          `json:"location"`
	Bio         string          `json:"bio"`
	AvatarURL   string          `json:"avatarUrl"`
	ResumeURL   string          `json:"resumeUrl"`
	SocialLinks json.RawMessage `json:"socialLinks"`
	Theme       string          `json:"themePreference"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
