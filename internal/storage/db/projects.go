package db

import (
	"context"
	"database/sql"
)

func scanProject(rows *sql.Rows) (Project, error) {
	var proj Project
	var technologies string
	err := rows.Scan(
		&proj.ID, &proj.Name, &proj.Description, &technologies, &proj.GithubURL,
		&proj.LiveURL, &proj.ImageURL, &proj.Featured, &proj.Stars, &proj.Forks,
		&proj.Language, &proj.Position, &proj.CreatedAt, &proj.UpdatedAt,
	)
	if err != nil {
		return proj, err
	}
	proj.Technologies, err = decodeStrings(technologies)
	return proj, err
}

const projectColumns = `id, name, description, technologies, github_url,
	live_url, image_url, featured, stars, forks, language, position,
	created_at, updated_at`

// ListProjects returns projects ordered by position. When featuredOnly is
// set, only featured projects are returned.
func (q *Queries) ListProjects(ctx context.Context, featuredOnly bool) ([]Project, error) {
	query := `select ` + projectColumns + ` from projects`
	if featuredOnly {
		query += ` where featured = 1`
	}
	query += ` order by position, id`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanProject)
}

// InsertProject creates a project.
func (q *Queries) InsertProject(ctx context.Context, proj Project) error {
	technologies, err := encodeStrings(proj.Technologies)
	if err != nil {
		return err
	}
	const query = `
	insert into projects (id, name, description, technologies, github_url,
		live_url, image_url, featured, stars, forks, language, position,
		created_at, updated_at)
	values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = q.db.ExecContext(ctx, query,
		int64(proj.ID), proj.Name, proj.Description, technologies, proj.GithubURL,
		proj.LiveURL, proj.ImageURL, proj.Featured, proj.Stars, proj.Forks,
		proj.Language, proj.Position, proj.CreatedAt, proj.UpdatedAt,
	)
	return err
}

// UpdateProject replaces a project, reporting whether the row existed.
func (q *Queries) UpdateProject(ctx context.Context, proj Project) (bool, error) {
	technologies, err := encodeStrings(proj.Technologies)
	if err != nil {
		return false, err
	}
	const query = `
	update projects set name = ?, description = ?, technologies = ?,
		github_url = ?, live_url = ?, image_url = ?, featured = ?, stars = ?,
		forks = ?, language = ?, position = ?, updated_at = ?
	where id = ?`
	res, err := q.db.ExecContext(ctx, query,
		proj.Name, proj.Description, technologies, proj.GithubURL, proj.LiveURL,
		proj.ImageURL, proj.Featured, proj.Stars, proj.Forks, proj.Language,
		proj.Position, proj.UpdatedAt, int64(proj.ID),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteProject removes a project.
func (q *Queries) DeleteProject(ctx context.Context, id uint64) error {
	_, err := q.db.ExecContext(ctx, `delete from projects where id = ?`, int64(id))
	return err
}

// GetProfile returns the singleton profile row.
func (q *Queries) GetProfile(ctx context.Context) (Profile, error) {
	const query = `
	select id, name, title, email, phone, location, bio, avatar_url,
		resume_url, social_links, theme, created_at, updated_at
	from profile order by id limit 1`
	var prof Profile
	var socialLinks sql.NullString
	err := q.db.QueryRowContext(ctx, query).Scan(
		&prof.ID, &prof.Name, &prof.Title, &prof.Email, &prof.Phone,
		&prof.Location, &prof.Bio, &prof.AvatarURL, &prof.ResumeURL,
		&socialLinks, &prof.Theme, &prof.CreatedAt, &prof.UpdatedAt,
	)
	prof.SocialLinks = scanJSON(socialLinks)
	return prof, err
}

// UpsertProfile creates or fully replaces the singleton profile row.
func (q *Queries) UpsertProfile(ctx context.Context, prof Profile) error {
	const query = `
	insert into profile (id, name, title, email, phone, location, bio,
		avatar_url, resume_url, social_links, theme, created_at, updated_at)
	values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	on conflict (id) do update set
		name = excluded.name,
		title = excluded.title,
		email = excluded.email,
		phone = excluded.phone,
		location = excluded.location,
		bio = excluded.bio,
		avatar_url = excluded.avatar_url,
		resume_url = excluded.resume_url,
		social_links = excluded.social_links,
		theme = excluded.theme,
		updated_at = excluded.updated_at`
	_, err := q.db.ExecContext(ctx, query,
		int64(prof.ID), prof.Name, prof.Title, prof.Email, prof.Phone,
		prof.Location, prof.Bio, prof.AvatarURL, prof.ResumeURL,
		nullJSON(prof.SocialLinks), prof.Theme, prof.CreatedAt, prof.UpdatedAt,
	)
	return err
}
