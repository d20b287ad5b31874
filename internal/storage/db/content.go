package db

import (
	"context"
	"database/sql"
	"time"
)

// ListNavigationItems returns navigation entries ordered by position.
func (q *Queries) ListNavigationItems(ctx context.Context) ([]NavigationItem, error) {
	const query = `
	select id, label, href, icon, position, visible
	from navigation_items order by position, id`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, func(rows *sql.Rows) (NavigationItem, error) {
		var item NavigationItem
		err := rows.Scan(&item.ID, &item.Label, &item.Href, &item.Icon, &item.Position, &item.Visible)
		return item, err
	})
}

// InsertNavigationItem creates a navigation entry.
func (q *Queries) InsertNavigationItem(ctx context.Context, item NavigationItem) error {
	const query = `
	insert into navigation_items (id, label, href, icon, position, visible)
	values (?, ?, ?, ?, ?, ?)`
	_, err := q.db.ExecContext(ctx, query,
		int64(item.ID), item.Label, item.Href, item.Icon, item.Position, item.Visible,
	)
	return err
}

// UpdateNavigationItem replaces an entry, reporting whether the row existed.
func (q *Queries) UpdateNavigationItem(ctx context.Context, item NavigationItem) (bool, error) {
	const query = `
	update navigation_items set label = ?, href = ?, icon = ?, position = ?, visible = ?
	where id = ?`
	res, err := q.db.ExecContext(ctx, query,
		item.Label, item.Href, item.Icon, item.Position, item.Visible, int64(item.ID),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteNavigationItem removes an entry.
func (q *Queries) DeleteNavigationItem(ctx context.Context, id uint64) error {
	_, err := q.db.ExecContext(ctx, `delete from navigation_items where id = ?`, int64(id))
	return err
}

// GetContentSection returns the section for a key.
func (q *Queries) GetContentSection(ctx context.Context, sectionKey string) (ContentSection, error) {
	const query = `
	select id, section_key, title, subtitle, content, metadata, updated_at
	from content_sections where section_key = ?`
	var section ContentSection
	var metadata sql.NullString
	err := q.db.QueryRowContext(ctx, query, sectionKey).Scan(
		&section.ID, &section.SectionKey, &section.Title, &section.Subtitle,
		&section.Content, &metadata, &section.UpdatedAt,
	)
	section.Metadata = scanJSON(metadata)
	return section, err
}

// UpsertContentSection creates or fully replaces a section by key.
func (q *Queries) UpsertContentSection(ctx context.Context, section ContentSection) error {
	const query = `
	insert into content_sections (id, section_key, title, subtitle, content, metadata, updated_at)
	values (?, ?, ?, ?, ?, ?, ?)
	on conflict (section_key) do update set
		title = excluded.title,
		subtitle = excluded.subtitle,
		content = excluded.content,
		metadata = excluded.metadata,
		updated_at = excluded.updated_at`
	_, err := q.db.ExecContext(ctx, query,
		int64(section.ID), section.SectionKey, section.Title, section.Subtitle,
		section.Content, nullJSON(section.Metadata), section.UpdatedAt,
	)
	return err
}

func scanBlogPost(rows *sql.Rows) (BlogPost, error) {
	var post BlogPost
	var tags string
	var publishedAt sql.NullTime
	err := rows.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content,
		&post.Category, &tags, &publishedAt, &post.CreatedAt, &post.UpdatedAt,
		&post.Published, &post.ReadTime, &post.Views,
	)
	if err != nil {
		return post, err
	}
	if publishedAt.Valid {
		post.PublishedAt = &publishedAt.Time
	}
	post.Tags, err = decodeStrings(tags)
	return post, err
}

const blogColumns = `id, title, slug, excerpt, content, category, tags,
	published_at, created_at, updated_at, published, read_time, views`

// ListBlogPosts returns posts newest-first. When publishedOnly is set, drafts
// are excluded.
func (q *Queries) ListBlogPosts(ctx context.Context, publishedOnly bool) ([]BlogPost, error) {
	query := `select ` + blogColumns + ` from blog_posts`
	if publishedOnly {
		query += ` where published = 1`
	}
	query += ` order by created_at desc, id desc`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanBlogPost)
}

// GetBlogPost returns a post by id.
func (q *Queries) GetBlogPost(ctx context.Context, id uint64) (BlogPost, error) {
	query := `select ` + blogColumns + ` from blog_posts where id = ?`
	rows, err := q.db.QueryContext(ctx, query, int64(id))
	if err != nil {
		return BlogPost{}, err
	}
	posts, err := collectRows(rows, scanBlogPost)
	if err != nil {
		return BlogPost{}, err
	}
	if len(posts) == 0 {
		return BlogPost{}, sql.ErrNoRows
	}
	return posts[0], nil
}

// InsertBlogPost creates a post.
func (q *Queries) InsertBlogPost(ctx context.Context, post BlogPost) error {
	tags, err := encodeStrings(post.Tags)
	if err != nil {
		return err
	}
	const query = `
	insert into blog_posts (id, title, slug, excerpt, content, category, tags,
		published_at, created_at, updated_at, published, read_time)
	values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = q.db.ExecContext(ctx, query,
		int64(post.ID), post.Title, post.Slug, post.Excerpt, post.Content,
		post.Category, tags, nullTime(post.PublishedAt), post.CreatedAt,
		post.UpdatedAt, post.Published, post.ReadTime,
	)
	return err
}

// UpdateBlogPost replaces a post, reporting whether the row existed. Views
// and creation time are not client-writable.
func (q *Queries) UpdateBlogPost(ctx context.Context, post BlogPost) (bool, error) {
	tags, err := encodeStrings(post.Tags)
	if err != nil {
		return false, err
	}
	const query = `
	update blog_posts set title = ?, slug = ?, excerpt = ?, content = ?,
		category = ?, tags = ?, published_at = ?, updated_at = ?,
		published = ?, read_time = ?
	where id = ?`
	res, err := q.db.ExecContext(ctx, query,
		post.Title, post.Slug, post.Excerpt, post.Content, post.Category, tags,
		nullTime(post.PublishedAt), post.UpdatedAt, post.Published, post.ReadTime,
		int64(post.ID),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteBlogPost removes a post.
func (q *Queries) DeleteBlogPost(ctx context.Context, id uint64) error {
	_, err := q.db.ExecContext(ctx, `delete from blog_posts where id = ?`, int64(id))
	return err
}

// IncrementBlogPostViews bumps the view counter for a post.
func (q *Queries) IncrementBlogPostViews(ctx context.Context, id uint64) error {
	_, err := q.db.ExecContext(ctx,
		`update blog_posts set views = views + 1 where id = ?`, int64(id))
	return err
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
