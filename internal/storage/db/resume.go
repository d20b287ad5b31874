package db

import (
	"context"
	"database/sql"
)

// ListExperiences returns work-history entries ordered by position.
func (q *Queries) ListExperiences(ctx context.Context) ([]Experience, error) {
	const query = `
	select id, title, company, location, start_date, end_date, description,
		achievements, technologies, position
	from experiences order by position, id`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, func(rows *sql.Rows) (Experience, error) {
		var exp Experience
		var achievements, technologies string
		err := rows.Scan(
			&exp.ID, &exp.Title, &exp.Company, &exp.Location, &exp.StartDate,
			&exp.EndDate, &exp.Description, &achievements, &technologies, &exp.Position,
		)
		if err != nil {
			return exp, err
		}
		if exp.Achievements, err = decodeStrings(achievements); err != nil {
			return exp, err
		}
		exp.Technologies, err = decodeStrings(technologies)
		return exp, err
	})
}

// InsertExperience creates a work-history entry.
func (q *Queries) InsertExperience(ctx context.Context, exp Experience) error {
	achievements, err := encodeStrings(exp.Achievements)
	if err != nil {
		return err
	}
	technologies, err := encodeStrings(exp.Technologies)
	if err != nil {
		return err
	}
	const query = `
	insert into experiences (id, title, company, location, start_date, end_date,
		description, achievements, technologies, position)
	values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = q.db.ExecContext(ctx, query,
		int64(exp.ID), exp.Title, exp.Company, exp.Location, exp.StartDate,
		exp.EndDate, exp.Description, achievements, technologies, exp.Position,
	)
	return err
}

// UpdateExperience replaces an entry, reporting whether the row existed.
func (q *Queries) UpdateExperience(ctx context.Context, exp Experience) (bool, error) {
	achievements, err := encodeStrings(exp.Achievements)
	if err != nil {
		return false, err
	}
	technologies, err := encodeStrings(exp.Technologies)
	if err != nil {
		return false, err
	}
	const query = `
	update experiences set title = ?, company = ?, location = ?, start_date = ?,
		end_date = ?, description = ?, achievements = ?, technologies = ?, position = ?
	where id = ?`
	res, err := q.db.ExecContext(ctx, query,
		exp.Title, exp.Company, exp.Location, exp.StartDate, exp.EndDate,
		exp.Description, achievements, technologies, exp.Position, int64(exp.ID),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteExperience removes an entry.
func (q *Queries) DeleteExperience(ctx context.Context, id uint64) error {
	_, err := q.db.ExecContext(ctx, `delete from experiences where id = ?`, int64(id))
	return err
}

// ListEducation returns education entries ordered by position.
func (q *Queries) ListEducation(ctx context.Context) ([]Education, error) {
	const query = `
	select id, degree, institution, location, start_year, end_year, description,
		gpa, position
	from education order by position, id`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, func(rows *sql.Rows) (Education, error) {
		var edu Education
		err := rows.Scan(
			&edu.ID, &edu.Degree, &edu.Institution, &edu.Location, &edu.StartYear,
			&edu.EndYear, &edu.Description, &edu.GPA, &edu.Position,
		)
		return edu, err
	})
}

// InsertEducation creates an education entry.
func (q *Queries) InsertEducation(ctx context.Context, edu Education) error {
	const query = `
	insert into education (id, degree, institution, location, start_year,
		end_year, description, gpa, position)
	values (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := q.db.ExecContext(ctx, query,
		int64(edu.ID), edu.Degree, edu.Institution, edu.Location, edu.StartYear,
		edu.EndYear, edu.Description, edu.GPA, edu.Position,
	)
	return err
}

// UpdateEducation replaces an entry, reporting whether the row existed.
func (q *Queries) UpdateEducation(ctx context.Context, edu Education) (bool, error) {
	const query = `
	update education set degree = ?, institution = ?, location = ?,
		start_year = ?, end_year = ?, description = ?, gpa = ?, position = ?
	where id = ?`
	res, err := q.db.ExecContext(ctx, query,
		edu.Degree, edu.Institution, edu.Location, edu.StartYear, edu.EndYear,
		edu.Description, edu.GPA, edu.Position, int64(edu.ID),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteEducation removes an entry.
func (q *Queries) DeleteEducation(ctx context.Context, id uint64) error {
	_, err := q.db.ExecContext(ctx, `delete from education where id = ?`, int64(id))
	return err
}

// ListSkillCategories returns skill categories ordered by position.
func (q *Queries) ListSkillCategories(ctx context.Context) ([]SkillCategory, error) {
	const query = `select id, name, position from skill_categories order by position, id`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, func(rows *sql.Rows) (SkillCategory, error) {
		var cat SkillCategory
		err := rows.Scan(&cat.ID, &cat.Name, &cat.Position)
		return cat, err
	})
}

// InsertSkillCategory creates a category.
func (q *Queries) InsertSkillCategory(ctx context.Context, cat SkillCategory) error {
	const query = `insert into skill_categories (id, name, position) values (?, ?, ?)`
	_, err := q.db.ExecContext(ctx, query, int64(cat.ID), cat.Name, cat.Position)
	return err
}

// DeleteSkillCategory removes a category; its skills cascade.
func (q *Queries) DeleteSkillCategory(ctx context.Context, id uint64) error {
	_, err := q.db.ExecContext(ctx, `delete from skill_categories where id = ?`, int64(id))
	return err
}

// ListSkills returns all skills ordered by category then position.
func (q *Queries) ListSkills(ctx context.Context) ([]Skill, error) {
	const query = `
	select id, category_id, name, level, position
	from skills order by category_id, position, id`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, func(rows *sql.Rows) (Skill, error) {
		var skill Skill
		err := rows.Scan(&skill.ID, &skill.CategoryID, &skill.Name, &skill.Level, &skill.Position)
		return skill, err
	})
}

// InsertSkill creates a skill.
func (q *Queries) InsertSkill(ctx context.Context, skill Skill) error {
	const query = `
	insert into skills (id, category_id, name, level, position)
	values (?, ?, ?, ?, ?)`
	_, err := q.db.ExecContext(ctx, query,
		int64(skill.ID), int64(skill.CategoryID), skill.Name, skill.Level, skill.Position,
	)
	return err
}

// DeleteSkill removes a skill.
func (q *Queries) DeleteSkill(ctx context.Context, id uint64) error {
	_, err := q.db.ExecContext(ctx, `delete from skills where id = ?`, int64(id))
	return err
}
