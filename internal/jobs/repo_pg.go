package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// List returns every active job posting, newest first.
func (r *PGRepo) List(ctx context.Context) ([]JobRecord, error) {
	const query = `
SELECT id, title, company, location, description, requirements, skills, employment_type, salary, link, posted_date
FROM jobs
WHERE deleted_at IS NULL
ORDER BY posted_date DESC NULLS LAST, id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JobRecord
	for rows.Next() {
		var (
			job          JobRecord
			requirements []byte
			skills       []byte
			empType      sql.NullString
			salary       sql.NullString
			link         sql.NullString
			posted       sql.NullTime
		)
		if err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Company,
			&job.Location,
			&job.Description,
			&requirements,
			&skills,
			&empType,
			&salary,
			&link,
			&posted,
		); err != nil {
			return nil, err
		}
		if len(requirements) > 0 {
			if err := json.Unmarshal(requirements, &job.Requirements); err != nil {
				return nil, err
			}
		}
		if len(skills) > 0 {
			if err := json.Unmarshal(skills, &job.Skills); err != nil {
				return nil, err
			}
		}
		job.EmploymentType = empType.String
		job.Salary = salary.String
		job.Link = link.String
		if posted.Valid {
			t := posted.Time.UTC()
			job.PostedDate = &t
		}
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Insert stores a job posting. Used by the migrate/seed path.
func (r *PGRepo) Insert(ctx context.Context, job JobRecord) error {
	const query = `
INSERT INTO jobs (id, title, company, location, description, requirements, skills, employment_type, salary, link, posted_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO NOTHING`

	requirements, err := json.Marshal(job.Requirements)
	if err != nil {
		return err
	}
	skills, err := json.Marshal(job.Skills)
	if err != nil {
		return err
	}

	var posted sql.NullTime
	if job.PostedDate != nil {
		posted = sql.NullTime{Time: *job.PostedDate, Valid: true}
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.Title,
		job.Company,
		job.Location,
		job.Description,
		requirements,
		skills,
		nullString(job.EmploymentType),
		nullString(job.Salary),
		nullString(job.Link),
		posted,
		time.Now().UTC(),
	)
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
