package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, job Job) error {
	requirements, err := json.Marshal(job.Requirements)
	if err != nil {
		return fmt.Errorf("marshal requirements: %w", err)
	}
	skills, err := json.Marshal(job.SkillsRequired)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	const query = `
INSERT INTO jobs (id, title, company, location, description, requirements, skills_required,
                  salary_min, salary_max, salary_currency, job_type, experience_level,
                  remote_work, job_url, source, posted_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now())
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  company = EXCLUDED.company,
  location = EXCLUDED.location,
  description = EXCLUDED.description,
  requirements = EXCLUDED.requirements,
  skills_required = EXCLUDED.skills_required,
  salary_min = EXCLUDED.salary_min,
  salary_max = EXCLUDED.salary_max,
  salary_currency = EXCLUDED.salary_currency,
  job_type = EXCLUDED.job_type,
  experience_level = EXCLUDED.experience_level,
  remote_work = EXCLUDED.remote_work,
  job_url = EXCLUDED.job_url,
  source = EXCLUDED.source,
  posted_date = EXCLUDED.posted_date`
	_, err = r.DB.ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.Company,
		nullIfEmpty(job.Location),
		job.Description,
		requirements,
		skills,
		nullIfZero(job.SalaryMin),
		nullIfZero(job.SalaryMax),
		nullIfEmpty(job.SalaryCurrency),
		nullIfEmpty(job.JobType),
		nullIfEmpty(job.ExperienceLevel),
		job.RemoteWork,
		nullIfEmpty(job.JobURL),
		job.Source,
		job.PostedDate,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const query = `
SELECT id, title, company, location, description, requirements, skills_required,
       salary_min, salary_max, salary_currency, job_type, experience_level,
       remote_work, job_url, source, posted_date
FROM jobs
WHERE id = $1
LIMIT 1`
	var job Job
	var location sql.NullString
	var requirements []byte
	var skills []byte
	var salaryMin sql.NullFloat64
	var salaryMax sql.NullFloat64
	var salaryCurrency sql.NullString
	var jobType sql.NullString
	var experienceLevel sql.NullString
	var jobURL sql.NullString
	var postedDate sql.NullTime

	err := r.DB.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&location,
		&job.Description,
		&requirements,
		&skills,
		&salaryMin,
		&salaryMax,
		&salaryCurrency,
		&jobType,
		&experienceLevel,
		&job.RemoteWork,
		&jobURL,
		&job.Source,
		&postedDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}

	if location.Valid {
		job.Location = location.String
	}
	if len(requirements) > 0 {
		if err := json.Unmarshal(requirements, &job.Requirements); err != nil {
			return Job{}, fmt.Errorf("unmarshal requirements: %w", err)
		}
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &job.SkillsRequired); err != nil {
			return Job{}, fmt.Errorf("unmarshal skills: %w", err)
		}
	}
	if salaryMin.Valid {
		job.SalaryMin = salaryMin.Float64
	}
	if salaryMax.Valid {
		job.SalaryMax = salaryMax.Float64
	}
	if salaryCurrency.Valid {
		job.SalaryCurrency = salaryCurrency.String
	}
	if jobType.Valid {
		job.JobType = jobType.String
	}
	if experienceLevel.Valid {
		job.ExperienceLevel = experienceLevel.String
	}
	if jobURL.Valid {
		job.JobURL = jobURL.String
	}
	if postedDate.Valid {
		job.PostedDate = postedDate.Time
	}
	return job, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullIfZero(value float64) any {
	if value == 0 {
		return nil
	}
	return value
}
