package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hareesh3232/Mock-test-interview/internal/llm"
)

type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `
id, user_id, file_name, storage_key, mime_type, size_bytes, status,
parsed_data, skills, experience_years, education_level,
error_code, error_message, uploaded_at, parsed_at`

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, file_name, storage_key, mime_type, size_bytes, status, uploaded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.FileName,
		resume.StorageKey,
		resume.MimeType,
		resume.SizeBytes,
		resume.Status,
	)
	return err
}

func (r *PGRepo) Get(ctx context.Context, resumeID string) (Resume, error) {
	query := fmt.Sprintf(`SELECT %s FROM resumes WHERE id = $1 LIMIT 1`, resumeColumns)
	return scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
}

func (r *PGRepo) GetByUser(ctx context.Context, userID, resumeID string) (Resume, error) {
	query := fmt.Sprintf(`SELECT %s FROM resumes WHERE id = $1 AND user_id = $2 LIMIT 1`, resumeColumns)
	return scanResume(r.DB.QueryRowContext(ctx, query, resumeID, userID))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	query := fmt.Sprintf(`
SELECT %s FROM resumes
WHERE user_id = $1
ORDER BY uploaded_at DESC
LIMIT $2 OFFSET $3`, resumeColumns)
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resumes := make([]Resume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}
	return resumes, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	const query = `DELETE FROM resumes WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, resumeID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503 is the foreign_key_violation SQLSTATE.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrInUse
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, resumeID, status string, errorCode, errorMessage *string) error {
	const query = `
UPDATE resumes
SET status = $2,
    error_code = COALESCE($3, error_code),
    error_message = COALESCE($4, error_message)
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, resumeID, status, errorCode, errorMessage)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) UpdateParsed(ctx context.Context, resumeID string, parsed llm.ParsedResume, parsedAt time.Time) error {
	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		return fmt.Errorf("marshal parsed data: %w", err)
	}
	skillsJSON, err := json.Marshal(parsed.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	const query = `
UPDATE resumes
SET status = $2,
    parsed_data = $3,
    skills = $4,
    experience_years = $5,
    education_level = $6,
    error_code = NULL,
    error_message = NULL,
    parsed_at = $7
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		resumeID,
		StatusParsed,
		parsedJSON,
		skillsJSON,
		parsed.ExperienceYears,
		nullIfEmpty(parsed.EducationLevel),
		parsedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var parsedData []byte
	var skills []byte
	var experienceYears sql.NullFloat64
	var educationLevel sql.NullString
	var errorCode sql.NullString
	var errorMessage sql.NullString
	var parsedAt sql.NullTime

	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.FileName,
		&resume.StorageKey,
		&resume.MimeType,
		&resume.SizeBytes,
		&resume.Status,
		&parsedData,
		&skills,
		&experienceYears,
		&educationLevel,
		&errorCode,
		&errorMessage,
		&resume.UploadedAt,
		&parsedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}

	if len(parsedData) > 0 {
		var parsed llm.ParsedResume
		if err := json.Unmarshal(parsedData, &parsed); err != nil {
			return Resume{}, fmt.Errorf("unmarshal parsed data: %w", err)
		}
		resume.Parsed = &parsed
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &resume.Skills); err != nil {
			return Resume{}, fmt.Errorf("unmarshal skills: %w", err)
		}
	}
	if experienceYears.Valid {
		resume.ExperienceYears = experienceYears.Float64
	}
	if educationLevel.Valid {
		resume.EducationLevel = educationLevel.String
	}
	if errorCode.Valid {
		resume.ErrorCode = errorCode.String
	}
	if errorMessage.Valid {
		resume.ErrorMessage = errorMessage.String
	}
	if parsedAt.Valid {
		t := parsedAt.Time
		resume.ParsedAt = &t
	}
	return resume, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
