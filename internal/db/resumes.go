package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const resumeColumns = `r.id, r.user_id, r.name, r.extracted_text,
	COALESCE(r.latex_source, ''), COALESCE(r.pdf_url, ''), r.created_at,
	(SELECT COUNT(*) FROM applications a WHERE a.resume_id = r.id)`

func scanResume(row pgx.Row) (*Resume, error) {
	var r Resume
	err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.ExtractedText,
		&r.LatexSource, &r.PDFURL, &r.CreatedAt, &r.ApplicationCount)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// InsertResume stores a new resume and returns its ID.
// At least one of extracted text and LaTeX source must be present.
func (db *DB) InsertResume(ctx context.Context, r *Resume) (uuid.UUID, error) {
	if strings.TrimSpace(r.ExtractedText) == "" && strings.TrimSpace(r.LatexSource) == "" {
		return uuid.Nil, fmt.Errorf("resume requires extracted text or LaTeX source")
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, name, extracted_text, latex_source, pdf_url)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		 RETURNING id`,
		r.UserID, r.Name, r.ExtractedText, r.LatexSource, r.PDFURL,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a resume by ID, including its derived application count.
// Returns nil without error when not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes r WHERE r.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumes retrieves a user's resumes, newest first, with application counts.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes r WHERE r.user_id = $1 ORDER BY r.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	return resumes, nil
}

// UpdateResume re-saves a resume's name, content, and compiled PDF reference.
func (db *DB) UpdateResume(ctx context.Context, r *Resume) error {
	if strings.TrimSpace(r.ExtractedText) == "" && strings.TrimSpace(r.LatexSource) == "" {
		return fmt.Errorf("resume requires extracted text or LaTeX source")
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE resumes SET name = $1, extracted_text = $2, latex_source = NULLIF($3, ''), pdf_url = NULLIF($4, '')
		 WHERE id = $5`,
		r.Name, r.ExtractedText, r.LatexSource, r.PDFURL, r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", r.ID)
	}
	return nil
}

// DeleteResume deletes a resume. Referencing applications keep their rows;
// the schema's ON DELETE SET NULL clears their resume reference.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}
