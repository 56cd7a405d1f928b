package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/applytrack/internal/types"
)

const applicationColumns = `id, user_id, company, job_title, locations, job_url,
	COALESCE(job_description, ''), job_type, category, COALESCE(work_arrangement, ''),
	status, COALESCE(notes, ''), resume_id, created_at`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.UserID, &a.Company, &a.JobTitle, &a.Locations, &a.JobURL,
		&a.JobDescription, &a.JobType, &a.Category, &a.WorkArrangement,
		&a.Status, &a.Notes, &a.ResumeID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// InsertApplication stores a new application and returns its ID.
// Each insert is its own transaction; bulk callers rely on that for
// partial-success semantics.
func (db *DB) InsertApplication(ctx context.Context, a *Application) (uuid.UUID, error) {
	status := a.Status
	if status == "" {
		status = types.StatusYetToApply
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (user_id, company, job_title, locations, job_url, job_description,
		                           job_type, category, work_arrangement, status, notes, resume_id)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, NULLIF($9, ''), $10, NULLIF($11, ''), $12)
		 RETURNING id`,
		a.UserID, a.Company, a.JobTitle, a.Locations, a.JobURL, a.JobDescription,
		a.JobType, a.Category, string(a.WorkArrangement), status, a.Notes, a.ResumeID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert application: %w", err)
	}
	return id, nil
}

// GetApplication retrieves an application by ID. Returns nil without error when not found.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	a, err := scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

// ListApplications retrieves a user's applications, newest first.
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *a)
	}
	return apps, nil
}

// UpdateApplication updates the mutable fields of an application.
func (db *DB) UpdateApplication(ctx context.Context, a *Application) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET company = $1, job_title = $2, locations = $3, job_url = $4,
		        job_description = NULLIF($5, ''), job_type = $6, category = $7,
		        work_arrangement = NULLIF($8, ''), status = $9, notes = NULLIF($10, ''), resume_id = $11
		 WHERE id = $12`,
		a.Company, a.JobTitle, a.Locations, a.JobURL, a.JobDescription, a.JobType, a.Category,
		string(a.WorkArrangement), a.Status, a.Notes, a.ResumeID, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", a.ID)
	}
	return nil
}

// UpdateApplicationStatus moves an application to a new pipeline status.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status types.Status) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// DeleteApplication deletes an application by ID.
func (db *DB) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// CountApplicationsByStatus returns the per-status breakdown for a user's
// applications. Statuses with no applications are omitted.
func (db *DB) CountApplicationsByStatus(ctx context.Context, userID uuid.UUID) ([]StatusCount, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM applications WHERE user_id = $1 GROUP BY status`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, nil
}
