package repositories

import (
	"database/sql"
	"fmt"

	"jobboard/internal/models"
)

type ApplicationRepository interface {
	Create(app *models.Application) error
	GetByID(id int) (*models.Application, error)
	ExistsByJobAndUser(jobID, userID int) (bool, error)
	ListByJob(jobID int) ([]*models.Application, error)
	ListByUser(userID int) ([]*models.Application, error)
	UpdateStatus(id int, status string) error
	Delete(id int) error
}

type applicationRepository struct {
	DB *sql.DB
}

func NewApplicationRepository(db *sql.DB) ApplicationRepository {
	return &applicationRepository{DB: db}
}

func (r *applicationRepository) Create(app *models.Application) error {
	const q = `
		INSERT INTO applications (job_id, user_id, cover_letter, resume_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		app.JobID, app.UserID, app.CoverLetter, app.ResumeURL, app.Status,
	).Scan(&app.ID, &app.CreatedAt); err != nil {
		return fmt.Errorf("application create: %w", err)
	}
	return nil
}

func (r *applicationRepository) GetByID(id int) (*models.Application, error) {
	const q = `
		SELECT id, job_id, user_id, cover_letter, resume_url, status, created_at
		FROM applications
		WHERE id = $1
	`
	a := &models.Application{}
	if err := r.DB.QueryRow(q, id).Scan(
		&a.ID, &a.JobID, &a.UserID, &a.CoverLetter, &a.ResumeURL, &a.Status, &a.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("application get: %w", err)
	}
	return a, nil
}

func (r *applicationRepository) ExistsByJobAndUser(jobID, userID int) (bool, error) {
	var exists bool
	const q = `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`
	if err := r.DB.QueryRow(q, jobID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("application exists: %w", err)
	}
	return exists, nil
}

// ListByJob — для стаффа: вместе с именем и email соискателя.
func (r *applicationRepository) ListByJob(jobID int) ([]*models.Application, error) {
	const q = `
		SELECT a.id, a.job_id, a.user_id, a.cover_letter, a.resume_url, a.status, a.created_at,
		       u.first_name || ' ' || u.last_name, u.email
		FROM applications a
		JOIN users u ON u.id = a.user_id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC
	`
	rows, err := r.DB.Query(q, jobID)
	if err != nil {
		return nil, fmt.Errorf("application list by job: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		a := &models.Application{}
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &a.CoverLetter, &a.ResumeURL, &a.Status, &a.CreatedAt,
			&a.ApplicantName, &a.ApplicantEmail,
		); err != nil {
			return nil, fmt.Errorf("application list by job scan: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) ListByUser(userID int) ([]*models.Application, error) {
	const q = `
		SELECT a.id, a.job_id, a.user_id, a.cover_letter, a.resume_url, a.status, a.created_at,
		       j.title
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, fmt.Errorf("application list by user: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		a := &models.Application{}
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &a.CoverLetter, &a.ResumeURL, &a.Status, &a.CreatedAt,
			&a.JobTitle,
		); err != nil {
			return nil, fmt.Errorf("application list by user scan: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) UpdateStatus(id int, status string) error {
	if _, err := r.DB.Exec(`UPDATE applications SET status = $1 WHERE id = $2`, status, id); err != nil {
		return fmt.Errorf("application update status: %w", err)
	}
	return nil
}

func (r *applicationRepository) Delete(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM applications WHERE id = $1`, id); err != nil {
		return fmt.Errorf("application delete: %w", err)
	}
	return nil
}
