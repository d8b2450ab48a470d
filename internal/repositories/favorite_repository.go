package repositories

import (
	"database/sql"
	"fmt"

	"jobboard/internal/models"
)

type FavoriteRepository interface {
	Add(userID, jobID int) (*models.Favorite, error)
	Remove(userID, jobID int) error
	Exists(userID, jobID int) (bool, error)
	ListJobsByUser(userID int) ([]*models.Job, error)
}

type favoriteRepository struct {
	DB *sql.DB
}

func NewFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &favoriteRepository{DB: db}
}

func (r *favoriteRepository) Add(userID, jobID int) (*models.Favorite, error) {
	const q = `
		INSERT INTO favorites (user_id, job_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	f := &models.Favorite{UserID: userID, JobID: jobID}
	if err := r.DB.QueryRow(q, userID, jobID).Scan(&f.ID, &f.CreatedAt); err != nil {
		return nil, fmt.Errorf("favorite add: %w", err)
	}
	return f, nil
}

func (r *favoriteRepository) Remove(userID, jobID int) error {
	if _, err := r.DB.Exec(`DELETE FROM favorites WHERE user_id = $1 AND job_id = $2`, userID, jobID); err != nil {
		return fmt.Errorf("favorite remove: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Exists(userID, jobID int) (bool, error) {
	var exists bool
	const q = `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND job_id = $2)`
	if err := r.DB.QueryRow(q, userID, jobID).Scan(&exists); err != nil {
		return false, fmt.Errorf("favorite exists: %w", err)
	}
	return exists, nil
}

func (r *favoriteRepository) ListJobsByUser(userID int) ([]*models.Job, error) {
	const q = `
		SELECT j.id, j.title, j.description, j.company, j.location, j.salary_min, j.salary_max,
		       j.category_id, j.posted_by, j.status, j.created_at, j.updated_at
		FROM favorites f
		JOIN jobs j ON j.id = f.job_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, fmt.Errorf("favorite list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		j := &models.Job{}
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Description, &j.Company, &j.Location,
			&j.SalaryMin, &j.SalaryMax, &j.CategoryID, &j.PostedBy, &j.Status,
			&j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("favorite list jobs scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
