package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"jobboard/internal/models"
)

type JobRepository interface {
	Create(job *models.Job) error
	GetByID(id int) (*models.Job, error)
	Update(job *models.Job) error
	Delete(id int) error
	List(filter models.JobFilter) ([]*models.Job, error)
	GetCount() (int, error)
}

type jobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) JobRepository {
	return &jobRepository{DB: db}
}

func (r *jobRepository) Create(job *models.Job) error {
	const q = `
		INSERT INTO jobs (title, description, company, location, salary_min, salary_max, category_id, posted_by, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	if err := r.DB.QueryRow(q,
		job.Title,
		job.Description,
		job.Company,
		job.Location,
		job.SalaryMin,
		job.SalaryMax,
		job.CategoryID,
		job.PostedBy,
		job.Status,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return fmt.Errorf("job create: %w", err)
	}
	return nil
}

func (r *jobRepository) GetByID(id int) (*models.Job, error) {
	const q = `
		SELECT id, title, description, company, location, salary_min, salary_max, category_id, posted_by, status, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`
	j := &models.Job{}
	if err := r.DB.QueryRow(q, id).Scan(
		&j.ID, &j.Title, &j.Description, &j.Company, &j.Location,
		&j.SalaryMin, &j.SalaryMax, &j.CategoryID, &j.PostedBy, &j.Status,
		&j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("job get: %w", err)
	}
	return j, nil
}

func (r *jobRepository) Update(job *models.Job) error {
	const q = `
		UPDATE jobs
		SET title = $1, description = $2, company = $3, location = $4,
		    salary_min = $5, salary_max = $6, category_id = $7, status = $8,
		    updated_at = NOW()
		WHERE id = $9
	`
	if _, err := r.DB.Exec(q,
		job.Title, job.Description, job.Company, job.Location,
		job.SalaryMin, job.SalaryMax, job.CategoryID, job.Status, job.ID,
	); err != nil {
		return fmt.Errorf("job update: %w", err)
	}
	return nil
}

func (r *jobRepository) Delete(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM jobs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("job delete: %w", err)
	}
	return nil
}

// List — фильтры собираются динамически, параметры только через плейсхолдеры.
func (r *jobRepository) List(filter models.JobFilter) ([]*models.Job, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR company ILIKE $%d)", len(args), len(args)))
	}

	q := `
		SELECT id, title, description, company, location, salary_min, salary_max, category_id, posted_by, status, created_at, updated_at
		FROM jobs
	`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit)
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	q += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("job list: %w", err)
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
			return nil, fmt.Errorf("job list scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *jobRepository) GetCount() (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM jobs`).Scan(&c); err != nil {
		return 0, fmt.Errorf("job count: %w", err)
	}
	return c, nil
}
