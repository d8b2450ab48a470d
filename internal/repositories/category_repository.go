package repositories

import (
	"database/sql"
	"fmt"

	"jobboard/internal/models"
)

type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id int) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	Update(category *models.Category) error
	Delete(id int) error
	List() ([]*models.Category, error)
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	const q = `
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q, category.Name, category.Slug).Scan(&category.ID, &category.CreatedAt); err != nil {
		return fmt.Errorf("category create: %w", err)
	}
	return nil
}

func (r *categoryRepository) GetByID(id int) (*models.Category, error) {
	const q = `SELECT id, name, slug, created_at FROM categories WHERE id = $1`
	c := &models.Category{}
	if err := r.DB.QueryRow(q, id).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("category get: %w", err)
	}
	return c, nil
}

func (r *categoryRepository) GetBySlug(slug string) (*models.Category, error) {
	const q = `SELECT id, name, slug, created_at FROM categories WHERE slug = $1`
	c := &models.Category{}
	if err := r.DB.QueryRow(q, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("category get by slug: %w", err)
	}
	return c, nil
}

func (r *categoryRepository) Update(category *models.Category) error {
	if _, err := r.DB.Exec(`UPDATE categories SET name = $1, slug = $2 WHERE id = $3`,
		category.Name, category.Slug, category.ID); err != nil {
		return fmt.Errorf("category update: %w", err)
	}
	return nil
}

func (r *categoryRepository) Delete(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("category delete: %w", err)
	}
	return nil
}

func (r *categoryRepository) List() ([]*models.Category, error) {
	rows, err := r.DB.Query(`SELECT id, name, slug, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("category list: %w", err)
	}
	defer rows.Close()

	var cats []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("category list scan: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
