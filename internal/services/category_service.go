package services

import (
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/repositories"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryService interface {
	Create(name string) (*models.Category, error)
	GetByID(id int) (*models.Category, error)
	Update(id int, name string) (*models.Category, error)
	Delete(id int) error
	List() ([]*models.Category, error)
}

type categoryService struct {
	repo repositories.CategoryRepository
}

func NewCategoryService(repo repositories.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

func (s *categoryService) Create(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	slug := slugify(name)
	if existing, err := s.repo.GetBySlug(slug); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("category %q already exists", name)
	}

	cat := &models.Category{Name: name, Slug: slug}
	if err := s.repo.Create(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *categoryService) GetByID(id int) (*models.Category, error) {
	return s.repo.GetByID(id)
}

func (s *categoryService) Update(id int, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	cat, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}
	cat.Name = name
	cat.Slug = slugify(name)
	if err := s.repo.Update(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *categoryService) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *categoryService) List() ([]*models.Category, error) {
	return s.repo.List()
}
