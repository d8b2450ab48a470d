package services

import (
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/repositories"
)

var ErrJobNotFound = errors.New("job not found")

type JobService interface {
	Create(job *models.Job) error
	GetByID(id int) (*models.Job, error)
	Update(job *models.Job) error
	Close(id int) error
	Delete(id int) error
	List(filter models.JobFilter) ([]*models.Job, error)
	GetCount() (int, error)
}

type jobService struct {
	repo         repositories.JobRepository
	categoryRepo repositories.CategoryRepository
}

func NewJobService(repo repositories.JobRepository, categoryRepo repositories.CategoryRepository) JobService {
	return &jobService{repo: repo, categoryRepo: categoryRepo}
}

func (s *jobService) validate(job *models.Job) error {
	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	if job.Title == "" || job.Company == "" {
		return fmt.Errorf("title and company are required")
	}
	if job.SalaryMin < 0 || (job.SalaryMax > 0 && job.SalaryMax < job.SalaryMin) {
		return fmt.Errorf("invalid salary range")
	}
	if job.CategoryID > 0 {
		cat, err := s.categoryRepo.GetByID(job.CategoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return fmt.Errorf("category %d does not exist", job.CategoryID)
		}
	}
	return nil
}

func (s *jobService) Create(job *models.Job) error {
	if err := s.validate(job); err != nil {
		return err
	}
	if job.Status == "" {
		job.Status = models.JobStatusOpen
	}
	return s.repo.Create(job)
}

func (s *jobService) GetByID(id int) (*models.Job, error) {
	return s.repo.GetByID(id)
}

func (s *jobService) Update(job *models.Job) error {
	existing, err := s.repo.GetByID(job.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrJobNotFound
	}
	if err := s.validate(job); err != nil {
		return err
	}
	if job.Status == "" {
		job.Status = existing.Status
	}
	return s.repo.Update(job)
}

func (s *jobService) Close(id int) error {
	job, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if job == nil {
		return ErrJobNotFound
	}
	job.Status = models.JobStatusClosed
	return s.repo.Update(job)
}

func (s *jobService) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *jobService) List(filter models.JobFilter) ([]*models.Job, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(filter)
}

func (s *jobService) GetCount() (int, error) {
	return s.repo.GetCount()
}
