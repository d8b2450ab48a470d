package services

import (
	"errors"

	"jobboard/internal/models"
	"jobboard/internal/repositories"
)

var ErrAlreadyFavorite = errors.New("job already in favorites")

type FavoriteService interface {
	Add(userID, jobID int) (*models.Favorite, error)
	Remove(userID, jobID int) error
	ListJobs(userID int) ([]*models.Job, error)
}

type favoriteService struct {
	repo    repositories.FavoriteRepository
	jobRepo repositories.JobRepository
}

func NewFavoriteService(repo repositories.FavoriteRepository, jobRepo repositories.JobRepository) FavoriteService {
	return &favoriteService{repo: repo, jobRepo: jobRepo}
}

func (s *favoriteService) Add(userID, jobID int) (*models.Favorite, error) {
	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	exists, err := s.repo.Exists(userID, jobID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorite
	}

	return s.repo.Add(userID, jobID)
}

func (s *favoriteService) Remove(userID, jobID int) error {
	return s.repo.Remove(userID, jobID)
}

func (s *favoriteService) ListJobs(userID int) ([]*models.Job, error) {
	return s.repo.ListJobsByUser(userID)
}
