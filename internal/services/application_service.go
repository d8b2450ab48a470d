package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/pdf"
	"jobboard/internal/repositories"
)

var (
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrJobClosed           = errors.New("job is closed")
	ErrApplicationNotFound = errors.New("application not found")
)

type ApplicationService interface {
	Apply(userID, jobID int, coverLetter, resumeURL string) (*models.Application, error)
	ListByJob(jobID int) ([]*models.Application, error)
	ListByUser(userID int) ([]*models.Application, error)
	UpdateStatus(id int, status string) error
	ExportApplicantsPDF(jobID int) (string, error)
}

type applicationService struct {
	repo     repositories.ApplicationRepository
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
	pdfGen   pdf.Generator
	notifier StaffNotifier // может быть nil
}

func NewApplicationService(
	repo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	pdfGen pdf.Generator,
	notifier StaffNotifier,
) ApplicationService {
	return &applicationService{
		repo:     repo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		pdfGen:   pdfGen,
		notifier: notifier,
	}
}

func (s *applicationService) Apply(userID, jobID int, coverLetter, resumeURL string) (*models.Application, error) {
	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	if job.Status != models.JobStatusOpen {
		return nil, ErrJobClosed
	}

	exists, err := s.repo.ExistsByJobAndUser(jobID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	app := &models.Application{
		JobID:       jobID,
		UserID:      userID,
		CoverLetter: strings.TrimSpace(coverLetter),
		ResumeURL:   strings.TrimSpace(resumeURL),
		Status:      models.ApplicationPending,
	}
	if err := s.repo.Create(app); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		user, err := s.userRepo.GetByID(userID)
		if err == nil && user != nil {
			name := user.FirstName + " " + user.LastName
			if err := s.notifier.NotifyNewApplication(job.Title, name, user.Email); err != nil {
				// warn but do not fail the application
				log.Printf("[application][apply] staff notify failed: job=%d err=%v", jobID, err)
			}
		}
	}

	log.Printf("[application][apply] ok: job=%d user=%d", jobID, userID)
	return app, nil
}

func (s *applicationService) ListByJob(jobID int) ([]*models.Application, error) {
	return s.repo.ListByJob(jobID)
}

func (s *applicationService) ListByUser(userID int) ([]*models.Application, error) {
	return s.repo.ListByUser(userID)
}

func validApplicationStatus(status string) bool {
	switch status {
	case models.ApplicationPending, models.ApplicationReviewed, models.ApplicationAccepted, models.ApplicationRejected:
		return true
	}
	return false
}

func (s *applicationService) UpdateStatus(id int, status string) error {
	if !validApplicationStatus(status) {
		return fmt.Errorf("unknown application status %q", status)
	}
	app, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if app == nil {
		return ErrApplicationNotFound
	}
	return s.repo.UpdateStatus(id, status)
}

// ExportApplicantsPDF возвращает путь к сгенерированному файлу.
func (s *applicationService) ExportApplicantsPDF(jobID int) (string, error) {
	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		return "", err
	}
	if job == nil {
		return "", ErrJobNotFound
	}

	apps, err := s.repo.ListByJob(jobID)
	if err != nil {
		return "", err
	}

	rows := make([]pdf.ApplicantRow, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, pdf.ApplicantRow{
			Name:      a.ApplicantName,
			Email:     a.ApplicantEmail,
			Status:    a.Status,
			AppliedAt: a.CreatedAt,
		})
	}

	return s.pdfGen.GenerateApplicantList(pdf.ApplicantListData{
		JobTitle:   job.Title,
		Company:    job.Company,
		Applicants: rows,
	})
}
