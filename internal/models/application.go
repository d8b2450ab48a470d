package models

import "time"

const (
	ApplicationPending  = "pending"
	ApplicationReviewed = "reviewed"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

type Application struct {
	ID          int       `json:"id"`
	JobID       int       `json:"job_id"`
	UserID      int       `json:"user_id"`
	CoverLetter string    `json:"cover_letter"`
	ResumeURL   string    `json:"resume_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	// заполняются join'ом в листингах
	ApplicantName  string `json:"applicant_name,omitempty"`
	ApplicantEmail string `json:"applicant_email,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
}
