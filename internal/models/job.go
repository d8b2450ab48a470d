package models

import "time"

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

type Job struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	SalaryMin   int       `json:"salary_min"`
	SalaryMax   int       `json:"salary_max"`
	CategoryID  int       `json:"category_id"`
	PostedBy    int       `json:"posted_by"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobFilter — параметры листинга вакансий.
type JobFilter struct {
	CategoryID int
	Status     string
	Search     string
	Limit      int
	Offset     int
}
