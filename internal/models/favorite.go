package models

import "time"

type Favorite struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	JobID     int       `json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
}
