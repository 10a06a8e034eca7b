package models

import "time"

type Material struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	GradeLevel  int       `json:"grade_level,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type MaterialRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	GradeLevel  int    `json:"grade_level"`
}
