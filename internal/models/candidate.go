package models

import "time"

// Candidate is a training participant.
type Candidate struct {
	ID          string    `db:"id" json:"_id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	PhoneNumber string    `db:"phone_number" json:"phoneNumber"`
	Gender      string    `db:"gender" json:"gender"`
	Department  string    `db:"department" json:"department"`
	Designation string    `db:"designation" json:"designation"`
	Institution string    `db:"institution" json:"institution"`
	CourseID    *string   `db:"course_id" json:"courseId,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// CreateCandidateRequest is the payload for registering a participant.
type CreateCandidateRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=male female other"`
	Department  string `json:"department" validate:"required"`
	Designation string `json:"designation" validate:"required"`
	Institution string `json:"institution" validate:"required"`
	CourseID    string `json:"courseId"`
}
