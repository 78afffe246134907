package models

import (
	"time"

	"github.com/lib/pq"
)

// CourseCompletion is the yes/no completion flag stored on a course.
type CourseCompletion string

const (
	CourseRunning   CourseCompletion = "no"
	CourseCompleted CourseCompletion = "yes"
)

// Course is a training course offered in a field.
type Course struct {
	ID                  string           `db:"id" json:"_id"`
	CourseID            string           `db:"course_id" json:"ID"`
	Name                string           `db:"name" json:"Name"`
	EligibleDepartments pq.StringArray   `db:"eligible_departments" json:"eligibleDepartments"`
	StartDate           time.Time        `db:"start_date" json:"startDate"`
	EndDate             time.Time        `db:"end_date" json:"endDate"`
	Completed           CourseCompletion `db:"completed" json:"completed"`
	Field               string           `db:"field" json:"field"`
	CreatedAt           time.Time        `db:"created_at" json:"createdAt"`
}

// CreateCourseRequest is the payload for adding a course. Departments are kept raw so
// shape errors (not an array, empty array) can be reported precisely.
type CreateCourseRequest struct {
	ID                  string      `json:"ID"`
	Name                string      `json:"Name"`
	EligibleDepartments interface{} `json:"eligibleDepartments"`
	StartDate           string      `json:"startDate"`
	EndDate             string      `json:"endDate"`
	Completed           string      `json:"completed"`
	Field               string      `json:"field"`
}

// CreateCourseResult returns the stored course with the updated field tally.
type CreateCourseResult struct {
	Course *Course `json:"course"`
	Field  Field   `json:"field"`
}
