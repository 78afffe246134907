package models

import "time"

// AggregateKind selects the counter table maintained alongside MOUs and courses.
type AggregateKind string

const (
	AggregateSchool AggregateKind = "school"
	AggregateField  AggregateKind = "field"
)

// Aggregate is a per-name tally of MOUs (schools) or courses (fields).
type Aggregate struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Count     int       `db:"count"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// School is the public representation of a school aggregate.
type School struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
	Link  string `json:"link,omitempty"`
}

// Field is the public representation of a field aggregate.
type Field struct {
	ID             string `json:"id"`
	NameOfTheField string `json:"nameOfTheField"`
	Count          int    `json:"count"`
	Link           string `json:"link,omitempty"`
}

// SchoolDetail lists the MOUs signed with one school.
type SchoolDetail struct {
	School School `json:"school"`
	MOUs   []MOU  `json:"data"`
}

// FieldDetail lists the courses offered in one field.
type FieldDetail struct {
	Field   Field    `json:"field"`
	Courses []Course `json:"courses"`
}
