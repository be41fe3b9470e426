package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment associates one student with one course, optionally graded.
// (student_id, course_id) is unique: a student cannot enroll twice in the
// same course. Points is NULL exactly when Grade is NULL and otherwise
// equals the scale value for Grade, recomputed on every grade write.
type Enrollment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	StudentID uuid.UUID `json:"studentId" db:"student_id"`
	CourseID  uuid.UUID `json:"courseId" db:"course_id"`
	Grade     *Grade    `json:"grade" db:"grade"`
	Points    *float64  `json:"points" db:"points"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Course is the referenced catalog row, populated on reads.
	Course *Course `json:"course,omitempty"`
}

// Graded reports whether the enrollment carries a grade.
func (e *Enrollment) Graded() bool {
	return e.Grade != nil
}

// EnrollmentFilter narrows ledger listings. Filters are exact-match
// conjunctions; nil fields impose no constraint.
type EnrollmentFilter struct {
	Semester *int
	Year     *int
	Kind     *CourseKind
}

// Matches reports whether the enrollment's course satisfies every set
// filter field. The course relation must be populated.
func (f EnrollmentFilter) Matches(c *Course) bool {
	if f.Semester != nil && c.Semester != *f.Semester {
		return false
	}
	if f.Year != nil && c.Year != *f.Year {
		return false
	}
	if f.Kind != nil && c.Kind != *f.Kind {
		return false
	}
	return true
}
