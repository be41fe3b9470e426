package models

import (
	"time"

	"github.com/google/uuid"
)

// Student is the academic profile of a user account. Each account owns at
// most one profile (unique user_id). HasEnrollments is derived from the
// enrollment ledger and only ever written by the ledger's consistency sync.
type Student struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"userId" db:"user_id"`
	UniversityID   uuid.UUID `json:"universityId" db:"university_id"`
	CollegeID      uuid.UUID `json:"collegeId" db:"college_id"`
	ProgramID      uuid.UUID `json:"programId" db:"program_id"`
	Year           int       `json:"year" db:"year"`
	Semester       int       `json:"semester" db:"semester"`
	HasEnrollments bool      `json:"hasEnrollments" db:"has_enrollments"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	University *University `json:"university,omitempty"`
	College    *College    `json:"college,omitempty"`
	Program    *Program    `json:"program,omitempty"`
}
