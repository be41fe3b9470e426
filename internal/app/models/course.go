package models

import (
	"time"

	"github.com/google/uuid"
)

// CourseKind distinguishes mandatory and elective courses.
type CourseKind string

const (
	CourseKindCore     CourseKind = "core"
	CourseKindElective CourseKind = "elective"
)

// Valid reports whether k is one of the two known kinds.
func (k CourseKind) Valid() bool {
	return k == CourseKindCore || k == CourseKindElective
}

// Course represents a course offered by a program.
// (code, program_id) is unique within the catalog.
type Course struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Code      string     `json:"code" db:"code"`
	Name      string     `json:"name" db:"name"`
	Credits   int        `json:"credits" db:"credits"`
	Kind      CourseKind `json:"type" db:"kind"`
	Semester  int        `json:"semester" db:"semester"`
	Year      int        `json:"year" db:"year"`
	ProgramID uuid.UUID  `json:"programId" db:"program_id"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Program *Program `json:"program,omitempty"`
}

// CourseFilter narrows catalog course listings. Nil fields impose no
// constraint.
type CourseFilter struct {
	Year     *int
	Semester *int
}
