package models

import (
	"time"

	"github.com/google/uuid"
)

// Program belongs to a college and spans a number of academic years.
type Program struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	CollegeID     uuid.UUID `json:"collegeId" db:"college_id"`
	DurationYears int       `json:"durationYears" db:"duration_years"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	College *College `json:"college,omitempty"`
}
