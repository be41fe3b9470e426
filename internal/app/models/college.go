package models

import (
	"time"

	"github.com/google/uuid"
)

// College belongs to a university.
type College struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	UniversityID uuid.UUID `json:"universityId" db:"university_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	University *University `json:"university,omitempty"`
}
