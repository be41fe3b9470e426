package dto

import (
	"github.com/google/uuid"

	"github.com/unigrade/backend/internal/app/models"
)

// CreateStudentRequest creates or fully replaces a student profile.
type CreateStudentRequest struct {
	UniversityID uuid.UUID `json:"university" binding:"required"`
	CollegeID    uuid.UUID `json:"college" binding:"required"`
	ProgramID    uuid.UUID `json:"program" binding:"required"`
	Year         int       `json:"year" binding:"required,min=1,max=10"`
	Semester     int       `json:"semester" binding:"required,min=1,max=2"`
}

// PatchStudentRequest updates only the provided profile fields.
type PatchStudentRequest struct {
	UniversityID *uuid.UUID `json:"university"`
	CollegeID    *uuid.UUID `json:"college"`
	ProgramID    *uuid.UUID `json:"program"`
	Year         *int       `json:"year" binding:"omitempty,min=1,max=10"`
	Semester     *int       `json:"semester" binding:"omitempty,min=1,max=2"`
}

// StudentProfileResponse wraps a profile with its existence flag, matching
// the shape consumed by the client.
type StudentProfileResponse struct {
	HasProfile bool            `json:"hasProfile"`
	Message    string          `json:"message,omitempty"`
	Profile    *models.Student `json:"profile,omitempty"`
}

// StudentDataResponse is the combined view of a student: the profile, the
// enrollment ledger and the current GPA.
type StudentDataResponse struct {
	Profile *models.Student      `json:"profile"`
	Courses []*models.Enrollment `json:"courses"`
	GPA     float64              `json:"gpa"`
}

// ProfileOptionsResponse lists selectable values for profile creation.
type ProfileOptionsResponse struct {
	Universities    []*models.University `json:"universities"`
	Colleges        []*models.College    `json:"colleges"`
	Programs        []*models.Program    `json:"programs"`
	YearChoices     []int                `json:"yearChoices"`
	SemesterChoices []int                `json:"semesterChoices"`
}
