package models

import "github.com/google/uuid"

// CourseContribution is one graded course's share of the GPA breakdown.
// Contribution is points*credits rounded to 2 decimals for display.
type CourseContribution struct {
	CourseID     uuid.UUID `json:"courseId"`
	CourseCode   string    `json:"courseCode"`
	CourseName   string    `json:"courseName"`
	Credits      int       `json:"credits"`
	Grade        Grade     `json:"grade"`
	Points       float64   `json:"points"`
	Contribution float64   `json:"contribution"`
}

// GPABreakdown is the grading engine's full output for one student.
// TotalPoints is the rounded sum of the raw (unrounded) contributions; it is
// not derived from the individually rounded Breakdown entries, so the two
// can differ by rounding error.
type GPABreakdown struct {
	GPA           float64              `json:"gpa"`
	TotalCredits  int                  `json:"totalCredits"`
	TotalPoints   float64              `json:"totalPoints"`
	GradedCourses int                  `json:"gradedCourses"`
	Breakdown     []CourseContribution `json:"breakdown"`
}

// GradeProposal is the planner's advisory requirement for one ungraded
// course.
type GradeProposal struct {
	CourseID       uuid.UUID `json:"courseId"`
	CourseCode     string    `json:"courseCode"`
	CourseName     string    `json:"courseName"`
	Credits        int       `json:"credits"`
	RequiredGrade  Grade     `json:"requiredGrade"`
	RequiredPoints float64   `json:"requiredPoints"`
}

// TargetGPAPlan is the planner's output. Proposals never mutate stored
// state.
type TargetGPAPlan struct {
	TargetGPA float64         `json:"targetGpa"`
	ActualGPA float64         `json:"actualGpa"`
	Accuracy  string          `json:"accuracy"`
	Proposals []GradeProposal `json:"grades"`
}

// Accuracy classifications for a target-GPA plan.
const (
	AccuracyExcellent        = "excellent"
	AccuracyGood             = "good"
	AccuracyNeedsImprovement = "needs_improvement"
)
