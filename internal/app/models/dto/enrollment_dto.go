package dto

import (
	"github.com/google/uuid"

	"github.com/unigrade/backend/internal/app/models"
)

// AddCourseRequest enrolls the student in a single catalog course.
type AddCourseRequest struct {
	CourseID uuid.UUID `json:"courseId" binding:"required"`
}

// CourseSnapshotRequest identifies one course in a bulk replace. The
// catalog row is resolved by ID; the remaining fields are display hints the
// client already holds and are not trusted or stored.
type CourseSnapshotRequest struct {
	ID       uuid.UUID `json:"id" binding:"required"`
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	Credits  int       `json:"credits"`
	Type     string    `json:"type" binding:"omitempty,coursekind"`
	Semester int       `json:"semester"`
	Year     int       `json:"year"`
}

// BulkReplaceRequest atomically replaces the student's entire course set.
type BulkReplaceRequest struct {
	Courses []CourseSnapshotRequest `json:"courses" binding:"required,dive"`
}

// SetGradeRequest assigns a letter grade to one enrollment.
type SetGradeRequest struct {
	Grade string `json:"grade" binding:"required,lettergrade"`
}

// EnrollmentListResponse is the filtered course listing payload.
type EnrollmentListResponse struct {
	Filters      EnrollmentFilters    `json:"filters"`
	Courses      []*models.Enrollment `json:"courses"`
	TotalCourses int                  `json:"totalCourses"`
}

// EnrollmentFilters echoes the filters that were applied.
type EnrollmentFilters struct {
	Semester *int    `json:"semester"`
	Year     *int    `json:"year"`
	Type     *string `json:"type"`
}

// ResetGradesResponse reports how many enrollments were reset.
type ResetGradesResponse struct {
	Message        string `json:"message"`
	CoursesUpdated int    `json:"coursesUpdated"`
}
