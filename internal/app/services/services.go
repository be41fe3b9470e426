// Package services implements the application's business logic on top of
// narrow store interfaces. The postgres repositories satisfy them in
// production; the memstore package satisfies them in tests.
package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/unigrade/backend/internal/app/models"
)

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// StudentStore persists student profiles.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
}

// CatalogStore reads the course catalog hierarchy.
type CatalogStore interface {
	ListUniversities(ctx context.Context) ([]*models.University, error)
	UniversityExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListColleges(ctx context.Context, universityID uuid.UUID) ([]*models.College, error)
	CollegeExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListPrograms(ctx context.Context, collegeID uuid.UUID) ([]*models.Program, error)
	ProgramExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListCourses(ctx context.Context, programID uuid.UUID, filter models.CourseFilter) ([]*models.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetCourses(ctx context.Context, ids []uuid.UUID) ([]*models.Course, error)
}

// EnrollmentStore persists the enrollment ledger. Mutations keep the
// student's has_enrollments flag consistent atomically.
type EnrollmentStore interface {
	Add(ctx context.Context, studentID uuid.UUID, course *models.Course) (*models.Enrollment, error)
	Remove(ctx context.Context, studentID, courseID uuid.UUID) (bool, error)
	List(ctx context.Context, studentID uuid.UUID, filter models.EnrollmentFilter) ([]*models.Enrollment, error)
	SetGrade(ctx context.Context, studentID, courseID uuid.UUID, grade models.Grade, points float64) (*models.Enrollment, error)
	ReplaceAll(ctx context.Context, studentID uuid.UUID, courses []*models.Course) ([]*models.Enrollment, error)
	ResetGrades(ctx context.Context, studentID uuid.UUID, grade models.Grade, points float64) (int, error)
}

// BreakdownCache caches computed GPA breakdowns per student. Get returns
// (nil, nil) on a miss.
type BreakdownCache interface {
	Get(ctx context.Context, studentID uuid.UUID) (*models.GPABreakdown, error)
	Set(ctx context.Context, studentID uuid.UUID, breakdown *models.GPABreakdown) error
	Invalidate(ctx context.Context, studentID uuid.UUID) error
}

// Services bundles all application services for dependency injection.
type Services struct {
	Auth       *AuthService
	Catalog    *CatalogService
	Student    *StudentService
	Enrollment *EnrollmentService
	Grading    *GradingService
	Planner    *PlannerService
}
