package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/pkg/apperrors"
	"github.com/unigrade/backend/internal/pkg/logger"
	"github.com/unigrade/backend/internal/pkg/metrics"
)

// EnrollmentService manages the per-student enrollment ledger. Every
// successful mutation invalidates the student's cached GPA breakdown and
// is counted in the ledger mutation metrics. The cache and metrics are
// optional; nil disables them.
type EnrollmentService struct {
	enrollments EnrollmentStore
	catalog     CatalogStore
	cache       BreakdownCache
	metrics     *metrics.Metrics
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(enrollments EnrollmentStore, catalog CatalogStore, cache BreakdownCache, m *metrics.Metrics) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		catalog:     catalog,
		cache:       cache,
		metrics:     m,
	}
}

// AddCourse enrolls the student in a catalog course. The enrollment starts
// ungraded.
func (s *EnrollmentService) AddCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	course, err := s.catalog.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.enrollments.Add(ctx, studentID, course)
	s.observe(ctx, studentID, "add", err)
	if err != nil {
		return nil, err
	}

	return enrollment, nil
}

// RemoveCourse drops one enrollment. Removing a course the student is not
// enrolled in fails with ErrEnrollmentNotFound.
func (s *EnrollmentService) RemoveCourse(ctx context.Context, studentID, courseID uuid.UUID) error {
	removed, err := s.enrollments.Remove(ctx, studentID, courseID)
	if err == nil && !removed {
		err = apperrors.ErrEnrollmentNotFound
	}
	s.observe(ctx, studentID, "remove", err)
	return err
}

// ListCourses returns the student's enrollments in insertion order, with
// catalog courses attached, narrowed by the filter.
func (s *EnrollmentService) ListCourses(ctx context.Context, studentID uuid.UUID, filter models.EnrollmentFilter) ([]*models.Enrollment, error) {
	return s.enrollments.List(ctx, studentID, filter)
}

// SetGrade assigns a letter grade to one enrollment. The stored point
// value is always derived from the grade scale, never taken from input.
func (s *EnrollmentService) SetGrade(ctx context.Context, studentID, courseID uuid.UUID, grade string) (*models.Enrollment, error) {
	g := models.Grade(grade)
	points, ok := g.Points()
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidGrade, "unknown grade "+grade).WithField("grade")
	}

	enrollment, err := s.enrollments.SetGrade(ctx, studentID, courseID, g, points)
	s.observe(ctx, studentID, "set_grade", err)
	if err != nil {
		return nil, err
	}

	return enrollment, nil
}

// BulkReplace atomically replaces the student's entire course set with
// ungraded enrollments in the given catalog courses, preserving input
// order. Every id must resolve to a live catalog row.
func (s *EnrollmentService) BulkReplace(ctx context.Context, studentID uuid.UUID, courseIDs []uuid.UUID) ([]*models.Enrollment, error) {
	courses, err := s.catalog.GetCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollments.ReplaceAll(ctx, studentID, courses)
	s.observe(ctx, studentID, "bulk_replace", err)
	if err != nil {
		return nil, err
	}

	return enrollments, nil
}

// ResetGrades sets every enrollment of the student to the best grade,
// returning how many were updated.
func (s *EnrollmentService) ResetGrades(ctx context.Context, studentID uuid.UUID) (int, error) {
	points, _ := models.GradeA.Points()
	count, err := s.enrollments.ResetGrades(ctx, studentID, models.GradeA, points)
	s.observe(ctx, studentID, "reset_grades", err)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// observe records the mutation metric and, on success, invalidates the
// student's cached breakdown. A failed invalidation is logged and
// swallowed; the TTL bounds the staleness.
func (s *EnrollmentService) observe(ctx context.Context, studentID uuid.UUID, operation string, err error) {
	if s.metrics != nil {
		outcome := metrics.OutcomeOK
		if err != nil {
			outcome = metrics.OutcomeError
		}
		s.metrics.LedgerMutations.WithLabelValues(operation, outcome).Inc()
	}

	if err != nil || s.cache == nil {
		return
	}

	if cerr := s.cache.Invalidate(ctx, studentID); cerr != nil {
		logger.Warn().
			Err(cerr).
			Str("studentId", studentID.String()).
			Msg("Failed to invalidate GPA cache")
	}
}
