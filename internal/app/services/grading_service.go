package services

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/pkg/logger"
	"github.com/unigrade/backend/internal/pkg/metrics"
)

// GradingService computes credit-weighted GPAs from the enrollment ledger.
// Only graded enrollments participate; ungraded ones are invisible to the
// computation. The cache and metrics are optional; nil disables them.
type GradingService struct {
	enrollments EnrollmentStore
	cache       BreakdownCache
	metrics     *metrics.Metrics
}

// NewGradingService creates a new grading service
func NewGradingService(enrollments EnrollmentStore, cache BreakdownCache, m *metrics.Metrics) *GradingService {
	return &GradingService{
		enrollments: enrollments,
		cache:       cache,
		metrics:     m,
	}
}

// ComputeGPA returns the student's rounded credit-weighted GPA. A student
// with no graded enrollments has a GPA of 0.0.
func (s *GradingService) ComputeGPA(ctx context.Context, studentID uuid.UUID) (float64, error) {
	breakdown, err := s.ComputeBreakdown(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return breakdown.GPA, nil
}

// ComputeBreakdown returns the student's GPA with its per-course
// contributions, serving from cache when possible. Cache failures degrade
// to a fresh computation.
func (s *GradingService) ComputeBreakdown(ctx context.Context, studentID uuid.UUID) (*models.GPABreakdown, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, studentID)
		if err != nil {
			logger.Warn().Err(err).Str("studentId", studentID.String()).Msg("GPA cache read failed")
		} else if cached != nil {
			if s.metrics != nil {
				s.metrics.GPACacheHits.Inc()
			}
			return cached, nil
		}
		if s.metrics != nil {
			s.metrics.GPACacheMisses.Inc()
		}
	}

	enrollments, err := s.enrollments.List(ctx, studentID, models.EnrollmentFilter{})
	if err != nil {
		return nil, err
	}

	breakdown := computeBreakdown(enrollments)
	if s.metrics != nil {
		s.metrics.GPAComputations.Inc()
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, studentID, breakdown); err != nil {
			logger.Warn().Err(err).Str("studentId", studentID.String()).Msg("GPA cache write failed")
		}
	}

	return breakdown, nil
}

// computeBreakdown derives the GPA from graded enrollments only.
// The GPA and total points are computed from raw values and rounded once
// at the end; the per-course contributions are rounded independently for
// display, so summing them may differ from the total by rounding error.
func computeBreakdown(enrollments []*models.Enrollment) *models.GPABreakdown {
	breakdown := &models.GPABreakdown{
		Breakdown: make([]models.CourseContribution, 0),
	}

	var totalPoints float64
	for _, e := range enrollments {
		if !e.Graded() || e.Course == nil {
			continue
		}

		contribution := *e.Points * float64(e.Course.Credits)
		totalPoints += contribution
		breakdown.TotalCredits += e.Course.Credits
		breakdown.GradedCourses++

		breakdown.Breakdown = append(breakdown.Breakdown, models.CourseContribution{
			CourseID:     e.CourseID,
			CourseCode:   e.Course.Code,
			CourseName:   e.Course.Name,
			Credits:      e.Course.Credits,
			Grade:        *e.Grade,
			Points:       *e.Points,
			Contribution: round2(contribution),
		})
	}

	breakdown.TotalPoints = round2(totalPoints)
	if breakdown.TotalCredits > 0 {
		breakdown.GPA = round2(totalPoints / float64(breakdown.TotalCredits))
	}

	return breakdown
}

// round2 rounds half away from zero to 2 decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
