package services

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/pkg/apperrors"
	"github.com/unigrade/backend/internal/pkg/metrics"
)

// PlannerService proposes grades for ungraded courses so the overall GPA
// approaches a target. Plans are advisory and never mutate the ledger.
type PlannerService struct {
	enrollments EnrollmentStore
	metrics     *metrics.Metrics
}

// NewPlannerService creates a new planner service
func NewPlannerService(enrollments EnrollmentStore, m *metrics.Metrics) *PlannerService {
	return &PlannerService{
		enrollments: enrollments,
		metrics:     m,
	}
}

// proposalGrade maps the target to a uniform proposed grade. The heuristic
// ignores credits and already-earned grades.
func proposalGrade(target float64) models.Grade {
	switch {
	case target >= 4.5:
		return models.GradeA
	case target >= 4.0:
		return models.GradeBPlus
	default:
		return models.GradeB
	}
}

// accuracy classifies the distance between the current and target GPA.
func accuracy(actual, target float64) string {
	diff := math.Abs(actual - target)
	switch {
	case diff < 0.1:
		return models.AccuracyExcellent
	case diff < 0.3:
		return models.AccuracyGood
	default:
		return models.AccuracyNeedsImprovement
	}
}

// Plan proposes a grade for each ungraded enrollment. ActualGPA is the
// student's current GPA over graded enrollments only; the accuracy label
// reports its distance to the target. The target must lie on the grade
// point scale's range.
func (s *PlannerService) Plan(ctx context.Context, studentID uuid.UUID, target float64) (*models.TargetGPAPlan, error) {
	if target < 0 || target > models.MaxGradePoints {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidRange, "target GPA must be between 0.0 and 5.0").WithField("targetGpa")
	}

	enrollments, err := s.enrollments.List(ctx, studentID, models.EnrollmentFilter{})
	if err != nil {
		return nil, err
	}

	proposed := proposalGrade(target)
	proposedPoints, _ := proposed.Points()

	plan := &models.TargetGPAPlan{
		TargetGPA: target,
		Proposals: make([]models.GradeProposal, 0),
	}

	var gradedPoints float64
	var gradedCredits int
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}

		if e.Graded() {
			gradedPoints += *e.Points * float64(e.Course.Credits)
			gradedCredits += e.Course.Credits
			continue
		}

		plan.Proposals = append(plan.Proposals, models.GradeProposal{
			CourseID:       e.CourseID,
			CourseCode:     e.Course.Code,
			CourseName:     e.Course.Name,
			Credits:        e.Course.Credits,
			RequiredGrade:  proposed,
			RequiredPoints: proposedPoints,
		})
	}

	if gradedCredits > 0 {
		plan.ActualGPA = round2(gradedPoints / float64(gradedCredits))
	}
	plan.Accuracy = accuracy(plan.ActualGPA, target)

	if s.metrics != nil {
		s.metrics.PlansGenerated.Inc()
	}

	return plan, nil
}
