package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/app/services"
	"github.com/unigrade/backend/internal/pkg/apperrors"
)

type PlannerServiceSuite struct {
	suite.Suite

	fix *fixture
	svc *services.PlannerService
}

func (s *PlannerServiceSuite) SetupTest() {
	s.fix = newFixture()
	s.svc = services.NewPlannerService(s.fix.store.Enrollments(), nil)
}

func (s *PlannerServiceSuite) TestTargetAboveScaleRejected() {
	_, err := s.svc.Plan(context.Background(), s.fix.studentID, 5.1)
	s.Require().ErrorIs(err, apperrors.ErrInvalidRange)
}

func (s *PlannerServiceSuite) TestNegativeTargetRejected() {
	_, err := s.svc.Plan(context.Background(), s.fix.studentID, -0.1)
	s.Require().ErrorIs(err, apperrors.ErrInvalidRange)
}

func (s *PlannerServiceSuite) TestScaleBoundsAccepted() {
	for _, target := range []float64{0.0, 5.0} {
		_, err := s.svc.Plan(context.Background(), s.fix.studentID, target)
		s.NoError(err)
	}
}

func (s *PlannerServiceSuite) TestProposedGradeFollowsTarget() {
	cases := []struct {
		target float64
		want   models.Grade
	}{
		{4.8, models.GradeA},
		{4.5, models.GradeA},
		{4.2, models.GradeBPlus},
		{4.0, models.GradeBPlus},
		{3.5, models.GradeB},
		{1.0, models.GradeB},
	}

	for _, tc := range cases {
		fix := newFixture()
		svc := services.NewPlannerService(fix.store.Enrollments(), nil)
		fix.enroll(s.T(), fix.addCourse("CS101", 3))

		plan, err := svc.Plan(context.Background(), fix.studentID, tc.target)
		s.Require().NoError(err)
		s.Require().Len(plan.Proposals, 1, "target %v", tc.target)
		s.Equal(tc.want, plan.Proposals[0].RequiredGrade, "target %v", tc.target)

		points, _ := tc.want.Points()
		s.Equal(points, plan.Proposals[0].RequiredPoints, "target %v", tc.target)
	}
}

func (s *PlannerServiceSuite) TestOnlyUngradedCoursesGetProposals() {
	graded := s.fix.addCourse("CS201", 3)
	ungraded := s.fix.addCourse("CS202", 4)
	s.fix.enroll(s.T(), graded)
	s.fix.enroll(s.T(), ungraded)
	s.fix.grade(s.T(), graded, models.GradeC)

	plan, err := s.svc.Plan(context.Background(), s.fix.studentID, 4.5)
	s.Require().NoError(err)
	s.Require().Len(plan.Proposals, 1)
	s.Equal(ungraded.ID, plan.Proposals[0].CourseID)
}

func (s *PlannerServiceSuite) TestActualGPAReflectsEarnedGradesOnly() {
	graded := s.fix.addCourse("CS301", 3)
	ungraded := s.fix.addCourse("CS302", 3)
	s.fix.enroll(s.T(), graded)
	s.fix.enroll(s.T(), ungraded)
	s.fix.grade(s.T(), graded, models.GradeB)

	plan, err := s.svc.Plan(context.Background(), s.fix.studentID, 4.0)
	s.Require().NoError(err)

	// Only the graded B counts toward the current GPA; the ungraded
	// course gets a proposal but no points.
	s.Equal(4.0, plan.ActualGPA)
	s.Equal(4.0, plan.TargetGPA)
	s.Equal(models.AccuracyExcellent, plan.Accuracy)
	s.Len(plan.Proposals, 1)
}

func (s *PlannerServiceSuite) TestAccuracyClassification() {
	// A single graded B course pins the current GPA at 4.0.
	cases := []struct {
		target float64
		want   string
	}{
		{4.05, models.AccuracyExcellent},
		{4.25, models.AccuracyGood},
		{4.5, models.AccuracyNeedsImprovement},
		{3.0, models.AccuracyNeedsImprovement},
	}

	for _, tc := range cases {
		fix := newFixture()
		svc := services.NewPlannerService(fix.store.Enrollments(), nil)
		course := fix.addCourse("CS101", 3)
		fix.enroll(s.T(), course)
		fix.grade(s.T(), course, models.GradeB)

		plan, err := svc.Plan(context.Background(), fix.studentID, tc.target)
		s.Require().NoError(err)
		s.Equal(tc.want, plan.Accuracy, "target %v", tc.target)
	}
}

func (s *PlannerServiceSuite) TestPlanDoesNotMutateLedger() {
	course := s.fix.addCourse("CS401", 3)
	s.fix.enroll(s.T(), course)

	_, err := s.svc.Plan(context.Background(), s.fix.studentID, 4.5)
	s.Require().NoError(err)

	enrollments, err := s.fix.store.Enrollments().List(context.Background(), s.fix.studentID, models.EnrollmentFilter{})
	s.Require().NoError(err)
	s.Require().Len(enrollments, 1)
	s.False(enrollments[0].Graded())
}

func (s *PlannerServiceSuite) TestEmptyLedgerPlan() {
	plan, err := s.svc.Plan(context.Background(), s.fix.studentID, 4.0)
	s.Require().NoError(err)
	s.Empty(plan.Proposals)
	s.Equal(0.0, plan.ActualGPA)
	s.Equal(models.AccuracyNeedsImprovement, plan.Accuracy)
}

func TestPlannerServiceSuite(t *testing.T) {
	suite.Run(t, new(PlannerServiceSuite))
}
