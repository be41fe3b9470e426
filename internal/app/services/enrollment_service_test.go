package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/app/services"
	"github.com/unigrade/backend/internal/pkg/apperrors"
)

type EnrollmentServiceSuite struct {
	suite.Suite

	fix   *fixture
	cache *fakeCache
	svc   *services.EnrollmentService
}

func (s *EnrollmentServiceSuite) SetupTest() {
	s.fix = newFixture()
	s.cache = newFakeCache()
	s.svc = services.NewEnrollmentService(s.fix.store.Enrollments(), s.fix.store.Catalog(), s.cache, nil)
}

func (s *EnrollmentServiceSuite) student(id uuid.UUID) *models.Student {
	student, err := s.fix.store.Students().GetByID(context.Background(), id)
	s.Require().NoError(err)
	return student
}

func (s *EnrollmentServiceSuite) TestAddCourse() {
	course := s.fix.addCourse("CS101", 3)

	enrollment, err := s.svc.AddCourse(context.Background(), s.fix.studentID, course.ID)
	s.Require().NoError(err)
	s.Equal(course.ID, enrollment.CourseID)
	s.Nil(enrollment.Grade)
	s.Nil(enrollment.Points)
}

func (s *EnrollmentServiceSuite) TestAddUnknownCourse() {
	_, err := s.svc.AddCourse(context.Background(), s.fix.studentID, uuid.New())
	s.Require().ErrorIs(err, apperrors.ErrCourseNotFound)
}

func (s *EnrollmentServiceSuite) TestAddDuplicateCourse() {
	course := s.fix.addCourse("CS101", 3)

	_, err := s.svc.AddCourse(context.Background(), s.fix.studentID, course.ID)
	s.Require().NoError(err)

	_, err = s.svc.AddCourse(context.Background(), s.fix.studentID, course.ID)
	s.Require().ErrorIs(err, apperrors.ErrDuplicateEnrollment)

	// The failed add left exactly one enrollment behind.
	enrollments, err := s.svc.ListCourses(context.Background(), s.fix.studentID, models.EnrollmentFilter{})
	s.Require().NoError(err)
	s.Len(enrollments, 1)
}

func (s *EnrollmentServiceSuite) TestHasEnrollmentsFollowsLedger() {
	s.False(s.student(s.fix.studentID).HasEnrollments)

	course := s.fix.addCourse("CS101", 3)
	_, err := s.svc.AddCourse(context.Background(), s.fix.studentID, course.ID)
	s.Require().NoError(err)
	s.True(s.student(s.fix.studentID).HasEnrollments)

	err = s.svc.RemoveCourse(context.Background(), s.fix.studentID, course.ID)
	s.Require().NoError(err)
	s.False(s.student(s.fix.studentID).HasEnrollments)
}

func (s *EnrollmentServiceSuite) TestRemoveUnknownEnrollment() {
	err := s.svc.RemoveCourse(context.Background(), s.fix.studentID, uuid.New())
	s.Require().ErrorIs(err, apperrors.ErrEnrollmentNotFound)
}

func (s *EnrollmentServiceSuite) TestListPreservesInsertionOrder() {
	first := s.fix.addCourse("CS103", 3)
	second := s.fix.addCourse("CS101", 3)
	third := s.fix.addCourse("CS102", 3)
	for _, c := range []*models.Course{first, second, third} {
		_, err := s.svc.AddCourse(context.Background(), s.fix.studentID, c.ID)
		s.Require().NoError(err)
	}

	enrollments, err := s.svc.ListCourses(context.Background(), s.fix.studentID, models.EnrollmentFilter{})
	s.Require().NoError(err)
	s.Require().Len(enrollments, 3)
	s.Equal(first.ID, enrollments[0].CourseID)
	s.Equal(second.ID, enrollments[1].CourseID)
	s.Equal(third.ID, enrollments[2].CourseID)
}

func (s *EnrollmentServiceSuite) TestListFilters() {
	early := s.fix.addCourse("CS101", 3)
	early.Year = 1
	late := s.fix.addCourse("CS401", 3)
	late.Year = 4
	for _, c := range []*models.Course{early, late} {
		_, err := s.svc.AddCourse(context.Background(), s.fix.studentID, c.ID)
		s.Require().NoError(err)
	}

	year := 4
	enrollments, err := s.svc.ListCourses(context.Background(), s.fix.studentID, models.EnrollmentFilter{Year: &year})
	s.Require().NoError(err)
	s.Require().Len(enrollments, 1)
	s.Equal(late.ID, enrollments[0].CourseID)
}

func (s *EnrollmentServiceSuite) TestSetGradeDerivesPoints() {
	course := s.fix.addCourse("CS101", 3)
	_, err := s.svc.AddCourse(context.Background(), s.fix.studentID, course.ID)
	s.Require().NoError(err)

	enrollment, err := s.svc.SetGrade(context.Background(), s.fix.studentID, course.ID, "B+")
	s.Require().NoError(err)
	s.Require().NotNil(enrollment.Grade)
	s.Equal(models.GradeBPlus, *enrollment.Grade)
	s.Require().NotNil(enrollment.Points)
	s.Equal(4.5, *enrollment.Points)
}

func (s *EnrollmentServiceSuite) TestSetGradeRejectsUnknownLetter() {
	course := s.fix.addCourse("CS101", 3)
	_, err := s.svc.AddCourse(context.Background(), s.fix.studentID, course.ID)
	s.Require().NoError(err)

	_, err = s.svc.SetGrade(context.Background(), s.fix.studentID, course.ID, "X")
	s.Require().ErrorIs(err, apperrors.ErrInvalidGrade)

	// The rejected write left the enrollment ungraded.
	enrollments, err := s.svc.ListCourses(context.Background(), s.fix.studentID, models.EnrollmentFilter{})
	s.Require().NoError(err)
	s.Require().Len(enrollments, 1)
	s.False(enrollments[0].Graded())
}

func (s *EnrollmentServiceSuite) TestSetGradeOnUnknownEnrollment() {
	course := s.fix.addCourse("CS101", 3)

	_, err := s.svc.SetGrade(context.Background(), s.fix.studentID, course.ID, "A")
	s.Require().ErrorIs(err, apperrors.ErrEnrollmentNotFound)
}

func (s *EnrollmentServiceSuite) TestRegradeOverwrites() {
	course := s.fix.addCourse("CS101", 3)
	_, err := s.svc.AddCourse(context.Background(), s.fix.studentID, course.ID)
	s.Require().NoError(err)

	_, err = s.svc.SetGrade(context.Background(), s.fix.studentID, course.ID, "F")
	s.Require().NoError(err)

	enrollment, err := s.svc.SetGrade(context.Background(), s.fix.studentID, course.ID, "A")
	s.Require().NoError(err)
	s.Equal(models.GradeA, *enrollment.Grade)
	s.Equal(5.0, *enrollment.Points)
}

func (s *EnrollmentServiceSuite) TestBulkReplace() {
	old := s.fix.addCourse("OLD100", 3)
	_, err := s.svc.AddCourse(context.Background(), s.fix.studentID, old.ID)
	s.Require().NoError(err)
	_, err = s.svc.SetGrade(context.Background(), s.fix.studentID, old.ID, "A")
	s.Require().NoError(err)

	first := s.fix.addCourse("NEW101", 3)
	second := s.fix.addCourse("NEW102", 4)

	enrollments, err := s.svc.BulkReplace(context.Background(), s.fix.studentID, []uuid.UUID{first.ID, second.ID})
	s.Require().NoError(err)
	s.Require().Len(enrollments, 2)
	s.Equal(first.ID, enrollments[0].CourseID)
	s.Equal(second.ID, enrollments[1].CourseID)

	// The old graded enrollment is gone; replacements start ungraded.
	listed, err := s.svc.ListCourses(context.Background(), s.fix.studentID, models.EnrollmentFilter{})
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	for _, e := range listed {
		s.False(e.Graded())
	}
}

func (s *EnrollmentServiceSuite) TestBulkReplaceUnknownCourseFailsWhole() {
	existing := s.fix.addCourse("CS101", 3)
	_, err := s.svc.AddCourse(context.Background(), s.fix.studentID, existing.ID)
	s.Require().NoError(err)

	valid := s.fix.addCourse("CS102", 3)
	_, err = s.svc.BulkReplace(context.Background(), s.fix.studentID, []uuid.UUID{valid.ID, uuid.New()})
	s.Require().ErrorIs(err, apperrors.ErrCourseNotFound)

	// The failed replace left the ledger untouched.
	enrollments, err := s.svc.ListCourses(context.Background(), s.fix.studentID, models.EnrollmentFilter{})
	s.Require().NoError(err)
	s.Require().Len(enrollments, 1)
	s.Equal(existing.ID, enrollments[0].CourseID)
}

func (s *EnrollmentServiceSuite) TestBulkReplaceEmptyClearsLedger() {
	course := s.fix.addCourse("CS101", 3)
	_, err := s.svc.AddCourse(context.Background(), s.fix.studentID, course.ID)
	s.Require().NoError(err)

	enrollments, err := s.svc.BulkReplace(context.Background(), s.fix.studentID, nil)
	s.Require().NoError(err)
	s.Empty(enrollments)
	s.False(s.student(s.fix.studentID).HasEnrollments)
}

func (s *EnrollmentServiceSuite) TestResetGrades() {
	first := s.fix.addCourse("CS101", 3)
	second := s.fix.addCourse("CS102", 4)
	for _, c := range []*models.Course{first, second} {
		_, err := s.svc.AddCourse(context.Background(), s.fix.studentID, c.ID)
		s.Require().NoError(err)
	}
	_, err := s.svc.SetGrade(context.Background(), s.fix.studentID, first.ID, "F")
	s.Require().NoError(err)

	count, err := s.svc.ResetGrades(context.Background(), s.fix.studentID)
	s.Require().NoError(err)
	s.Equal(2, count)

	enrollments, err := s.svc.ListCourses(context.Background(), s.fix.studentID, models.EnrollmentFilter{})
	s.Require().NoError(err)
	for _, e := range enrollments {
		s.Require().NotNil(e.Grade)
		s.Equal(models.GradeA, *e.Grade)
		s.Equal(5.0, *e.Points)
	}
}

func (s *EnrollmentServiceSuite) TestMutationsInvalidateCache() {
	course := s.fix.addCourse("CS101", 3)

	s.cache.entries[s.fix.studentID] = &models.GPABreakdown{GPA: 9.9}
	_, err := s.svc.AddCourse(context.Background(), s.fix.studentID, course.ID)
	s.Require().NoError(err)
	s.NotContains(s.cache.entries, s.fix.studentID)

	s.cache.entries[s.fix.studentID] = &models.GPABreakdown{GPA: 9.9}
	_, err = s.svc.SetGrade(context.Background(), s.fix.studentID, course.ID, "A")
	s.Require().NoError(err)
	s.NotContains(s.cache.entries, s.fix.studentID)
}

func TestEnrollmentServiceSuite(t *testing.T) {
	suite.Run(t, new(EnrollmentServiceSuite))
}
