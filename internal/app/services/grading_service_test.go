package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/app/repositories/memstore"
	"github.com/unigrade/backend/internal/app/services"
)

// fakeCache is an in-memory BreakdownCache for service tests.
type fakeCache struct {
	entries map[uuid.UUID]*models.GPABreakdown
	hits    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[uuid.UUID]*models.GPABreakdown)}
}

func (c *fakeCache) Get(ctx context.Context, studentID uuid.UUID) (*models.GPABreakdown, error) {
	b, ok := c.entries[studentID]
	if !ok {
		return nil, nil
	}
	c.hits++
	return b, nil
}

func (c *fakeCache) Set(ctx context.Context, studentID uuid.UUID, breakdown *models.GPABreakdown) error {
	c.sets++
	c.entries[studentID] = breakdown
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, studentID uuid.UUID) error {
	delete(c.entries, studentID)
	return nil
}

// fixture seeds a catalog hierarchy with one student and returns the ids
// needed by the suites.
type fixture struct {
	store     *memstore.Store
	studentID uuid.UUID
	programID uuid.UUID
}

func newFixture() *fixture {
	store := memstore.New()

	uni := &models.University{ID: uuid.New(), Name: "Test University"}
	college := &models.College{ID: uuid.New(), UniversityID: uni.ID, Name: "Engineering"}
	program := &models.Program{ID: uuid.New(), CollegeID: college.ID, Name: "Computer Science"}
	store.PutUniversity(uni)
	store.PutCollege(college)
	store.PutProgram(program)

	student := &models.Student{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		UniversityID: uni.ID,
		CollegeID:    college.ID,
		ProgramID:    program.ID,
		Year:         2,
		Semester:     1,
	}
	store.PutStudent(student)

	return &fixture{store: store, studentID: student.ID, programID: program.ID}
}

func (f *fixture) addCourse(code string, credits int) *models.Course {
	course := &models.Course{
		ID:        uuid.New(),
		Code:      code,
		Name:      "Course " + code,
		Credits:   credits,
		Kind:      models.CourseKindCore,
		Semester:  1,
		Year:      2,
		ProgramID: f.programID,
	}
	f.store.PutCourse(course)
	return course
}

func (f *fixture) enroll(t *testing.T, course *models.Course) {
	t.Helper()
	if _, err := f.store.Enrollments().Add(context.Background(), f.studentID, course); err != nil {
		t.Fatalf("enrolling %s: %v", course.Code, err)
	}
}

func (f *fixture) grade(t *testing.T, course *models.Course, grade models.Grade) {
	t.Helper()
	points, ok := grade.Points()
	if !ok {
		t.Fatalf("grade %q not on scale", grade)
	}
	if _, err := f.store.Enrollments().SetGrade(context.Background(), f.studentID, course.ID, grade, points); err != nil {
		t.Fatalf("grading %s: %v", course.Code, err)
	}
}

type GradingServiceSuite struct {
	suite.Suite

	fix   *fixture
	cache *fakeCache
	svc   *services.GradingService
}

func (s *GradingServiceSuite) SetupTest() {
	s.fix = newFixture()
	s.cache = newFakeCache()
	s.svc = services.NewGradingService(s.fix.store.Enrollments(), s.cache, nil)
}

func (s *GradingServiceSuite) TestNoEnrollmentsYieldsZero() {
	gpa, err := s.svc.ComputeGPA(context.Background(), s.fix.studentID)
	s.Require().NoError(err)
	s.Equal(0.0, gpa)
}

func (s *GradingServiceSuite) TestUngradedCoursesAreInvisible() {
	s.fix.enroll(s.T(), s.fix.addCourse("CS101", 3))
	s.fix.enroll(s.T(), s.fix.addCourse("CS102", 4))

	breakdown, err := s.svc.ComputeBreakdown(context.Background(), s.fix.studentID)
	s.Require().NoError(err)
	s.Equal(0.0, breakdown.GPA)
	s.Equal(0, breakdown.TotalCredits)
	s.Equal(0, breakdown.GradedCourses)
	s.Empty(breakdown.Breakdown)
}

func (s *GradingServiceSuite) TestCreditWeightedGPA() {
	algebra := s.fix.addCourse("MATH201", 3)
	physics := s.fix.addCourse("PHYS110", 4)
	history := s.fix.addCourse("HIST100", 3)
	s.fix.enroll(s.T(), algebra)
	s.fix.enroll(s.T(), physics)
	s.fix.enroll(s.T(), history)
	s.fix.grade(s.T(), algebra, models.GradeA)
	s.fix.grade(s.T(), physics, models.GradeBPlus)
	s.fix.grade(s.T(), history, models.GradeC)

	breakdown, err := s.svc.ComputeBreakdown(context.Background(), s.fix.studentID)
	s.Require().NoError(err)

	// (5.0*3 + 4.5*4 + 3.0*3) / 10 = 42 / 10
	s.Equal(4.2, breakdown.GPA)
	s.Equal(10, breakdown.TotalCredits)
	s.Equal(42.0, breakdown.TotalPoints)
	s.Equal(3, breakdown.GradedCourses)
	s.Require().Len(breakdown.Breakdown, 3)
	s.Equal(15.0, breakdown.Breakdown[0].Contribution)
	s.Equal(18.0, breakdown.Breakdown[1].Contribution)
	s.Equal(9.0, breakdown.Breakdown[2].Contribution)
}

func (s *GradingServiceSuite) TestMixedGradedAndUngraded() {
	graded := s.fix.addCourse("CS201", 3)
	ungraded := s.fix.addCourse("CS202", 5)
	s.fix.enroll(s.T(), graded)
	s.fix.enroll(s.T(), ungraded)
	s.fix.grade(s.T(), graded, models.GradeB)

	breakdown, err := s.svc.ComputeBreakdown(context.Background(), s.fix.studentID)
	s.Require().NoError(err)

	// Only the graded 3 credits count.
	s.Equal(4.0, breakdown.GPA)
	s.Equal(3, breakdown.TotalCredits)
	s.Equal(1, breakdown.GradedCourses)
}

func (s *GradingServiceSuite) TestGPARounding() {
	a := s.fix.addCourse("CS301", 3)
	b := s.fix.addCourse("CS302", 4)
	s.fix.enroll(s.T(), a)
	s.fix.enroll(s.T(), b)
	s.fix.grade(s.T(), a, models.GradeA)
	s.fix.grade(s.T(), b, models.GradeC)

	gpa, err := s.svc.ComputeGPA(context.Background(), s.fix.studentID)
	s.Require().NoError(err)

	// (5.0*3 + 3.0*4) / 7 = 27/7 = 3.857... rounds to 3.86
	s.Equal(3.86, gpa)
}

func (s *GradingServiceSuite) TestAllFGradesYieldZeroNotMissing() {
	course := s.fix.addCourse("CS401", 3)
	s.fix.enroll(s.T(), course)
	s.fix.grade(s.T(), course, models.GradeF)

	breakdown, err := s.svc.ComputeBreakdown(context.Background(), s.fix.studentID)
	s.Require().NoError(err)

	// F participates with 0 points; the course is still graded.
	s.Equal(0.0, breakdown.GPA)
	s.Equal(3, breakdown.TotalCredits)
	s.Equal(1, breakdown.GradedCourses)
}

func (s *GradingServiceSuite) TestSecondReadServedFromCache() {
	course := s.fix.addCourse("CS501", 3)
	s.fix.enroll(s.T(), course)
	s.fix.grade(s.T(), course, models.GradeA)

	_, err := s.svc.ComputeBreakdown(context.Background(), s.fix.studentID)
	s.Require().NoError(err)
	s.Equal(1, s.cache.sets)

	_, err = s.svc.ComputeBreakdown(context.Background(), s.fix.studentID)
	s.Require().NoError(err)
	s.Equal(1, s.cache.hits)
	s.Equal(1, s.cache.sets)
}

func (s *GradingServiceSuite) TestWorksWithoutCache() {
	svc := services.NewGradingService(s.fix.store.Enrollments(), nil, nil)

	course := s.fix.addCourse("CS601", 2)
	s.fix.enroll(s.T(), course)
	s.fix.grade(s.T(), course, models.GradeD)

	gpa, err := svc.ComputeGPA(context.Background(), s.fix.studentID)
	s.Require().NoError(err)
	s.Equal(2.0, gpa)
}

func TestGradingServiceSuite(t *testing.T) {
	suite.Run(t, new(GradingServiceSuite))
}
