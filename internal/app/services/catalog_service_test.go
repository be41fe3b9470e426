package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/app/repositories/memstore"
	"github.com/unigrade/backend/internal/app/services"
	"github.com/unigrade/backend/internal/pkg/apperrors"
)

type CatalogServiceSuite struct {
	suite.Suite

	store *memstore.Store
	svc   *services.CatalogService

	uni     *models.University
	college *models.College
	program *models.Program
}

func (s *CatalogServiceSuite) SetupTest() {
	s.store = memstore.New()
	s.svc = services.NewCatalogService(s.store.Catalog())

	s.uni = &models.University{ID: uuid.New(), Name: "Test University"}
	s.college = &models.College{ID: uuid.New(), UniversityID: s.uni.ID, Name: "Engineering"}
	s.program = &models.Program{ID: uuid.New(), CollegeID: s.college.ID, Name: "Computer Science"}
	s.store.PutUniversity(s.uni)
	s.store.PutCollege(s.college)
	s.store.PutProgram(s.program)
}

func (s *CatalogServiceSuite) putCourse(code string, year, semester int) *models.Course {
	course := &models.Course{
		ID:        uuid.New(),
		Code:      code,
		Name:      "Course " + code,
		Credits:   3,
		Kind:      models.CourseKindCore,
		Semester:  semester,
		Year:      year,
		ProgramID: s.program.ID,
	}
	s.store.PutCourse(course)
	return course
}

func (s *CatalogServiceSuite) TestListCollegesOfUnknownUniversity() {
	_, err := s.svc.ListColleges(context.Background(), uuid.New())
	s.Require().ErrorIs(err, apperrors.ErrUniversityNotFound)
}

func (s *CatalogServiceSuite) TestListProgramsOfUnknownCollege() {
	_, err := s.svc.ListPrograms(context.Background(), uuid.New())
	s.Require().ErrorIs(err, apperrors.ErrCollegeNotFound)
}

func (s *CatalogServiceSuite) TestListCoursesOfUnknownProgram() {
	_, err := s.svc.ListCourses(context.Background(), uuid.New(), models.CourseFilter{})
	s.Require().ErrorIs(err, apperrors.ErrProgramNotFound)
}

func (s *CatalogServiceSuite) TestEmptyLevelIsNotAnError() {
	colleges, err := s.svc.ListColleges(context.Background(), s.uni.ID)
	s.Require().NoError(err)
	s.Len(colleges, 1)

	programs, err := s.svc.ListPrograms(context.Background(), s.college.ID)
	s.Require().NoError(err)
	s.Len(programs, 1)

	courses, err := s.svc.ListCourses(context.Background(), s.program.ID, models.CourseFilter{})
	s.Require().NoError(err)
	s.Empty(courses)
}

func (s *CatalogServiceSuite) TestListCoursesFiltered() {
	s.putCourse("CS101", 1, 1)
	s.putCourse("CS102", 1, 2)
	target := s.putCourse("CS201", 2, 1)

	year, semester := 2, 1
	courses, err := s.svc.ListCourses(context.Background(), s.program.ID, models.CourseFilter{Year: &year, Semester: &semester})
	s.Require().NoError(err)
	s.Require().Len(courses, 1)
	s.Equal(target.ID, courses[0].ID)
}

func (s *CatalogServiceSuite) TestGetCourse() {
	course := s.putCourse("CS101", 1, 1)

	got, err := s.svc.GetCourse(context.Background(), course.ID)
	s.Require().NoError(err)
	s.Equal(course.Code, got.Code)

	_, err = s.svc.GetCourse(context.Background(), uuid.New())
	s.Require().ErrorIs(err, apperrors.ErrCourseNotFound)
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}
