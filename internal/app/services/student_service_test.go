package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/app/models/dto"
	"github.com/unigrade/backend/internal/app/repositories/memstore"
	"github.com/unigrade/backend/internal/app/services"
	"github.com/unigrade/backend/internal/pkg/apperrors"
)

type StudentServiceSuite struct {
	suite.Suite

	store   *memstore.Store
	svc     *services.StudentService
	uni     *models.University
	college *models.College
	program *models.Program
}

func (s *StudentServiceSuite) SetupTest() {
	s.store = memstore.New()
	s.svc = services.NewStudentService(s.store.Students(), s.store.Catalog())

	s.uni = &models.University{ID: uuid.New(), Name: "Test University"}
	s.college = &models.College{ID: uuid.New(), UniversityID: s.uni.ID, Name: "Engineering"}
	s.program = &models.Program{ID: uuid.New(), CollegeID: s.college.ID, Name: "Computer Science"}
	s.store.PutUniversity(s.uni)
	s.store.PutCollege(s.college)
	s.store.PutProgram(s.program)
}

func (s *StudentServiceSuite) createRequest() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		UniversityID: s.uni.ID,
		CollegeID:    s.college.ID,
		ProgramID:    s.program.ID,
		Year:         2,
		Semester:     1,
	}
}

func (s *StudentServiceSuite) TestCreateProfile() {
	userID := uuid.New()

	student, err := s.svc.CreateProfile(context.Background(), userID, s.createRequest())
	s.Require().NoError(err)
	s.Equal(userID, student.UserID)
	s.Equal(2, student.Year)
	s.False(student.HasEnrollments)
}

func (s *StudentServiceSuite) TestCreateSecondProfileRejected() {
	userID := uuid.New()

	_, err := s.svc.CreateProfile(context.Background(), userID, s.createRequest())
	s.Require().NoError(err)

	_, err = s.svc.CreateProfile(context.Background(), userID, s.createRequest())
	s.Require().ErrorIs(err, apperrors.ErrProfileAlreadyExists)
}

func (s *StudentServiceSuite) TestCreateProfileUnknownPlacement() {
	req := s.createRequest()
	req.ProgramID = uuid.New()

	_, err := s.svc.CreateProfile(context.Background(), uuid.New(), req)
	s.Require().ErrorIs(err, apperrors.ErrProgramNotFound)

	req = s.createRequest()
	req.UniversityID = uuid.New()

	_, err = s.svc.CreateProfile(context.Background(), uuid.New(), req)
	s.Require().ErrorIs(err, apperrors.ErrUniversityNotFound)
}

func (s *StudentServiceSuite) TestGetProfileMissing() {
	_, err := s.svc.GetProfileByUser(context.Background(), uuid.New())
	s.Require().ErrorIs(err, apperrors.ErrStudentNotFound)
}

func (s *StudentServiceSuite) TestPartialUpdateTouchesOnlyGivenFields() {
	userID := uuid.New()
	_, err := s.svc.CreateProfile(context.Background(), userID, s.createRequest())
	s.Require().NoError(err)

	year := 3
	updated, err := s.svc.UpdateProfile(context.Background(), userID, &dto.PatchStudentRequest{Year: &year})
	s.Require().NoError(err)
	s.Equal(3, updated.Year)
	s.Equal(1, updated.Semester)
	s.Equal(s.program.ID, updated.ProgramID)
}

func (s *StudentServiceSuite) TestUpdateValidatesNewPlacement() {
	userID := uuid.New()
	_, err := s.svc.CreateProfile(context.Background(), userID, s.createRequest())
	s.Require().NoError(err)

	bogus := uuid.New()
	_, err = s.svc.UpdateProfile(context.Background(), userID, &dto.PatchStudentRequest{CollegeID: &bogus})
	s.Require().ErrorIs(err, apperrors.ErrCollegeNotFound)
}

func (s *StudentServiceSuite) TestProfileOptions() {
	options, err := s.svc.ProfileOptions(context.Background())
	s.Require().NoError(err)
	s.Len(options.Universities, 1)
	s.Len(options.Colleges, 1)
	s.Len(options.Programs, 1)
	s.Equal([]int{1, 2, 3, 4, 5}, options.YearChoices)
	s.Equal([]int{1, 2}, options.SemesterChoices)
}

func TestStudentServiceSuite(t *testing.T) {
	suite.Run(t, new(StudentServiceSuite))
}
