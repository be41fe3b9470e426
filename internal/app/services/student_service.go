package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/app/models/dto"
	"github.com/unigrade/backend/internal/pkg/apperrors"
	"github.com/unigrade/backend/internal/pkg/logger"
)

// Selectable ranges for profile placement.
var (
	profileYearChoices     = []int{1, 2, 3, 4, 5}
	profileSemesterChoices = []int{1, 2}
)

// StudentService manages student profiles.
type StudentService struct {
	students StudentStore
	catalog  CatalogStore
}

// NewStudentService creates a new student service
func NewStudentService(students StudentStore, catalog CatalogStore) *StudentService {
	return &StudentService{
		students: students,
		catalog:  catalog,
	}
}

// CreateProfile creates the profile owned by the given user account. Each
// placement id must reference an existing catalog row.
func (s *StudentService) CreateProfile(ctx context.Context, userID uuid.UUID, req *dto.CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		UserID:       userID,
		UniversityID: req.UniversityID,
		CollegeID:    req.CollegeID,
		ProgramID:    req.ProgramID,
		Year:         req.Year,
		Semester:     req.Semester,
	}

	if err := s.validatePlacement(ctx, student); err != nil {
		return nil, err
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	logger.Info().
		Str("studentId", student.ID.String()).
		Str("userId", userID.String()).
		Msg("Student profile created")

	return student, nil
}

// GetProfileByUser retrieves the profile owned by a user account.
func (s *StudentService) GetProfileByUser(ctx context.Context, userID uuid.UUID) (*models.Student, error) {
	return s.students.GetByUserID(ctx, userID)
}

// UpdateProfile applies a partial update to the profile owned by the user.
// Only non-nil fields change; changed placement ids are validated against
// the catalog.
func (s *StudentService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.PatchStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := *student
	if req.UniversityID != nil {
		updated.UniversityID = *req.UniversityID
	}
	if req.CollegeID != nil {
		updated.CollegeID = *req.CollegeID
	}
	if req.ProgramID != nil {
		updated.ProgramID = *req.ProgramID
	}
	if req.Year != nil {
		updated.Year = *req.Year
	}
	if req.Semester != nil {
		updated.Semester = *req.Semester
	}

	if err := s.validatePlacement(ctx, &updated); err != nil {
		return nil, err
	}

	if err := s.students.Update(ctx, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// ProfileOptions lists the selectable values for profile creation: the
// full catalog hierarchy plus the fixed year and semester ranges.
func (s *StudentService) ProfileOptions(ctx context.Context) (*dto.ProfileOptionsResponse, error) {
	universities, err := s.catalog.ListUniversities(ctx)
	if err != nil {
		return nil, err
	}

	colleges := make([]*models.College, 0)
	programs := make([]*models.Program, 0)
	for _, u := range universities {
		unicolleges, err := s.catalog.ListColleges(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		colleges = append(colleges, unicolleges...)

		for _, c := range unicolleges {
			collegePrograms, err := s.catalog.ListPrograms(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			programs = append(programs, collegePrograms...)
		}
	}

	return &dto.ProfileOptionsResponse{
		Universities:    universities,
		Colleges:        colleges,
		Programs:        programs,
		YearChoices:     profileYearChoices,
		SemesterChoices: profileSemesterChoices,
	}, nil
}

// validatePlacement checks that each placement id references an existing
// catalog row, mapping the first missing level to its sentinel.
func (s *StudentService) validatePlacement(ctx context.Context, student *models.Student) error {
	exists, err := s.catalog.UniversityExists(ctx, student.UniversityID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrUniversityNotFound
	}

	exists, err = s.catalog.CollegeExists(ctx, student.CollegeID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrCollegeNotFound
	}

	exists, err = s.catalog.ProgramExists(ctx, student.ProgramID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrProgramNotFound
	}

	return nil
}
