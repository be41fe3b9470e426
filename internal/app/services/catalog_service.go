package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/pkg/apperrors"
)

// CatalogService exposes the read-only catalog hierarchy. Listing under a
// missing parent is an error, not an empty list, so clients can tell a bad
// id from an empty level.
type CatalogService struct {
	catalog CatalogStore
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog CatalogStore) *CatalogService {
	return &CatalogService{
		catalog: catalog,
	}
}

// ListUniversities returns all universities.
func (s *CatalogService) ListUniversities(ctx context.Context) ([]*models.University, error) {
	return s.catalog.ListUniversities(ctx)
}

// ListColleges returns the colleges of a university.
func (s *CatalogService) ListColleges(ctx context.Context, universityID uuid.UUID) ([]*models.College, error) {
	exists, err := s.catalog.UniversityExists(ctx, universityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrUniversityNotFound
	}

	return s.catalog.ListColleges(ctx, universityID)
}

// ListPrograms returns the programs of a college.
func (s *CatalogService) ListPrograms(ctx context.Context, collegeID uuid.UUID) ([]*models.Program, error) {
	exists, err := s.catalog.CollegeExists(ctx, collegeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCollegeNotFound
	}

	return s.catalog.ListPrograms(ctx, collegeID)
}

// ListCourses returns the courses of a program, optionally filtered by
// year and semester.
func (s *CatalogService) ListCourses(ctx context.Context, programID uuid.UUID, filter models.CourseFilter) ([]*models.Course, error) {
	exists, err := s.catalog.ProgramExists(ctx, programID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrProgramNotFound
	}

	return s.catalog.ListCourses(ctx, programID, filter)
}

// GetCourse retrieves a single catalog course.
func (s *CatalogService) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.catalog.GetCourse(ctx, id)
}
