package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/pkg/apperrors"
)

// CatalogRepository handles read-oriented lookups over the
// university/college/program/course hierarchy. The catalog is reference
// data: rows are written by the import pipeline and the seeder, never
// through enrollments.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{
		db: db,
	}
}

const courseColumns = "id, code, name, credits, kind, semester, year, program_id, created_at, updated_at"

// ListUniversities retrieves all universities
func (r *CatalogRepository) ListUniversities(ctx context.Context) ([]*models.University, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, country, created_at, updated_at
		FROM universities
		ORDER BY name
	`)
	if err != nil {
		return nil, storeErr(err, "listing universities")
	}
	defer rows.Close()

	var universities []*models.University
	for rows.Next() {
		var u models.University
		if err := rows.Scan(&u.ID, &u.Name, &u.Country, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, storeErr(err, "scanning university")
		}
		universities = append(universities, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "listing universities")
	}

	return universities, nil
}

// UniversityExists checks whether a university exists by id
func (r *CatalogRepository) UniversityExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM universities WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, storeErr(err, "checking university existence")
	}
	return exists, nil
}

// ListColleges retrieves all colleges of a university
func (r *CatalogRepository) ListColleges(ctx context.Context, universityID uuid.UUID) ([]*models.College, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, university_id, created_at, updated_at
		FROM colleges
		WHERE university_id = $1
		ORDER BY name
	`, universityID)
	if err != nil {
		return nil, storeErr(err, "listing colleges")
	}
	defer rows.Close()

	var colleges []*models.College
	for rows.Next() {
		var c models.College
		if err := rows.Scan(&c.ID, &c.Name, &c.UniversityID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, storeErr(err, "scanning college")
		}
		colleges = append(colleges, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "listing colleges")
	}

	return colleges, nil
}

// CollegeExists checks whether a college exists by id
func (r *CatalogRepository) CollegeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM colleges WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, storeErr(err, "checking college existence")
	}
	return exists, nil
}

// ListPrograms retrieves all programs of a college
func (r *CatalogRepository) ListPrograms(ctx context.Context, collegeID uuid.UUID) ([]*models.Program, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, college_id, duration_years, created_at, updated_at
		FROM programs
		WHERE college_id = $1
		ORDER BY name
	`, collegeID)
	if err != nil {
		return nil, storeErr(err, "listing programs")
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.CollegeID, &p.DurationYears, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, storeErr(err, "scanning program")
		}
		programs = append(programs, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "listing programs")
	}

	return programs, nil
}

// ProgramExists checks whether a program exists by id
func (r *CatalogRepository) ProgramExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM programs WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, storeErr(err, "checking program existence")
	}
	return exists, nil
}

// ListCourses retrieves the courses of a program, optionally narrowed by
// year and semester.
func (r *CatalogRepository) ListCourses(ctx context.Context, programID uuid.UUID, filter models.CourseFilter) ([]*models.Course, error) {
	builder := squirrel.Select(
		"id", "code", "name", "credits", "kind", "semester", "year", "program_id", "created_at", "updated_at",
	).
		From("courses").
		Where(squirrel.Eq{"program_id": programID}).
		OrderBy("year", "semester", "code").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Year != nil {
		builder = builder.Where(squirrel.Eq{"year": *filter.Year})
	}
	if filter.Semester != nil {
		builder = builder.Where(squirrel.Eq{"semester": *filter.Semester})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, storeErr(err, "building course query")
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeErr(err, "listing courses")
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, storeErr(err, "scanning course")
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "listing courses")
	}

	return courses, nil
}

// GetCourse retrieves a single course by id
func (r *CatalogRepository) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	row := r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)

	course, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, storeErr(err, "retrieving course")
	}

	return course, nil
}

// GetCourses retrieves courses for the given ids, preserving input order.
// Returns ErrCourseNotFound if any id is unknown.
func (r *CatalogRepository) GetCourses(ctx context.Context, ids []uuid.UUID) ([]*models.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, storeErr(err, "retrieving courses")
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*models.Course, len(ids))
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, storeErr(err, "scanning course")
		}
		byID[course.ID] = course
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "retrieving courses")
	}

	courses := make([]*models.Course, 0, len(ids))
	for _, id := range ids {
		course, ok := byID[id]
		if !ok {
			return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound, "course "+id.String()+" not found")
		}
		courses = append(courses, course)
	}

	return courses, nil
}

// scanCourse reads one course row from either a pgx.Row or pgx.Rows.
func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Name,
		&c.Credits,
		&c.Kind,
		&c.Semester,
		&c.Year,
		&c.ProgramID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
