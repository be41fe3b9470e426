package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/pkg/apperrors"
	"github.com/unigrade/backend/internal/pkg/dberrors"
)

// StudentRepository handles database operations for student profiles
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentColumns = `id, user_id, university_id, college_id, program_id, year, semester, has_enrollments, created_at, updated_at`

// Create inserts a new student profile. Each user account may own at most
// one profile; a second insert fails with ErrProfileAlreadyExists.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, university_id, college_id, program_id, year, semester)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, has_enrollments, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.UserID,
		student.UniversityID,
		student.CollegeID,
		student.ProgramID,
		student.Year,
		student.Semester,
	).Scan(&student.ID, &student.HasEnrollments, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_user_id_key") {
			return apperrors.ErrProfileAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err, "") {
			return apperrors.ErrResourceNotFound
		}
		return storeErr(err, "creating student")
	}

	return nil
}

// GetByUserID retrieves the profile owned by a user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error) {
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE user_id = $1`, userID)
}

// GetByID retrieves a student profile by id
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
}

// Update rewrites the mutable placement fields of a profile. The derived
// has_enrollments flag is owned by the enrollment ledger and deliberately
// not written here.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET university_id = $2, college_id = $3, program_id = $4, year = $5, semester = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.ID,
		student.UniversityID,
		student.CollegeID,
		student.ProgramID,
		student.Year,
		student.Semester,
	).Scan(&student.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStudentNotFound
		}
		if dberrors.IsForeignKeyViolation(err, "") {
			return apperrors.ErrResourceNotFound
		}
		return storeErr(err, "updating student")
	}

	return nil
}

func (r *StudentRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Student, error) {
	var s models.Student
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&s.ID,
		&s.UserID,
		&s.UniversityID,
		&s.CollegeID,
		&s.ProgramID,
		&s.Year,
		&s.Semester,
		&s.HasEnrollments,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, storeErr(err, "retrieving student")
	}

	return &s, nil
}
