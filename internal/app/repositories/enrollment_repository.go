package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/db"
	"github.com/unigrade/backend/internal/pkg/apperrors"
	"github.com/unigrade/backend/internal/pkg/dberrors"
)

// EnrollmentRepository is the persistence side of the enrollment ledger.
// Every mutation runs in a single transaction together with the
// consistency sync of the student's has_enrollments flag, so an enrollment
// change without the matching flag value is never observable.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// Add enrolls a student in a course. The created enrollment is ungraded.
func (r *EnrollmentRepository) Add(ctx context.Context, studentID uuid.UUID, course *models.Course) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{
		StudentID: studentID,
		CourseID:  course.ID,
		Course:    course,
	}

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO enrollments (student_id, course_id)
			VALUES ($1, $2)
			RETURNING id, created_at
		`, studentID, course.ID).Scan(&enrollment.ID, &enrollment.CreatedAt)
		if err != nil {
			return err
		}

		return syncHasEnrollments(ctx, tx, studentID)
	})
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "enrollments_student_course_key"):
			return nil, apperrors.ErrDuplicateEnrollment
		case dberrors.IsForeignKeyViolation(err, "enrollments_course_id_fkey"):
			return nil, apperrors.ErrCourseNotFound
		case dberrors.IsForeignKeyViolation(err, "enrollments_student_id_fkey"):
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, storeErr(err, "adding enrollment")
	}

	return enrollment, nil
}

// Remove deletes one enrollment and reports whether it existed.
func (r *EnrollmentRepository) Remove(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	var removed bool

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			DELETE FROM enrollments
			WHERE student_id = $1 AND course_id = $2
		`, studentID, courseID)
		if err != nil {
			return err
		}

		removed = cmdTag.RowsAffected() > 0
		if !removed {
			// Nothing changed, the flag is already consistent.
			return nil
		}

		return syncHasEnrollments(ctx, tx, studentID)
	})
	if err != nil {
		return false, storeErr(err, "removing enrollment")
	}

	return removed, nil
}

// List returns the student's enrollments with their catalog courses
// attached, in insertion order. Filter fields are exact-match conjunctions.
func (r *EnrollmentRepository) List(ctx context.Context, studentID uuid.UUID, filter models.EnrollmentFilter) ([]*models.Enrollment, error) {
	builder := squirrel.Select(
		"e.id", "e.student_id", "e.course_id", "e.grade", "e.points", "e.created_at",
		"c.id", "c.code", "c.name", "c.credits", "c.kind", "c.semester", "c.year", "c.program_id", "c.created_at", "c.updated_at",
	).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.seq").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Semester != nil {
		builder = builder.Where(squirrel.Eq{"c.semester": *filter.Semester})
	}
	if filter.Year != nil {
		builder = builder.Where(squirrel.Eq{"c.year": *filter.Year})
	}
	if filter.Kind != nil {
		builder = builder.Where(squirrel.Eq{"c.kind": *filter.Kind})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, storeErr(err, "building enrollment query")
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeErr(err, "listing enrollments")
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollmentWithCourse(rows)
		if err != nil {
			return nil, storeErr(err, "scanning enrollment")
		}
		enrollments = append(enrollments, enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "listing enrollments")
	}

	return enrollments, nil
}

// SetGrade writes a grade and its derived points onto one enrollment.
// Grading never changes whether the ledger is empty, so the flag sync is
// not needed here.
func (r *EnrollmentRepository) SetGrade(ctx context.Context, studentID, courseID uuid.UUID, grade models.Grade, points float64) (*models.Enrollment, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE enrollments e
		SET grade = $3, points = $4
		FROM courses c
		WHERE e.student_id = $1 AND e.course_id = $2 AND c.id = e.course_id
		RETURNING e.id, e.student_id, e.course_id, e.grade, e.points, e.created_at,
			c.id, c.code, c.name, c.credits, c.kind, c.semester, c.year, c.program_id, c.created_at, c.updated_at
	`, studentID, courseID, string(grade), points)

	enrollment, err := scanEnrollmentWithCourse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, storeErr(err, "setting grade")
	}

	return enrollment, nil
}

// ReplaceAll atomically replaces the student's entire enrollment set with
// ungraded enrollments in the given courses, preserving input order.
func (r *EnrollmentRepository) ReplaceAll(ctx context.Context, studentID uuid.UUID, courses []*models.Course) ([]*models.Enrollment, error) {
	enrollments := make([]*models.Enrollment, 0, len(courses))

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM enrollments WHERE student_id = $1`, studentID); err != nil {
			return err
		}

		for _, course := range courses {
			enrollment := &models.Enrollment{
				StudentID: studentID,
				CourseID:  course.ID,
				Course:    course,
			}

			err := tx.QueryRow(ctx, `
				INSERT INTO enrollments (student_id, course_id)
				VALUES ($1, $2)
				RETURNING id, created_at
			`, studentID, course.ID).Scan(&enrollment.ID, &enrollment.CreatedAt)
			if err != nil {
				return err
			}

			enrollments = append(enrollments, enrollment)
		}

		return syncHasEnrollments(ctx, tx, studentID)
	})
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "enrollments_student_course_key"):
			return nil, apperrors.ErrDuplicateEnrollment
		case dberrors.IsForeignKeyViolation(err, "enrollments_course_id_fkey"):
			return nil, apperrors.ErrCourseNotFound
		case dberrors.IsForeignKeyViolation(err, "enrollments_student_id_fkey"):
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, storeErr(err, "replacing enrollments")
	}

	return enrollments, nil
}

// ResetGrades writes the same grade and derived points onto every
// enrollment of the student, returning how many rows were updated.
func (r *EnrollmentRepository) ResetGrades(ctx context.Context, studentID uuid.UUID, grade models.Grade, points float64) (int, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE enrollments
		SET grade = $2, points = $3
		WHERE student_id = $1
	`, studentID, string(grade), points)
	if err != nil {
		return 0, storeErr(err, "resetting grades")
	}

	return int(cmdTag.RowsAffected()), nil
}

// syncHasEnrollments recomputes the derived has_enrollments flag from the
// ledger contents inside the mutation's transaction. The row is written
// only when the value actually changes.
func syncHasEnrollments(ctx context.Context, tx pgx.Tx, studentID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		UPDATE students s
		SET has_enrollments = x.has_any, updated_at = now()
		FROM (SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1) AS has_any) x
		WHERE s.id = $1 AND s.has_enrollments IS DISTINCT FROM x.has_any
	`, studentID)
	return err
}

// scanEnrollmentWithCourse reads one enrollment row joined with its course.
func scanEnrollmentWithCourse(row pgx.Row) (*models.Enrollment, error) {
	var (
		e      models.Enrollment
		c      models.Course
		grade  *string
		points *float64
	)

	err := row.Scan(
		&e.ID, &e.StudentID, &e.CourseID, &grade, &points, &e.CreatedAt,
		&c.ID, &c.Code, &c.Name, &c.Credits, &c.Kind, &c.Semester, &c.Year, &c.ProgramID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if grade != nil {
		g := models.Grade(*grade)
		e.Grade = &g
	}
	e.Points = points
	e.Course = &c

	return &e, nil
}
