// Package seed creates default catalog data so a fresh installation has a
// browsable hierarchy to enroll against.
package seed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type seedCourse struct {
	code     string
	name     string
	credits  int
	kind     string
	semester int
	year     int
}

var defaultCourses = []seedCourse{
	{"CS101", "Introduction to Programming", 4, "core", 1, 1},
	{"CS102", "Discrete Mathematics", 3, "core", 2, 1},
	{"CS201", "Data Structures", 4, "core", 1, 2},
	{"CS202", "Algorithms", 4, "core", 2, 2},
	{"CS301", "Databases", 3, "core", 1, 3},
	{"CS302", "Operating Systems", 4, "core", 2, 3},
	{"CS310", "Machine Learning", 3, "elective", 1, 3},
	{"CS401", "Distributed Systems", 3, "core", 1, 4},
	{"CS410", "Computer Graphics", 3, "elective", 2, 4},
	{"MATH101", "Calculus I", 4, "core", 1, 1},
	{"MATH102", "Calculus II", 4, "core", 2, 1},
	{"PHYS101", "Physics I", 3, "core", 1, 1},
}

// CreateDefaultData seeds a default university, college, program and its
// course list. Safe to run repeatedly.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default catalog data...")

	universityID, err := ensureRow(ctx, dbPool,
		`SELECT id FROM universities WHERE name = $1`,
		`INSERT INTO universities (name, country) VALUES ($1, $2) RETURNING id`,
		[]interface{}{"Istanbul Technical University"},
		[]interface{}{"Istanbul Technical University", "Turkey"},
	)
	if err != nil {
		return err
	}

	collegeID, err := ensureRow(ctx, dbPool,
		`SELECT id FROM colleges WHERE name = $1 AND university_id = $2`,
		`INSERT INTO colleges (name, university_id) VALUES ($1, $2) RETURNING id`,
		[]interface{}{"Faculty of Engineering", universityID},
		[]interface{}{"Faculty of Engineering", universityID},
	)
	if err != nil {
		return err
	}

	programID, err := ensureRow(ctx, dbPool,
		`SELECT id FROM programs WHERE name = $1 AND college_id = $2`,
		`INSERT INTO programs (name, college_id, duration_years) VALUES ($1, $2, $3) RETURNING id`,
		[]interface{}{"Computer Engineering", collegeID},
		[]interface{}{"Computer Engineering", collegeID, 4},
	)
	if err != nil {
		return err
	}

	var finalErr error
	for _, c := range defaultCourses {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO courses (code, name, credits, kind, semester, year, program_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT ON CONSTRAINT courses_code_program_key DO NOTHING
		`, c.code, c.name, c.credits, c.kind, c.semester, c.year, programID)
		if err != nil {
			lgr.Error().Err(err).Str("code", c.code).Msg("Error seeding course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default catalog data in place")
	}
	return finalErr
}

// ensureRow returns the id selected by selectSQL, inserting the row first
// when it does not exist.
func ensureRow(ctx context.Context, dbPool *pgxpool.Pool, selectSQL, insertSQL string, selectArgs, insertArgs []interface{}) (uuid.UUID, error) {
	var id uuid.UUID

	err := dbPool.QueryRow(ctx, selectSQL, selectArgs...).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, err
	}

	if err := dbPool.QueryRow(ctx, insertSQL, insertArgs...).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
