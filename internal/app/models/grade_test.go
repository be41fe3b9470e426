package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradePoints(t *testing.T) {
	cases := []struct {
		grade  Grade
		points float64
	}{
		{GradeA, 5.0},
		{GradeBPlus, 4.5},
		{GradeB, 4.0},
		{GradeC, 3.0},
		{GradeD, 2.0},
		{GradeE, 1.0},
		{GradeF, 0.0},
	}

	for _, tc := range cases {
		points, ok := tc.grade.Points()
		assert.True(t, ok, "grade %q", tc.grade)
		assert.Equal(t, tc.points, points, "grade %q", tc.grade)
	}
}

func TestGradeValid(t *testing.T) {
	for _, g := range GradeScale {
		assert.True(t, g.Valid(), "grade %q", g)
	}

	for _, raw := range []string{"X", "b+", "a", "", "A+", "G"} {
		assert.False(t, Grade(raw).Valid(), "input %q", raw)
	}
}

func TestEnrollmentFilterMatches(t *testing.T) {
	course := &Course{Year: 2, Semester: 1, Kind: CourseKindCore}

	assert.True(t, EnrollmentFilter{}.Matches(course))

	year := 2
	assert.True(t, EnrollmentFilter{Year: &year}.Matches(course))

	other := 3
	assert.False(t, EnrollmentFilter{Year: &other}.Matches(course))

	elective := CourseKindElective
	assert.False(t, EnrollmentFilter{Kind: &elective}.Matches(course))
}
