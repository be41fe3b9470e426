package models

// Grade is a letter grade on the fixed seven-value scale.
type Grade string

// The scale, ordered best to worst.
const (
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeE     Grade = "E"
	GradeF     Grade = "F"
)

// gradePoints maps every letter grade to its point value. Process-wide
// constant configuration; points stored on enrollments are always derived
// from this table, never taken from input.
var gradePoints = map[Grade]float64{
	GradeA:     5.0,
	GradeBPlus: 4.5,
	GradeB:     4.0,
	GradeC:     3.0,
	GradeD:     2.0,
	GradeE:     1.0,
	GradeF:     0.0,
}

// GradeScale lists the grades best to worst.
var GradeScale = []Grade{GradeA, GradeBPlus, GradeB, GradeC, GradeD, GradeE, GradeF}

// Valid reports whether g is on the scale.
func (g Grade) Valid() bool {
	_, ok := gradePoints[g]
	return ok
}

// Points returns the point value for g. The boolean is false when g is not
// on the scale.
func (g Grade) Points() (float64, bool) {
	p, ok := gradePoints[g]
	return p, ok
}

// MaxGradePoints is the point value of the best grade, the upper bound for
// any GPA or target GPA.
const MaxGradePoints = 5.0
