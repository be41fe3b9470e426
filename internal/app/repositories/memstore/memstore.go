// Package memstore provides in-memory implementations of the service
// store interfaces. They mirror the behavior of the postgres
// repositories, including uniqueness enforcement and the derived
// has_enrollments flag, and back the service test suites.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/pkg/apperrors"
)

// Store holds all in-memory state. The Users, Students, Catalog and
// Enrollments views share it, so cross-store effects such as the
// has_enrollments flag sync behave like the real database. Safe for
// concurrent use.
type Store struct {
	mu sync.Mutex

	universities map[uuid.UUID]*models.University
	colleges     map[uuid.UUID]*models.College
	programs     map[uuid.UUID]*models.Program
	courses      map[uuid.UUID]*models.Course
	users        map[uuid.UUID]*models.User
	students     map[uuid.UUID]*models.Student

	// enrollments per student, in insertion order
	enrollments map[uuid.UUID][]*models.Enrollment
}

// New creates an empty store.
func New() *Store {
	return &Store{
		universities: make(map[uuid.UUID]*models.University),
		colleges:     make(map[uuid.UUID]*models.College),
		programs:     make(map[uuid.UUID]*models.Program),
		courses:      make(map[uuid.UUID]*models.Course),
		users:        make(map[uuid.UUID]*models.User),
		students:     make(map[uuid.UUID]*models.Student),
		enrollments:  make(map[uuid.UUID][]*models.Enrollment),
	}
}

// Users returns the user account view of the store.
func (s *Store) Users() *Users { return &Users{s: s} }

// Students returns the student profile view of the store.
func (s *Store) Students() *Students { return &Students{s: s} }

// Catalog returns the course catalog view of the store.
func (s *Store) Catalog() *Catalog { return &Catalog{s: s} }

// Enrollments returns the enrollment ledger view of the store.
func (s *Store) Enrollments() *Enrollments { return &Enrollments{s: s} }

// --- fixture helpers ---

// PutUniversity inserts a university row.
func (s *Store) PutUniversity(u *models.University) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.universities[u.ID] = u
}

// PutCollege inserts a college row.
func (s *Store) PutCollege(c *models.College) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colleges[c.ID] = c
}

// PutProgram inserts a program row.
func (s *Store) PutProgram(p *models.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.programs[p.ID] = p
}

// PutCourse inserts a course row.
func (s *Store) PutCourse(c *models.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[c.ID] = c
}

// PutStudent inserts a student row directly, bypassing profile
// uniqueness checks.
func (s *Store) PutStudent(st *models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[st.ID] = st
}

// Users is the in-memory user account store.
type Users struct {
	s *Store
}

// Create inserts a new user. The email must be unique.
func (u *Users) Create(ctx context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, existing := range u.s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	u.s.users[user.ID] = user
	return nil
}

// GetByEmail retrieves a user by email.
func (u *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, existing := range u.s.users {
		if strings.EqualFold(existing.Email, email) {
			return existing, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// GetByID retrieves a user by id.
func (u *Users) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// Students is the in-memory student profile store.
type Students struct {
	s *Store
}

// Create inserts a new profile, enforcing one profile per user account.
func (st *Students) Create(ctx context.Context, student *models.Student) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	for _, existing := range st.s.students {
		if existing.UserID == student.UserID {
			return apperrors.ErrProfileAlreadyExists
		}
	}

	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	student.HasEnrollments = false
	student.CreatedAt = time.Now()
	student.UpdatedAt = student.CreatedAt
	st.s.students[student.ID] = student
	return nil
}

// GetByUserID retrieves the profile owned by a user account.
func (st *Students) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	for _, existing := range st.s.students {
		if existing.UserID == userID {
			return existing, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

// GetByID retrieves a profile by id.
func (st *Students) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	student, ok := st.s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

// Update rewrites the mutable placement fields of a profile. The
// has_enrollments flag is owned by the enrollment ledger.
func (st *Students) Update(ctx context.Context, student *models.Student) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	existing, ok := st.s.students[student.ID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}

	existing.UniversityID = student.UniversityID
	existing.CollegeID = student.CollegeID
	existing.ProgramID = student.ProgramID
	existing.Year = student.Year
	existing.Semester = student.Semester
	existing.UpdatedAt = time.Now()
	*student = *existing
	return nil
}

// Catalog is the in-memory course catalog store.
type Catalog struct {
	s *Store
}

// ListUniversities returns all universities ordered by name.
func (c *Catalog) ListUniversities(ctx context.Context) ([]*models.University, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	out := make([]*models.University, 0, len(c.s.universities))
	for _, u := range c.s.universities {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UniversityExists reports whether a university row exists.
func (c *Catalog) UniversityExists(ctx context.Context, id uuid.UUID) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	_, ok := c.s.universities[id]
	return ok, nil
}

// ListColleges returns the colleges of a university ordered by name.
func (c *Catalog) ListColleges(ctx context.Context, universityID uuid.UUID) ([]*models.College, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	var out []*models.College
	for _, college := range c.s.colleges {
		if college.UniversityID == universityID {
			out = append(out, college)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CollegeExists reports whether a college row exists.
func (c *Catalog) CollegeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	_, ok := c.s.colleges[id]
	return ok, nil
}

// ListPrograms returns the programs of a college ordered by name.
func (c *Catalog) ListPrograms(ctx context.Context, collegeID uuid.UUID) ([]*models.Program, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	var out []*models.Program
	for _, p := range c.s.programs {
		if p.CollegeID == collegeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ProgramExists reports whether a program row exists.
func (c *Catalog) ProgramExists(ctx context.Context, id uuid.UUID) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	_, ok := c.s.programs[id]
	return ok, nil
}

// ListCourses returns a program's courses matching the filter, ordered
// by year, semester and code.
func (c *Catalog) ListCourses(ctx context.Context, programID uuid.UUID, filter models.CourseFilter) ([]*models.Course, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	var out []*models.Course
	for _, course := range c.s.courses {
		if course.ProgramID != programID {
			continue
		}
		if filter.Year != nil && course.Year != *filter.Year {
			continue
		}
		if filter.Semester != nil && course.Semester != *filter.Semester {
			continue
		}
		out = append(out, course)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Semester != out[j].Semester {
			return out[i].Semester < out[j].Semester
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

// GetCourse retrieves a single course by id.
func (c *Catalog) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	course, ok := c.s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// GetCourses resolves the given ids to course rows, preserving input
// order. Any missing id fails the whole lookup.
func (c *Catalog) GetCourses(ctx context.Context, ids []uuid.UUID) ([]*models.Course, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	out := make([]*models.Course, 0, len(ids))
	for _, id := range ids {
		course, ok := c.s.courses[id]
		if !ok {
			return nil, apperrors.ErrCourseNotFound
		}
		out = append(out, course)
	}
	return out, nil
}

// Enrollments is the in-memory enrollment ledger.
type Enrollments struct {
	s *Store
}

// Add enrolls a student in a course. The created enrollment is ungraded.
func (e *Enrollments) Add(ctx context.Context, studentID uuid.UUID, course *models.Course) (*models.Enrollment, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	if _, ok := e.s.courses[course.ID]; !ok {
		return nil, apperrors.ErrCourseNotFound
	}

	for _, existing := range e.s.enrollments[studentID] {
		if existing.CourseID == course.ID {
			return nil, apperrors.ErrDuplicateEnrollment
		}
	}

	enrollment := &models.Enrollment{
		ID:        uuid.New(),
		StudentID: studentID,
		CourseID:  course.ID,
		CreatedAt: time.Now(),
		Course:    course,
	}
	e.s.enrollments[studentID] = append(e.s.enrollments[studentID], enrollment)
	e.s.syncHasEnrollments(studentID)
	return enrollment, nil
}

// Remove deletes one enrollment and reports whether it existed.
func (e *Enrollments) Remove(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	list := e.s.enrollments[studentID]
	for i, existing := range list {
		if existing.CourseID == courseID {
			e.s.enrollments[studentID] = append(list[:i:i], list[i+1:]...)
			e.s.syncHasEnrollments(studentID)
			return true, nil
		}
	}
	return false, nil
}

// List returns the student's enrollments in insertion order, applying
// the filter against each enrollment's course.
func (e *Enrollments) List(ctx context.Context, studentID uuid.UUID, filter models.EnrollmentFilter) ([]*models.Enrollment, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	var out []*models.Enrollment
	for _, enrollment := range e.s.enrollments[studentID] {
		if filter.Matches(enrollment.Course) {
			out = append(out, enrollment)
		}
	}
	return out, nil
}

// SetGrade writes a grade and its points onto one enrollment.
func (e *Enrollments) SetGrade(ctx context.Context, studentID, courseID uuid.UUID, grade models.Grade, points float64) (*models.Enrollment, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	for _, enrollment := range e.s.enrollments[studentID] {
		if enrollment.CourseID == courseID {
			g := grade
			p := points
			enrollment.Grade = &g
			enrollment.Points = &p
			return enrollment, nil
		}
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

// ReplaceAll atomically replaces the student's entire enrollment set,
// preserving input order.
func (e *Enrollments) ReplaceAll(ctx context.Context, studentID uuid.UUID, courses []*models.Course) ([]*models.Enrollment, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	seen := make(map[uuid.UUID]bool, len(courses))
	replacement := make([]*models.Enrollment, 0, len(courses))
	for _, course := range courses {
		if _, ok := e.s.courses[course.ID]; !ok {
			return nil, apperrors.ErrCourseNotFound
		}
		if seen[course.ID] {
			return nil, apperrors.ErrDuplicateEnrollment
		}
		seen[course.ID] = true

		replacement = append(replacement, &models.Enrollment{
			ID:        uuid.New(),
			StudentID: studentID,
			CourseID:  course.ID,
			CreatedAt: time.Now(),
			Course:    course,
		})
	}

	e.s.enrollments[studentID] = replacement
	e.s.syncHasEnrollments(studentID)
	return replacement, nil
}

// ResetGrades writes the same grade and points onto every enrollment of
// the student, returning how many were updated.
func (e *Enrollments) ResetGrades(ctx context.Context, studentID uuid.UUID, grade models.Grade, points float64) (int, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	count := 0
	for _, enrollment := range e.s.enrollments[studentID] {
		g := grade
		p := points
		enrollment.Grade = &g
		enrollment.Points = &p
		count++
	}
	return count, nil
}

// syncHasEnrollments recomputes the derived flag from the ledger
// contents. Caller must hold the mutex.
func (s *Store) syncHasEnrollments(studentID uuid.UUID) {
	st, ok := s.students[studentID]
	if !ok {
		return
	}
	hasAny := len(s.enrollments[studentID]) > 0
	if st.HasEnrollments != hasAny {
		st.HasEnrollments = hasAny
		st.UpdatedAt = time.Now()
	}
}
