package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Store errors
	ErrStoreUnavailable = errors.New("data store unavailable")
)

// Catalog errors
var (
	ErrUniversityNotFound = errors.New("university not found")
	ErrCollegeNotFound    = errors.New("college not found")
	ErrProgramNotFound    = errors.New("program not found")
	ErrCourseNotFound     = errors.New("course not found")
)

// Student errors
var (
	ErrStudentNotFound      = errors.New("student profile not found")
	ErrProfileAlreadyExists = errors.New("student profile already exists")
)

// Enrollment ledger errors
var (
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrDuplicateEnrollment = errors.New("course already added for this student")
	ErrInvalidGrade        = errors.New("grade is not on the grading scale")
	ErrInvalidRange        = errors.New("target GPA outside the valid range")
)

// Is returns whether target matches err or any of the errors in errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsNotFound reports whether err is any of the not-found kinds.
func IsNotFound(err error) bool {
	return Is(err, ErrResourceNotFound,
		ErrUniversityNotFound, ErrCollegeNotFound, ErrProgramNotFound,
		ErrCourseNotFound, ErrStudentNotFound, ErrEnrollmentNotFound,
		ErrUserNotFound)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithField names the offending field
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
