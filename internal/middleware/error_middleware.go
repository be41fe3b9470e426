package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unigrade/backend/internal/app/models/dto"
	"github.com/unigrade/backend/internal/pkg/apperrors"
	"github.com/unigrade/backend/internal/pkg/logger"
)

// HandleAPIError maps application errors onto HTTP responses. Controllers
// funnel every service error through here so the status codes and error
// codes stay consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	detail := classify(err)

	// CustomError carries a user-facing message and field context.
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Message != "" {
			detail.errorDetail.Message = custom.Message
		}
		if custom.Field != "" {
			detail.errorDetail.WithField(custom.Field)
		}
		if custom.Details != nil {
			detail.errorDetail.WithDetails(custom.Details)
		}
	}

	if detail.status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	}

	c.JSON(detail.status, dto.NewErrorResponse(detail.errorDetail))
}

type classified struct {
	status      int
	errorDetail *dto.ErrorDetail
}

func classify(err error) classified {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return classified{http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")}
	case errors.Is(err, apperrors.ErrTokenExpired):
		return classified{http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")}
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return classified{http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")}
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return classified{http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")}

	case errors.Is(err, apperrors.ErrUniversityNotFound):
		return classified{http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "University not found")}
	case errors.Is(err, apperrors.ErrCollegeNotFound):
		return classified{http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "College not found")}
	case errors.Is(err, apperrors.ErrProgramNotFound):
		return classified{http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Program not found")}
	case errors.Is(err, apperrors.ErrCourseNotFound):
		return classified{http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found")}
	case errors.Is(err, apperrors.ErrStudentNotFound):
		return classified{http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student profile not found")}
	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		return classified{http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Enrollment not found")}
	case errors.Is(err, apperrors.ErrUserNotFound):
		return classified{http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")}
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return classified{http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")}

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return classified{http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")}
	case errors.Is(err, apperrors.ErrProfileAlreadyExists):
		return classified{http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Student profile already exists")}
	case errors.Is(err, apperrors.ErrDuplicateEnrollment):
		return classified{http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Course already added for this student")}

	case errors.Is(err, apperrors.ErrInvalidGrade):
		return classified{http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidGrade, "Grade is not on the grading scale")}
	case errors.Is(err, apperrors.ErrInvalidRange):
		return classified{http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidRange, "Target GPA outside the valid range")}
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return classified{http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")}

	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return classified{http.StatusServiceUnavailable, dto.NewErrorDetail(dto.ErrorCodeStoreUnavailable, "Data store temporarily unavailable")}

	default:
		return classified{http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")}
	}
}

// HandleValidationError maps a request binding failure to a 400 response.
func HandleValidationError(c *gin.Context, err error) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
