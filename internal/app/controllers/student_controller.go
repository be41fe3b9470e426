package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/app/models/dto"
	"github.com/unigrade/backend/internal/app/services"
	"github.com/unigrade/backend/internal/middleware"
	"github.com/unigrade/backend/internal/pkg/apperrors"
)

// StudentController manages the authenticated user's profile.
type StudentController struct {
	studentService    *services.StudentService
	enrollmentService *services.EnrollmentService
	gradingService    *services.GradingService
	logger            zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, enrollmentService *services.EnrollmentService, gradingService *services.GradingService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService:    studentService,
		enrollmentService: enrollmentService,
		gradingService:    gradingService,
		logger:            logger,
	}
}

// GetProfile returns the caller's profile. A missing profile is not an
// error; the response carries hasProfile=false so clients can route to
// profile creation.
// @Summary Get own profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse}
// @Router /students/profile [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	userID, ok := authedUser(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetProfileByUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.StudentProfileResponse{
				HasProfile: false,
				Message:    "Student profile not found",
			}, ""))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.StudentProfileResponse{
		HasProfile: true,
		Profile:    student,
	}, ""))
}

// CreateProfile creates the caller's profile.
// @Summary Create own profile
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Profile placement"
// @Success 201 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Placement id not found"
// @Failure 409 {object} dto.ErrorResponse "Profile already exists"
// @Router /students/profile [post]
func (c *StudentController) CreateProfile(ctx *gin.Context) {
	userID, ok := authedUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	student, err := c.studentService.CreateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(student, "Profile created"))
}

// ReplaceProfile fully replaces the caller's profile placement.
// @Summary Replace own profile
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Profile placement"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Router /students/profile [put]
func (c *StudentController) ReplaceProfile(ctx *gin.Context) {
	userID, ok := authedUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	patch := &dto.PatchStudentRequest{
		UniversityID: &req.UniversityID,
		CollegeID:    &req.CollegeID,
		ProgramID:    &req.ProgramID,
		Year:         &req.Year,
		Semester:     &req.Semester,
	}

	student, err := c.studentService.UpdateProfile(ctx.Request.Context(), userID, patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, "Profile updated"))
}

// PatchProfile updates only the provided profile fields.
// @Summary Patch own profile
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PatchStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Router /students/profile [patch]
func (c *StudentController) PatchProfile(ctx *gin.Context) {
	userID, ok := authedUser(ctx)
	if !ok {
		return
	}

	var req dto.PatchStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	student, err := c.studentService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, "Profile updated"))
}

// ProfileOptions lists selectable values for profile creation.
// @Summary Profile creation options
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileOptionsResponse}
// @Router /students/profile/options [get]
func (c *StudentController) ProfileOptions(ctx *gin.Context) {
	options, err := c.studentService.ProfileOptions(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(options, ""))
}

// GetData returns the caller's profile, ledger and GPA in one payload.
// @Summary Get combined student data
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDataResponse}
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Router /students/data [get]
func (c *StudentController) GetData(ctx *gin.Context) {
	userID, ok := authedUser(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetProfileByUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courses, err := c.enrollmentService.ListCourses(ctx.Request.Context(), student.ID, models.EnrollmentFilter{})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	gpa, err := c.gradingService.ComputeGPA(ctx.Request.Context(), student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.StudentDataResponse{
		Profile: student,
		Courses: courses,
		GPA:     gpa,
	}, ""))
}

// authedUser reads the authenticated user id set by the JWT middleware,
// writing a 401 response when it is absent.
func authedUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return uuid.Nil, false
	}
	return userID, true
}
