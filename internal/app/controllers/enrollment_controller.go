package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/app/models/dto"
	"github.com/unigrade/backend/internal/app/services"
	"github.com/unigrade/backend/internal/middleware"
)

// EnrollmentController manages the authenticated student's course ledger.
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	studentService    *services.StudentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, studentService *services.StudentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		studentService:    studentService,
		logger:            logger,
	}
}

// resolveStudent maps the authenticated user to their student profile.
func (c *EnrollmentController) resolveStudent(ctx *gin.Context) (*models.Student, bool) {
	userID, ok := authedUser(ctx)
	if !ok {
		return nil, false
	}

	student, err := c.studentService.GetProfileByUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}

	return student, true
}

// ListCourses returns all enrollments of the caller.
// @Summary List own courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment}
// @Router /students/courses [get]
func (c *EnrollmentController) ListCourses(ctx *gin.Context) {
	student, ok := c.resolveStudent(ctx)
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.ListCourses(ctx.Request.Context(), student.ID, models.EnrollmentFilter{})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollments, ""))
}

// AddCourse enrolls the caller in one catalog course.
// @Summary Add a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddCourseRequest true "Course to add"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course already added"
// @Router /students/courses [post]
func (c *EnrollmentController) AddCourse(ctx *gin.Context) {
	student, ok := c.resolveStudent(ctx)
	if !ok {
		return
	}

	var req dto.AddCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	enrollment, err := c.enrollmentService.AddCourse(ctx.Request.Context(), student.ID, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(enrollment, "Course added"))
}

// BulkReplace atomically replaces the caller's entire course set.
// @Summary Replace all courses
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkReplaceRequest true "Replacement course set"
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment}
// @Failure 404 {object} dto.ErrorResponse "A course id is unknown"
// @Router /students/courses [put]
func (c *EnrollmentController) BulkReplace(ctx *gin.Context) {
	student, ok := c.resolveStudent(ctx)
	if !ok {
		return
	}

	var req dto.BulkReplaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	courseIDs := make([]uuid.UUID, 0, len(req.Courses))
	for _, snapshot := range req.Courses {
		courseIDs = append(courseIDs, snapshot.ID)
	}

	enrollments, err := c.enrollmentService.BulkReplace(ctx.Request.Context(), student.ID, courseIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollments, "Courses replaced"))
}

// RemoveCourse drops one enrollment.
// @Summary Remove a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /students/courses/{courseId} [delete]
func (c *EnrollmentController) RemoveCourse(ctx *gin.Context) {
	student, ok := c.resolveStudent(ctx)
	if !ok {
		return
	}

	courseID, ok := pathUUID(ctx, "courseId")
	if !ok {
		return
	}

	if err := c.enrollmentService.RemoveCourse(ctx.Request.Context(), student.ID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Course removed"))
}

// ListCoursesFiltered narrows the ledger by semester, year and type query
// parameters, echoing the applied filters.
// @Summary List own courses with filters
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param semester query int false "Filter by semester"
// @Param year query int false "Filter by curriculum year"
// @Param type query string false "Filter by course type (core or elective)"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentListResponse}
// @Router /students/courses/filter [get]
func (c *EnrollmentController) ListCoursesFiltered(ctx *gin.Context) {
	student, ok := c.resolveStudent(ctx)
	if !ok {
		return
	}

	var filter models.EnrollmentFilter
	var err error
	if filter.Semester, err = queryInt(ctx, "semester"); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	if filter.Year, err = queryInt(ctx, "year"); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	var kindParam *string
	if raw := ctx.Query("type"); raw != "" {
		kind := models.CourseKind(raw)
		if !kind.Valid() {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Course type must be core or elective").WithField("type")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return
		}
		filter.Kind = &kind
		kindParam = &raw
	}

	c.listFiltered(ctx, student.ID, filter, kindParam)
}

// ListCoursesBySemester lists the ledger for one semester of one year.
// @Summary List own courses for a semester
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param semester path int true "Semester"
// @Param year path int true "Curriculum year"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentListResponse}
// @Router /students/courses/semester/{semester}/year/{year} [get]
func (c *EnrollmentController) ListCoursesBySemester(ctx *gin.Context) {
	student, ok := c.resolveStudent(ctx)
	if !ok {
		return
	}

	semester, err := strconv.Atoi(ctx.Param("semester"))
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	filter := models.EnrollmentFilter{Semester: &semester, Year: &year}
	c.listFiltered(ctx, student.ID, filter, nil)
}

func (c *EnrollmentController) listFiltered(ctx *gin.Context, studentID uuid.UUID, filter models.EnrollmentFilter, kind *string) {
	enrollments, err := c.enrollmentService.ListCourses(ctx.Request.Context(), studentID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.EnrollmentListResponse{
		Filters: dto.EnrollmentFilters{
			Semester: filter.Semester,
			Year:     filter.Year,
			Type:     kind,
		},
		Courses:      enrollments,
		TotalCourses: len(enrollments),
	}, ""))
}

// SetGrade assigns a letter grade to one enrollment.
// @Summary Grade a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course id"
// @Param request body dto.SetGradeRequest true "Letter grade"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment}
// @Failure 400 {object} dto.ErrorResponse "Grade not on the scale"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /students/courses/{courseId}/grade [put]
func (c *EnrollmentController) SetGrade(ctx *gin.Context) {
	student, ok := c.resolveStudent(ctx)
	if !ok {
		return
	}

	courseID, ok := pathUUID(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.SetGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	enrollment, err := c.enrollmentService.SetGrade(ctx.Request.Context(), student.ID, courseID, req.Grade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollment, "Grade saved"))
}

// ResetGrades sets every enrollment of the caller to the best grade.
// @Summary Reset all grades to A
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ResetGradesResponse}
// @Router /students/grades/reset [post]
func (c *EnrollmentController) ResetGrades(ctx *gin.Context) {
	student, ok := c.resolveStudent(ctx)
	if !ok {
		return
	}

	count, err := c.enrollmentService.ResetGrades(ctx.Request.Context(), student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ResetGradesResponse{
		Message:        "All grades reset to A",
		CoursesUpdated: count,
	}, ""))
}
