package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/app/models/dto"
	"github.com/unigrade/backend/internal/app/services"
	"github.com/unigrade/backend/internal/middleware"
)

// GPAController serves GPA computation and target planning.
type GPAController struct {
	gradingService *services.GradingService
	plannerService *services.PlannerService
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewGPAController creates a new GPAController
func NewGPAController(gradingService *services.GradingService, plannerService *services.PlannerService, studentService *services.StudentService, logger zerolog.Logger) *GPAController {
	return &GPAController{
		gradingService: gradingService,
		plannerService: plannerService,
		studentService: studentService,
		logger:         logger,
	}
}

func (c *GPAController) resolveStudent(ctx *gin.Context) (*models.Student, bool) {
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

// GetGPA returns the caller's GPA breakdown.
// @Summary Compute own GPA
// @Tags gpa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.GPABreakdown}
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Router /students/gpa [get]
func (c *GPAController) GetGPA(ctx *gin.Context) {
	student, ok := c.resolveStudent(ctx)
	if !ok {
		return
	}

	breakdown, err := c.gradingService.ComputeBreakdown(ctx.Request.Context(), student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(breakdown, ""))
}

// PlanTargetGPA proposes grades for ungraded courses to reach a target.
// @Summary Generate a target GPA plan
// @Tags gpa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TargetGPARequest true "Target GPA"
// @Success 200 {object} dto.APIResponse{data=models.TargetGPAPlan}
// @Failure 400 {object} dto.ErrorResponse "Target outside the valid range"
// @Router /students/gpa/target [post]
func (c *GPAController) PlanTargetGPA(ctx *gin.Context) {
	student, ok := c.resolveStudent(ctx)
	if !ok {
		return
	}

	var req dto.TargetGPARequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	plan, err := c.plannerService.Plan(ctx.Request.Context(), student.ID, *req.TargetGPA)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(plan, "Target grades generated successfully"))
}
