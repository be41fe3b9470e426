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

// CatalogController serves the read-only catalog hierarchy.
type CatalogController struct {
	catalogService *services.CatalogService
	logger         zerolog.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService, logger zerolog.Logger) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListUniversities returns all universities.
// @Summary List universities
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.University}
// @Router /universities [get]
func (c *CatalogController) ListUniversities(ctx *gin.Context) {
	universities, err := c.catalogService.ListUniversities(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(universities, ""))
}

// ListColleges returns the colleges of a university.
// @Summary List colleges of a university
// @Tags catalog
// @Produce json
// @Param universityId path string true "University id"
// @Success 200 {object} dto.APIResponse{data=[]models.College}
// @Failure 404 {object} dto.ErrorResponse "University not found"
// @Router /universities/{universityId}/colleges [get]
func (c *CatalogController) ListColleges(ctx *gin.Context) {
	universityID, ok := pathUUID(ctx, "universityId")
	if !ok {
		return
	}

	colleges, err := c.catalogService.ListColleges(ctx.Request.Context(), universityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(colleges, ""))
}

// ListPrograms returns the programs of a college.
// @Summary List programs of a college
// @Tags catalog
// @Produce json
// @Param collegeId path string true "College id"
// @Success 200 {object} dto.APIResponse{data=[]models.Program}
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /colleges/{collegeId}/programs [get]
func (c *CatalogController) ListPrograms(ctx *gin.Context) {
	collegeID, ok := pathUUID(ctx, "collegeId")
	if !ok {
		return
	}

	programs, err := c.catalogService.ListPrograms(ctx.Request.Context(), collegeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(programs, ""))
}

// ListCourses returns the courses of a program, optionally filtered by
// year and semester query parameters.
// @Summary List courses of a program
// @Tags catalog
// @Produce json
// @Param programId path string true "Program id"
// @Param year query int false "Filter by curriculum year"
// @Param semester query int false "Filter by semester"
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{programId}/courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	programID, ok := pathUUID(ctx, "programId")
	if !ok {
		return
	}

	var filter models.CourseFilter
	var err error
	if filter.Year, err = queryInt(ctx, "year"); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	if filter.Semester, err = queryInt(ctx, "semester"); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	courses, err := c.catalogService.ListCourses(ctx.Request.Context(), programID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses, ""))
}

// pathUUID parses a uuid path parameter, writing a 400 response on
// failure.
func pathUUID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter.
func queryInt(ctx *gin.Context, name string) (*int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
