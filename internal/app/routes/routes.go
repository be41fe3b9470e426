package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/unigrade/backend/internal/app/controllers"
	"github.com/unigrade/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	catalogController *controllers.CatalogController,
	studentController *controllers.StudentController,
	enrollmentController *controllers.EnrollmentController,
	gpaController *controllers.GPAController,
	authMiddleware *middleware.AuthMiddleware,
	gatherer prometheus.Gatherer,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Public catalog routes ---
	v1.GET("/universities", catalogController.ListUniversities)
	v1.GET("/universities/:universityId/colleges", catalogController.ListColleges)
	v1.GET("/colleges/:collegeId/programs", catalogController.ListPrograms)
	v1.GET("/programs/:programId/courses", catalogController.ListCourses)

	// --- Authenticated student routes ---
	students := v1.Group("/students")
	students.Use(authMiddleware.JWTAuth())
	{
		students.GET("/data", studentController.GetData)

		profile := students.Group("/profile")
		{
			profile.GET("", studentController.GetProfile)
			profile.POST("", studentController.CreateProfile)
			profile.PUT("", studentController.ReplaceProfile)
			profile.PATCH("", studentController.PatchProfile)
			profile.GET("/options", studentController.ProfileOptions)
		}

		courses := students.Group("/courses")
		{
			courses.GET("", enrollmentController.ListCourses)
			courses.POST("", enrollmentController.AddCourse)
			courses.PUT("", enrollmentController.BulkReplace)
			courses.GET("/filter", enrollmentController.ListCoursesFiltered)
			courses.GET("/semester/:semester/year/:year", enrollmentController.ListCoursesBySemester)
			courses.DELETE("/:courseId", enrollmentController.RemoveCourse)
			courses.PUT("/:courseId/grade", enrollmentController.SetGrade)
		}

		students.POST("/grades/reset", enrollmentController.ResetGrades)

		gpa := students.Group("/gpa")
		{
			gpa.GET("", gpaController.GetGPA)
			gpa.POST("/target", gpaController.PlanTargetGPA)
		}
	}
}
