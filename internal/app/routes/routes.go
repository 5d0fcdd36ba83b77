package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/courseportal/internal/app/controllers"
	"github.com/yigit/courseportal/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	lecturerController *controllers.LecturerController,
	courseController *controllers.CourseController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	lecturers := v1.Group("/lecturer")
	{
		lecturers.POST("", lecturerController.CreateLecturer)
		lecturers.GET("", lecturerController.GetAllLecturers)
		lecturers.GET("/:id", lecturerController.GetLecturerByID)
		lecturers.PUT("/:id", lecturerController.UpdateLecturer)
		lecturers.DELETE("/:id", lecturerController.DeleteLecturer)

		// Association management
		lecturers.GET("/:id/courses", lecturerController.GetLecturerCourses)
		lecturers.POST("/:id/courses/:courseId", lecturerController.AssignCourse)
		lecturers.DELETE("/:id/courses/:courseId", lecturerController.RemoveCourse)
	}

	courses := v1.Group("/course")
	{
		courses.POST("", courseController.CreateCourse)
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/paginated", courseController.GetCoursesPaginated)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.PUT("/:id", courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Success:   true,
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})
}
