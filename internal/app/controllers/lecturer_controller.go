package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/courseportal/internal/app/models/dto"
	"github.com/yigit/courseportal/internal/app/services"
	"github.com/yigit/courseportal/internal/middleware"
)

// LecturerController handles lecturer-related operations
type LecturerController struct {
	lecturerService services.LecturerService
}

// NewLecturerController creates a new LecturerController
func NewLecturerController(lecturerService services.LecturerService) *LecturerController {
	return &LecturerController{
		lecturerService: lecturerService,
	}
}

func lecturerInput(req dto.LecturerRequest) services.LecturerInput {
	return services.LecturerInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: req.Department,
		Bio:        req.Bio,
	}
}

// CreateLecturer handles lecturer creation
// @Summary Create a new lecturer
// @Tags lecturers
// @Accept json
// @Produce json
// @Param request body dto.LecturerRequest true "Lecturer information"
// @Success 201 {object} dto.APIResponse{data=dto.LecturerResponse} "Lecturer created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /lecturer [post]
func (c *LecturerController) CreateLecturer(ctx *gin.Context) {
	var req dto.LecturerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lecturer, err := c.lecturerService.CreateLecturer(ctx, lecturerInput(req))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromLecturer(lecturer), "Lecturer created successfully"))
}

// UpdateLecturer updates an existing lecturer
// @Summary Update a lecturer
// @Tags lecturers
// @Accept json
// @Produce json
// @Param id path string true "Lecturer ID"
// @Param request body dto.LecturerRequest true "Updated lecturer information"
// @Success 200 {object} dto.APIResponse{data=dto.LecturerResponse} "Lecturer updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /lecturer/{id} [put]
func (c *LecturerController) UpdateLecturer(ctx *gin.Context) {
	var req dto.LecturerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lecturer, err := c.lecturerService.UpdateLecturer(ctx, ctx.Param("id"), lecturerInput(req))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromLecturer(lecturer), "Lecturer updated successfully"))
}

// GetLecturerByID retrieves a lecturer by ID
// @Summary Get lecturer by ID
// @Tags lecturers
// @Produce json
// @Param id path string true "Lecturer ID"
// @Success 200 {object} dto.APIResponse{data=dto.LecturerResponse}
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Router /lecturer/{id} [get]
func (c *LecturerController) GetLecturerByID(ctx *gin.Context) {
	lecturer, err := c.lecturerService.GetLecturerByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromLecturer(lecturer), ""))
}

// GetAllLecturers retrieves all lecturers
// @Summary List lecturers
// @Tags lecturers
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.LecturerResponse}
// @Router /lecturer [get]
func (c *LecturerController) GetAllLecturers(ctx *gin.Context) {
	lecturers, err := c.lecturerService.GetAllLecturers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromLecturers(lecturers), ""))
}

// GetLecturerCourses lists the courses a lecturer owns
// @Summary List a lecturer's courses
// @Tags lecturers
// @Produce json
// @Param id path string true "Lecturer ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse}
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Router /lecturer/{id}/courses [get]
func (c *LecturerController) GetLecturerCourses(ctx *gin.Context) {
	courses, err := c.lecturerService.GetLecturerCourses(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromCourses(courses), ""))
}

// DeleteLecturer deletes a lecturer; its courses stay, without a lecturer
// @Summary Delete a lecturer
// @Tags lecturers
// @Param id path string true "Lecturer ID"
// @Success 204 "Lecturer deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Router /lecturer/{id} [delete]
func (c *LecturerController) DeleteLecturer(ctx *gin.Context) {
	if err := c.lecturerService.DeleteLecturer(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AssignCourse assigns a course to a lecturer
// @Summary Assign a course to a lecturer
// @Tags lecturers
// @Produce json
// @Param id path string true "Lecturer ID"
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.LecturerResponse}
// @Failure 404 {object} dto.ErrorResponse "Lecturer or course not found"
// @Router /lecturer/{id}/courses/{courseId} [post]
func (c *LecturerController) AssignCourse(ctx *gin.Context) {
	lecturer, err := c.lecturerService.AssignCourse(ctx, ctx.Param("id"), ctx.Param("courseId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromLecturer(lecturer), "Course assigned successfully"))
}

// RemoveCourse removes a course from a lecturer
// @Summary Remove a course from a lecturer
// @Tags lecturers
// @Produce json
// @Param id path string true "Lecturer ID"
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.LecturerResponse}
// @Failure 404 {object} dto.ErrorResponse "Lecturer or course not found"
// @Router /lecturer/{id}/courses/{courseId} [delete]
func (c *LecturerController) RemoveCourse(ctx *gin.Context) {
	lecturer, err := c.lecturerService.RemoveCourse(ctx, ctx.Param("id"), ctx.Param("courseId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromLecturer(lecturer), "Course removed successfully"))
}
