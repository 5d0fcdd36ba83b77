package dto

import (
	"time"

	"github.com/yigit/courseportal/internal/app/models"
)

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Title       string  `json:"title" binding:"required,min=3,max=100" example:"Java Programming"`
	Description string  `json:"description" binding:"required,min=10,max=1000"`
	Price       float64 `json:"price" binding:"required,gt=0,lte=9999.99" example:"99.99"`
	LecturerID  *string `json:"lecturerId,omitempty"`
}

// UpdateCourseRequest represents course update data; omitted fields keep their values
type UpdateCourseRequest struct {
	Title       string  `json:"title" binding:"omitempty,min=3,max=100"`
	Description string  `json:"description" binding:"omitempty,min=10,max=1000"`
	Price       float64 `json:"price" binding:"omitempty,gt=0,lte=9999.99"`
	LecturerID  *string `json:"lecturerId,omitempty"`
}

// CourseResponse represents course information
type CourseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	LecturerID  *string   `json:"lecturerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CourseListResponse represents a page of courses
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

// FromCourse converts a models.Course to a CourseResponse
func FromCourse(course *models.Course) CourseResponse {
	if course == nil {
		return CourseResponse{}
	}

	return CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Price:       course.Price,
		LecturerID:  course.LecturerID,
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
}

// FromCourses converts a list of courses
func FromCourses(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, FromCourse(c))
	}
	return out
}
