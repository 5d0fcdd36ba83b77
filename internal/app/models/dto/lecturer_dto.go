package dto

import (
	"time"

	"github.com/yigit/courseportal/internal/app/models"
)

// LecturerRequest represents lecturer create and update data; an omitted bio
// keeps the stored one on update
type LecturerRequest struct {
	FirstName  string  `json:"firstName" binding:"required,min=2,max=50" example:"John"`
	LastName   string  `json:"lastName" binding:"required,min=2,max=50" example:"Doe"`
	Email      string  `json:"email" binding:"required,email,max=100" example:"john.doe@x.edu"`
	Department string  `json:"department" binding:"required,min=2,max=100" example:"Computer Science"`
	Bio        *string `json:"bio,omitempty" binding:"omitempty,max=1000"`
}

// LecturerResponse represents lecturer information with its course ids
type LecturerResponse struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Bio        string    `json:"bio"`
	CourseIDs  []string  `json:"courseIds"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FromLecturer converts a models.Lecturer to a LecturerResponse
func FromLecturer(lecturer *models.Lecturer) LecturerResponse {
	if lecturer == nil {
		return LecturerResponse{}
	}

	courseIDs := lecturer.CourseIDs
	if courseIDs == nil {
		courseIDs = []string{}
	}

	return LecturerResponse{
		ID:         lecturer.ID,
		FirstName:  lecturer.FirstName,
		LastName:   lecturer.LastName,
		Email:      lecturer.Email,
		Department: lecturer.Department,
		Bio:        lecturer.Bio,
		CourseIDs:  courseIDs,
		CreatedAt:  lecturer.CreatedAt,
		UpdatedAt:  lecturer.UpdatedAt,
	}
}

// FromLecturers converts a list of lecturers
func FromLecturers(lecturers []*models.Lecturer) []LecturerResponse {
	out := make([]LecturerResponse, 0, len(lecturers))
	for _, l := range lecturers {
		out = append(out, FromLecturer(l))
	}
	return out
}
