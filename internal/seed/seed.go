package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appServices "github.com/yigit/courseportal/internal/app/services"
	"github.com/yigit/courseportal/internal/pkg/apperrors"
)

type demoLecturer struct {
	input   appServices.LecturerInput
	courses []appServices.CourseInput
}

var demoData = []demoLecturer{
	{
		input: appServices.LecturerInput{
			FirstName:  "John",
			LastName:   "Doe",
			Email:      "john.doe@university.edu",
			Department: "Computer Science",
			Bio:        bio("Teaches programming languages and software construction."),
		},
		courses: []appServices.CourseInput{
			{Title: "Java Programming", Description: "Object-oriented programming with Java from the ground up.", Price: 99.99},
			{Title: "Data Structures", Description: "Lists, trees, graphs and the algorithms that use them.", Price: 149.50},
		},
	},
	{
		input: appServices.LecturerInput{
			FirstName:  "Jane",
			LastName:   "Smith",
			Email:      "jane.smith@university.edu",
			Department: "Mathematics",
		},
		courses: []appServices.CourseInput{
			{Title: "Linear Algebra", Description: "Vector spaces, matrices and linear maps.", Price: 79.00},
		},
	},
}

func bio(s string) *string { return &s }

// CreateDefaultData creates demo lecturers with their courses. Lecturers whose
// email already exists are skipped, so running it twice is harmless.
func CreateDefaultData(ctx context.Context, lecturers appServices.LecturerService, courses appServices.CourseService, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Lecturers/Courses)...")
	var finalErr error // To collect potential errors without stopping the process

	for _, demo := range demoData {
		lecturer, err := lecturers.CreateLecturer(ctx, demo.input)
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Debug().Str("email", demo.input.Email).Msg("Demo lecturer already exists, skipping")
			continue
		}
		if err != nil {
			lgr.Error().Err(err).Str("email", demo.input.Email).Msg("Error creating demo lecturer")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		for _, course := range demo.courses {
			course.LecturerID = &lecturer.ID
			if _, err := courses.CreateCourse(ctx, course); err != nil {
				lgr.Error().Err(err).Str("title", course.Title).Msg("Error creating demo course")
				finalErr = errors.Join(finalErr, err)
			}
		}
		lgr.Info().Str("lecturer", lecturer.FullName()).Int("courses", len(demo.courses)).Msg("Demo lecturer created")
	}

	return finalErr
}
