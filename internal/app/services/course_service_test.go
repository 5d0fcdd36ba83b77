package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yigit/courseportal/internal/app/models"
	"github.com/yigit/courseportal/internal/pkg/apperrors"
)

func ptr(s string) *string { return &s }

func TestCourseService_CreateWithLecturer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	l := env.createLecturer(t, "John", "john.doe@x.edu")

	t.Run("Assigns through the association routine", func(t *testing.T) {
		c, err := env.courses.CreateCourse(ctx, CourseInput{
			Title:       "Java Programming",
			Description: "Object-oriented programming with Java.",
			Price:       99.99,
			LecturerID:  ptr(l.ID),
		})
		if err != nil {
			t.Fatalf("CreateCourse: %v", err)
		}
		if !c.BelongsTo(l.ID) {
			t.Errorf("returned course does not point at lecturer")
		}
		if !env.lecturer(t, l.ID).HasCourse(c.ID) {
			t.Errorf("lecturer does not list the new course")
		}
		env.assertSymmetric(t)
	})

	t.Run("Unknown lecturer creates nothing", func(t *testing.T) {
		before, _ := env.courses.GetAllCourses(ctx)

		_, err := env.courses.CreateCourse(ctx, CourseInput{
			Title:       "Ghost Course",
			Description: "Nobody teaches this one.",
			Price:       10,
			LecturerID:  ptr("missing-lecturer"),
		})
		if !errors.Is(err, apperrors.ErrLecturerNotFound) {
			t.Fatalf("expected lecturer not found, got %v", err)
		}

		after, _ := env.courses.GetAllCourses(ctx)
		if len(after) != len(before) {
			t.Errorf("expected %d courses, got %d", len(before), len(after))
		}
	})

	t.Run("Invalid price", func(t *testing.T) {
		for _, price := range []float64{0, -5, 10000, 0.001, 19.999} {
			_, err := env.courses.CreateCourse(ctx, CourseInput{
				Title:       "Pricey Course",
				Description: "A course with a bad price.",
				Price:       price,
			})
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("price %v: expected validation error, got %v", price, err)
			}
		}
	})
}

func TestCourseService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	l1 := env.createLecturer(t, "Ada", "ada@x.edu")
	l2 := env.createLecturer(t, "Alan", "alan@x.edu")
	c := env.createCourse(t, "Compilers", 120)

	t.Run("Empty fields keep stored values", func(t *testing.T) {
		got, err := env.courses.UpdateCourse(ctx, c.ID, CourseInput{Price: 80})
		if err != nil {
			t.Fatalf("UpdateCourse: %v", err)
		}
		if got.Title != "Compilers" || got.Description != c.Description {
			t.Errorf("expected title and description to stay, got %q %q", got.Title, got.Description)
		}
		if got.Price != 80 {
			t.Errorf("expected price 80, got %v", got.Price)
		}
		if got.HasLecturer() {
			t.Errorf("nil lecturer id must not assign")
		}
	})

	t.Run("Assign via lecturerId", func(t *testing.T) {
		if _, err := env.courses.UpdateCourse(ctx, c.ID, CourseInput{LecturerID: ptr(l1.ID)}); err != nil {
			t.Fatalf("UpdateCourse: %v", err)
		}
		if !env.lecturer(t, l1.ID).HasCourse(c.ID) {
			t.Errorf("lecturer does not list course")
		}
		env.assertSymmetric(t)
	})

	t.Run("Reassign via lecturerId", func(t *testing.T) {
		got, err := env.courses.UpdateCourse(ctx, c.ID, CourseInput{LecturerID: ptr(l2.ID)})
		if err != nil {
			t.Fatalf("UpdateCourse: %v", err)
		}
		if !got.BelongsTo(l2.ID) {
			t.Errorf("course does not point at new lecturer")
		}
		if env.lecturer(t, l1.ID).HasCourse(c.ID) {
			t.Errorf("previous lecturer still lists course")
		}
		env.assertSymmetric(t)
	})

	t.Run("Detach via empty lecturerId", func(t *testing.T) {
		got, err := env.courses.UpdateCourse(ctx, c.ID, CourseInput{LecturerID: ptr("")})
		if err != nil {
			t.Fatalf("UpdateCourse: %v", err)
		}
		if got.HasLecturer() {
			t.Errorf("course still has a lecturer")
		}
		if env.lecturer(t, l2.ID).HasCourse(c.ID) {
			t.Errorf("lecturer still lists course")
		}
		env.assertSymmetric(t)
	})

	t.Run("Unknown lecturer rolls back field changes", func(t *testing.T) {
		_, err := env.courses.UpdateCourse(ctx, c.ID, CourseInput{Title: "Renamed", LecturerID: ptr("nope")})
		if !errors.Is(err, apperrors.ErrLecturerNotFound) {
			t.Fatalf("expected lecturer not found, got %v", err)
		}
		if got := env.course(t, c.ID); got.Title != "Compilers" {
			t.Errorf("title changed despite the failure: %q", got.Title)
		}
	})

	t.Run("Sub-cent price", func(t *testing.T) {
		_, err := env.courses.UpdateCourse(ctx, c.ID, CourseInput{Price: 0.005})
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if got := env.course(t, c.ID); got.Price != 80 {
			t.Errorf("price changed despite the failure: %v", got.Price)
		}
	})

	t.Run("Unknown course", func(t *testing.T) {
		if _, err := env.courses.UpdateCourse(ctx, "nope", CourseInput{Title: "Whatever"}); !errors.Is(err, apperrors.ErrCourseNotFound) {
			t.Fatalf("expected course not found, got %v", err)
		}
	})
}

func TestCourseService_GetCoursesPage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		env.createCourse(t, fmt.Sprintf("Course %02d", i), float64(i*10))
	}

	tests := []struct {
		name      string
		req       models.PageRequest
		wantPage  int
		wantSize  int
		wantCount int
		wantFirst string
	}{
		{name: "Defaults", req: models.PageRequest{}, wantPage: 1, wantSize: 10, wantCount: 10, wantFirst: "Course 01"},
		{name: "Second page", req: models.PageRequest{Page: 2, Size: 5}, wantPage: 2, wantSize: 5, wantCount: 5, wantFirst: "Course 06"},
		{name: "Last partial page", req: models.PageRequest{Page: 3, Size: 5}, wantPage: 3, wantSize: 5, wantCount: 2, wantFirst: "Course 11"},
		{name: "Past the end", req: models.PageRequest{Page: 9, Size: 5}, wantPage: 9, wantSize: 5, wantCount: 0},
		{name: "Price descending", req: models.PageRequest{Page: 1, Size: 3, SortField: models.CourseSortPrice, SortDir: models.SortDesc}, wantPage: 1, wantSize: 3, wantCount: 3, wantFirst: "Course 12"},
		{name: "Oversized page falls back", req: models.PageRequest{Page: 1, Size: 500}, wantPage: 1, wantSize: 10, wantCount: 10, wantFirst: "Course 01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := env.courses.GetCoursesPage(ctx, tt.req)
			if err != nil {
				t.Fatalf("GetCoursesPage: %v", err)
			}
			if page.TotalItems != 12 {
				t.Errorf("expected 12 total items, got %d", page.TotalItems)
			}
			if page.Page != tt.wantPage || page.Size != tt.wantSize {
				t.Errorf("expected page %d size %d, got %d/%d", tt.wantPage, tt.wantSize, page.Page, page.Size)
			}
			if len(page.Courses) != tt.wantCount {
				t.Fatalf("expected %d courses, got %d", tt.wantCount, len(page.Courses))
			}
			if tt.wantFirst != "" && page.Courses[0].Title != tt.wantFirst {
				t.Errorf("expected first course %q, got %q", tt.wantFirst, page.Courses[0].Title)
			}
		})
	}
}
