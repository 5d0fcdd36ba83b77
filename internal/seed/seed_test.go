package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/courseportal/internal/app/repositories/memory"
	"github.com/yigit/courseportal/internal/app/services"
)

func TestCreateDefaultData_IsRepeatable(t *testing.T) {
	repos := memory.NewRepositories()
	manager := services.NewAssociationManager(repos, zerolog.Nop())
	lecturers := services.NewLecturerService(repos, manager, zerolog.Nop())
	courses := services.NewCourseService(repos, manager, zerolog.Nop())
	ctx := context.Background()

	for run := 1; run <= 2; run++ {
		if err := CreateDefaultData(ctx, lecturers, courses, zerolog.Nop()); err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
	}

	all, err := lecturers.GetAllLecturers(ctx)
	if err != nil {
		t.Fatalf("GetAllLecturers: %v", err)
	}
	if len(all) != len(demoData) {
		t.Fatalf("expected %d lecturers, got %d", len(demoData), len(all))
	}

	wantCourses := 0
	for _, demo := range demoData {
		wantCourses += len(demo.courses)
	}
	stored, err := courses.GetAllCourses(ctx)
	if err != nil {
		t.Fatalf("GetAllCourses: %v", err)
	}
	if len(stored) != wantCourses {
		t.Errorf("expected %d courses, got %d", wantCourses, len(stored))
	}
	for _, c := range stored {
		if !c.HasLecturer() {
			t.Errorf("demo course %q has no lecturer", c.Title)
		}
	}
}
