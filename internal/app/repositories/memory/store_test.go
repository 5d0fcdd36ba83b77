package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yigit/courseportal/internal/app/models"
	"github.com/yigit/courseportal/internal/pkg/apperrors"
)

func newLecturer(id, email string) *models.Lecturer {
	return &models.Lecturer{ID: id, FirstName: "Test", LastName: id, Email: email, Department: "Physics"}
}

func newCourse(id, title string, price float64, created time.Time) *models.Course {
	return &models.Course{ID: id, Title: title, Description: "Description", Price: price, CreatedAt: created, UpdatedAt: created}
}

func TestStore_LecturerEmailIsUnique(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Lecturers().Save(ctx, newLecturer("l1", "a@x.edu")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	err := s.Lecturers().Save(ctx, newLecturer("l2", "a@x.edu"))
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected duplicate email error, got %v", err)
	}

	// Saving the same row again is an update, not a duplicate
	if err := s.Lecturers().Save(ctx, newLecturer("l1", "a@x.edu")); err != nil {
		t.Errorf("re-saving the same lecturer failed: %v", err)
	}

	got, err := s.Lecturers().FindByEmail(ctx, "a@x.edu")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got.ID != "l1" {
		t.Errorf("expected l1, got %s", got.ID)
	}
	if _, err := s.Lecturers().FindByEmail(ctx, "b@x.edu"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	l := newLecturer("l1", "a@x.edu")
	l.CourseIDs = []string{"c1"}
	if err := s.Lecturers().Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	l.CourseIDs[0] = "mutated"
	got, _ := s.Lecturers().FindByID(ctx, "l1")
	if got.CourseIDs[0] != "c1" {
		t.Errorf("stored lecturer aliased the caller's slice")
	}

	got.CourseIDs = nil
	again, _ := s.Lecturers().FindByID(ctx, "l1")
	if len(again.CourseIDs) != 1 {
		t.Errorf("returned lecturer aliased the stored row")
	}
}

func TestStore_ReferencedLecturerCannotBeDeleted(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now()

	if err := s.Lecturers().Save(ctx, newLecturer("l1", "a@x.edu")); err != nil {
		t.Fatalf("Save lecturer: %v", err)
	}

	dangling := newCourse("c0", "Dangling", 10, now)
	dangling.SetLecturer("missing")
	if err := s.Courses().Save(ctx, dangling); !errors.Is(err, apperrors.ErrLecturerNotFound) {
		t.Fatalf("expected lecturer not found for dangling reference, got %v", err)
	}

	c := newCourse("c1", "Mechanics", 10, now)
	c.SetLecturer("l1")
	if err := s.Courses().Save(ctx, c); err != nil {
		t.Fatalf("Save course: %v", err)
	}

	if err := s.Lecturers().DeleteByID(ctx, "l1"); !errors.Is(err, ErrReferenced) {
		t.Fatalf("expected referenced error, got %v", err)
	}

	c.ClearLecturer()
	if err := s.Courses().Save(ctx, c); err != nil {
		t.Fatalf("Save course: %v", err)
	}
	if err := s.Lecturers().DeleteByID(ctx, "l1"); err != nil {
		t.Errorf("DeleteByID after detaching: %v", err)
	}
}

func TestStore_TransactionRollback(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Lecturers().Save(ctx, newLecturer("l1", "a@x.edu")); err != nil {
			return err
		}
		// Nested calls join the outer transaction
		return s.WithTransaction(ctx, func(ctx context.Context) error {
			if err := s.Courses().Save(ctx, newCourse("c1", "Optics", 10, time.Now())); err != nil {
				return err
			}
			return boom
		})
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if _, err := s.Lecturers().FindByID(ctx, "l1"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("lecturer write survived rollback: %v", err)
	}
	if _, err := s.Courses().FindByID(ctx, "c1"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("course write survived rollback: %v", err)
	}

	err = s.WithTransaction(ctx, func(ctx context.Context) error {
		return s.Lecturers().Save(ctx, newLecturer("l2", "b@x.edu"))
	})
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}
	if _, err := s.Lecturers().FindByID(ctx, "l2"); err != nil {
		t.Errorf("committed write is missing: %v", err)
	}

	t.Run("Panic restores state", func(t *testing.T) {
		if err := s.Courses().Save(ctx, newCourse("c2", "Acoustics", 10, time.Now())); err != nil {
			t.Fatalf("Save course: %v", err)
		}

		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected the panic to propagate")
				}
			}()
			_ = s.WithTransaction(ctx, func(ctx context.Context) error {
				c, err := s.Courses().FindByID(ctx, "c2")
				if err != nil {
					return err
				}
				c.SetLecturer("l2")
				if err := s.Courses().Save(ctx, c); err != nil {
					return err
				}
				var l *models.Lecturer
				l.AddCourse(c.ID)
				return nil
			})
		}()

		c, err := s.Courses().FindByID(ctx, "c2")
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if c.HasLecturer() {
			t.Errorf("course kept lecturer %s written before the panic", *c.LecturerID)
		}
		l, err := s.Lecturers().FindByID(ctx, "l2")
		if err != nil {
			t.Fatalf("FindByID after panic: %v", err)
		}
		if l.HasCourse("c2") {
			t.Errorf("lecturer lists a course it was never committed with")
		}
	})
}

func TestStore_FindPage(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, c := range []*models.Course{
		newCourse("c1", "Zoology", 30, base),
		newCourse("c2", "algebra", 10, base.Add(time.Minute)),
		newCourse("c3", "Botany", 20, base.Add(2*time.Minute)),
	} {
		if err := s.Courses().Save(ctx, c); err != nil {
			t.Fatalf("Save #%d: %v", i, err)
		}
	}

	tests := []struct {
		name string
		req  models.PageRequest
		want []string
	}{
		{name: "Creation order", req: models.PageRequest{Page: 1, Size: 10, SortField: models.CourseSortCreatedAt}, want: []string{"c1", "c2", "c3"}},
		{name: "Title ignores case", req: models.PageRequest{Page: 1, Size: 10, SortField: models.CourseSortTitle}, want: []string{"c2", "c3", "c1"}},
		{name: "Price descending", req: models.PageRequest{Page: 1, Size: 10, SortField: models.CourseSortPrice, SortDir: models.SortDesc}, want: []string{"c1", "c3", "c2"}},
		{name: "Second page", req: models.PageRequest{Page: 2, Size: 2, SortField: models.CourseSortCreatedAt}, want: []string{"c3"}},
		{name: "Beyond the end", req: models.PageRequest{Page: 5, Size: 2}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := s.Courses().FindPage(ctx, tt.req)
			if err != nil {
				t.Fatalf("FindPage: %v", err)
			}
			if total != 3 {
				t.Errorf("expected total 3, got %d", total)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d courses, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestStore_FindByLecturerID(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now()

	_ = s.Lecturers().Save(ctx, newLecturer("l1", "a@x.edu"))
	owned := newCourse("c1", "Owned", 10, now)
	owned.SetLecturer("l1")
	_ = s.Courses().Save(ctx, owned)
	_ = s.Courses().Save(ctx, newCourse("c2", "Free", 10, now))

	got, err := s.Courses().FindByLecturerID(ctx, "l1")
	if err != nil {
		t.Fatalf("FindByLecturerID: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("expected only c1, got %v", got)
	}
}
