// Package memory provides an in-process implementation of the entity stores.
// It keeps both sides of the lecturer/course association exactly as they are
// saved, so it does not repair an inconsistent write on its own.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/yigit/courseportal/internal/app/models"
	"github.com/yigit/courseportal/internal/app/repositories"
	"github.com/yigit/courseportal/internal/pkg/apperrors"
)

type state struct {
	lecturers map[string]*models.Lecturer
	courses   map[string]*models.Course
}

func newState() state {
	return state{
		lecturers: make(map[string]*models.Lecturer),
		courses:   make(map[string]*models.Course),
	}
}

func (s state) clone() state {
	cp := newState()
	for id, l := range s.lecturers {
		cp.lecturers[id] = l.Clone()
	}
	for id, c := range s.courses {
		cp.courses[id] = c.Clone()
	}
	return cp
}

// ErrReferenced mirrors a foreign key violation: a lecturer row cannot go while a course points at it
var ErrReferenced = errors.New("row is still referenced")

type txKey struct{}

// Store owns the lecturer and course tables and serialises access to them
type Store struct {
	mu    sync.Mutex
	state state
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{state: newState()}
}

// NewRepositories wires a fresh in-memory store into the repository bundle
func NewRepositories() *repositories.Repositories {
	s := NewStore()
	return &repositories.Repositories{
		LecturerRepository: s.Lecturers(),
		CourseRepository:   s.Courses(),
		Transactor:         s,
	}
}

// Lecturers returns the lecturer table view
func (s *Store) Lecturers() *LecturerStore {
	return &LecturerStore{s: s}
}

// Courses returns the course table view
func (s *Store) Courses() *CourseStore {
	return &CourseStore{s: s}
}

// WithTransaction holds the store lock for the duration of fn and restores
// the previous state if fn fails or panics. Nested calls join the running
// transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	defer func() {
		if p := recover(); p != nil {
			s.state = snapshot
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// do runs fn under the store lock unless ctx already belongs to a transaction
func (s *Store) do(ctx context.Context, fn func(st *state) error) error {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(&s.state)
}

// LecturerStore is the lecturer table of a Store
type LecturerStore struct {
	s *Store
}

var _ repositories.LecturerStore = (*LecturerStore)(nil)

// FindByID returns a copy of the lecturer
func (r *LecturerStore) FindByID(ctx context.Context, id string) (*models.Lecturer, error) {
	var out *models.Lecturer
	err := r.s.do(ctx, func(st *state) error {
		l, ok := st.lecturers[id]
		if !ok {
			return apperrors.ErrLecturerNotFound
		}
		out = l.Clone()
		return nil
	})
	return out, err
}

// FindByEmail returns a copy of the lecturer holding email
func (r *LecturerStore) FindByEmail(ctx context.Context, email string) (*models.Lecturer, error) {
	var out *models.Lecturer
	err := r.s.do(ctx, func(st *state) error {
		for _, l := range st.lecturers {
			if l.Email == email {
				out = l.Clone()
				return nil
			}
		}
		return apperrors.ErrLecturerNotFound
	})
	return out, err
}

// FindAll returns all lecturers ordered by last and first name
func (r *LecturerStore) FindAll(ctx context.Context) ([]*models.Lecturer, error) {
	out := make([]*models.Lecturer, 0)
	err := r.s.do(ctx, func(st *state) error {
		for _, l := range st.lecturers {
			out = append(out, l.Clone())
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

// Save upserts a copy of the lecturer, enforcing email uniqueness
func (r *LecturerStore) Save(ctx context.Context, lecturer *models.Lecturer) error {
	return r.s.do(ctx, func(st *state) error {
		for id, l := range st.lecturers {
			if id != lecturer.ID && l.Email == lecturer.Email {
				return apperrors.NewDuplicateEmailError(lecturer.Email)
			}
		}
		st.lecturers[lecturer.ID] = lecturer.Clone()
		return nil
	})
}

// DeleteByID removes the lecturer
func (r *LecturerStore) DeleteByID(ctx context.Context, id string) error {
	return r.s.do(ctx, func(st *state) error {
		if _, ok := st.lecturers[id]; !ok {
			return apperrors.ErrLecturerNotFound
		}
		for _, c := range st.courses {
			if c.BelongsTo(id) {
				return fmt.Errorf("%w: lecturer %s is still referenced by course %s", ErrReferenced, id, c.ID)
			}
		}
		delete(st.lecturers, id)
		return nil
	})
}

// CourseStore is the course table of a Store
type CourseStore struct {
	s *Store
}

var _ repositories.CourseStore = (*CourseStore)(nil)

// FindByID returns a copy of the course
func (r *CourseStore) FindByID(ctx context.Context, id string) (*models.Course, error) {
	var out *models.Course
	err := r.s.do(ctx, func(st *state) error {
		c, ok := st.courses[id]
		if !ok {
			return apperrors.ErrCourseNotFound
		}
		out = c.Clone()
		return nil
	})
	return out, err
}

// FindAll returns all courses in creation order
func (r *CourseStore) FindAll(ctx context.Context) ([]*models.Course, error) {
	return r.filter(ctx, func(*models.Course) bool { return true })
}

// FindByLecturerID returns the courses referencing lecturerID
func (r *CourseStore) FindByLecturerID(ctx context.Context, lecturerID string) ([]*models.Course, error) {
	return r.filter(ctx, func(c *models.Course) bool { return c.BelongsTo(lecturerID) })
}

// FindPage returns one sorted page and the total number of courses
func (r *CourseStore) FindPage(ctx context.Context, page models.PageRequest) ([]*models.Course, int64, error) {
	all, err := r.filter(ctx, func(*models.Course) bool { return true })
	if err != nil {
		return nil, 0, err
	}

	less := courseLess(page.SortField)
	sort.SliceStable(all, func(i, j int) bool {
		if page.SortDir == models.SortDesc {
			return less(all[j], all[i])
		}
		return less(all[i], all[j])
	})

	total := int64(len(all))
	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], total, nil
}

// Save upserts a copy of the course
func (r *CourseStore) Save(ctx context.Context, course *models.Course) error {
	return r.s.do(ctx, func(st *state) error {
		if course.LecturerID != nil {
			if _, ok := st.lecturers[*course.LecturerID]; !ok {
				return apperrors.NewLecturerNotFoundError(*course.LecturerID)
			}
		}
		st.courses[course.ID] = course.Clone()
		return nil
	})
}

// DeleteByID removes the course
func (r *CourseStore) DeleteByID(ctx context.Context, id string) error {
	return r.s.do(ctx, func(st *state) error {
		if _, ok := st.courses[id]; !ok {
			return apperrors.ErrCourseNotFound
		}
		delete(st.courses, id)
		return nil
	})
}

func (r *CourseStore) filter(ctx context.Context, keep func(*models.Course) bool) ([]*models.Course, error) {
	out := make([]*models.Course, 0)
	err := r.s.do(ctx, func(st *state) error {
		for _, c := range st.courses {
			if keep(c) {
				out = append(out, c.Clone())
			}
		}
		return nil
	})
	sort.Slice(out, courseLessByCreation(out))
	return out, err
}

func courseLessByCreation(out []*models.Course) func(i, j int) bool {
	return func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	}
}

func courseLess(field string) func(a, b *models.Course) bool {
	switch field {
	case models.CourseSortTitle:
		return func(a, b *models.Course) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case models.CourseSortPrice:
		return func(a, b *models.Course) bool { return a.Price < b.Price }
	case models.CourseSortUpdatedAt:
		return func(a, b *models.Course) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return func(a, b *models.Course) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}
