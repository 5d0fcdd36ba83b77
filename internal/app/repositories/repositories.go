package repositories

import (
	"context"

	"github.com/yigit/courseportal/internal/app/models"
	"github.com/yigit/courseportal/internal/db"
)

// LecturerStore is the id-keyed persistence surface for lecturers.
// Lookups of absent rows return an error wrapping apperrors.ErrResourceNotFound.
type LecturerStore interface {
	FindByID(ctx context.Context, id string) (*models.Lecturer, error)
	FindByEmail(ctx context.Context, email string) (*models.Lecturer, error)
	FindAll(ctx context.Context) ([]*models.Lecturer, error)
	Save(ctx context.Context, lecturer *models.Lecturer) error
	DeleteByID(ctx context.Context, id string) error
}

// CourseStore is the id-keyed persistence surface for courses.
type CourseStore interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindAll(ctx context.Context) ([]*models.Course, error)
	FindPage(ctx context.Context, page models.PageRequest) ([]*models.Course, int64, error)
	FindByLecturerID(ctx context.Context, lecturerID string) ([]*models.Course, error)
	Save(ctx context.Context, course *models.Course) error
	DeleteByID(ctx context.Context, id string) error
}

// Transactor runs fn as one unit of work; fn's error aborts everything it wrote.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories holds all the repository instances
type Repositories struct {
	LecturerRepository LecturerStore
	CourseRepository   CourseStore
	Transactor         Transactor
}

// NewRepositories initializes the postgres-backed repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		LecturerRepository: NewLecturerRepository(database),
		CourseRepository:   NewCourseRepository(database),
		Transactor:         database,
	}
}
