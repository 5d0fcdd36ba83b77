package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/courseportal/internal/app/models"
	"github.com/yigit/courseportal/internal/app/repositories"
	"github.com/yigit/courseportal/internal/pkg/helpers"
	"github.com/yigit/courseportal/internal/pkg/validation"
)

// CourseInput carries the writable course fields. On update, empty strings and a
// zero price keep the stored values. LecturerID nil leaves the association untouched.
type CourseInput struct {
	Title       string
	Description string
	Price       float64
	LecturerID  *string
}

// CoursePage is one page of a course listing
type CoursePage struct {
	Courses    []*models.Course
	TotalItems int64
	Page       int
	Size       int
}

// CourseService defines the interface for course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, input CourseInput) (*models.Course, error)
	UpdateCourse(ctx context.Context, id string, input CourseInput) (*models.Course, error)
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetCoursesPage(ctx context.Context, page models.PageRequest) (*CoursePage, error)
	DeleteCourse(ctx context.Context, id string) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	repos   *repositories.Repositories
	manager *AssociationManager
	logger  zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(repos *repositories.Repositories, manager *AssociationManager, lgr zerolog.Logger) CourseService {
	return &courseServiceImpl{
		repos:   repos,
		manager: manager,
		logger:  lgr,
	}
}

// CreateCourse creates a course, assigning it when a lecturer id is given
func (s *courseServiceImpl) CreateCourse(ctx context.Context, input CourseInput) (*models.Course, error) {
	s.logger.Debug().Str("title", input.Title).Msg("Creating new course")

	course := &models.Course{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
	}
	if err := validation.Struct(course); err != nil {
		return nil, err
	}

	err := s.repos.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		course.Touch(s.manager.now())
		if err := s.repos.CourseRepository.Save(ctx, course); err != nil {
			return fmt.Errorf("error creating course: %w", err)
		}

		if lecturerID := trimmed(input.LecturerID); lecturerID != "" {
			return s.manager.AssignWithinTx(ctx, lecturerID, course)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("courseID", course.ID).Msg("Course created")
	return course, nil
}

// UpdateCourse updates the given fields. A lecturer id differing from the
// current one reassigns the course; an empty lecturer id detaches it.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id string, input CourseInput) (*models.Course, error) {
	s.logger.Debug().Str("courseID", id).Msg("Updating course")

	var updated *models.Course
	err := s.repos.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		course, err := s.manager.loadCourse(ctx, id)
		if err != nil {
			return err
		}

		if title := strings.TrimSpace(input.Title); title != "" {
			course.Title = title
		}
		if description := strings.TrimSpace(input.Description); description != "" {
			course.Description = description
		}
		if input.Price != 0 {
			course.Price = input.Price
		}
		if err := validation.Struct(course); err != nil {
			return err
		}

		course.Touch(s.manager.now())
		if err := s.repos.CourseRepository.Save(ctx, course); err != nil {
			return fmt.Errorf("error updating course: %w", err)
		}

		if input.LecturerID != nil {
			lecturerID := trimmed(input.LecturerID)
			switch {
			case lecturerID == "":
				if err := s.manager.DetachWithinTx(ctx, course); err != nil {
					return err
				}
			case !course.BelongsTo(lecturerID):
				if err := s.manager.AssignWithinTx(ctx, lecturerID, course); err != nil {
					return err
				}
			}
		}

		updated = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("courseID", id).Msg("Course updated")
	return updated, nil
}

// GetCourseByID retrieves a course by ID
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	s.logger.Debug().Str("courseID", id).Msg("Fetching course")
	return s.manager.loadCourse(ctx, id)
}

// GetAllCourses retrieves all courses
func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.repos.CourseRepository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	s.logger.Debug().Int("count", len(courses)).Msg("Found courses")
	return courses, nil
}

// GetCoursesPage retrieves one page of courses
func (s *courseServiceImpl) GetCoursesPage(ctx context.Context, page models.PageRequest) (*CoursePage, error) {
	page = helpers.NormalizePageRequest(page)
	s.logger.Debug().
		Int("page", page.Page).
		Int("size", page.Size).
		Str("sort", page.SortField+","+string(page.SortDir)).
		Msg("Fetching courses with pagination")

	courses, total, err := s.repos.CourseRepository.FindPage(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course page: %w", err)
	}

	return &CoursePage{
		Courses:    courses,
		TotalItems: total,
		Page:       page.Page,
		Size:       page.Size,
	}, nil
}

// DeleteCourse deletes a course, removing it from its lecturer's set
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id string) error {
	return s.manager.DeleteCourse(ctx, id)
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
