package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/courseportal/internal/app/models"
	"github.com/yigit/courseportal/internal/app/repositories"
	"github.com/yigit/courseportal/internal/pkg/apperrors"
	"github.com/yigit/courseportal/internal/pkg/validation"
)

// LecturerInput carries the writable lecturer fields. A nil Bio leaves the
// stored bio unchanged.
type LecturerInput struct {
	FirstName  string
	LastName   string
	Email      string
	Department string
	Bio        *string
}

// LecturerService defines the interface for lecturer-related operations
type LecturerService interface {
	CreateLecturer(ctx context.Context, input LecturerInput) (*models.Lecturer, error)
	UpdateLecturer(ctx context.Context, id string, input LecturerInput) (*models.Lecturer, error)
	GetLecturerByID(ctx context.Context, id string) (*models.Lecturer, error)
	GetAllLecturers(ctx context.Context) ([]*models.Lecturer, error)
	GetLecturerCourses(ctx context.Context, id string) ([]*models.Course, error)
	DeleteLecturer(ctx context.Context, id string) error
	AssignCourse(ctx context.Context, lecturerID, courseID string) (*models.Lecturer, error)
	RemoveCourse(ctx context.Context, lecturerID, courseID string) (*models.Lecturer, error)
}

// lecturerServiceImpl implements the LecturerService interface
type lecturerServiceImpl struct {
	repos   *repositories.Repositories
	manager *AssociationManager
	logger  zerolog.Logger
}

// NewLecturerService creates a new lecturer service instance
func NewLecturerService(repos *repositories.Repositories, manager *AssociationManager, lgr zerolog.Logger) LecturerService {
	return &lecturerServiceImpl{
		repos:   repos,
		manager: manager,
		logger:  lgr,
	}
}

func (in LecturerInput) normalized() LecturerInput {
	out := LecturerInput{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Email:      strings.TrimSpace(in.Email),
		Department: strings.TrimSpace(in.Department),
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		out.Bio = &bio
	}
	return out
}

func (in LecturerInput) applyTo(lecturer *models.Lecturer) {
	lecturer.FirstName = in.FirstName
	lecturer.LastName = in.LastName
	lecturer.Email = in.Email
	lecturer.Department = in.Department
	if in.Bio != nil {
		lecturer.Bio = *in.Bio
	}
}

// CreateLecturer creates a new lecturer with an empty course set
func (s *lecturerServiceImpl) CreateLecturer(ctx context.Context, input LecturerInput) (*models.Lecturer, error) {
	input = input.normalized()
	s.logger.Debug().Str("firstName", input.FirstName).Str("lastName", input.LastName).Msg("Creating new lecturer")

	lecturer := &models.Lecturer{ID: uuid.NewString(), CourseIDs: []string{}}
	input.applyTo(lecturer)
	if err := validation.Struct(lecturer); err != nil {
		return nil, err
	}

	err := s.repos.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.manager.ValidateEmailUniqueness(ctx, lecturer.Email, ""); err != nil {
			return err
		}
		lecturer.Touch(s.manager.now())
		return s.repos.LecturerRepository.Save(ctx, lecturer)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("lecturerID", lecturer.ID).Msg("Lecturer created")
	return lecturer, nil
}

// UpdateLecturer replaces the lecturer's fields; the course set is left alone
func (s *lecturerServiceImpl) UpdateLecturer(ctx context.Context, id string, input LecturerInput) (*models.Lecturer, error) {
	input = input.normalized()
	s.logger.Debug().Str("lecturerID", id).Msg("Updating lecturer")

	var updated *models.Lecturer
	err := s.repos.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		lecturer, err := s.manager.loadLecturer(ctx, id)
		if err != nil {
			return err
		}

		if lecturer.Email != input.Email {
			if err := s.manager.ValidateEmailUniqueness(ctx, input.Email, lecturer.ID); err != nil {
				return err
			}
		}

		input.applyTo(lecturer)
		if err := validation.Struct(lecturer); err != nil {
			return err
		}

		lecturer.Touch(s.manager.now())
		if err := s.repos.LecturerRepository.Save(ctx, lecturer); err != nil {
			return err
		}
		updated = lecturer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("lecturerID", id).Msg("Lecturer updated")
	return updated, nil
}

// GetLecturerByID retrieves a lecturer by ID
func (s *lecturerServiceImpl) GetLecturerByID(ctx context.Context, id string) (*models.Lecturer, error) {
	s.logger.Debug().Str("lecturerID", id).Msg("Fetching lecturer")
	return s.manager.loadLecturer(ctx, id)
}

// GetAllLecturers retrieves all lecturers
func (s *lecturerServiceImpl) GetAllLecturers(ctx context.Context) ([]*models.Lecturer, error) {
	lecturers, err := s.repos.LecturerRepository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving lecturers: %w", err)
	}
	s.logger.Debug().Int("count", len(lecturers)).Msg("Found lecturers")
	return lecturers, nil
}

// GetLecturerCourses retrieves the courses owned by a lecturer
func (s *lecturerServiceImpl) GetLecturerCourses(ctx context.Context, id string) ([]*models.Course, error) {
	if _, err := s.manager.loadLecturer(ctx, id); err != nil {
		return nil, err
	}

	courses, err := s.repos.CourseRepository.FindByLecturerID(ctx, id)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, fmt.Errorf("error retrieving lecturer courses: %w", err)
	}
	return courses, nil
}

// DeleteLecturer deletes a lecturer, leaving its courses lecturer-less
func (s *lecturerServiceImpl) DeleteLecturer(ctx context.Context, id string) error {
	return s.manager.DeleteLecturer(ctx, id)
}

// AssignCourse assigns a course to a lecturer
func (s *lecturerServiceImpl) AssignCourse(ctx context.Context, lecturerID, courseID string) (*models.Lecturer, error) {
	return s.manager.AssignCourse(ctx, lecturerID, courseID)
}

// RemoveCourse removes a course from a lecturer
func (s *lecturerServiceImpl) RemoveCourse(ctx context.Context, lecturerID, courseID string) (*models.Lecturer, error) {
	return s.manager.RemoveCourse(ctx, lecturerID, courseID)
}
