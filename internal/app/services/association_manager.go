package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/courseportal/internal/app/models"
	"github.com/yigit/courseportal/internal/app/repositories"
	"github.com/yigit/courseportal/internal/pkg/apperrors"
)

// AssociationManager keeps the lecturer/course association symmetric:
// a course references lecturer L exactly when L's course set contains it.
// Every mutation loads both sides, checks all preconditions, then writes
// both sides inside one transaction.
type AssociationManager struct {
	tx        repositories.Transactor
	lecturers repositories.LecturerStore
	courses   repositories.CourseStore
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAssociationManager creates a new association manager
func NewAssociationManager(repos *repositories.Repositories, lgr zerolog.Logger) *AssociationManager {
	return &AssociationManager{
		tx:        repos.Transactor,
		lecturers: repos.LecturerRepository,
		courses:   repos.CourseRepository,
		logger:    lgr,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AssignCourse makes lecturerID the owner of courseID, detaching it from any previous owner
func (m *AssociationManager) AssignCourse(ctx context.Context, lecturerID, courseID string) (*models.Lecturer, error) {
	m.logger.Debug().Str("lecturerID", lecturerID).Str("courseID", courseID).Msg("Assigning course to lecturer")

	var result *models.Lecturer
	err := m.tx.WithTransaction(ctx, func(ctx context.Context) error {
		lecturer, err := m.loadLecturer(ctx, lecturerID)
		if err != nil {
			return err
		}
		course, err := m.loadCourse(ctx, courseID)
		if err != nil {
			return err
		}

		result, err = m.assign(ctx, lecturer, course)
		return err
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info().Str("lecturerID", lecturerID).Str("courseID", courseID).Msg("Course assigned to lecturer")
	return result, nil
}

// RemoveCourse detaches courseID from lecturerID. Removing a course the lecturer
// does not own changes nothing on the course side.
func (m *AssociationManager) RemoveCourse(ctx context.Context, lecturerID, courseID string) (*models.Lecturer, error) {
	m.logger.Debug().Str("lecturerID", lecturerID).Str("courseID", courseID).Msg("Removing course from lecturer")

	var result *models.Lecturer
	err := m.tx.WithTransaction(ctx, func(ctx context.Context) error {
		lecturer, err := m.loadLecturer(ctx, lecturerID)
		if err != nil {
			return err
		}
		course, err := m.loadCourse(ctx, courseID)
		if err != nil {
			return err
		}

		now := m.now()
		if course.BelongsTo(lecturer.ID) {
			course.ClearLecturer()
			course.Touch(now)
			if err := m.courses.Save(ctx, course); err != nil {
				return fmt.Errorf("error saving course: %w", err)
			}
		}

		if lecturer.RemoveCourse(course.ID) {
			lecturer.Touch(now)
			if err := m.lecturers.Save(ctx, lecturer); err != nil {
				return fmt.Errorf("error saving lecturer: %w", err)
			}
		}

		result = lecturer
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info().Str("lecturerID", lecturerID).Str("courseID", courseID).Msg("Course removed from lecturer")
	return result, nil
}

// DeleteLecturer leaves every owned course lecturer-less, then deletes the lecturer
func (m *AssociationManager) DeleteLecturer(ctx context.Context, lecturerID string) error {
	m.logger.Debug().Str("lecturerID", lecturerID).Msg("Deleting lecturer")

	var orphaned int
	err := m.tx.WithTransaction(ctx, func(ctx context.Context) error {
		lecturer, err := m.loadLecturer(ctx, lecturerID)
		if err != nil {
			return err
		}

		owned, err := m.ownedCourses(ctx, lecturer)
		if err != nil {
			return err
		}

		now := m.now()
		for _, course := range owned {
			course.ClearLecturer()
			course.Touch(now)
			if err := m.courses.Save(ctx, course); err != nil {
				return fmt.Errorf("error detaching course %s: %w", course.ID, err)
			}
		}
		orphaned = len(owned)

		if err := m.lecturers.DeleteByID(ctx, lecturer.ID); err != nil {
			return fmt.Errorf("error deleting lecturer: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info().Str("lecturerID", lecturerID).Int("detachedCourses", orphaned).Msg("Lecturer deleted")
	return nil
}

// DeleteCourse removes the course from its lecturer's set, then deletes it
func (m *AssociationManager) DeleteCourse(ctx context.Context, courseID string) error {
	m.logger.Debug().Str("courseID", courseID).Msg("Deleting course")

	err := m.tx.WithTransaction(ctx, func(ctx context.Context) error {
		course, err := m.loadCourse(ctx, courseID)
		if err != nil {
			return err
		}

		if course.HasLecturer() {
			if err := m.detachFromLecturer(ctx, *course.LecturerID, course.ID); err != nil {
				return err
			}
		}

		if err := m.courses.DeleteByID(ctx, course.ID); err != nil {
			return fmt.Errorf("error deleting course: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info().Str("courseID", courseID).Msg("Course deleted")
	return nil
}

// ValidateEmailUniqueness fails with a duplicate error when a lecturer other than
// excludingLecturerID already holds email. Pass an empty id on create.
func (m *AssociationManager) ValidateEmailUniqueness(ctx context.Context, email, excludingLecturerID string) error {
	existing, err := m.lecturers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil
		}
		return fmt.Errorf("error checking lecturer email: %w", err)
	}

	if existing.ID == excludingLecturerID {
		return nil
	}

	m.logger.Warn().Str("email", email).Msg("Email already exists")
	return apperrors.NewDuplicateEmailError(email)
}

// AssignWithinTx applies the assignment to already-loaded entities. ctx must
// belong to a transaction started by the caller. Used by the course service so
// that the lecturerId field of a course goes through the same routine.
func (m *AssociationManager) AssignWithinTx(ctx context.Context, lecturerID string, course *models.Course) error {
	lecturer, err := m.loadLecturer(ctx, lecturerID)
	if err != nil {
		return err
	}
	_, err = m.assign(ctx, lecturer, course)
	return err
}

// DetachWithinTx makes an already-loaded course lecturer-less, updating its previous owner
func (m *AssociationManager) DetachWithinTx(ctx context.Context, course *models.Course) error {
	if !course.HasLecturer() {
		return nil
	}
	if err := m.detachFromLecturer(ctx, *course.LecturerID, course.ID); err != nil {
		return err
	}
	course.ClearLecturer()
	course.Touch(m.now())
	if err := m.courses.Save(ctx, course); err != nil {
		return fmt.Errorf("error saving course: %w", err)
	}
	return nil
}

func (m *AssociationManager) assign(ctx context.Context, lecturer *models.Lecturer, course *models.Course) (*models.Lecturer, error) {
	if course.HasLecturer() && !course.BelongsTo(lecturer.ID) {
		previousID := *course.LecturerID
		m.logger.Debug().Str("courseID", course.ID).Str("previousLecturerID", previousID).Msg("Reassigning course")
		if err := m.detachFromLecturer(ctx, previousID, course.ID); err != nil {
			return nil, err
		}
	}

	now := m.now()
	course.SetLecturer(lecturer.ID)
	course.Touch(now)
	if err := m.courses.Save(ctx, course); err != nil {
		return nil, fmt.Errorf("error saving course: %w", err)
	}

	lecturer.AddCourse(course.ID)
	lecturer.Touch(now)
	if err := m.lecturers.Save(ctx, lecturer); err != nil {
		return nil, fmt.Errorf("error saving lecturer: %w", err)
	}

	return lecturer, nil
}

// detachFromLecturer drops courseID from lecturerID's set. A back-reference to a
// lecturer that no longer exists is tolerated; the caller overwrites it.
func (m *AssociationManager) detachFromLecturer(ctx context.Context, lecturerID, courseID string) error {
	owner, err := m.lecturers.FindByID(ctx, lecturerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			m.logger.Warn().Str("lecturerID", lecturerID).Str("courseID", courseID).Msg("Course referenced a missing lecturer")
			return nil
		}
		return fmt.Errorf("error retrieving lecturer: %w", err)
	}

	if owner.RemoveCourse(courseID) {
		owner.Touch(m.now())
		if err := m.lecturers.Save(ctx, owner); err != nil {
			return fmt.Errorf("error saving lecturer: %w", err)
		}
	}
	return nil
}

// ownedCourses unions the lecturer's own set with every course pointing back at it
func (m *AssociationManager) ownedCourses(ctx context.Context, lecturer *models.Lecturer) ([]*models.Course, error) {
	referencing, err := m.courses.FindByLecturerID(ctx, lecturer.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving lecturer courses: %w", err)
	}

	seen := make(map[string]bool, len(referencing))
	owned := make([]*models.Course, 0, len(referencing))
	for _, course := range referencing {
		seen[course.ID] = true
		owned = append(owned, course)
	}

	for _, courseID := range lecturer.CourseIDs {
		if seen[courseID] {
			continue
		}
		course, err := m.courses.FindByID(ctx, courseID)
		if err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				continue
			}
			return nil, fmt.Errorf("error retrieving course: %w", err)
		}
		if course.BelongsTo(lecturer.ID) {
			owned = append(owned, course)
		}
	}

	return owned, nil
}

func (m *AssociationManager) loadLecturer(ctx context.Context, id string) (*models.Lecturer, error) {
	lecturer, err := m.lecturers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			m.logger.Warn().Str("lecturerID", id).Msg("Lecturer not found")
			return nil, apperrors.NewLecturerNotFoundError(id)
		}
		return nil, fmt.Errorf("error retrieving lecturer: %w", err)
	}
	return lecturer, nil
}

func (m *AssociationManager) loadCourse(ctx context.Context, id string) (*models.Course, error) {
	course, err := m.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			m.logger.Warn().Str("courseID", id).Msg("Course not found")
			return nil, apperrors.NewCourseNotFoundError(id)
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}
