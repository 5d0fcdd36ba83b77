package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/courseportal/internal/app/models"
	"github.com/yigit/courseportal/internal/db"
	"github.com/yigit/courseportal/internal/pkg/apperrors"
	"github.com/yigit/courseportal/internal/pkg/dberrors"
	"github.com/yigit/courseportal/internal/pkg/logger"
)

var lecturerColumns = []string{"id", "first_name", "last_name", "email", "department", "bio", "created_at", "updated_at"}

// LecturerRepository handles database operations for lecturers.
// The course set is not stored on the lecturer row; it is read back from courses.lecturer_id.
type LecturerRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewLecturerRepository creates a new lecturer repository
func NewLecturerRepository(database *db.PostgresDB) *LecturerRepository {
	return &LecturerRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// FindByID retrieves a lecturer with its course ids
func (r *LecturerRepository) FindByID(ctx context.Context, id string) (*models.Lecturer, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id}, "id", id)
}

// FindByEmail retrieves a lecturer by email
func (r *LecturerRepository) FindByEmail(ctx context.Context, email string) (*models.Lecturer, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email}, "email", email)
}

func (r *LecturerRepository) findOne(ctx context.Context, where squirrel.Eq, key, value string) (*models.Lecturer, error) {
	sql, args, err := r.sb.Select(lecturerColumns...).
		From("lecturers").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get lecturer query: %w", err)
	}

	conn := r.db.Conn(ctx)
	lecturer, err := scanLecturer(conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Debug().Str(key, value).Msg("Lecturer not found")
			return nil, apperrors.ErrLecturerNotFound
		}
		logger.Error().Err(err).Str(key, value).Msg("Error scanning lecturer row")
		return nil, fmt.Errorf("error retrieving lecturer: %w", err)
	}

	courseIDs, err := r.courseIDsByLecturer(ctx, conn, []string{lecturer.ID})
	if err != nil {
		return nil, err
	}
	lecturer.CourseIDs = courseIDs[lecturer.ID]

	return lecturer, nil
}

// FindAll retrieves all lecturers ordered by last and first name
func (r *LecturerRepository) FindAll(ctx context.Context) ([]*models.Lecturer, error) {
	sql, args, err := r.sb.Select(lecturerColumns...).
		From("lecturers").
		OrderBy("last_name", "first_name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list lecturers query: %w", err)
	}

	conn := r.db.Conn(ctx)
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing lecturers: %w", err)
	}
	defer rows.Close()

	lecturers := make([]*models.Lecturer, 0)
	ids := make([]string, 0)
	for rows.Next() {
		lecturer, err := scanLecturer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning lecturer row: %w", err)
		}
		lecturers = append(lecturers, lecturer)
		ids = append(ids, lecturer.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return lecturers, nil
	}

	courseIDs, err := r.courseIDsByLecturer(ctx, conn, ids)
	if err != nil {
		return nil, err
	}
	for _, lecturer := range lecturers {
		lecturer.CourseIDs = courseIDs[lecturer.ID]
	}

	return lecturers, nil
}

// Save inserts or updates the lecturer row
func (r *LecturerRepository) Save(ctx context.Context, lecturer *models.Lecturer) error {
	sql, args, err := r.sb.Insert("lecturers").
		Columns(lecturerColumns...).
		Values(lecturer.ID, lecturer.FirstName, lecturer.LastName, lecturer.Email,
			lecturer.Department, lecturer.Bio, lecturer.CreatedAt, lecturer.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			department = EXCLUDED.department,
			bio = EXCLUDED.bio,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build save lecturer query: %w", err)
	}

	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.LecturerEmailConstraint) {
			logger.Warn().Str("email", lecturer.Email).Msg("Lecturer email already taken")
			return apperrors.NewDuplicateEmailError(lecturer.Email)
		}
		logger.Error().Err(err).Str("lecturerID", lecturer.ID).Msg("Error executing save lecturer query")
		return fmt.Errorf("error saving lecturer: %w", err)
	}

	return nil
}

// DeleteByID deletes a lecturer row
func (r *LecturerRepository) DeleteByID(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("lecturers").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete lecturer query: %w", err)
	}

	cmdTag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting lecturer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLecturerNotFound
	}

	return nil
}

func (r *LecturerRepository) courseIDsByLecturer(ctx context.Context, conn db.DBTX, lecturerIDs []string) (map[string][]string, error) {
	sql, args, err := r.sb.Select("lecturer_id", "id").
		From("courses").
		Where(squirrel.Eq{"lecturer_id": lecturerIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lecturer courses query: %w", err)
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving lecturer courses: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]string, len(lecturerIDs))
	for rows.Next() {
		var lecturerID, courseID string
		if err := rows.Scan(&lecturerID, &courseID); err != nil {
			return nil, fmt.Errorf("error scanning lecturer course row: %w", err)
		}
		result[lecturerID] = append(result[lecturerID], courseID)
	}

	return result, rows.Err()
}

func scanLecturer(row pgx.Row) (*models.Lecturer, error) {
	var lecturer models.Lecturer
	err := row.Scan(
		&lecturer.ID,
		&lecturer.FirstName,
		&lecturer.LastName,
		&lecturer.Email,
		&lecturer.Department,
		&lecturer.Bio,
		&lecturer.CreatedAt,
		&lecturer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lecturer, nil
}
