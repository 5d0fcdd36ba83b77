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
	"github.com/yigit/courseportal/internal/pkg/validation"
)

var courseColumns = []string{"id", "title", "description", "price", "lecturer_id", "created_at", "updated_at"}

// courseSortColumns maps API sort fields to columns
var courseSortColumns = map[string]string{
	models.CourseSortTitle:     "title",
	models.CourseSortPrice:     "price",
	models.CourseSortCreatedAt: "created_at",
	models.CourseSortUpdatedAt: "updated_at",
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// FindByID retrieves a course by ID
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Debug().Str("courseID", id).Msg("Course not found")
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// FindAll retrieves all courses
func (r *CourseRepository) FindAll(ctx context.Context) ([]*models.Course, error) {
	return r.list(ctx, r.sb.Select(courseColumns...).From("courses").OrderBy("created_at", "id"))
}

// FindByLecturerID retrieves the courses that reference a lecturer
func (r *CourseRepository) FindByLecturerID(ctx context.Context, lecturerID string) ([]*models.Course, error) {
	return r.list(ctx, r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"lecturer_id": lecturerID}).
		OrderBy("created_at", "id"))
}

// FindPage retrieves one page of courses and the total number of courses
func (r *CourseRepository) FindPage(ctx context.Context, page models.PageRequest) ([]*models.Course, int64, error) {
	conn := r.db.Conn(ctx)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("courses").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}
	var total int64
	if err := conn.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	query := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy(courseOrderBy(page)...).
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset()))

	courses, err := r.list(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// Save inserts or updates a course row
func (r *CourseRepository) Save(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns(courseColumns...).
		Values(course.ID, course.Title, course.Description, course.Price,
			course.LecturerID, course.CreatedAt, course.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			lecturer_id = EXCLUDED.lecturer_id,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build save course query: %w", err)
	}

	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyError(err, dberrors.CourseLecturerConstraint) {
			lecturerID := ""
			if course.LecturerID != nil {
				lecturerID = *course.LecturerID
			}
			return apperrors.NewLecturerNotFoundError(lecturerID)
		}
		if dberrors.IsCheckViolation(err, dberrors.CoursePriceConstraint) {
			return &validation.Error{Fields: []validation.FieldError{{Field: "price", Message: "price must be at least 0.01"}}}
		}
		logger.Error().Err(err).Str("courseID", course.ID).Msg("Error executing save course query")
		return fmt.Errorf("error saving course: %w", err)
	}

	return nil
}

// DeleteByID deletes a course row
func (r *CourseRepository) DeleteByID(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

func (r *CourseRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

// courseOrderBy builds the ORDER BY terms for a page request; unknown fields fall back to creation order
func courseOrderBy(page models.PageRequest) []string {
	column, ok := courseSortColumns[page.SortField]
	if !ok {
		column = "created_at"
	}
	dir := "ASC"
	if page.SortDir == models.SortDesc {
		dir = "DESC"
	}
	return []string{column + " " + dir, "id ASC"}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Price,
		&course.LecturerID,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}
