package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/courseloop/backend/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetBySlug retrieves a course by its slug
func (r *courseRepository) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	query := `
		SELECT id, slug, title, description, level, price, instructor
		FROM courses
		WHERE slug = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&course.ID,
		&course.Slug,
		&course.Title,
		&course.Description,
		&course.Level,
		&course.Price,
		&course.Instructor,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by slug: %w", err)
	}

	return &course, nil
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT id, slug, title, description, level, price, instructor
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Slug,
		&course.Title,
		&course.Description,
		&course.Level,
		&course.Price,
		&course.Instructor,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}

// GetAll retrieves courses with optional level filter, search, and pagination
func (r *courseRepository) GetAll(ctx context.Context, level *models.Level, search string, page, count int) ([]models.CourseListItem, error) {
	query := `
		SELECT slug, title, level, price, instructor
		FROM courses
		WHERE (? = '' OR level = ?)
		  AND (? = '' OR title LIKE CONCAT('%', ?, '%'))
		ORDER BY title
		LIMIT ? OFFSET ?
	`

	levelStr := ""
	if level != nil {
		levelStr = string(*level)
	}
	offset := (page - 1) * count

	rows, err := r.db.QueryContext(ctx, query, levelStr, levelStr, search, search, count, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.CourseListItem
	for rows.Next() {
		var course models.CourseListItem
		err := rows.Scan(
			&course.Slug,
			&course.Title,
			&course.Level,
			&course.Price,
			&course.Instructor,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}
