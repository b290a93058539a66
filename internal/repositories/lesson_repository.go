package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/courseloop/backend/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetBySlug retrieves a lesson by its slug
func (r *lessonRepository) GetBySlug(ctx context.Context, slug string) (*models.Lesson, error) {
	query := `
		SELECT id, slug, term_id, title, description, position
		FROM lessons
		WHERE slug = ?
		LIMIT 1
	`

	var lesson models.Lesson
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&lesson.ID,
		&lesson.Slug,
		&lesson.TermID,
		&lesson.Title,
		&lesson.Description,
		&lesson.Position,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by slug: %w", err)
	}

	return &lesson, nil
}

// GetByTermIDs retrieves all lessons belonging to the given terms,
// sorted by position within each term. Callers flatten the result into
// course order using the terms' own ordering.
func (r *lessonRepository) GetByTermIDs(ctx context.Context, termIDs []int) ([]models.Lesson, error) {
	if len(termIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(termIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`
		SELECT id, slug, term_id, title, description, position
		FROM lessons
		WHERE term_id IN (%s)
		ORDER BY term_id, position
	`, placeholders)

	args := make([]any, len(termIDs))
	for i, id := range termIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.Slug,
			&lesson.TermID,
			&lesson.Title,
			&lesson.Description,
			&lesson.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}
