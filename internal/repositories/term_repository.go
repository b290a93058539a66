package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/courseloop/backend/internal/models"
)

// termTableCandidate names a table/column pair that may hold term rows.
// Older deployments renamed the terms table twice; candidates are tried
// in preference order and only the last failure is surfaced.
type termTableCandidate struct {
	table     string
	courseKey string
}

var termTableCandidates = []termTableCandidate{
	{table: "terms", courseKey: "course_id"},
	{table: "sections", courseKey: "course_id"},
	{table: "course_sections", courseKey: "course_id"},
}

type termRepository struct {
	db *sql.DB
}

// NewTermRepository creates a new term repository
func NewTermRepository(db *sql.DB) *termRepository {
	return &termRepository{
		db: db,
	}
}

// GetByCourseID retrieves all terms for a course, sorted by position.
// An empty result from the first reachable table is a valid answer,
// not a reason to try the next candidate.
func (r *termRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Term, error) {
	var lastErr error
	for _, c := range termTableCandidates {
		query := fmt.Sprintf(`
			SELECT id, %s, name, position
			FROM %s
			WHERE %s = ?
			ORDER BY position
		`, c.courseKey, c.table, c.courseKey)

		rows, err := r.db.QueryContext(ctx, query, courseID)
		if err != nil {
			lastErr = err
			continue
		}

		terms, err := scanTerms(rows)
		if err != nil {
			return nil, err
		}
		return terms, nil
	}

	return nil, fmt.Errorf("failed to query terms from any candidate table: %w", lastErr)
}

// GetByID retrieves a term by its ID, using the same table fallback
func (r *termRepository) GetByID(ctx context.Context, id int) (*models.Term, error) {
	var lastErr error
	for _, c := range termTableCandidates {
		query := fmt.Sprintf(`
			SELECT id, %s, name, position
			FROM %s
			WHERE id = ?
			LIMIT 1
		`, c.courseKey, c.table)

		var term models.Term
		err := r.db.QueryRowContext(ctx, query, id).Scan(
			&term.ID,
			&term.CourseID,
			&term.Name,
			&term.Position,
		)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("term not found")
		}
		if err != nil {
			lastErr = err
			continue
		}
		return &term, nil
	}

	return nil, fmt.Errorf("failed to query term from any candidate table: %w", lastErr)
}

func scanTerms(rows *sql.Rows) ([]models.Term, error) {
	defer rows.Close()

	var terms []models.Term
	for rows.Next() {
		var term models.Term
		err := rows.Scan(
			&term.ID,
			&term.CourseID,
			&term.Name,
			&term.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan term: %w", err)
		}
		terms = append(terms, term)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return terms, nil
}
