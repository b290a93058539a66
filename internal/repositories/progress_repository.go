package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/courseloop/backend/internal/models"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// GetByUserAndLessons retrieves progress records for a user restricted
// to the given lesson set
func (r *progressRepository) GetByUserAndLessons(ctx context.Context, userID string, lessonIDs []int) ([]models.ProgressRecord, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(lessonIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`
		SELECT id, user_id, lesson_id, completed_at, xp_earned, time_spent, score
		FROM lesson_progress
		WHERE user_id = ? AND lesson_id IN (%s)
	`, placeholders)

	args := make([]any, 0, len(lessonIDs)+1)
	args = append(args, userID)
	for _, id := range lessonIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress records: %w", err)
	}
	defer rows.Close()

	var records []models.ProgressRecord
	for rows.Next() {
		var record models.ProgressRecord
		var completedAt sql.NullTime
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.LessonID,
			&completedAt,
			&record.XPEarned,
			&record.TimeSpent,
			&record.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress record: %w", err)
		}
		if completedAt.Valid {
			t := completedAt.Time
			record.CompletedAt = &t
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// Upsert inserts or overwrites the progress record keyed on
// (user_id, lesson_id). Repeated completion overwrites rather than
// accumulates; XP is never double-counted.
func (r *progressRepository) Upsert(ctx context.Context, record *models.ProgressRecord) error {
	query := `
		INSERT INTO lesson_progress (user_id, lesson_id, completed_at, xp_earned, time_spent, score)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			completed_at = VALUES(completed_at),
			xp_earned = VALUES(xp_earned),
			time_spent = VALUES(time_spent),
			score = VALUES(score)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.UserID,
		record.LessonID,
		record.CompletedAt,
		record.XPEarned,
		record.TimeSpent,
		record.Score,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress record: %w", err)
	}

	return nil
}
