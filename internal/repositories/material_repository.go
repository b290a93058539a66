package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/courseloop/backend/internal/models"
)

type materialRepository struct {
	db *sql.DB
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db *sql.DB) *materialRepository {
	return &materialRepository{
		db: db,
	}
}

// GetByLessonID retrieves all materials for a lesson. The metadata
// column may hold a JSON blob, an empty string, or garbage depending on
// how the material was authored; parse failures yield empty metadata.
func (r *materialRepository) GetByLessonID(ctx context.Context, lessonID int) ([]models.Material, error) {
	query := `
		SELECT id, lesson_id, type, url, content, metadata
		FROM lesson_materials
		WHERE lesson_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	var materials []models.Material
	for rows.Next() {
		var material models.Material
		var rawURL, content, metadata sql.NullString
		err := rows.Scan(
			&material.ID,
			&material.LessonID,
			&material.Type,
			&rawURL,
			&content,
			&metadata,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		material.RawURL = rawURL.String
		material.Content = content.String
		material.Metadata = models.ParseMaterialMetadata(metadata.String)
		materials = append(materials, material)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return materials, nil
}
