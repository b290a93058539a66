package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB) *profileRepository {
	return &profileRepository{
		db: db,
	}
}

// Resolve returns the profile ID for an auth identity, provisioning a
// profile row if none exists. Resolution order: primary key, then the
// secondary owner column, then create-if-missing. The create is
// duplicate-tolerant so concurrent first requests for the same user
// cannot fail each other.
func (r *profileRepository) Resolve(ctx context.Context, authID string) (string, error) {
	// Step 1: lookup by primary key
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM profiles WHERE id = ? LIMIT 1`, authID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to look up profile by id: %w", err)
	}

	// Step 2: lookup by owner column
	err = r.db.QueryRowContext(ctx, `SELECT id FROM profiles WHERE owner_id = ? LIMIT 1`, authID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to look up profile by owner: %w", err)
	}

	// Step 3: create if missing
	query := `
		INSERT INTO profiles (id, owner_id)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE owner_id = VALUES(owner_id)
	`
	if _, err := r.db.ExecContext(ctx, query, authID, authID); err != nil {
		return "", fmt.Errorf("failed to create profile: %w", err)
	}

	return authID, nil
}
