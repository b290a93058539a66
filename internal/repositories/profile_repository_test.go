package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupProfileTestRepository creates a profile repository with a mock database
func setupProfileTestRepository(t *testing.T) (*profileRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewProfileRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewProfileRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewProfileRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestProfileRepository_Resolve(t *testing.T) {
	const authID = "a9b8c7d6-0000-0000-0000-000000000001"

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
		expectedID    string
	}{
		{
			name: "found by primary key",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id"}).AddRow(authID)
				mock.ExpectQuery(`SELECT id FROM profiles WHERE id = \?`).
					WithArgs(authID).
					WillReturnRows(rows)
			},
			expectedID: authID,
		},
		{
			name: "found by owner column",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM profiles WHERE id = \?`).
					WithArgs(authID).
					WillReturnError(sql.ErrNoRows)
				rows := sqlmock.NewRows([]string{"id"}).AddRow("profile-legacy")
				mock.ExpectQuery(`SELECT id FROM profiles WHERE owner_id = \?`).
					WithArgs(authID).
					WillReturnRows(rows)
			},
			expectedID: "profile-legacy",
		},
		{
			name: "provisioned when missing",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM profiles WHERE id = \?`).
					WithArgs(authID).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`SELECT id FROM profiles WHERE owner_id = \?`).
					WithArgs(authID).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectExec(`INSERT INTO profiles.*ON DUPLICATE KEY UPDATE`).
					WithArgs(authID, authID).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedID: authID,
		},
		{
			name: "concurrent provisioning tolerated",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM profiles WHERE id = \?`).
					WithArgs(authID).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`SELECT id FROM profiles WHERE owner_id = \?`).
					WithArgs(authID).
					WillReturnError(sql.ErrNoRows)
				// Another request created the row first; the duplicate-key
				// update makes this exec succeed anyway
				mock.ExpectExec(`INSERT INTO profiles.*ON DUPLICATE KEY UPDATE`).
					WithArgs(authID, authID).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
			expectedID: authID,
		},
		{
			name: "primary lookup error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM profiles WHERE id = \?`).
					WithArgs(authID).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to look up profile by id",
		},
		{
			name: "insert error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM profiles WHERE id = \?`).
					WithArgs(authID).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`SELECT id FROM profiles WHERE owner_id = \?`).
					WithArgs(authID).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectExec(`INSERT INTO profiles`).
					WithArgs(authID, authID).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to create profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProfileTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.Resolve(context.Background(), authID)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Empty(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, result)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
