package repository

import (
	"testing"
	"time"

	"promolink/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestHasActiveForPair(t *testing.T) {
	db, mock, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	repo := NewRequestRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `requests`").
		WithArgs(uint(10), uint(20), "pending", "negotiating").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	active, err := repo.HasActiveForPair(10, 20)
	assert.NoError(t, err)
	assert.True(t, active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasActiveForPair_NoneActive(t *testing.T) {
	db, mock, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	repo := NewRequestRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `requests`").
		WithArgs(uint(10), uint(20), "pending", "negotiating").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	active, err := repo.HasActiveForPair(10, 20)
	assert.NoError(t, err)
	assert.False(t, active)
}

func TestCountSentInWindow(t *testing.T) {
	db, mock, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `requests`").
		WithArgs(uint(10), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountSentInWindow(10, from, to)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestCountActiveDays(t *testing.T) {
	db, mock, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery("SELECT COUNT\\(DISTINCT DATE\\(created_at\\)\\) FROM `requests`").
		WithArgs(uint(10), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	n, err := repo.CountActiveDays(10, from, to)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), n)
}
