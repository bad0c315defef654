package service

import (
	"testing"

	"promolink/internal/repository"
	"promolink/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func expectRecompute(mock sqlmock.Sqlmock, promoterID uint, month, year int, sent, accepted, days int64) {
	from, to := MonthWindow(month, year)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `requests`").
		WithArgs(promoterID, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(sent))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `requests`").
		WithArgs(promoterID, "accepted", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(accepted))
	mock.ExpectQuery("SELECT COUNT\\(DISTINCT DATE\\(created_at\\)\\) FROM `requests`").
		WithArgs(promoterID, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(days))

	mock.ExpectQuery("SELECT \\* FROM `leaderboard_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "promoter_id", "month", "year"}).
			AddRow(1, promoterID, month, year))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `leaderboard_entries` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

// Recomputing over unchanged request history must land on the same
// score every time; the entry is rebuilt from counts, never incremented.
func TestRecomputePromoter_Idempotent(t *testing.T) {
	db, mock, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	svc := NewLeaderboardService(db,
		repository.NewLeaderboardRepository(db),
		repository.NewRequestRepository(db),
		repository.NewPromoterRepository(db))

	expectRecompute(mock, 10, 8, 2026, 10, 4, 5)
	first, err := svc.RecomputePromoter(10, 8, 2026)
	assert.NoError(t, err)

	expectRecompute(mock, 10, 8, 2026, 10, 4, 5)
	second, err := svc.RecomputePromoter(10, 8, 2026)
	assert.NoError(t, err)

	// 4*100 + (4/10)*50 + 4.0*20 + 5*2
	assert.Equal(t, 510.0, first.TotalScore)
	assert.Equal(t, first.TotalScore, second.TotalScore)
	assert.Equal(t, first.RequestsSent, second.RequestsSent)
	assert.Equal(t, first.CollaborationsCompleted, second.CollaborationsCompleted)
	assert.Equal(t, first.ActiveDays, second.ActiveDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}
