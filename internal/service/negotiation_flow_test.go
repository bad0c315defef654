package service

import (
	"errors"
	"testing"

	"promolink/internal/domain"
	"promolink/internal/repository"
	"promolink/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// expectPromoterByUserID mocks the profile lookup plus its User preload.
func expectPromoterByUserID(mock sqlmock.Sqlmock, profileID, userID uint) {
	mock.ExpectQuery("SELECT \\* FROM `promoter_profiles` WHERE user_id = ?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "industry"}).
			AddRow(profileID, userID, "fitness"))
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).
			AddRow(userID, "creator@example.com", domain.RolePromoter))
}

func TestCreateRequest_DuplicateActivePairConflicts(t *testing.T) {
	db, mock, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	svc := NewNegotiationService(db,
		repository.NewRequestRepository(db),
		repository.NewPromoterRepository(db),
		repository.NewBusinessRepository(db))

	expectPromoterByUserID(mock, 10, 5)
	mock.ExpectQuery("SELECT \\* FROM `business_profiles`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "business_name"}).
			AddRow(20, 6, "Acme Gym"))
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).
			AddRow(6, "owner@acme.example", domain.RoleBusiness))

	// One pending or negotiating request already exists for the pair,
	// so the transaction rolls back without inserting anything.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `requests`").
		WithArgs(uint(10), uint(20), "pending", "negotiating").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.CreateRequest(5, 20, "Let's work together")
	assert.True(t, errors.Is(err, domain.ErrConflict), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Messages keep flowing after a request resolves; the state stays put.
func TestSendMessage_TerminalRequestStillAppends(t *testing.T) {
	db, mock, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	svc := NewNegotiationService(db,
		repository.NewRequestRepository(db),
		repository.NewPromoterRepository(db),
		repository.NewBusinessRepository(db))

	mock.ExpectQuery("SELECT \\* FROM `requests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "promoter_id", "business_id", "state", "initial_message"}).
			AddRow(1, 10, 20, domain.RequestStateAccepted, "Let's work together"))
	// Preloads run alphabetically: Business, Business.User, Promoter, Promoter.User.
	mock.ExpectQuery("SELECT \\* FROM `business_profiles`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "business_name"}).
			AddRow(20, 6, "Acme Gym"))
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).
			AddRow(6, "owner@acme.example", domain.RoleBusiness))
	mock.ExpectQuery("SELECT \\* FROM `promoter_profiles`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "industry"}).
			AddRow(10, 5, "fitness"))
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).
			AddRow(5, "creator@example.com", domain.RolePromoter))

	expectPromoterByUserID(mock, 10, 5)

	// The message is inserted; no request update follows.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `messages`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	msg, req, err := svc.SendMessage(5, domain.RolePromoter, 1, "thanks, see you Monday", domain.MessageKindPlain)
	assert.NoError(t, err)
	assert.Equal(t, domain.RequestStateAccepted, req.State)
	assert.Equal(t, domain.SenderPromoter, msg.SenderRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Either participant can resolve through the message feed; here the
// promoter accepts an offer made by the business.
func TestSendMessage_PromoterAcceptanceResolves(t *testing.T) {
	db, mock, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	svc := NewNegotiationService(db,
		repository.NewRequestRepository(db),
		repository.NewPromoterRepository(db),
		repository.NewBusinessRepository(db))

	mock.ExpectQuery("SELECT \\* FROM `requests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "promoter_id", "business_id", "state", "initial_message"}).
			AddRow(1, 10, 20, domain.RequestStateNegotiating, "Let's work together"))
	mock.ExpectQuery("SELECT \\* FROM `business_profiles`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "business_name"}).
			AddRow(20, 6, "Acme Gym"))
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).
			AddRow(6, "owner@acme.example", domain.RoleBusiness))
	mock.ExpectQuery("SELECT \\* FROM `promoter_profiles`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "industry"}).
			AddRow(10, 5, "fitness"))
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).
			AddRow(5, "creator@example.com", domain.RolePromoter))

	expectPromoterByUserID(mock, 10, 5)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `messages`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `requests` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	msg, req, err := svc.SendMessage(5, domain.RolePromoter, 1, "deal", domain.MessageKindAcceptance)
	assert.NoError(t, err)
	assert.Equal(t, domain.RequestStateAccepted, req.State)
	assert.NotNil(t, req.AcceptedAt)
	assert.Equal(t, domain.MessageKindAcceptance, msg.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
