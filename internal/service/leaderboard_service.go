package service

import (
	"strings"
	"time"

	"promolink/internal/domain"
	"promolink/internal/logging"
	"promolink/internal/models"
	"promolink/internal/repository"

	"gorm.io/gorm"
)

type LeaderboardService struct {
	db          *gorm.DB
	leaderboard *repository.LeaderboardRepository
	requests    *repository.RequestRepository
	promoters   *repository.PromoterRepository
}

func NewLeaderboardService(db *gorm.DB, leaderboard *repository.LeaderboardRepository,
	requests *repository.RequestRepository, promoters *repository.PromoterRepository) *LeaderboardService {
	return &LeaderboardService{db: db, leaderboard: leaderboard, requests: requests, promoters: promoters}
}

// MonthWindow returns the half-open interval [1st of month, 1st of next
// month) in the local zone, so every instant of the last day counts.
func MonthWindow(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return from, from.AddDate(0, 1, 0)
}

// RecomputePromoter rebuilds one promoter's entry for the period from
// request history and returns it.
func (s *LeaderboardService) RecomputePromoter(promoterID uint, month, year int) (*models.LeaderboardEntry, error) {
	from, to := MonthWindow(month, year)

	sent, err := s.requests.CountSentInWindow(promoterID, from, to)
	if err != nil {
		return nil, err
	}
	accepted, err := s.requests.CountAcceptedInWindow(promoterID, from, to)
	if err != nil {
		return nil, err
	}
	activeDays, err := s.requests.CountActiveDays(promoterID, from, to)
	if err != nil {
		return nil, err
	}

	entry, err := s.leaderboard.EnsureEntry(promoterID, month, year)
	if err != nil {
		return nil, err
	}
	entry.RequestsSent = int(sent)
	entry.RequestsAccepted = int(accepted)
	// Accepted requests are the collaborations until a completion
	// signal exists.
	entry.CollaborationsCompleted = int(accepted)
	entry.AverageRating = domain.PlaceholderRating
	entry.ActiveDays = int(activeDays)
	entry.ComputeScore()

	if err := s.leaderboard.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecomputeAll rebuilds the period's entries for every promoter active
// in the window, then assigns ranks. Returns the number of promoters
// scored.
func (s *LeaderboardService) RecomputeAll(month, year int) (int, error) {
	from, to := MonthWindow(month, year)
	ids, err := s.requests.ActivePromoterIDsInWindow(from, to)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		if _, err := s.RecomputePromoter(id, month, year); err != nil {
			return 0, err
		}
	}

	entries, err := s.leaderboard.ListByPeriod(month, year, 0)
	if err != nil {
		return 0, err
	}
	for i := range entries {
		if err := s.leaderboard.UpdateRank(entries[i].ID, i+1); err != nil {
			return 0, err
		}
	}

	logging.Logger.WithField("month", month).WithField("year", year).
		WithField("promoters", len(ids)).Info("leaderboard recomputed")
	return len(ids), nil
}

// LeaderboardRow is one public leaderboard entry; the promoter's email
// is masked.
type LeaderboardRow struct {
	Rank                    int     `json:"rank"`
	PromoterID              uint    `json:"promoter_id"`
	MaskedEmail             string  `json:"email"`
	Industry                string  `json:"industry"`
	RequestsSent            int     `json:"requests_sent"`
	RequestsAccepted        int     `json:"requests_accepted"`
	CollaborationsCompleted int     `json:"collaborations_completed"`
	AverageRating           float64 `json:"average_rating"`
	ActiveDays              int     `json:"active_days"`
	TotalScore              float64 `json:"total_score"`
}

// Current returns the leaderboard for the period ordered by rank.
func (s *LeaderboardService) Current(month, year, limit int) ([]LeaderboardRow, error) {
	entries, err := s.leaderboard.ListByPeriod(month, year, limit)
	if err != nil {
		return nil, err
	}
	rows := make([]LeaderboardRow, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		rank := e.Rank
		if rank == 0 {
			rank = i + 1
		}
		rows = append(rows, LeaderboardRow{
			Rank:                    rank,
			PromoterID:              e.PromoterID,
			MaskedEmail:             MaskEmail(e.Promoter.User.Email),
			Industry:                e.Promoter.Industry,
			RequestsSent:            e.RequestsSent,
			RequestsAccepted:        e.RequestsAccepted,
			CollaborationsCompleted: e.CollaborationsCompleted,
			AverageRating:           e.AverageRating,
			ActiveDays:              e.ActiveDays,
			TotalScore:              e.TotalScore,
		})
	}
	return rows, nil
}

// History returns the promoter's entries across all periods.
func (s *LeaderboardService) History(promoterUserID uint) ([]models.LeaderboardEntry, error) {
	promoter, err := s.promoters.GetByUserID(promoterUserID)
	if err != nil {
		return nil, err
	}
	return s.leaderboard.ListHistory(promoter.ID)
}

// Position is a promoter's own standing in a period.
type Position struct {
	Rank       int     `json:"rank"`
	TotalScore float64 `json:"total_score"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
}

// MyPosition recomputes the promoter's entry and returns its standing:
// one plus the number of strictly higher scores in the period.
func (s *LeaderboardService) MyPosition(promoterUserID uint, month, year int) (*Position, error) {
	promoter, err := s.promoters.GetByUserID(promoterUserID)
	if err != nil {
		return nil, err
	}
	entry, err := s.RecomputePromoter(promoter.ID, month, year)
	if err != nil {
		return nil, err
	}
	higher, err := s.leaderboard.CountHigherScores(month, year, entry.TotalScore)
	if err != nil {
		return nil, err
	}
	return &Position{
		Rank:       int(higher) + 1,
		TotalScore: entry.TotalScore,
		Month:      month,
		Year:       year,
	}, nil
}

// MaskEmail hides the local part except its first and last character:
// "johndoe@mail.com" becomes "j*****e@mail.com". Short local parts
// collapse to a single asterisk.
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}
	local, rest := email[:at], email[at:]
	if len(local) <= 2 {
		return "*" + rest
	}
	return string(local[0]) + strings.Repeat("*", len(local)-2) + string(local[len(local)-1]) + rest
}
