package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// LeaderboardEntry is one promoter's scoring record for one calendar
// month. TotalScore and Rank are derived; everything else is recomputed
// from request history by the leaderboard service.
type LeaderboardEntry struct {
	ID                      uint           `gorm:"primaryKey" json:"id"`
	PromoterID              uint           `gorm:"not null;uniqueIndex:idx_leaderboard_period" json:"promoter_id"`
	Month                   int            `gorm:"not null;uniqueIndex:idx_leaderboard_period" json:"month"` // 1-12
	Year                    int            `gorm:"not null;uniqueIndex:idx_leaderboard_period" json:"year"`
	RequestsSent            int            `gorm:"default:0" json:"requests_sent"`
	RequestsAccepted        int            `gorm:"default:0" json:"requests_accepted"`
	CollaborationsCompleted int            `gorm:"default:0" json:"collaborations_completed"`
	AverageRating           float64        `gorm:"default:0" json:"average_rating"` // 0-5
	ActiveDays              int            `gorm:"default:0" json:"active_days"`
	TotalScore              float64        `gorm:"default:0;index" json:"total_score"`
	Rank                    int            `gorm:"default:0" json:"rank"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`

	Promoter PromoterProfile `gorm:"foreignKey:PromoterID" json:"-"`
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}

// ComputeScore recalculates TotalScore from the entry's metrics:
//
//	collaborations*100 + acceptance_rate*50 + rating*20 + active_days*2
//
// rounded to 2 decimal places. Acceptance rate is 0 when nothing was sent.
func (e *LeaderboardEntry) ComputeScore() float64 {
	acceptanceRate := 0.0
	if e.RequestsSent > 0 {
		acceptanceRate = float64(e.RequestsAccepted) / float64(e.RequestsSent)
	}
	score := float64(e.CollaborationsCompleted)*100 +
		acceptanceRate*50 +
		e.AverageRating*20 +
		float64(e.ActiveDays)*2
	e.TotalScore = math.Round(score*100) / 100
	return e.TotalScore
}
