package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeScore(t *testing.T) {
	e := LeaderboardEntry{
		RequestsSent:            10,
		RequestsAccepted:        4,
		CollaborationsCompleted: 4,
		AverageRating:           4.0,
		ActiveDays:              5,
	}
	// 4*100 + 0.4*50 + 4.0*20 + 5*2 = 510
	assert.Equal(t, 510.00, e.ComputeScore())
	assert.Equal(t, 510.00, e.TotalScore)
}

func TestComputeScore_NoRequestsSent(t *testing.T) {
	e := LeaderboardEntry{
		RequestsAccepted: 3,
		AverageRating:    5,
	}
	// Acceptance rate is zero when nothing was sent, not a division by zero.
	assert.Equal(t, 100.00, e.ComputeScore())
}

func TestComputeScore_Rounding(t *testing.T) {
	e := LeaderboardEntry{
		RequestsSent:     3,
		RequestsAccepted: 1,
	}
	// 1/3 * 50 = 16.666... rounds to 16.67
	assert.Equal(t, 16.67, e.ComputeScore())
}

func TestComputeScore_Zero(t *testing.T) {
	var e LeaderboardEntry
	assert.Equal(t, 0.0, e.ComputeScore())
}
