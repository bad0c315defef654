package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"johndoe@mail.com", "j*****e@mail.com"},
		{"abc@mail.com", "a*c@mail.com"},
		{"ab@mail.com", "*@mail.com"},
		{"a@mail.com", "*@mail.com"},
		{"no-at-sign", "no-at-sign"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskEmail(tt.in), "input %q", tt.in)
	}
}

func TestMonthWindow(t *testing.T) {
	from, to := MonthWindow(1, 2026)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local), from)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local), to)

	// A request sent on the last second of the month is inside the window.
	lastSecond := time.Date(2026, 1, 31, 23, 59, 59, 0, time.Local)
	assert.True(t, lastSecond.After(from) && lastSecond.Before(to))
}

func TestMonthWindow_DecemberRollsOver(t *testing.T) {
	from, to := MonthWindow(12, 2025)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.Local), from)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local), to)
}
