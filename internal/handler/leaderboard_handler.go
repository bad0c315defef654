package handler

import (
	"net/http"
	"time"

	"promolink/internal/middleware"
	"promolink/internal/service"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	svc *service.LeaderboardService
}

func NewLeaderboardHandler(svc *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

// period reads month/year query params, defaulting to the current month.
func period(c *gin.Context) (int, int) {
	now := time.Now()
	month := queryInt(c, "month", int(now.Month()))
	year := queryInt(c, "year", now.Year())
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	return month, year
}

func (h *LeaderboardHandler) Current(c *gin.Context) {
	month, year := period(c)
	rows, err := h.svc.Current(month, year, queryInt(c, "limit", 50))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"month":       month,
		"year":        year,
		"leaderboard": rows,
	})
}

func (h *LeaderboardHandler) History(c *gin.Context) {
	entries, err := h.svc.History(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (h *LeaderboardHandler) MyPosition(c *gin.Context) {
	month, year := period(c)
	pos, err := h.svc.MyPosition(middleware.GetUserID(c), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pos)
}

// UpdateAll triggers a full recompute of the period; normally the
// scheduler's job, exposed for operations.
func (h *LeaderboardHandler) UpdateAll(c *gin.Context) {
	month, year := period(c)
	n, err := h.svc.RecomputeAll(month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n, "month": month, "year": year})
}
