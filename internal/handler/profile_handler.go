package handler

import (
	"net/http"
	"strconv"

	"promolink/internal/middleware"
	"promolink/internal/repository"
	"promolink/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) GetPromoterProfile(c *gin.Context) {
	p, err := h.svc.GetPromoter(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) UpdatePromoterProfile(c *gin.Context) {
	var req service.PromoterUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.UpdatePromoter(middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) GetBusinessProfile(c *gin.Context) {
	b, err := h.svc.GetBusiness(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *ProfileHandler) UpdateBusinessProfile(c *gin.Context) {
	var req service.BusinessUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.svc.UpdateBusiness(middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// BrowsePromoters lists promoter profiles for the business side, with
// contact fields redacted.
func (h *ProfileHandler) BrowsePromoters(c *gin.Context) {
	filter := repository.PromoterFilter{
		Industry:     c.Query("industry"),
		HasInstagram: c.Query("has_instagram") == "true",
		HasTikTok:    c.Query("has_tiktok") == "true",
		HasLinkedIn:  c.Query("has_linkedin") == "true",
		Page:         queryInt(c, "page", 1),
		PerPage:      queryInt(c, "per_page", 20),
	}
	cards, total, err := h.svc.BrowsePromoters(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"promoters": cards,
		"total":     total,
		"page":      filter.Page,
		"per_page":  filter.PerPage,
	})
}

// BrowseBusinesses lists business profiles for the promoter side,
// perk-boosted profiles first.
func (h *ProfileHandler) BrowseBusinesses(c *gin.Context) {
	filter := repository.BusinessFilter{
		ActivityType: c.Query("activity_type"),
		Location:     c.Query("location"),
		Name:         c.Query("name"),
		Page:         queryInt(c, "page", 1),
		PerPage:      queryInt(c, "per_page", 20),
	}
	if v := c.Query("max_min_views"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MaxMinViews = &n
		}
	}
	cards, total, err := h.svc.BrowseBusinesses(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"businesses": cards,
		"total":      total,
		"page":       filter.Page,
		"per_page":   filter.PerPage,
	})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
