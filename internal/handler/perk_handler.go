package handler

import (
	"net/http"

	"promolink/internal/middleware"
	"promolink/internal/service"

	"github.com/gin-gonic/gin"
)

type PerkHandler struct {
	svc *service.PerkService
}

func NewPerkHandler(svc *service.PerkService) *PerkHandler {
	return &PerkHandler{svc: svc}
}

type PurchasePointsRequest struct {
	Points     int    `json:"points" binding:"required"`
	PaymentRef string `json:"payment_ref"`
}

type ActivatePerkRequest struct {
	PerkType string `json:"perk_type" binding:"required"`
}

func (h *PerkHandler) Balance(c *gin.Context) {
	bal, err := h.svc.Balance(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bal)
}

func (h *PerkHandler) Bundles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bundles": service.PointBundles})
}

func (h *PerkHandler) Purchase(c *gin.Context) {
	var req PurchasePointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bal, err := h.svc.Purchase(middleware.GetUserID(c), req.Points, req.PaymentRef)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bal)
}

func (h *PerkHandler) Packages(c *gin.Context) {
	pkgs, err := h.svc.Packages()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": pkgs})
}

func (h *PerkHandler) Activate(c *gin.Context) {
	var req ActivatePerkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	perk, err := h.svc.ActivatePerk(middleware.GetUserID(c), req.PerkType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, perk)
}

func (h *PerkHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	perk, err := h.svc.DeactivatePerk(middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perk)
}

func (h *PerkHandler) Active(c *gin.Context) {
	perks, err := h.svc.ActivePerks(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_perks": perks})
}

func (h *PerkHandler) Transactions(c *gin.Context) {
	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", 20)
	txs, total, err := h.svc.Transactions(middleware.GetUserID(c), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transactions": txs,
		"total":        total,
		"page":         page,
		"per_page":     perPage,
	})
}

func (h *PerkHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
