package handler

import (
	"net/http"
	"strconv"

	"promolink/internal/middleware"
	"promolink/internal/service"
	"promolink/internal/ws"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	svc *service.NegotiationService
	hub *ws.Hub
}

func NewRequestHandler(svc *service.NegotiationService, hub *ws.Hub) *RequestHandler {
	return &RequestHandler{svc: svc, hub: hub}
}

type CreateRequestRequest struct {
	BusinessID     uint   `json:"business_id" binding:"required"`
	InitialMessage string `json:"initial_message" binding:"required"`
}

type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
	Kind string `json:"kind"`
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.svc.CreateRequest(middleware.GetUserID(c), req.BusinessID, req.InitialMessage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RequestHandler) List(c *gin.Context) {
	views, err := h.svc.ListForUser(middleware.GetUserID(c), middleware.GetRole(c), c.Query("state"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": views})
}

// Dashboard returns the business's per-state request counts.
func (h *RequestHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.BusinessDashboard(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *RequestHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.svc.GetRequest(middleware.GetUserID(c), middleware.GetRole(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *RequestHandler) Messages(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	msgs, err := h.svc.GetRequestMessages(middleware.GetUserID(c), middleware.GetRole(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (h *RequestHandler) SendMessage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg, updated, err := h.svc.SendMessage(middleware.GetUserID(c), middleware.GetRole(c), id, req.Body, req.Kind)
	if err != nil {
		respondError(c, err)
		return
	}
	h.hub.NotifyRoom(id, gin.H{"type": "message", "message": msg, "state": updated.State})
	c.JSON(http.StatusCreated, gin.H{"message": msg, "state": updated.State})
}

func (h *RequestHandler) Accept(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	updated, err := h.svc.Accept(middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.hub.NotifyRoom(id, gin.H{"type": "state", "state": updated.State})
	c.JSON(http.StatusOK, updated)
}

func (h *RequestHandler) Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	updated, err := h.svc.Reject(middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.hub.NotifyRoom(id, gin.H{"type": "state", "state": updated.State})
	c.JSON(http.StatusOK, updated)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
