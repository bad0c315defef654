package handler

import (
	"net/http"
	"strings"

	"promolink/internal/middleware"
	"promolink/internal/service"

	"github.com/gin-gonic/gin"
)

// Insight screenshots are capped well below typical analytics export
// sizes.
const maxUploadBytes = 10 << 20

type UploadHandler struct {
	svc *service.ProfileService
}

func NewUploadHandler(svc *service.ProfileService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// UploadInsight accepts a multipart image for one of the promoter's
// screenshot slots (form fields: slot, file).
func (h *UploadHandler) UploadInsight(c *gin.Context) {
	slot := c.PostForm("slot")
	if slot == "" {
		slot = string(service.SlotInsight)
	}
	if !service.ValidInsightSlot(slot) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown slot"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only images are accepted"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer file.Close()

	p, err := h.svc.UploadInsight(c.Request.Context(), middleware.GetUserID(c), service.InsightSlot(slot), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
