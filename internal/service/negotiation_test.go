package service

import (
	"testing"
	"time"

	"promolink/internal/domain"
	"promolink/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNextState(t *testing.T) {
	tests := []struct {
		name    string
		current string
		kind    string
		want    string
	}{
		{"plain reply opens negotiation", domain.RequestStatePending, domain.MessageKindPlain, domain.RequestStateNegotiating},
		{"counter offer opens negotiation", domain.RequestStatePending, domain.MessageKindCounterOffer, domain.RequestStateNegotiating},
		{"counter offer keeps negotiating", domain.RequestStateNegotiating, domain.MessageKindCounterOffer, domain.RequestStateNegotiating},
		{"acceptance resolves", domain.RequestStateNegotiating, domain.MessageKindAcceptance, domain.RequestStateAccepted},
		{"rejection resolves", domain.RequestStateNegotiating, domain.MessageKindRejection, domain.RequestStateRejected},
		{"acceptance straight from pending", domain.RequestStatePending, domain.MessageKindAcceptance, domain.RequestStateAccepted},
		{"plain message keeps negotiating", domain.RequestStateNegotiating, domain.MessageKindPlain, domain.RequestStateNegotiating},
		{"accepted is terminal", domain.RequestStateAccepted, domain.MessageKindRejection, domain.RequestStateAccepted},
		{"rejected is terminal", domain.RequestStateRejected, domain.MessageKindAcceptance, domain.RequestStateRejected},
		{"terminal ignores counter offer", domain.RequestStateRejected, domain.MessageKindCounterOffer, domain.RequestStateRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextState(tt.current, tt.kind))
		})
	}
}

func sampleRequest(state string) *models.Request {
	instagram := "https://instagram.com/creator"
	req := &models.Request{
		ID:             1,
		PromoterID:     10,
		BusinessID:     20,
		State:          state,
		InitialMessage: "Let's work together",
		Promoter: models.PromoterProfile{
			ID:            10,
			Industry:      "fitness",
			InstagramLink: &instagram,
			User:          models.User{Email: "creator@example.com"},
		},
		Business: models.BusinessProfile{
			ID:           20,
			BusinessName: "Acme Gym",
			ActivityType: "fitness",
			Location:     "Paris",
			User:         models.User{Email: "owner@acme.example"},
		},
	}
	if state == domain.RequestStateAccepted {
		now := time.Now()
		req.AcceptedAt = &now
	}
	return req
}

func TestBuildRequestView_RedactsBeforeAcceptance(t *testing.T) {
	view := BuildRequestView(sampleRequest(domain.RequestStatePending))

	assert.Equal(t, domain.RedactedEmail, view.Promoter.Email)
	assert.Equal(t, domain.RedactedEmail, view.Business.Email)
	if assert.NotNil(t, view.Promoter.InstagramLink) {
		assert.Equal(t, domain.RedactedLink, *view.Promoter.InstagramLink)
	}
	// Absent links stay nil so clients can tell hidden from missing.
	assert.Nil(t, view.Promoter.TikTokLink)
	assert.Nil(t, view.Promoter.LinkedInLink)
	assert.Equal(t, "fitness", view.Promoter.Industry)
}

// Redaction depends on state alone: both sides get the same payload,
// including the owner of the hidden fields.
func TestBuildRequestView_RedactionIsStateOnly(t *testing.T) {
	view := BuildRequestView(sampleRequest(domain.RequestStateNegotiating))

	assert.Equal(t, domain.RedactedEmail, view.Promoter.Email)
	assert.Equal(t, domain.RedactedEmail, view.Business.Email)
	if assert.NotNil(t, view.Promoter.InstagramLink) {
		assert.Equal(t, domain.RedactedLink, *view.Promoter.InstagramLink)
	}
}

func TestBuildRequestView_RevealsAfterAcceptance(t *testing.T) {
	view := BuildRequestView(sampleRequest(domain.RequestStateAccepted))

	assert.Equal(t, "creator@example.com", view.Promoter.Email)
	assert.Equal(t, "owner@acme.example", view.Business.Email)
	if assert.NotNil(t, view.Promoter.InstagramLink) {
		assert.Equal(t, "https://instagram.com/creator", *view.Promoter.InstagramLink)
	}
	assert.Nil(t, view.Promoter.TikTokLink)
}

func TestBuildRequestView_RejectionNeverReveals(t *testing.T) {
	view := BuildRequestView(sampleRequest(domain.RequestStateRejected))

	assert.Equal(t, domain.RedactedEmail, view.Promoter.Email)
	assert.Equal(t, domain.RedactedEmail, view.Business.Email)
}
