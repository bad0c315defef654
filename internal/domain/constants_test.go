package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatePredicates(t *testing.T) {
	assert.True(t, IsActiveState(RequestStatePending))
	assert.True(t, IsActiveState(RequestStateNegotiating))
	assert.False(t, IsActiveState(RequestStateAccepted))
	assert.False(t, IsActiveState(RequestStateRejected))

	assert.True(t, IsTerminalState(RequestStateAccepted))
	assert.True(t, IsTerminalState(RequestStateRejected))
	assert.False(t, IsTerminalState(RequestStatePending))
	assert.False(t, IsTerminalState("garbage"))
}

func TestValidMessageKind(t *testing.T) {
	for _, kind := range []string{MessageKindPlain, MessageKindCounterOffer, MessageKindAcceptance, MessageKindRejection} {
		assert.True(t, ValidMessageKind(kind))
	}
	assert.False(t, ValidMessageKind(""))
	assert.False(t, ValidMessageKind("offer"))
}

func TestValidPerkType(t *testing.T) {
	assert.True(t, ValidPerkType(PerkTypePriorityListing))
	assert.False(t, ValidPerkType("mystery_perk"))
}

func TestValidPlan(t *testing.T) {
	assert.True(t, ValidPlan(PlanBasic))
	assert.True(t, ValidPlan(PlanPro))
	assert.True(t, ValidPlan(PlanPremium))
	assert.False(t, ValidPlan("enterprise"))
}
