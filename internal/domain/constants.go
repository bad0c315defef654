package domain

const (
	RolePromoter = "PROMOTER"
	RoleBusiness = "BUSINESS"
)

const (
	RequestStatePending     = "pending"
	RequestStateNegotiating = "negotiating"
	RequestStateAccepted    = "accepted"
	RequestStateRejected    = "rejected"
)

const (
	SenderPromoter = "promoter"
	SenderBusiness = "business"
)

const (
	MessageKindPlain        = "plain"
	MessageKindCounterOffer = "counter_offer"
	MessageKindAcceptance   = "acceptance"
	MessageKindRejection    = "rejection"
)

const (
	PerkTypePriorityListing = "priority_listing"
	PerkTypeFeaturedProfile = "featured_profile"
	PerkTypeBoostVisibility = "boost_visibility"
	PerkTypePremiumBadge    = "premium_badge"
)

const (
	TxTypePurchase = "purchase"
	TxTypeSpend    = "spend"
	TxTypeRefund   = "refund"
	TxTypeBonus    = "bonus"
)

const (
	PlanBasic   = "basic"
	PlanPro     = "pro"
	PlanPremium = "premium"
)

const (
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

// Contact fields are replaced with these literals until a request is
// accepted, so clients can tell "hidden" apart from "absent".
const (
	RedactedEmail = "***@***.***"
	RedactedLink  = "Available after acceptance"
)

// PlaceholderRating stands in for the average rating until a rating
// subsystem exists. The scorer takes it as an input.
const PlaceholderRating = 4.0

// IsTerminalState reports whether a request can no longer change state.
func IsTerminalState(state string) bool {
	return state == RequestStateAccepted || state == RequestStateRejected
}

// IsActiveState reports whether a request counts toward the one-active-
// request-per-pair invariant.
func IsActiveState(state string) bool {
	return state == RequestStatePending || state == RequestStateNegotiating
}

func ValidMessageKind(kind string) bool {
	switch kind {
	case MessageKindPlain, MessageKindCounterOffer, MessageKindAcceptance, MessageKindRejection:
		return true
	}
	return false
}

func ValidPerkType(t string) bool {
	switch t {
	case PerkTypePriorityListing, PerkTypeFeaturedProfile, PerkTypeBoostVisibility, PerkTypePremiumBadge:
		return true
	}
	return false
}

func ValidPlan(p string) bool {
	switch p {
	case PlanBasic, PlanPro, PlanPremium:
		return true
	}
	return false
}
