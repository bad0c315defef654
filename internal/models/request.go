package models

import (
	"time"

	"promolink/internal/domain"

	"gorm.io/gorm"
)

// Request is one negotiation thread between a promoter and a business.
// At most one request per (promoter, business) pair may be in an active
// state (pending or negotiating) at any time.
type Request struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	PromoterID     uint           `gorm:"not null;index:idx_requests_pair" json:"promoter_id"`
	BusinessID     uint           `gorm:"not null;index:idx_requests_pair" json:"business_id"`
	State          string         `gorm:"size:20;not null;index" json:"state"` // pending, negotiating, accepted, rejected
	InitialMessage string         `gorm:"type:text;not null" json:"initial_message"`
	AcceptedAt     *time.Time     `json:"accepted_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Promoter PromoterProfile `gorm:"foreignKey:PromoterID" json:"-"`
	Business BusinessProfile `gorm:"foreignKey:BusinessID" json:"-"`
	Messages []Message       `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Request) TableName() string {
	return "requests"
}

func (r *Request) IsAccepted() bool { return r.State == domain.RequestStateAccepted }
func (r *Request) IsTerminal() bool { return domain.IsTerminalState(r.State) }

// Message is one entry in a request's conversation. Immutable once
// created; removed only by cascade when its request is deleted.
type Message struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	RequestID  uint           `gorm:"not null;index" json:"request_id"`
	SenderRole string         `gorm:"size:20;not null" json:"sender_role"` // promoter | business
	SenderID   uint           `gorm:"not null;index" json:"sender_id"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	Kind       string         `gorm:"size:30;not null;default:'plain'" json:"kind"` // plain, counter_offer, acceptance, rejection
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Request Request `gorm:"foreignKey:RequestID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}
