package service

import (
	"errors"
	"fmt"
	"time"

	"promolink/internal/domain"
	"promolink/internal/logging"
	"promolink/internal/models"
	"promolink/internal/repository"

	"gorm.io/gorm"
)

type NegotiationService struct {
	db        *gorm.DB
	requests  *repository.RequestRepository
	promoters *repository.PromoterRepository
	business  *repository.BusinessRepository
}

func NewNegotiationService(db *gorm.DB, requests *repository.RequestRepository,
	promoters *repository.PromoterRepository, business *repository.BusinessRepository) *NegotiationService {
	return &NegotiationService{db: db, requests: requests, promoters: promoters, business: business}
}

// NextState computes the state a request moves to when a message of the
// given kind arrives. Terminal states never change; any reply to a
// pending request opens negotiation, whichever side sent it.
func NextState(current, kind string) string {
	if domain.IsTerminalState(current) {
		return current
	}
	switch kind {
	case domain.MessageKindAcceptance:
		return domain.RequestStateAccepted
	case domain.MessageKindRejection:
		return domain.RequestStateRejected
	case domain.MessageKindCounterOffer:
		return domain.RequestStateNegotiating
	}
	if current == domain.RequestStatePending {
		return domain.RequestStateNegotiating
	}
	return current
}

// CreateRequest opens a negotiation from the promoter to the business.
// At most one active request may exist per pair.
func (s *NegotiationService) CreateRequest(promoterUserID, businessID uint, initialMessage string) (*models.Request, error) {
	if initialMessage == "" {
		return nil, fmt.Errorf("%w: initial message is required", domain.ErrValidation)
	}
	promoter, err := s.promoters.GetByUserID(promoterUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: promoter profile", domain.ErrNotFound)
	}
	if _, err := s.business.GetByID(businessID); err != nil {
		return nil, fmt.Errorf("%w: business", domain.ErrNotFound)
	}

	var req models.Request
	err = s.db.Transaction(func(tx *gorm.DB) error {
		active, err := s.requests.WithTx(tx).HasActiveForPair(promoter.ID, businessID)
		if err != nil {
			return err
		}
		if active {
			return fmt.Errorf("%w: an active request to this business already exists", domain.ErrConflict)
		}
		req = models.Request{
			PromoterID:     promoter.ID,
			BusinessID:     businessID,
			State:          domain.RequestStatePending,
			InitialMessage: initialMessage,
		}
		if err := tx.Create(&req).Error; err != nil {
			return err
		}
		msg := models.Message{
			RequestID:  req.ID,
			SenderRole: domain.SenderPromoter,
			SenderID:   promoter.ID,
			Body:       initialMessage,
			Kind:       domain.MessageKindPlain,
		}
		return tx.Create(&msg).Error
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithField("request_id", req.ID).
		WithField("promoter_id", promoter.ID).
		WithField("business_id", businessID).
		Info("request created")
	return &req, nil
}

// SendMessage appends a message to the conversation and advances the
// request state. Either side may resolve through an acceptance or
// rejection message; resolved requests keep accepting messages without
// changing state. Unknown kinds fall back to plain.
func (s *NegotiationService) SendMessage(userID uint, role string, requestID uint, body, kind string) (*models.Message, *models.Request, error) {
	if body == "" {
		return nil, nil, fmt.Errorf("%w: message body is required", domain.ErrValidation)
	}
	if !domain.ValidMessageKind(kind) {
		kind = domain.MessageKindPlain
	}

	req, senderRole, senderID, err := s.authorizeParticipant(userID, role, requestID)
	if err != nil {
		return nil, nil, err
	}

	msg := models.Message{
		RequestID:  req.ID,
		SenderRole: senderRole,
		SenderID:   senderID,
		Body:       body,
		Kind:       kind,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		next := NextState(req.State, kind)
		if next != req.State {
			req.State = next
			// Column update: Save on a preloaded request would also
			// upsert its associations.
			updates := map[string]interface{}{"state": next}
			if next == domain.RequestStateAccepted {
				now := time.Now()
				req.AcceptedAt = &now
				updates["accepted_at"] = req.AcceptedAt
			}
			return tx.Model(&models.Request{}).Where("id = ?", req.ID).Updates(updates).Error
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &msg, req, nil
}

// Accept moves an active request to accepted; only the business side
// may accept, and only once.
func (s *NegotiationService) Accept(businessUserID, requestID uint) (*models.Request, error) {
	return s.resolve(businessUserID, requestID, domain.RequestStateAccepted)
}

// Reject moves an active request to rejected.
func (s *NegotiationService) Reject(businessUserID, requestID uint) (*models.Request, error) {
	return s.resolve(businessUserID, requestID, domain.RequestStateRejected)
}

func (s *NegotiationService) resolve(businessUserID, requestID uint, target string) (*models.Request, error) {
	business, err := s.business.GetByUserID(businessUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: business profile", domain.ErrNotFound)
	}
	req, err := s.requests.GetByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: request", domain.ErrNotFound)
		}
		return nil, err
	}
	if req.BusinessID != business.ID {
		return nil, fmt.Errorf("%w: not a participant", domain.ErrForbidden)
	}
	if req.IsTerminal() {
		return nil, fmt.Errorf("%w: request is already %s", domain.ErrInvalidState, req.State)
	}

	kind := domain.MessageKindAcceptance
	if target == domain.RequestStateRejected {
		kind = domain.MessageKindRejection
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		req.State = target
		updates := map[string]interface{}{"state": target}
		if target == domain.RequestStateAccepted {
			now := time.Now()
			req.AcceptedAt = &now
			updates["accepted_at"] = req.AcceptedAt
		}
		if err := tx.Model(&models.Request{}).Where("id = ?", req.ID).Updates(updates).Error; err != nil {
			return err
		}
		msg := models.Message{
			RequestID:  req.ID,
			SenderRole: domain.SenderBusiness,
			SenderID:   business.ID,
			Body:       fmt.Sprintf("Request %s", target),
			Kind:       kind,
		}
		return tx.Create(&msg).Error
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithField("request_id", req.ID).WithField("state", target).Info("request resolved")
	return req, nil
}

// RequestView is a request as seen by one side. Contact details of the
// promoter stay hidden from the business until acceptance.
type RequestView struct {
	ID             uint       `json:"id"`
	State          string     `json:"state"`
	InitialMessage string     `json:"initial_message"`
	AcceptedAt     *time.Time `json:"accepted_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Promoter PromoterContact `json:"promoter"`
	Business BusinessSummary `json:"business"`
}

type PromoterContact struct {
	ID            uint    `json:"id"`
	Email         string  `json:"email"`
	Industry      string  `json:"industry"`
	InstagramLink *string `json:"instagram_link"`
	TikTokLink    *string `json:"tiktok_link"`
	LinkedInLink  *string `json:"linkedin_link"`
}

type BusinessSummary struct {
	ID           uint   `json:"id"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
	ActivityType string `json:"activity_type"`
	Location     string `json:"location"`
}

// BuildRequestView renders a request. Contact details on both sides are
// redacted until the request is accepted, whoever is looking: links
// that exist show a placeholder, absent links stay nil. Redacting for
// the owner too keeps the payload identical for both parties.
func BuildRequestView(req *models.Request) RequestView {
	revealed := req.IsAccepted()

	view := RequestView{
		ID:             req.ID,
		State:          req.State,
		InitialMessage: req.InitialMessage,
		AcceptedAt:     req.AcceptedAt,
		CreatedAt:      req.CreatedAt,
		UpdatedAt:      req.UpdatedAt,
		Business: BusinessSummary{
			ID:           req.Business.ID,
			BusinessName: req.Business.BusinessName,
			Email:        domain.RedactedEmail,
			ActivityType: req.Business.ActivityType,
			Location:     req.Business.Location,
		},
	}
	if revealed {
		view.Business.Email = req.Business.User.Email
	}

	contact := PromoterContact{
		ID:       req.Promoter.ID,
		Industry: req.Promoter.Industry,
	}
	if revealed {
		contact.Email = req.Promoter.User.Email
		contact.InstagramLink = req.Promoter.InstagramLink
		contact.TikTokLink = req.Promoter.TikTokLink
		contact.LinkedInLink = req.Promoter.LinkedInLink
	} else {
		contact.Email = domain.RedactedEmail
		contact.InstagramLink = redactLink(req.Promoter.InstagramLink)
		contact.TikTokLink = redactLink(req.Promoter.TikTokLink)
		contact.LinkedInLink = redactLink(req.Promoter.LinkedInLink)
	}
	view.Promoter = contact
	return view
}

func redactLink(link *string) *string {
	if link == nil {
		return nil
	}
	placeholder := domain.RedactedLink
	return &placeholder
}

// ListForUser returns the user's requests rendered for their role,
// optionally narrowed to one state.
func (s *NegotiationService) ListForUser(userID uint, role, state string) ([]RequestView, error) {
	if state != "" && !domain.IsActiveState(state) && !domain.IsTerminalState(state) {
		return nil, fmt.Errorf("%w: unknown state %q", domain.ErrValidation, state)
	}
	var reqs []models.Request
	var err error
	switch role {
	case domain.RolePromoter:
		promoter, perr := s.promoters.GetByUserID(userID)
		if perr != nil {
			return nil, fmt.Errorf("%w: promoter profile", domain.ErrNotFound)
		}
		reqs, err = s.requests.ListByPromoter(promoter.ID, state)
	case domain.RoleBusiness:
		business, berr := s.business.GetByUserID(userID)
		if berr != nil {
			return nil, fmt.Errorf("%w: business profile", domain.ErrNotFound)
		}
		reqs, err = s.requests.ListByBusiness(business.ID, state)
	default:
		return nil, fmt.Errorf("%w: unknown role", domain.ErrForbidden)
	}
	if err != nil {
		return nil, err
	}
	views := make([]RequestView, 0, len(reqs))
	for i := range reqs {
		views = append(views, BuildRequestView(&reqs[i]))
	}
	return views, nil
}

// Dashboard summarizes the business's inbox per state.
type Dashboard struct {
	Pending     int64 `json:"pending"`
	Negotiating int64 `json:"negotiating"`
	Accepted    int64 `json:"accepted"`
	Rejected    int64 `json:"rejected"`
	Total       int64 `json:"total"`
}

func (s *NegotiationService) BusinessDashboard(userID uint) (*Dashboard, error) {
	business, err := s.business.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: business profile", domain.ErrNotFound)
	}
	counts, err := s.requests.CountByStateForBusiness(business.ID)
	if err != nil {
		return nil, err
	}
	d := &Dashboard{
		Pending:     counts[domain.RequestStatePending],
		Negotiating: counts[domain.RequestStateNegotiating],
		Accepted:    counts[domain.RequestStateAccepted],
		Rejected:    counts[domain.RequestStateRejected],
	}
	d.Total = d.Pending + d.Negotiating + d.Accepted + d.Rejected
	return d, nil
}

// GetRequest returns a single request rendered for the viewer.
func (s *NegotiationService) GetRequest(userID uint, role string, requestID uint) (*RequestView, error) {
	req, _, _, err := s.authorizeParticipant(userID, role, requestID)
	if err != nil {
		return nil, err
	}
	view := BuildRequestView(req)
	return &view, nil
}

// GetRequestMessages returns the conversation; only participants may read it.
func (s *NegotiationService) GetRequestMessages(userID uint, role string, requestID uint) ([]models.Message, error) {
	if _, _, _, err := s.authorizeParticipant(userID, role, requestID); err != nil {
		return nil, err
	}
	return s.requests.ListMessages(requestID)
}

// authorizeParticipant loads the request and checks that the user is a
// participant, returning their side and profile ID.
func (s *NegotiationService) authorizeParticipant(userID uint, role string, requestID uint) (*models.Request, string, uint, error) {
	req, err := s.requests.GetByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", 0, fmt.Errorf("%w: request", domain.ErrNotFound)
		}
		return nil, "", 0, err
	}
	switch role {
	case domain.RolePromoter:
		promoter, err := s.promoters.GetByUserID(userID)
		if err != nil || req.PromoterID != promoter.ID {
			return nil, "", 0, fmt.Errorf("%w: not a participant", domain.ErrForbidden)
		}
		return req, domain.SenderPromoter, promoter.ID, nil
	case domain.RoleBusiness:
		business, err := s.business.GetByUserID(userID)
		if err != nil || req.BusinessID != business.ID {
			return nil, "", 0, fmt.Errorf("%w: not a participant", domain.ErrForbidden)
		}
		return req, domain.SenderBusiness, business.ID, nil
	}
	return nil, "", 0, fmt.Errorf("%w: unknown role", domain.ErrForbidden)
}
