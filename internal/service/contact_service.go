package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/repository"
	"tenant-portal-svc/internal/store"
	"tenant-portal-svc/pkg/logger"
)

const contactTimeLayout = "2006-01-02 15:04:05"

// ContactInput is a message the tenant writes to the landlord
type ContactInput struct {
	Reason  string `json:"reason" example:"Sửa chữa"`
	Content string `json:"content" example:"Vòi nước bị rỉ"`
}

// ContactService sends messages to the landlord and tracks unseen replies
type ContactService interface {
	Submit(ctx context.Context, session *models.Session, in ContactInput) (*models.ContactMessage, error)
	Replies(ctx context.Context, session *models.Session) (*models.ContactReplies, error)
}

// contactService implements ContactService
type contactService struct {
	contactRepo repository.ContactRepository
	profile     ProfileService
	store       store.Store
	seenTTL     time.Duration
	logger      *logger.Logger
	now         func() time.Time
}

// NewContactService creates a new instance of ContactService. seenTTL bounds
// how long the reply IDs shown to a session are kept; pass the session TTL so
// they go when the session does.
func NewContactService(contactRepo repository.ContactRepository, profile ProfileService, st store.Store, seenTTL time.Duration, logger *logger.Logger) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		profile:     profile,
		store:       st,
		seenTTL:     seenTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// Submit sends a message on behalf of the tenant of the first rented room
func (s *contactService) Submit(ctx context.Context, session *models.Session, in ContactInput) (*models.ContactMessage, error) {
	reason := strings.TrimSpace(in.Reason)
	content := strings.TrimSpace(in.Content)
	if reason == "" || content == "" {
		return nil, newError(ErrInvalidInput, "Vui lòng nhập lý do và nội dung liên hệ")
	}

	customer, err := s.profile.Current(ctx, session)
	if err != nil {
		return nil, err
	}

	msg := models.ContactMessage{
		CustomerID: customer.ID,
		Reason:     reason,
		Content:    content,
		Status:     models.ContactStatusPending,
		SentAt:     s.now().UTC().Format(contactTimeLayout),
	}
	if msg.CustomerID == "" {
		msg.CustomerID = session.CustomerID
	}
	if len(customer.Rentals) > 0 {
		msg.RoomID = customer.Rentals[0].Room.ID
	}

	if err := s.contactRepo.Create(ctx, session.UpstreamToken, msg); err != nil {
		s.logger.WithError(err).WithField("customer_id", msg.CustomerID).Error("Failed to send contact message")
		return nil, fromUpstream(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"customer_id": msg.CustomerID,
		"room_id":     msg.RoomID,
		"reason":      msg.Reason,
	}).Info("Contact message sent")

	return &msg, nil
}

// Replies lists the answered messages and counts those not shown to this
// session before. The shown IDs are remembered for the next call.
func (s *contactService) Replies(ctx context.Context, session *models.Session) (*models.ContactReplies, error) {
	replies, err := s.contactRepo.Replies(ctx, session.UpstreamToken)
	if err != nil {
		s.logger.WithError(err).WithField("username", session.Username).Error("Failed to get contact replies")
		return nil, fromUpstream(err)
	}

	key := store.SeenRepliesKey(session.ID)
	seen := map[string]bool{}
	if raw, ok, err := s.store.Get(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to read seen replies: %w", err)
	} else if ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			s.logger.WithError(err).Warn("Discarding unreadable seen replies")
		}
		for _, id := range ids {
			seen[id] = true
		}
	}

	result := &models.ContactReplies{Replies: replies}
	ids := make([]string, 0, len(replies))
	for _, r := range replies {
		if strings.TrimSpace(r.Reply) == "" {
			continue
		}
		ids = append(ids, r.ID)
		if !seen[r.ID] {
			result.NewCount++
		}
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to encode seen replies: %w", err)
	}
	if err := s.store.Set(ctx, key, string(data), s.seenTTL); err != nil {
		return nil, fmt.Errorf("failed to save seen replies: %w", err)
	}
	return result, nil
}
