package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/email"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
)

const (
	MsgAllFieldsRequired = "All fields are required"

	notifyTimeout = 30 * time.Second
)

type Service struct {
	repo     repository.ContactMessageRepository
	emailSvc email.Service
	inbox    string
}

// NewService wires the contact inbox. When inbox is empty no notification
// is sent.
func NewService(repo repository.ContactMessageRepository, emailSvc email.Service, inbox string) *Service {
	return &Service{
		repo:     repo,
		emailSvc: emailSvc,
		inbox:    inbox,
	}
}

// Submit stores a visitor's message and notifies the inbox in the
// background. Delivery failures are logged only.
func (s *Service) Submit(ctx context.Context, req *model.CreateContactRequest) (*model.ContactMessage, error) {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return nil, apperrors.BadRequest(MsgAllFieldsRequired, nil)
	}

	msg := req.ToContactMessage()
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	if s.inbox != "" && s.emailSvc != nil {
		go s.notify(*msg)
	}

	return msg, nil
}

func (s *Service) notify(msg model.ContactMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := s.emailSvc.Send(ctx, &email.Message{
		To:      s.inbox,
		ReplyTo: msg.Email,
		Subject: fmt.Sprintf("New contact message from %s", msg.Name),
		Body:    fmt.Sprintf("From: %s <%s>\n\n%s\n", msg.Name, msg.Email, msg.Message),
	})
	if err != nil {
		log.Error().Err(err).Int64("contact_message_id", msg.ID).Msg("Failed to send contact notification")
	}
}

func (s *Service) List(ctx context.Context) ([]*model.ContactMessage, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.ContactMessage, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
