// Package email delivers outbound mail. The SMTP sender is only wired when
// SMTP settings are present.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/config"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/circuitbreaker"
)

type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

type Service interface {
	Send(ctx context.Context, msg *Message) error
}

// NewService returns an SMTP sender when cfg is complete, otherwise a sender
// that only logs.
func NewService(cfg config.SMTPConfig) Service {
	if !cfg.Enabled() {
		return NoopService{}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "smtp",
			MaxFailures: 3,
			Timeout:     time.Minute,
		}),
	}
}

type smtpService struct {
	dialer  *gomail.Dialer
	from    string
	breaker *circuitbreaker.CircuitBreaker
}

func (s *smtpService) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	// a relay that keeps failing is skipped until the breaker cools down
	err := s.breaker.Execute(func() error {
		return s.dialer.DialAndSend(m)
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NoopService drops messages.
type NoopService struct{}

func (NoopService) Send(_ context.Context, msg *Message) error {
	log.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("Email delivery disabled, message dropped")
	return nil
}
