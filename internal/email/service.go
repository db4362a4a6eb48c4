package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/hospital-admin/internal/config"
	"github.com/jwalitptl/hospital-admin/pkg/circuitbreaker"
)

type Service interface {
	Send(ctx context.Context, to, subject, body string) error
}

// dialer is the part of gomail.Dialer the sender needs.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpService struct {
	dialer dialer
	from   string
	cb     *circuitbreaker.CircuitBreaker
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return newSMTPService(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From)
}

func newSMTPService(d dialer, from string) *smtpService {
	return &smtpService{
		dialer: d,
		from:   from,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "smtp",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     time.Minute,
			MaxFailures: 3,
		}),
	}
}

func (s *smtpService) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.cb.Execute(func() error { return s.dialer.DialAndSend(m) }); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

type nopService struct{}

// NewNopService returns a sender that accepts and drops every message.
func NewNopService() Service {
	return nopService{}
}

func (nopService) Send(context.Context, string, string, string) error {
	return nil
}
