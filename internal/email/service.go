package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/medhq/hms-api/internal/config"
	"github.com/medhq/hms-api/internal/model"
)

// Service sends operational notifications. Implementations must not
// block the request path on failures; callers log and move on.
type Service interface {
	SendLowStockAlert(ctx context.Context, item *model.InventoryItem) error
}

type smtpService struct {
	dialer     *gomail.Dialer
	from       string
	recipients []string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:       cfg.From,
		recipients: cfg.AlertRecipients,
	}
}

func (s *smtpService) SendLowStockAlert(_ context.Context, item *model.InventoryItem) error {
	if len(s.recipients) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.recipients...)
	m.SetHeader("Subject", fmt.Sprintf("Low stock alert: %s", item.Name))
	m.SetBody("text/plain", fmt.Sprintf(
		"Inventory item %q (%s) is at %d %s, at or below its reorder level of %d.",
		item.Name, item.Category, item.Quantity, item.Unit, item.ReorderLevel,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send low stock alert: %w", err)
	}
	return nil
}

type nopService struct{}

// NewNopService is used when SMTP is not configured.
func NewNopService() Service {
	return nopService{}
}

func (nopService) SendLowStockAlert(context.Context, *model.InventoryItem) error {
	return nil
}
