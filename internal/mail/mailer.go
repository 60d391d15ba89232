package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	cfg    Config
	client *gomail.Client
}

func NewMailer(cfg Config) (*Mailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Mailer{cfg: cfg, client: client}, nil
}

// SendOrderConfirmation mails a plain-text order confirmation to the
// customer.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, to, orderNumber, total string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}

	msg.Subject(fmt.Sprintf("Order %s confirmed", orderNumber))
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Thank you for your order!\n\nOrder number: %s\nTotal: %s\n\nWe will notify you when it ships.\n",
		orderNumber, total,
	))

	return m.client.DialAndSendWithContext(ctx, msg)
}
