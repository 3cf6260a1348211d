package notify

import (
	"context"
	"log/slog"

	"engler-house/internal/config"

	"github.com/pkg/errors"
	"github.com/wneessen/go-mail"
)

// SMTPMailer шлёт письма синхронно; таймауты берутся из клиента go-mail.
type SMTPMailer struct {
	cfg config.MailConfig
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mm := mail.NewMsg()
	if err := mm.From(m.cfg.From); err != nil {
		return errors.Wrap(err, "invalid from address")
	}
	if err := mm.To(msg.To); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)

	opts := []mail.Option{mail.WithPort(m.cfg.Port)}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	if m.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return errors.Wrap(err, "could not create smtp client")
	}
	return errors.Wrap(client.DialAndSendWithContext(ctx, mm), "smtp send failed")
}

// LogMailer пишет письмо в лог вместо отправки, для разработки без SMTP.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	slog.Info("mail transport is not configured, email dropped", "to", maskEmail(msg.To), "subject", msg.Subject)
	return nil
}

// NewMailer выбирает транспорт по конфигу.
func NewMailer(cfg config.MailConfig) Mailer {
	if cfg.Host == "" {
		return LogMailer{}
	}
	return NewSMTPMailer(cfg)
}
