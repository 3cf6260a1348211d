package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"engler-house/internal/monitoring"

	"github.com/pkg/errors"
)

const SiteName = "ENGLER House"

//go:embed templates/*.html
var templatesFS embed.FS

var (
	ErrNoRecipient  = errors.New("notification has no recipient")
	ErrUnknownEvent = errors.New("unknown notification event")
)

type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

//go:generate mockery --name Mailer --output ../mocks --outpkg mocks --case underscore

// Mailer отправляет письма (SMTP в проде, лог в разработке, мок в тестах).
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher превращает события в письма и отдаёт их транспорту.
type Dispatcher struct {
	mailer  Mailer
	siteURL string
	tmpl    *template.Template
}

func NewDispatcher(mailer Mailer, siteURL string) *Dispatcher {
	tmpl := template.Must(template.New("emails").Funcs(template.FuncMap{
		"date":     func(t time.Time) string { return t.Format("02.01.2006") },
		"datetime": func(t time.Time) string { return t.Format("02.01.2006 в 15:04") },
	}).ParseFS(templatesFS, "templates/*.html"))

	return &Dispatcher{
		mailer:  mailer,
		siteURL: strings.TrimRight(siteURL, "/"),
		tmpl:    tmpl,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, ev Event) error {
	msg, err := d.Compose(ev)
	if err != nil {
		monitoring.NotificationsFailed.WithLabelValues(string(ev.Kind())).Inc()
		return err
	}

	if err := d.mailer.Send(ctx, msg); err != nil {
		monitoring.NotificationsFailed.WithLabelValues(string(ev.Kind())).Inc()
		return errors.Wrapf(err, "could not send %s email to %s", ev.Kind(), msg.To)
	}

	monitoring.NotificationsSent.WithLabelValues(string(ev.Kind())).Inc()
	slog.Info("notification sent", "event", ev.Kind(), "to", maskEmail(msg.To))
	return nil
}

// Compose собирает письмо для события без отправки.
func (d *Dispatcher) Compose(ev Event) (Message, error) {
	var (
		to, subject, name string
		data              = map[string]any{"SiteURL": d.siteURL, "SiteName": SiteName}
	)

	switch e := ev.(type) {
	case OrderCreated:
		to, name = e.Owner.Email, "order_created.html"
		subject = fmt.Sprintf("Новый заказ #%s создан - %s", e.Order.OrderNumber, SiteName)
		data["Order"], data["User"] = e.Order, e.Owner
	case TaskStatusChanged:
		to, name = e.Owner.Email, "task_status_changed.html"
		subject = fmt.Sprintf("Статус этапа \"%s\" изменен - Заказ #%s", e.Task.Title, e.Order.OrderNumber)
		data["Task"], data["Order"], data["User"], data["OldStatus"] = e.Task, e.Order, e.Owner, e.OldStatus
	case UserCreated:
		to, name = e.User.Email, "user_created.html"
		subject = fmt.Sprintf("Добро пожаловать в %s - Ваш аккаунт создан", SiteName)
		data["User"], data["Password"] = e.User, e.Password
	case InquiryReceived:
		to, name = e.Recipient, "inquiry_received.html"
		subject = fmt.Sprintf("Новая заявка на %s", SiteName)
		data["Inquiry"] = e.Inquiry
	default:
		return Message{}, errors.Wrapf(ErrUnknownEvent, "%T", ev)
	}

	if strings.TrimSpace(to) == "" {
		return Message{}, errors.Wrapf(ErrNoRecipient, "event %s", ev.Kind())
	}

	var body bytes.Buffer
	if err := d.tmpl.ExecuteTemplate(&body, name, data); err != nil {
		return Message{}, errors.Wrapf(err, "could not render %s", name)
	}

	return Message{To: to, Subject: subject, HTMLBody: body.String()}, nil
}

// BestEffort отправляет уведомление, а ошибку только логирует:
// сбой почты не должен влиять на уже сохранённые данные.
func BestEffort(ctx context.Context, n Notifier, ev Event) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, ev); err != nil {
		slog.Error("could not send notification", "event", ev.Kind(), "err", err)
	}
}
