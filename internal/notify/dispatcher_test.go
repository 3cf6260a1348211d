package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"engler-house/internal/mocks"
	"engler-house/internal/models"
	"engler-house/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleOrder() models.Order {
	return models.Order{
		OrderNumber: "EH-042",
		Status:      models.OrderPending,
		StartDate:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestComposeOrderCreated(t *testing.T) {
	d := notify.NewDispatcher(notify.LogMailer{}, "https://example.com/")

	msg, err := d.Compose(notify.OrderCreated{
		Order: sampleOrder(),
		Owner: models.User{Email: "client@example.com", FirstName: "Анна"},
	})
	require.NoError(t, err)

	assert.Equal(t, "client@example.com", msg.To)
	assert.Contains(t, msg.Subject, "#EH-042")
	assert.Contains(t, msg.HTMLBody, "EH-042")
	assert.Contains(t, msg.HTMLBody, "Анна")
	assert.Contains(t, msg.HTMLBody, "15.01.2025")
	assert.Contains(t, msg.HTMLBody, "https://example.com/my-projects/")
}

func TestComposeTaskStatusChanged(t *testing.T) {
	d := notify.NewDispatcher(notify.LogMailer{}, "https://example.com")

	task := models.OrderTask{Title: "Демонтаж", Status: models.TaskCompleted}
	msg, err := d.Compose(notify.TaskStatusChanged{
		Task:      task,
		Order:     sampleOrder(),
		Owner:     models.User{Email: "client@example.com"},
		OldStatus: models.TaskPending,
	})
	require.NoError(t, err)

	assert.Contains(t, msg.Subject, "Демонтаж")
	assert.Contains(t, msg.Subject, "#EH-042")
	assert.Contains(t, msg.HTMLBody, models.TaskCompleted.Label())
	assert.Contains(t, msg.HTMLBody, models.TaskPending.Label())
}

func TestComposeUserCreated(t *testing.T) {
	d := notify.NewDispatcher(notify.LogMailer{}, "https://example.com")
	user := models.User{Email: "new@example.com"}

	t.Run("with credential", func(t *testing.T) {
		msg, err := d.Compose(notify.UserCreated{User: user, Password: "s3cret!"})
		require.NoError(t, err)
		assert.Contains(t, msg.HTMLBody, "s3cret!")
		assert.Contains(t, msg.HTMLBody, "/accounts/login/")
	})

	t.Run("without credential", func(t *testing.T) {
		msg, err := d.Compose(notify.UserCreated{User: user})
		require.NoError(t, err)
		assert.NotContains(t, msg.HTMLBody, "Пароль:")
	})
}

func TestComposeInquiryEscapesInput(t *testing.T) {
	d := notify.NewDispatcher(notify.LogMailer{}, "https://example.com")

	msg, err := d.Compose(notify.InquiryReceived{
		Inquiry:   models.Inquiry{Name: "<script>x</script>", Email: "a@b.c", Phone: "+7", CreatedAt: time.Now()},
		Recipient: "office@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "office@example.com", msg.To)
	assert.NotContains(t, msg.HTMLBody, "<script>")
}

func TestComposeRequiresRecipient(t *testing.T) {
	d := notify.NewDispatcher(notify.LogMailer{}, "https://example.com")

	_, err := d.Compose(notify.OrderCreated{Order: sampleOrder()})
	assert.ErrorIs(t, err, notify.ErrNoRecipient)
}

func TestNotifySendsThroughMailer(t *testing.T) {
	mailer := mocks.NewMailer(t)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(m notify.Message) bool {
		return m.To == "client@example.com"
	})).Return(nil).Once()

	d := notify.NewDispatcher(mailer, "https://example.com")
	err := d.Notify(context.Background(), notify.OrderCreated{
		Order: sampleOrder(),
		Owner: models.User{Email: "client@example.com"},
	})
	assert.NoError(t, err)
}

func TestNotifyReturnsTransportError(t *testing.T) {
	mailer := mocks.NewMailer(t)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	d := notify.NewDispatcher(mailer, "https://example.com")
	err := d.Notify(context.Background(), notify.UserCreated{User: models.User{Email: "x@example.com"}})
	assert.ErrorContains(t, err, "connection refused")
}

func TestBestEffortSwallowsErrors(t *testing.T) {
	n := mocks.NewNotifier(t)
	n.On("Notify", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	assert.NotPanics(t, func() {
		notify.BestEffort(context.Background(), n, notify.UserCreated{})
	})
	assert.NotPanics(t, func() {
		notify.BestEffort(context.Background(), nil, notify.UserCreated{})
	})
}
