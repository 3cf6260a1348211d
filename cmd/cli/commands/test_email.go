package commands

import (
	"log/slog"
	"strings"
	"time"

	"engler-house/internal/config"
	"engler-house/internal/models"
	"engler-house/internal/notify"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var testEmailTypes = []string{"order", "task", "user"}

// testEvent собирает правдоподобное событие без обращения к БД.
// Пароль в письмо о новом аккаунте попадает только при withPassword.
func testEvent(kind, email string, now time.Time, withPassword bool) (notify.Event, error) {
	owner := models.User{Email: email, FirstName: "Тест", LastName: "Пользователь"}
	order := models.Order{
		OrderNumber: "TEST-" + strings.ToUpper(uuid.NewString()[:8]),
		Status:      models.OrderInProgress,
		StartDate:   now,
		EndDate:     now.AddDate(0, 0, 30),
		User:        owner,
	}

	switch kind {
	case "order":
		return notify.OrderCreated{Order: order, Owner: owner}, nil
	case "task":
		task := models.OrderTask{
			Title:     "Тестовый этап",
			StartDate: now,
			EndDate:   now.AddDate(0, 0, 7),
			Status:    models.TaskCompleted,
		}
		return notify.TaskStatusChanged{Task: task, Order: order, Owner: owner, OldStatus: models.TaskInProgress}, nil
	case "user":
		ev := notify.UserCreated{User: owner}
		if withPassword {
			ev.Password = "test-password"
		}
		return ev, nil
	}
	return nil, errors.Errorf("unknown email type %q, expected one of %s", kind, strings.Join(testEmailTypes, ", "))
}

func NewTestEmailCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test-email",
		Short: "Sends a test notification email",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			kind, _ := cmd.Flags().GetString("type")

			cfg, err := config.Parse()
			if err != nil {
				return err
			}
			if cfg.Mail.Host == "" {
				slog.Warn("MAIL_HOST is not set, the email will only be logged")
			}

			ev, err := testEvent(kind, email, time.Now(), cfg.Mail.SendCredentials)
			if err != nil {
				return err
			}

			dispatcher := notify.NewDispatcher(notify.NewMailer(cfg.Mail), cfg.SiteURL)
			if err := dispatcher.Notify(cmd.Context(), ev); err != nil {
				return errors.Wrap(err, "test email failed")
			}

			slog.Info("test email sent", "type", kind, "to", email)
			return nil
		},
	}

	cmd.Flags().String("email", "", "recipient address")
	cmd.Flags().String("type", "order", "email type: "+strings.Join(testEmailTypes, ", "))
	cmd.MarkFlagRequired("email") // nolint
	return cmd
}
