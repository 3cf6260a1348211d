package commands

import (
	"log/slog"

	"engler-house/internal/config"
	"engler-house/internal/database"
	"engler-house/internal/notify"
	"engler-house/internal/repositories"
	"engler-house/internal/services"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewCreateUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Creates a client or staff account",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in services.CreateUserInput
			in.Email, _ = cmd.Flags().GetString("email")
			in.Password, _ = cmd.Flags().GetString("password")
			in.FirstName, _ = cmd.Flags().GetString("first-name")
			in.LastName, _ = cmd.Flags().GetString("last-name")
			in.IsStaff, _ = cmd.Flags().GetBool("staff")

			cfg, err := config.Parse()
			if err != nil {
				return err
			}
			if cfg.DBDSN == "" {
				return errors.New("DB_DSN is not set")
			}

			db, err := database.Connect(cfg.DBDSN)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			dispatcher := notify.NewDispatcher(notify.NewMailer(cfg.Mail), cfg.SiteURL)
			accounts := services.NewAccountService(repositories.NewUserRepository(db), dispatcher, cfg.Mail.SendCredentials)

			user, err := accounts.CreateUser(cmd.Context(), in)
			if err != nil {
				if fields := services.FieldErrors(err); fields != nil {
					for field, msg := range fields {
						slog.Error("invalid value", "field", field, "err", msg)
					}
				}
				return errors.Wrap(err, "could not create user")
			}

			slog.Info("user created", "id", user.ID, "email", user.Email, "staff", user.IsStaff)
			return nil
		},
	}

	cmd.Flags().String("email", "", "login email")
	cmd.Flags().String("password", "", "initial password")
	cmd.Flags().String("first-name", "", "first name")
	cmd.Flags().String("last-name", "", "last name")
	cmd.Flags().Bool("staff", false, "grant access to the admin api")
	cmd.MarkFlagRequired("email")    // nolint
	cmd.MarkFlagRequired("password") // nolint
	return cmd
}
