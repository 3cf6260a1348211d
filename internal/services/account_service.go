package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	"engler-house/internal/models"
	"engler-house/internal/notify"
	"engler-house/internal/repositories"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserInput struct {
	Email      string `json:"email" validate:"required,email,max=254"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	FirstName  string `json:"first_name" validate:"max=150"`
	LastName   string `json:"last_name" validate:"max=150"`
	Patronymic string `json:"patronymic" validate:"max=150"`
	IsStaff    bool   `json:"is_staff"`
}

type ProfileInput struct {
	FirstName  string `json:"first_name" validate:"max=150"`
	LastName   string `json:"last_name" validate:"max=150"`
	Patronymic string `json:"patronymic" validate:"max=150"`
}

type AccountService struct {
	users    *repositories.UserRepository
	notifier notify.Notifier
	// пароль в приветственном письме уходит открытым текстом, поэтому по умолчанию выключено
	sendCredentials bool
	now             func() time.Time
}

func NewAccountService(users *repositories.UserRepository, notifier notify.Notifier, sendCredentials bool) *AccountService {
	return &AccountService{
		users:           users,
		notifier:        notifier,
		sendCredentials: sendCredentials,
		now:             time.Now,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AccountService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	in.Email = NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Patronymic = strings.TrimSpace(in.Patronymic)

	if err := check(in).Err(); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "could not hash password")
	}

	user := &models.User{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Patronymic:   in.Patronymic,
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      in.IsStaff,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user created", "email", user.Email, "staff", user.IsStaff)

	ev := notify.UserCreated{User: *user}
	if s.sendCredentials {
		ev.Password = in.Password
	}
	notify.BestEffort(ctx, s.notifier, ev)
	return user, nil
}

// Authenticate проверяет email и пароль. Для заблокированного аккаунта
// возвращает ErrAccountDisabled, только если пароль верный.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	verr := &ValidationError{}
	if email == "" {
		verr.Add("email", tagMessages["required"])
	}
	if password == "" {
		verr.Add("password", tagMessages["required"])
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CanLogin() {
		return nil, ErrAccountDisabled
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		slog.Warn("could not update last login", "user", user.ID, "err", err)
	} else {
		user.LastLogin = &now
	}
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile меняет ФИО. Правки остаются в user даже при ошибке,
// чтобы форму можно было показать снова с введёнными значениями.
func (s *AccountService) UpdateProfile(ctx context.Context, user *models.User, in ProfileInput) error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Patronymic = strings.TrimSpace(in.Patronymic)

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Patronymic = in.Patronymic

	if err := check(in).Err(); err != nil {
		return err
	}
	return s.users.UpdateProfile(ctx, user)
}
