package repositories

import (
	"context"
	"time"

	"engler-house/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, errors.Wrap(err, "could not check email")
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(user).Error, "could not create user")
}

// UpdateProfile сохраняет только ФИО, остальные поля не трогаем.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Model(user).Select("first_name", "last_name", "patronymic").Updates(user).Error
	return errors.Wrap(err, "could not update profile")
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error
	return errors.Wrap(err, "could not update last login")
}
