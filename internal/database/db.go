package database

import (
	"log/slog"
	"strings"
	"time"

	"engler-house/internal/models"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Init подключается к БД, накатывает миграции и заводит админа.
func Init(dsn, adminEmail, adminPassword string) error {
	db, err := Connect(dsn)
	if err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		return err
	}
	SeedAdmin(db, adminEmail, adminPassword)

	DB = db
	return nil
}

// Connect пытается подключиться несколько раз: postgres в compose поднимается дольше приложения.
func Connect(dsn string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	for i := 1; i <= maxAttempts; i++ {
		slog.Info("trying to connect to DB", "attempt", i, "max", maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			slog.Info("connected to DB successfully")
			return db, nil
		}

		slog.Warn("failed to connect to DB", "err", err)
		time.Sleep(retryBackoff)
	}

	return nil, errors.Wrapf(err, "could not connect to db after %d attempts", maxAttempts)
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.HeroSection{},
		&models.Service{},
		&models.Project{},
		&models.ProjectCarousel{},
		&models.ProjectDetail{},
		&models.GalleryImage{},
		&models.Press{},
		&models.PressItem{},
		&models.Architect{},
		&models.Review{},
		&models.ContactInfo{},
		&models.Inquiry{},
		&models.Order{},
		&models.OrderTask{},
		&models.AuditLog{},
	)
	return errors.Wrap(err, "could not migrate")
}

// SeedAdmin создаёт сотрудника-админа, если ни одного ещё нет.
// Без пароля в конфиге ничего не делаем.
func SeedAdmin(db *gorm.DB, email, password string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("is_superuser = ?", true).
		Count(&count).Error; err != nil {
		slog.Error("failed to check admin user", "err", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash default admin password", "err", err)
		return
	}

	admin := models.User{
		Email:        email,
		FirstName:    "Admin",
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		slog.Error("failed to create default admin", "err", err)
		return
	}

	slog.Info("created default admin user", "email", email)
}
