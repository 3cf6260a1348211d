package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleClient UserRole = "client"
	RoleStaff  UserRole = "staff"
)

// User: аккаунт клиента; логин по email.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;size:254;not null" json:"email"`
	LastName     string `gorm:"size:150" json:"last_name"`
	FirstName    string `gorm:"size:150" json:"first_name"`
	Patronymic   string `gorm:"size:150" json:"patronymic"`
	PasswordHash string `gorm:"not null" json:"-"`

	IsActive    bool `gorm:"not null" json:"is_active"`
	IsDeleted   bool `gorm:"not null;default:false" json:"is_deleted"`
	IsStaff     bool `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool `gorm:"not null;default:false" json:"is_superuser"`

	LastLogin *time.Time `json:"last_login"`
}

func (u User) Role() UserRole {
	if u.IsStaff || u.IsSuperuser {
		return RoleStaff
	}
	return RoleClient
}

// CanLogin: аккаунт активен и не удалён.
func (u User) CanLogin() bool {
	return u.IsActive && !u.IsDeleted
}

func (u User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.LastName, u.FirstName, u.Patronymic} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return u.Email
	}
	return strings.Join(parts, " ")
}
