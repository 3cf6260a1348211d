package models

import "time"

// AuditLog: журнал изменений из админки.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID uint `json:"user_id"`
	User   User `json:"-"`

	Entity   string `gorm:"size:50;not null" json:"entity"` // "order", "task", "hero" ...
	EntityID uint   `json:"entity_id"`
	Action   string `gorm:"size:50;not null" json:"action"` // "create", "status_change" и т.п.
	Details  string `gorm:"type:text" json:"details"`
}
