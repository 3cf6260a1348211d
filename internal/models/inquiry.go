package models

import "time"

// Inquiry: заявка с формы обратной связи. После создания меняется только IsProcessed.
type Inquiry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Email       string    `gorm:"size:254;not null" json:"email"`
	Phone       string    `gorm:"size:20;not null" json:"phone"`
	IsProcessed bool      `gorm:"not null;default:false" json:"is_processed"`
}

func (Inquiry) TableName() string {
	return "zayavki"
}
