package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type TaskStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"

	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderPending:    "Ожидание",
	OrderInProgress: "В работе",
	OrderCompleted:  "Завершен",
	OrderCancelled:  "Отменен",
}

var taskStatusLabels = map[TaskStatus]string{
	TaskPending:    "Ожидание",
	TaskInProgress: "В работе",
	TaskCompleted:  "Завершено",
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

func (s OrderStatus) Label() string {
	if l, ok := orderStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s TaskStatus) Valid() bool {
	_, ok := taskStatusLabels[s]
	return ok
}

func (s TaskStatus) Label() string {
	if l, ok := taskStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Order: заказ клиента; этапы (Tasks) принадлежат только ему.
type Order struct {
	gorm.Model
	OrderNumber string `gorm:"size:50;uniqueIndex;not null" json:"order_number"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnDelete:CASCADE;" json:"user"`

	ProjectID *uint    `gorm:"index" json:"project_id"`
	Project   *Project `gorm:"constraint:OnDelete:SET NULL;" json:"project,omitempty"`

	ProjectImage string      `gorm:"size:255" json:"project_image"`
	Status       OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	StartDate    time.Time   `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time   `gorm:"type:date;not null" json:"end_date"`

	Tasks []OrderTask `gorm:"constraint:OnDelete:CASCADE;" json:"tasks,omitempty"`
}

// ProgressPercentage считает долю завершённых этапов, целое с отбрасыванием дробной части.
func (o Order) ProgressPercentage() int {
	total := len(o.Tasks)
	if total == 0 {
		return 0
	}
	completed := 0
	for _, t := range o.Tasks {
		if t.Status == TaskCompleted {
			completed++
		}
	}
	return completed * 100 / total
}

type OrderTask struct {
	gorm.Model
	OrderID     uint       `gorm:"not null;index" json:"order_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	StartDate   time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time  `gorm:"type:date;not null" json:"end_date"`
	Status      TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	OrderNum    int        `gorm:"not null;default:0" json:"order_num"`
}

// DurationDays: длительность этапа в днях, включая оба конца.
func (t OrderTask) DurationDays() int {
	return DaysBetween(t.StartDate, t.EndDate) + 1
}

// DaysBetween считает разницу в календарных днях, время суток не учитывается.
func DaysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours() / 24)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
