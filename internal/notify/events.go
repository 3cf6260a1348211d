// Package notify рассылает письма по событиям заказов, этапов, аккаунтов и заявок.
package notify

import (
	"context"

	"engler-house/internal/models"
)

type EventKind string

const (
	KindOrderCreated      EventKind = "order_created"
	KindTaskStatusChanged EventKind = "task_status_changed"
	KindUserCreated       EventKind = "user_created"
	KindInquiryReceived   EventKind = "inquiry_received"
)

type Event interface {
	Kind() EventKind
}

//go:generate mockery --name Notifier --output ../mocks --outpkg mocks --case underscore

// Notifier: единственная точка, через которую сервисы шлют уведомления.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

type OrderCreated struct {
	Order models.Order
	Owner models.User
}

func (OrderCreated) Kind() EventKind { return KindOrderCreated }

type TaskStatusChanged struct {
	Task      models.OrderTask
	Order     models.Order
	Owner     models.User
	OldStatus models.TaskStatus
}

func (TaskStatusChanged) Kind() EventKind { return KindTaskStatusChanged }

// UserCreated: Password пустой, если отправка пароля в письме выключена.
type UserCreated struct {
	User     models.User
	Password string
}

func (UserCreated) Kind() EventKind { return KindUserCreated }

type InquiryReceived struct {
	Inquiry   models.Inquiry
	Recipient string
}

func (InquiryReceived) Kind() EventKind { return KindInquiryReceived }
