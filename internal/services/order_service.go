package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	"engler-house/internal/models"
	"engler-house/internal/notify"
	"engler-house/internal/repositories"
	"engler-house/internal/timeline"

	"github.com/pkg/errors"
)

type CreateOrderInput struct {
	OrderNumber  string             `json:"order_number" validate:"required,max=50"`
	UserID       uint               `json:"user_id" validate:"required"`
	ProjectID    *uint              `json:"project_id"`
	ProjectImage string             `json:"project_image" validate:"max=255"`
	Status       models.OrderStatus `json:"status"`
	StartDate    string             `json:"start_date" validate:"required"`
	EndDate      string             `json:"end_date" validate:"required"`
}

type TaskInput struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description"`
	StartDate   string            `json:"start_date" validate:"required"`
	EndDate     string            `json:"end_date" validate:"required"`
	Status      models.TaskStatus `json:"status"`
	OrderNum    int               `json:"order_num" validate:"min=0"`
}

// TaskUpdate хранит состояние этапа до и после изменения.
type TaskUpdate struct {
	Before models.OrderTask
	After  models.OrderTask
}

func (u TaskUpdate) StatusChanged() bool {
	return u.Before.Status != u.After.Status
}

type TaskRow struct {
	Task models.OrderTask
	Bar  timeline.Bar
}

// OrderView: заказ для личного кабинета, прогресс и диаграмма уже посчитаны.
type OrderView struct {
	Order    models.Order
	Progress int
	Timeline timeline.Timeline
	Tasks    []TaskRow
}

func NewOrderView(order models.Order) OrderView {
	tl := timeline.ForOrder(order)
	rows := make([]TaskRow, 0, len(order.Tasks))
	for i, task := range order.Tasks {
		rows = append(rows, TaskRow{Task: task, Bar: tl.Bars[i]})
	}
	return OrderView{
		Order:    order,
		Progress: order.ProgressPercentage(),
		Timeline: tl,
		Tasks:    rows,
	}
}

type OrderService struct {
	orders   *repositories.OrderRepository
	users    *repositories.UserRepository
	notifier notify.Notifier
}

func NewOrderService(orders *repositories.OrderRepository, users *repositories.UserRepository, notifier notify.Notifier) *OrderService {
	return &OrderService{orders: orders, users: users, notifier: notifier}
}

// CreateOrder сохраняет заказ и после этого пишет клиенту.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	in.OrderNumber = strings.TrimSpace(in.OrderNumber)
	if in.Status == "" {
		in.Status = models.OrderPending
	}

	verr := check(in)
	start := parseDate(verr, "start_date", in.StartDate)
	end := parseDate(verr, "end_date", in.EndDate)
	checkRange(verr, start, end)
	if !in.Status.Valid() {
		verr.Add("status", tagMessages["oneof"])
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrNotFound) {
			verr.Add("user_id", "Клиент не найден")
			return nil, verr
		}
		return nil, err
	}

	taken, err := s.orders.ExistsByNumber(ctx, in.OrderNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrOrderNumberTaken
	}

	order := &models.Order{
		OrderNumber:  in.OrderNumber,
		UserID:       owner.ID,
		ProjectID:    in.ProjectID,
		ProjectImage: in.ProjectImage,
		Status:       in.Status,
		StartDate:    start,
		EndDate:      end,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	order.User = *owner

	slog.Info("order created", "order", order.OrderNumber, "user", owner.Email)
	notify.BestEffort(ctx, s.notifier, notify.OrderCreated{Order: *order, Owner: *owner})
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	if !status.Valid() {
		verr := &ValidationError{}
		verr.Add("status", tagMessages["oneof"])
		return verr
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

// ListOrdersForUser возвращает заказы клиента, новые первыми, с прогрессом и шкалой.
func (s *OrderService) ListOrdersForUser(ctx context.Context, userID uint) ([]OrderView, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views, nil
}

// buildTask переносит ввод в этап. Пустой статус оставляет тот, что уже стоит в task.
func (s *OrderService) buildTask(in TaskInput, task *models.OrderTask) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Status == "" {
		in.Status = task.Status
	}

	verr := check(in)
	start := parseDate(verr, "start_date", in.StartDate)
	end := parseDate(verr, "end_date", in.EndDate)
	checkRange(verr, start, end)
	if !in.Status.Valid() {
		verr.Add("status", tagMessages["oneof"])
	}
	if err := verr.Err(); err != nil {
		return err
	}

	task.Title = in.Title
	task.Description = strings.TrimSpace(in.Description)
	task.StartDate = start
	task.EndDate = end
	task.Status = in.Status
	task.OrderNum = in.OrderNum
	return nil
}

// AddTask добавляет этап. Новый этап письма не вызывает: статус ещё не менялся.
func (s *OrderService) AddTask(ctx context.Context, orderID uint, in TaskInput) (*models.OrderTask, error) {
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}

	task := &models.OrderTask{OrderID: orderID, Status: models.TaskPending}
	if err := s.buildTask(in, task); err != nil {
		return nil, err
	}
	if err := s.orders.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask перезаписывает этап целиком; без status статус этапа не меняется.
func (s *OrderService) UpdateTask(ctx context.Context, taskID uint, in TaskInput) (*models.OrderTask, error) {
	before, err := s.orders.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	after := *before
	if err := s.buildTask(in, &after); err != nil {
		return nil, err
	}
	return s.saveTask(ctx, TaskUpdate{Before: *before, After: after})
}

func (s *OrderService) SetTaskStatus(ctx context.Context, taskID uint, status models.TaskStatus) (*models.OrderTask, error) {
	if !status.Valid() {
		verr := &ValidationError{}
		verr.Add("status", tagMessages["oneof"])
		return nil, verr
	}

	before, err := s.orders.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	after := *before
	after.Status = status
	return s.saveTask(ctx, TaskUpdate{Before: *before, After: after})
}

func (s *OrderService) saveTask(ctx context.Context, upd TaskUpdate) (*models.OrderTask, error) {
	if err := s.orders.SaveTask(ctx, &upd.After); err != nil {
		return nil, err
	}
	s.ApplyTaskUpdate(ctx, upd)
	return &upd.After, nil
}

// ApplyTaskUpdate отправляет письмо о смене статуса, если статус действительно поменялся.
// Вызывается после сохранения; ошибки только логируются.
func (s *OrderService) ApplyTaskUpdate(ctx context.Context, upd TaskUpdate) {
	if !upd.StatusChanged() {
		return
	}

	order, err := s.orders.GetByID(ctx, upd.After.OrderID)
	if err != nil {
		slog.Error("could not load order for task notification", "task", upd.After.ID, "err", errors.WithStack(err))
		return
	}

	notify.BestEffort(ctx, s.notifier, notify.TaskStatusChanged{
		Task:      upd.After,
		Order:     *order,
		Owner:     order.User,
		OldStatus: upd.Before.Status,
	})
}

func (s *OrderService) DeleteTask(ctx context.Context, taskID uint) error {
	return s.orders.DeleteTask(ctx, taskID)
}
