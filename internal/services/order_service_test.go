package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"engler-house/internal/mocks"
	"engler-house/internal/models"
	"engler-house/internal/notify"
	"engler-house/internal/repositories"
	"engler-house/internal/services"
	"engler-house/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createClient(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{Email: email, FirstName: "Анна", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func newOrderService(t *testing.T, n notify.Notifier) (*services.OrderService, *gorm.DB) {
	db := testutil.NewTestDB(t)
	svc := services.NewOrderService(repositories.NewOrderRepository(db), repositories.NewUserRepository(db), n)
	return svc, db
}

func validOrder(userID uint) services.CreateOrderInput {
	return services.CreateOrderInput{
		OrderNumber: "EH-1",
		UserID:      userID,
		StartDate:   "2025-01-01",
		EndDate:     "2025-01-31",
	}
}

func TestCreateOrderNotifiesOwner(t *testing.T) {
	ctx := context.Background()
	n := mocks.NewNotifier(t)
	svc, db := newOrderService(t, n)
	owner := createClient(t, db, "owner@example.com")

	n.On("Notify", mock.Anything, mock.MatchedBy(func(ev notify.Event) bool {
		e, ok := ev.(notify.OrderCreated)
		return ok && e.Owner.Email == "owner@example.com" && e.Order.OrderNumber == "EH-1"
	})).Return(nil).Once()

	order, err := svc.CreateOrder(ctx, validOrder(owner.ID))
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), order.EndDate)
}

func TestCreateOrderSurvivesNotificationFailure(t *testing.T) {
	ctx := context.Background()
	n := mocks.NewNotifier(t)
	svc, db := newOrderService(t, n)
	owner := createClient(t, db, "owner@example.com")

	n.On("Notify", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	order, err := svc.CreateOrder(ctx, validOrder(owner.ID))
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateOrderValidation(t *testing.T) {
	ctx := context.Background()
	svc, db := newOrderService(t, mocks.NewNotifier(t))
	owner := createClient(t, db, "owner@example.com")

	t.Run("end before start", func(t *testing.T) {
		in := validOrder(owner.ID)
		in.StartDate, in.EndDate = "2025-02-01", "2025-01-01"
		_, err := svc.CreateOrder(ctx, in)
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Contains(t, services.FieldErrors(err), "end_date")
	})

	t.Run("bad date and status", func(t *testing.T) {
		in := validOrder(owner.ID)
		in.StartDate = "01.01.2025"
		in.Status = "archived"
		_, err := svc.CreateOrder(ctx, in)
		fields := services.FieldErrors(err)
		assert.Contains(t, fields, "start_date")
		assert.Contains(t, fields, "status")
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := svc.CreateOrder(ctx, validOrder(owner.ID+100))
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Contains(t, services.FieldErrors(err), "user_id")
	})

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderRejectsDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	n := mocks.NewNotifier(t)
	svc, db := newOrderService(t, n)
	owner := createClient(t, db, "owner@example.com")
	n.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := svc.CreateOrder(ctx, validOrder(owner.ID))
	require.NoError(t, err)

	_, err = svc.CreateOrder(ctx, validOrder(owner.ID))
	assert.ErrorIs(t, err, services.ErrOrderNumberTaken)
}

func seedOrder(t *testing.T, db *gorm.DB, owner models.User) models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber: "EH-7",
		UserID:      owner.ID,
		Status:      models.OrderInProgress,
		StartDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Omit("User").Create(&order).Error)
	return order
}

func TestTaskStatusNotifications(t *testing.T) {
	ctx := context.Background()
	n := mocks.NewNotifier(t)
	svc, db := newOrderService(t, n)
	owner := createClient(t, db, "owner@example.com")
	order := seedOrder(t, db, owner)

	task, err := svc.AddTask(ctx, order.ID, services.TaskInput{
		Title:     "Демонтаж",
		StartDate: "2025-01-01",
		EndDate:   "2025-01-05",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskPending, task.Status)
	n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)

	n.On("Notify", mock.Anything, mock.MatchedBy(func(ev notify.Event) bool {
		e, ok := ev.(notify.TaskStatusChanged)
		return ok &&
			e.OldStatus == models.TaskPending &&
			e.Task.Status == models.TaskCompleted &&
			e.Owner.Email == "owner@example.com" &&
			e.Order.OrderNumber == "EH-7"
	})).Return(nil).Once()

	_, err = svc.SetTaskStatus(ctx, task.ID, models.TaskCompleted)
	require.NoError(t, err)

	// повторное сохранение с тем же статусом писем не шлёт; Once() выше упадёт на втором вызове
	updated, err := svc.UpdateTask(ctx, task.ID, services.TaskInput{
		Title:     "Демонтаж стен",
		StartDate: "2025-01-01",
		EndDate:   "2025-01-06",
		Status:    models.TaskCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, "Демонтаж стен", updated.Title)
	n.AssertNumberOfCalls(t, "Notify", 1)
}

func TestUpdateTaskWithoutStatusKeepsStatus(t *testing.T) {
	ctx := context.Background()
	n := mocks.NewNotifier(t)
	svc, db := newOrderService(t, n)
	owner := createClient(t, db, "owner@example.com")
	order := seedOrder(t, db, owner)

	task, err := svc.AddTask(ctx, order.ID, services.TaskInput{
		Title:     "Замеры",
		StartDate: "2025-01-01",
		EndDate:   "2025-01-02",
		Status:    models.TaskCompleted,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, task.ID, services.TaskInput{
		Title:     "Замеры квартиры",
		StartDate: "2025-01-01",
		EndDate:   "2025-01-03",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskCompleted, updated.Status)

	var stored models.OrderTask
	require.NoError(t, db.First(&stored, task.ID).Error)
	assert.Equal(t, models.TaskCompleted, stored.Status)
	assert.Equal(t, "Замеры квартиры", stored.Title)
	n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestTaskUpdateSurvivesNotificationFailure(t *testing.T) {
	ctx := context.Background()
	n := mocks.NewNotifier(t)
	svc, db := newOrderService(t, n)
	owner := createClient(t, db, "owner@example.com")
	order := seedOrder(t, db, owner)

	task, err := svc.AddTask(ctx, order.ID, services.TaskInput{Title: "Покраска", StartDate: "2025-01-02", EndDate: "2025-01-03"})
	require.NoError(t, err)

	n.On("Notify", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
	_, err = svc.SetTaskStatus(ctx, task.ID, models.TaskInProgress)
	require.NoError(t, err)

	var stored models.OrderTask
	require.NoError(t, db.First(&stored, task.ID).Error)
	assert.Equal(t, models.TaskInProgress, stored.Status)
}

func TestTaskUpdateStatusChanged(t *testing.T) {
	before := models.OrderTask{Status: models.TaskPending}
	after := before
	assert.False(t, services.TaskUpdate{Before: before, After: after}.StatusChanged())

	after.Status = models.TaskCompleted
	assert.True(t, services.TaskUpdate{Before: before, After: after}.StatusChanged())
}

func TestAddTaskValidation(t *testing.T) {
	ctx := context.Background()
	svc, db := newOrderService(t, mocks.NewNotifier(t))
	owner := createClient(t, db, "owner@example.com")
	order := seedOrder(t, db, owner)

	_, err := svc.AddTask(ctx, order.ID, services.TaskInput{Title: "  ", StartDate: "2025-01-05", EndDate: "2025-01-01"})
	fields := services.FieldErrors(err)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "end_date")

	_, err = svc.AddTask(ctx, order.ID+10, services.TaskInput{Title: "x", StartDate: "2025-01-01", EndDate: "2025-01-01"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.SetTaskStatus(ctx, 1, "done")
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestListOrdersForUser(t *testing.T) {
	ctx := context.Background()
	svc, db := newOrderService(t, mocks.NewNotifier(t))
	owner := createClient(t, db, "owner@example.com")
	order := seedOrder(t, db, owner)

	for _, in := range []services.TaskInput{
		{Title: "A", StartDate: "2025-01-01", EndDate: "2025-01-10", Status: models.TaskCompleted, OrderNum: 1},
		{Title: "B", StartDate: "2025-01-11", EndDate: "2025-01-20", OrderNum: 2},
	} {
		_, err := svc.AddTask(ctx, order.ID, in)
		require.NoError(t, err)
	}

	views, err := svc.ListOrdersForUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, 50, v.Progress)
	assert.Equal(t, 20, v.Timeline.TotalDays)
	require.Len(t, v.Tasks, 2)
	assert.Equal(t, "A", v.Tasks[0].Task.Title)
	assert.InDelta(t, 0, v.Tasks[0].Bar.PositionPercent, 1e-9)
	assert.InDelta(t, 50, v.Tasks[1].Bar.PositionPercent, 1e-9)
	assert.InDelta(t, 50, v.Tasks[1].Bar.WidthPercent, 1e-9)

	other := createClient(t, db, "other@example.com")
	views, err = svc.ListOrdersForUser(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	svc, db := newOrderService(t, mocks.NewNotifier(t))
	owner := createClient(t, db, "owner@example.com")
	order := seedOrder(t, db, owner)

	require.NoError(t, svc.UpdateOrderStatus(ctx, order.ID, models.OrderCompleted))
	assert.ErrorIs(t, svc.UpdateOrderStatus(ctx, order.ID, "lost"), services.ErrValidation)
	assert.ErrorIs(t, svc.UpdateOrderStatus(ctx, order.ID+1, models.OrderCompleted), services.ErrNotFound)
}
