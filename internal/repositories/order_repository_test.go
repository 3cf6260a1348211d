package repositories_test

import (
	"context"
	"testing"
	"time"

	"engler-house/internal/models"
	"engler-house/internal/repositories"
	"engler-house/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createClient(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{Email: email, PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func d(month time.Month, day int) time.Time {
	return time.Date(2025, month, day, 0, 0, 0, 0, time.UTC)
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := repositories.NewOrderRepository(db)

	owner := createClient(t, db, "owner@example.com")
	other := createClient(t, db, "other@example.com")

	older := &models.Order{OrderNumber: "A-1", UserID: owner.ID, Status: models.OrderPending, StartDate: d(1, 1), EndDate: d(1, 31)}
	require.NoError(t, repo.Create(ctx, older))
	newer := &models.Order{OrderNumber: "A-2", UserID: owner.ID, Status: models.OrderPending, StartDate: d(2, 1), EndDate: d(2, 28)}
	newer.CreatedAt = time.Now().Add(time.Hour)
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, &models.Order{OrderNumber: "B-1", UserID: other.ID, Status: models.OrderPending, StartDate: d(1, 1), EndDate: d(1, 2)}))

	for _, task := range []models.OrderTask{
		{OrderID: older.ID, Title: "second", OrderNum: 2, StartDate: d(1, 10), EndDate: d(1, 12), Status: models.TaskPending},
		{OrderID: older.ID, Title: "first", OrderNum: 1, StartDate: d(1, 1), EndDate: d(1, 9), Status: models.TaskCompleted},
	} {
		task := task
		require.NoError(t, repo.CreateTask(ctx, &task))
	}

	t.Run("lists only the owner's orders, newest first, tasks in sequence", func(t *testing.T) {
		orders, err := repo.ListByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, "A-2", orders[0].OrderNumber)
		assert.Equal(t, "A-1", orders[1].OrderNumber)
		require.Len(t, orders[1].Tasks, 2)
		assert.Equal(t, "first", orders[1].Tasks[0].Title)
		assert.Equal(t, 50, orders[1].ProgressPercentage())
	})

	t.Run("dates survive a round trip", func(t *testing.T) {
		order, err := repo.GetByID(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", order.User.Email)
		assert.Equal(t, 0, models.DaysBetween(d(1, 1), order.StartDate))
		assert.Equal(t, 30, models.DaysBetween(order.StartDate, order.EndDate))
	})

	t.Run("order numbers are unique", func(t *testing.T) {
		exists, err := repo.ExistsByNumber(ctx, "A-1")
		require.NoError(t, err)
		assert.True(t, exists)

		err = repo.Create(ctx, &models.Order{OrderNumber: "A-1", UserID: owner.ID, Status: models.OrderPending, StartDate: d(1, 1), EndDate: d(1, 1)})
		assert.Error(t, err)
	})

	t.Run("status update and missing rows", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, older.ID, models.OrderInProgress))
		order, err := repo.GetByID(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderInProgress, order.Status)

		assert.ErrorIs(t, repo.UpdateStatus(ctx, 9999, models.OrderCompleted), repositories.ErrNotFound)
		_, err = repo.GetTask(ctx, 9999)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.ErrorIs(t, repo.DeleteTask(ctx, 9999), repositories.ErrNotFound)
	})
}

func TestInquiryRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewInquiryRepository(testutil.NewTestDB(t))

	first := &models.Inquiry{Name: "A", Email: "a@a.a", Phone: "1"}
	second := &models.Inquiry{Name: "B", Email: "b@b.b", Phone: "2", CreatedAt: time.Now().Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "B", all[0].Name)

	require.NoError(t, repo.SetProcessed(ctx, second.ID, true))
	pending, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "A", pending[0].Name)

	assert.ErrorIs(t, repo.SetProcessed(ctx, 9999, true), repositories.ErrNotFound)
}
