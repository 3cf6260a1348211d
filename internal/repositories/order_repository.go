package repositories

import (
	"context"

	"engler-house/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const taskOrder = "order_num asc, id asc"

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func preloadTasks(db *gorm.DB) *gorm.DB {
	return db.Order(taskOrder)
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return errors.Wrap(r.db.WithContext(ctx).Omit("User", "Project", "Tasks").Create(order).Error, "could not create order")
}

func (r *OrderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("order_number = ?", number).Count(&count).Error
	return count > 0, errors.Wrap(err, "could not check order number")
}

// GetByID загружает заказ с владельцем и этапами.
func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Project").
		Preload("Tasks", preloadTasks).
		First(&order, id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &order, nil
}

// ListByUser возвращает заказы клиента, новые первыми.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Tasks", preloadTasks).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&orders).Error
	return orders, errors.Wrap(err, "could not list orders")
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return errors.Wrap(res.Error, "could not update order status")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrderRepository) CreateTask(ctx context.Context, task *models.OrderTask) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(task).Error, "could not create task")
}

func (r *OrderRepository) GetTask(ctx context.Context, id uint) (*models.OrderTask, error) {
	var task models.OrderTask
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &task, nil
}

func (r *OrderRepository) SaveTask(ctx context.Context, task *models.OrderTask) error {
	return errors.Wrap(r.db.WithContext(ctx).Save(task).Error, "could not save task")
}

func (r *OrderRepository) DeleteTask(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.OrderTask{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "could not delete task")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
