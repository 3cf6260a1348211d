package repositories

import (
	"context"

	"engler-house/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type InquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(inquiry).Error, "could not create inquiry")
}

// List возвращает заявки, новые первыми; onlyNew оставляет необработанные.
func (r *InquiryRepository) List(ctx context.Context, onlyNew bool) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	q := r.db.WithContext(ctx).Order("created_at desc, id desc")
	if onlyNew {
		q = q.Where("is_processed = ?", false)
	}
	err := q.Find(&inquiries).Error
	return inquiries, errors.Wrap(err, "could not list inquiries")
}

// SetProcessed меняет единственное изменяемое поле заявки.
func (r *InquiryRepository) SetProcessed(ctx context.Context, id uint, processed bool) error {
	res := r.db.WithContext(ctx).Model(&models.Inquiry{}).Where("id = ?", id).Update("is_processed", processed)
	if res.Error != nil {
		return errors.Wrap(res.Error, "could not update inquiry")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
