package repositories

import (
	"context"

	"engler-house/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// singletonPtr ограничивает дженерики указателями на модели с единственной активной записью.
type singletonPtr[T any] interface {
	*T
	models.Singleton
}

// SaveSingleton сохраняет запись; если она активна, в той же транзакции
// снимает флаг со всех остальных записей этого типа.
func SaveSingleton[T any, PT singletonPtr[T]](ctx context.Context, db *gorm.DB, rec PT) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rec.Active() {
			if err := deactivateOthers[T](tx, rec.GetID()); err != nil {
				return err
			}
		}
		return errors.Wrap(tx.Save(rec).Error, "could not save singleton")
	})
}

// ActivateSingleton делает запись id единственной активной.
func ActivateSingleton[T any](ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec T
		if err := tx.First(&rec, id).Error; err != nil {
			return translateNotFound(err)
		}
		if err := deactivateOthers[T](tx, id); err != nil {
			return err
		}
		err := tx.Model(new(T)).Where("id = ?", id).Update("is_active", true).Error
		return errors.Wrap(err, "could not activate singleton")
	})
}

// FirstActive возвращает активную запись или nil: допускается, что её нет вовсе.
func FirstActive[T any](ctx context.Context, db *gorm.DB) (*T, error) {
	var recs []T
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at desc, id desc").
		Limit(1).
		Find(&recs).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not load active record")
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func deactivateOthers[T any](tx *gorm.DB, exceptID uint) error {
	q := tx.Model(new(T)).Where("is_active = ?", true)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	return errors.Wrap(q.Update("is_active", false).Error, "could not deactivate records")
}
