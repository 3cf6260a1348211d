package repositories

import (
	"context"

	"engler-house/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// порядок вывода для упорядоченного контента: по полю порядка, затем новые раньше
const sortedOrder = "sort_order asc, created_at desc"

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) ActiveHero(ctx context.Context) (*models.HeroSection, error) {
	return FirstActive[models.HeroSection](ctx, r.db)
}

func (r *ContentRepository) ActivePress(ctx context.Context) (*models.Press, error) {
	return FirstActive[models.Press](ctx, r.db)
}

func (r *ContentRepository) ActiveContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	return FirstActive[models.ContactInfo](ctx, r.db)
}

func (r *ContentRepository) SaveHero(ctx context.Context, hero *models.HeroSection) error {
	return SaveSingleton(ctx, r.db, hero)
}

func (r *ContentRepository) SavePress(ctx context.Context, press *models.Press) error {
	return SaveSingleton(ctx, r.db, press)
}

func (r *ContentRepository) SaveContactInfo(ctx context.Context, info *models.ContactInfo) error {
	return SaveSingleton(ctx, r.db, info)
}

func (r *ContentRepository) ActivateHero(ctx context.Context, id uint) error {
	return ActivateSingleton[models.HeroSection](ctx, r.db, id)
}

func (r *ContentRepository) ActivatePress(ctx context.Context, id uint) error {
	return ActivateSingleton[models.Press](ctx, r.db, id)
}

func (r *ContentRepository) ActivateContactInfo(ctx context.Context, id uint) error {
	return ActivateSingleton[models.ContactInfo](ctx, r.db, id)
}

// listActive возвращает активные записи в порядке вывода; limit <= 0 значит без ограничения.
func listActive[T any](ctx context.Context, db *gorm.DB, limit int) ([]T, error) {
	var items []T
	q := db.WithContext(ctx).Where("is_active = ?", true).Order(sortedOrder)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "could not list content")
	}
	return items, nil
}

func (r *ContentRepository) ListServices(ctx context.Context, limit int) ([]models.Service, error) {
	return listActive[models.Service](ctx, r.db, limit)
}

func (r *ContentRepository) ListProjects(ctx context.Context, limit int) ([]models.Project, error) {
	return listActive[models.Project](ctx, r.db, limit)
}

func (r *ContentRepository) ListPressItems(ctx context.Context, limit int) ([]models.PressItem, error) {
	return listActive[models.PressItem](ctx, r.db, limit)
}

func (r *ContentRepository) ListArchitects(ctx context.Context, limit int) ([]models.Architect, error) {
	return listActive[models.Architect](ctx, r.db, limit)
}

// GetActiveProject загружает активный проект вместе с активными картинками карусели и блоками.
func (r *ContentRepository) GetActiveProject(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("CarouselImages", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order(sortedOrder)
		}).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order(sortedOrder)
		}).
		Where("is_active = ?", true).
		First(&project, id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &project, nil
}

// DeleteProject удаляет проект вместе со всем, что ему принадлежит.
func (r *ContentRepository) DeleteProject(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			return translateNotFound(err)
		}
		for _, child := range []any{&models.ProjectCarousel{}, &models.ProjectDetail{}, &models.Review{}} {
			if err := tx.Where("project_id = ?", id).Delete(child).Error; err != nil {
				return errors.Wrap(err, "could not delete project children")
			}
		}
		if err := tx.Model(&models.Order{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
			return errors.Wrap(err, "could not detach orders")
		}
		return errors.Wrap(tx.Delete(&project).Error, "could not delete project")
	})
}

func (r *ContentRepository) CountActiveGallery(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GalleryImage{}).Where("is_active = ?", true).Count(&count).Error
	return count, errors.Wrap(err, "could not count gallery")
}

// GallerySlots раскладывает активные картинки по позициям 1..10, на позицию берётся первая по порядку.
func (r *ContentRepository) GallerySlots(ctx context.Context) (map[int]*models.GalleryImage, error) {
	var images []models.GalleryImage
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND sort_order BETWEEN ? AND ?", true, 1, models.GalleryMaxSlot).
		Order(sortedOrder).
		Find(&images).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not load gallery")
	}

	slots := make(map[int]*models.GalleryImage, models.GallerySlots)
	for i := range images {
		if _, taken := slots[images[i].SortOrder]; !taken {
			slots[images[i].SortOrder] = &images[i]
		}
	}
	return slots, nil
}

func (r *ContentRepository) ListApprovedReviews(ctx context.Context, limit int) ([]models.Review, error) {
	var reviews []models.Review
	q := r.db.WithContext(ctx).Preload("Project").Where("is_active = ?", true).Order("created_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&reviews).Error; err != nil {
		return nil, errors.Wrap(err, "could not list reviews")
	}
	return reviews, nil
}

func (r *ContentRepository) CreateReview(ctx context.Context, review *models.Review) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(review).Error, "could not create review")
}

// SetReviewActive включает или скрывает отзыв.
func (r *ContentRepository) SetReviewActive(ctx context.Context, id uint, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return errors.Wrap(res.Error, "could not moderate review")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Create сохраняет произвольную запись каталога (услуга, картинка галереи, архитектор ...).
func (r *ContentRepository) Create(ctx context.Context, item any) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(item).Error, "could not create content")
}
