package database

import (
	"log/slog"

	"engler-house/internal/models"

	"gorm.io/gorm"
)

// CreateAuditLog пишет запись в журнал. Ошибка записи только логируется.
func CreateAuditLog(db *gorm.DB, userID uint, entity string, entityID uint, action, details string) {
	if db == nil || userID == 0 {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := db.Create(&record).Error; err != nil {
		slog.Warn("could not write audit log", "entity", entity, "entityID", entityID, "err", err)
	}
}

func ListAuditLogs(db *gorm.DB, entity string, entityID uint) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	q := db.Order("created_at desc, id desc").Limit(200)
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if entityID != 0 {
		q = q.Where("entity_id = ?", entityID)
	}
	err := q.Find(&logs).Error
	return logs, err
}
