package handlers

import (
	"net/http"
	"strconv"

	"engler-house/internal/database"

	"github.com/gin-gonic/gin"
)

// AdminListAuditLogs отдаёт журнал действий сотрудников, можно сузить до одной сущности.
func (h *Handler) AdminListAuditLogs(c *gin.Context) {
	entity := c.Query("entity")

	var entityID uint
	if raw := c.Query("entity_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "entity_id must be a number"})
			return
		}
		entityID = uint(id)
	}

	logs, err := database.ListAuditLogs(h.DB.WithContext(c.Request.Context()), entity, entityID)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
