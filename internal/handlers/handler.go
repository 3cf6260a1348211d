package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"engler-house/internal/repositories"
	"engler-house/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler собирает зависимости всех HTTP-обработчиков сайта и админки.
type Handler struct {
	DB        *gorm.DB
	Pages     *services.PageService
	Orders    *services.OrderService
	Accounts  *services.AccountService
	Inquiries *services.InquiryService
	Reviews   *services.ReviewService
	Content   *repositories.ContentRepository
}

func New(db *gorm.DB, pages *services.PageService, orders *services.OrderService, accounts *services.AccountService,
	inquiries *services.InquiryService, reviews *services.ReviewService, content *repositories.ContentRepository) *Handler {
	return &Handler{
		DB:        db,
		Pages:     pages,
		Orders:    orders,
		Accounts:  accounts,
		Inquiries: inquiries,
		Reviews:   reviews,
		Content:   content,
	}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", nil)
}

func serverError(c *gin.Context, err error) {
	slog.Error("request failed", "path", c.Request.URL.Path, "err", err)
	c.String(http.StatusInternalServerError, "Внутренняя ошибка сервера")
}
