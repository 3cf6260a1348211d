package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"engler-house/internal/services"

	"github.com/gin-gonic/gin"
)

type inquiryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SubmitInquiry принимает JSON формы обратной связи. Маршрут принимает любой метод,
// чтобы на не-POST отвечать 405 в том же формате.
func (h *Handler) SubmitInquiry(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		c.JSON(http.StatusMethodNotAllowed, inquiryResponse{Message: "Метод не поддерживается"})
		return
	}

	var in services.InquiryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, inquiryResponse{Message: "Неверный формат данных"})
		return
	}

	_, err := h.Inquiries.Submit(c.Request.Context(), in)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, inquiryResponse{Success: true, Message: "Заявка успешно отправлена"})
	case errors.Is(err, services.ErrValidation):
		msg := "Все поля обязательны для заполнения"
		for _, m := range services.FieldErrors(err) {
			if m != services.MsgRequired {
				msg = "Слишком длинное значение в форме"
			}
		}
		c.JSON(http.StatusBadRequest, inquiryResponse{Message: msg})
	default:
		slog.Error("could not store inquiry", "err", err)
		c.JSON(http.StatusInternalServerError, inquiryResponse{Message: "Ошибка сервера, попробуйте позже"})
	}
}
