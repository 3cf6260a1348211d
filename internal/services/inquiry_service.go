package services

import (
	"context"
	"log/slog"
	"strings"

	"engler-house/internal/models"
	"engler-house/internal/monitoring"
	"engler-house/internal/notify"
	"engler-house/internal/repositories"
)

// InquiryInput содержит поля формы обратной связи. Формат email и телефона не проверяется.
type InquiryInput struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,max=254"`
	Phone string `json:"phone" validate:"required,max=20"`
}

type InquiryService struct {
	inquiries *repositories.InquiryRepository
	notifier  notify.Notifier
	recipient string
}

func NewInquiryService(inquiries *repositories.InquiryRepository, notifier notify.Notifier, recipient string) *InquiryService {
	return &InquiryService{inquiries: inquiries, notifier: notifier, recipient: recipient}
}

// Submit сохраняет заявку и сообщает о ней студии. Сбой письма заявку не отменяет.
func (s *InquiryService) Submit(ctx context.Context, in InquiryInput) (*models.Inquiry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := check(in).Err(); err != nil {
		return nil, err
	}

	inquiry := &models.Inquiry{Name: in.Name, Email: in.Email, Phone: in.Phone}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	monitoring.InquiriesReceived.Inc()
	slog.Info("inquiry received", "id", inquiry.ID)

	notify.BestEffort(ctx, s.notifier, notify.InquiryReceived{Inquiry: *inquiry, Recipient: s.recipient})
	return inquiry, nil
}

func (s *InquiryService) List(ctx context.Context, onlyNew bool) ([]models.Inquiry, error) {
	return s.inquiries.List(ctx, onlyNew)
}

func (s *InquiryService) MarkProcessed(ctx context.Context, id uint, processed bool) error {
	return s.inquiries.SetProcessed(ctx, id, processed)
}
