package services

import (
	"context"
	"strings"

	"engler-house/internal/models"
	"engler-house/internal/repositories"
)

type ReviewInput struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,max=100"`
	Comment   string `json:"comment" form:"comment" validate:"required"`
}

type ReviewService struct {
	content *repositories.ContentRepository
}

func NewReviewService(content *repositories.ContentRepository) *ReviewService {
	return &ReviewService{content: content}
}

// Submit сохраняет отзыв скрытым; на сайте он появится после модерации.
func (s *ReviewService) Submit(ctx context.Context, projectID uint, in ReviewInput) (*models.Review, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Comment = strings.TrimSpace(in.Comment)

	if err := check(in).Err(); err != nil {
		return nil, err
	}
	if _, err := s.content.GetActiveProject(ctx, projectID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ProjectID: projectID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Comment:   in.Comment,
		IsActive:  false,
	}
	if err := s.content.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Approve(ctx context.Context, id uint) error {
	return s.content.SetReviewActive(ctx, id, true)
}

func (s *ReviewService) Hide(ctx context.Context, id uint) error {
	return s.content.SetReviewActive(ctx, id, false)
}
