package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"engler-house/internal/mocks"
	"engler-house/internal/models"
	"engler-house/internal/notify"
	"engler-house/internal/repositories"
	"engler-house/internal/services"
	"engler-house/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInquirySubmit(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	n := mocks.NewNotifier(t)
	svc := services.NewInquiryService(repositories.NewInquiryRepository(db), n, "office@example.com")

	t.Run("stores trimmed values and notifies the studio", func(t *testing.T) {
		n.On("Notify", mock.Anything, mock.MatchedBy(func(ev notify.Event) bool {
			e, ok := ev.(notify.InquiryReceived)
			return ok && e.Recipient == "office@example.com" && e.Inquiry.Name == "Иван"
		})).Return(nil).Once()

		inq, err := svc.Submit(ctx, services.InquiryInput{Name: " Иван ", Email: "ivan@example.com", Phone: " +7 900 000-00-00 "})
		require.NoError(t, err)
		assert.Equal(t, "+7 900 000-00-00", inq.Phone)
		assert.False(t, inq.IsProcessed)
	})

	t.Run("notification failure keeps the inquiry", func(t *testing.T) {
		n.On("Notify", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		inq, err := svc.Submit(ctx, services.InquiryInput{Name: "Олег", Email: "oleg@example.com", Phone: "123"})
		require.NoError(t, err)
		assert.NotZero(t, inq.ID)
	})

	t.Run("rejects blank and oversized fields without storing", func(t *testing.T) {
		before, err := svc.List(ctx, false)
		require.NoError(t, err)

		_, err = svc.Submit(ctx, services.InquiryInput{Name: "Иван", Email: "ivan@example.com", Phone: "   "})
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Contains(t, services.FieldErrors(err), "phone")

		_, err = svc.Submit(ctx, services.InquiryInput{Name: "Иван", Email: "ivan@example.com", Phone: strings.Repeat("1", 21)})
		assert.ErrorIs(t, err, services.ErrValidation)

		after, err := svc.List(ctx, false)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("processing", func(t *testing.T) {
		all, err := svc.List(ctx, true)
		require.NoError(t, err)
		require.NotEmpty(t, all)

		require.NoError(t, svc.MarkProcessed(ctx, all[0].ID, true))
		fresh, err := svc.List(ctx, true)
		require.NoError(t, err)
		assert.Len(t, fresh, len(all)-1)

		var stored models.Inquiry
		require.NoError(t, db.First(&stored, all[0].ID).Error)
		assert.True(t, stored.IsProcessed)
	})
}
