package database

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"tickets-webapp/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooking(paymentID, userID, email string) model.Booking {
	return model.Booking{
		Tickets:     []model.Ticket{{Type: model.TicketStag, Quantity: 1, Price: 250}},
		TotalAmount: 250,
		Name:        "Asha Rao",
		Email:       email,
		Phone:       "9876543210",
		UserId:      userID,
		PaymentId:   paymentID,
		BookingId:   "BN" + paymentID,
		Status:      model.StatusConfirmed,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestMemoryBookingStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBookingStore()

	t.Run("InsertAssignsID", func(t *testing.T) {
		saved, err := store.Insert(ctx, testBooking("pay_1", "u1", "a@example.com"))
		require.NoError(t, err)
		assert.False(t, saved.Id.IsZero())
	})

	t.Run("InsertRejectsMissingField", func(t *testing.T) {
		booking := testBooking("pay_2", "u1", "a@example.com")
		booking.Email = ""
		_, err := store.Insert(ctx, booking)
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("InsertRejectsDuplicatePayment", func(t *testing.T) {
		booking := testBooking("pay_1", "u2", "b@example.com")
		booking.BookingId = "BNother"
		_, err := store.Insert(ctx, booking)
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("InsertRejectsDuplicateBookingID", func(t *testing.T) {
		booking := testBooking("pay_3", "u2", "b@example.com")
		booking.BookingId = "BNpay_1"
		_, err := store.Insert(ctx, booking)
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("QueriesKeepInsertionOrder", func(t *testing.T) {
		_, err := store.Insert(ctx, testBooking("pay_4", "u2", "b@example.com"))
		require.NoError(t, err)
		_, err = store.Insert(ctx, testBooking("pay_5", "u1", "a@example.com"))
		require.NoError(t, err)

		byUser, err := store.FindByUserID(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, byUser, 2)
		assert.Equal(t, "pay_1", byUser[0].PaymentId)
		assert.Equal(t, "pay_5", byUser[1].PaymentId)

		byEmail, err := store.FindByEmail(ctx, "b@example.com")
		require.NoError(t, err)
		require.Len(t, byEmail, 1)
		assert.Equal(t, "pay_4", byEmail[0].PaymentId)

		none, err := store.FindByEmail(ctx, "B@example.com")
		require.NoError(t, err)
		assert.Empty(t, none)

		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("FindByPaymentID", func(t *testing.T) {
		found, err := store.FindByPaymentID(ctx, "pay_4")
		require.NoError(t, err)
		assert.Equal(t, "u2", found.UserId)

		_, err = store.FindByPaymentID(ctx, "pay_missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ResultsAreCopies", func(t *testing.T) {
		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		all[0].Tickets[0].Quantity = 99

		again, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, again[0].Tickets[0].Quantity)
	})
}

func TestMemoryBookingStoreConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBookingStore()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			booking := testBooking("pay_race", "u1", "a@example.com")
			booking.BookingId = fmt.Sprintf("BN%d", i)
			_, err := store.Insert(ctx, booking)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrDuplicate)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryUserStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	saved, err := store.Insert(ctx, model.UserData{Name: "Asha", Email: "asha@example.com", Role: model.RoleUser})
	require.NoError(t, err)
	assert.False(t, saved.Id.IsZero())

	_, err = store.Insert(ctx, model.UserData{Name: "Other", Email: "ASHA@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	found, err := store.FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, saved.Id, found.Id)

	_, err = store.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
