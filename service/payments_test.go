package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"tickets-webapp/database"
	"tickets-webapp/model"
	"tickets-webapp/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	gateway  *fakeGateway
	ledger   *payment.MemoryLedger
	store    *database.MemoryBookingStore
	orders   *OrderService
	payments *PaymentService
	bookings *BookingService
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		gateway: newFakeGateway(),
		ledger:  payment.NewMemoryLedger(0),
		store:   database.NewMemoryBookingStore(),
	}
	f.orders = NewOrderService(f.gateway, f.ledger, nopLogger())
	f.payments = NewPaymentService(testSecret, defaultCatalog(), f.gateway, f.ledger, f.store, nopLogger())
	f.bookings = NewBookingService(f.store)
	return f
}

func signedRequest(orderID, paymentID string, form BookingForm) VerifyPaymentRequest {
	return VerifyPaymentRequest{
		OrderId:   orderID,
		PaymentId: paymentID,
		Signature: payment.Sign(testSecret, orderID, paymentID),
		FormData:  form,
	}
}

func TestCheckoutScenario(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()

	order, err := f.orders.CreateOrder(ctx, 650)
	require.NoError(t, err)
	assert.Equal(t, int64(65000), order.Amount)

	booking, err := f.payments.VerifyPayment(ctx, signedRequest(order.Id, "pay_1", scenarioForm("user-1")))
	require.NoError(t, err)

	assert.Equal(t, 650.0, booking.TotalAmount)
	assert.Len(t, booking.Tickets, 2)
	assert.Equal(t, model.StatusConfirmed, booking.Status)
	assert.Equal(t, "pay_1", booking.PaymentId)
	assert.Equal(t, order.Id, booking.OrderId)
	assert.True(t, strings.HasPrefix(booking.BookingId, "BN"))
	assert.Len(t, booking.BookingId, 34)
	assert.False(t, booking.CreatedAt.IsZero())
	assert.Equal(t, 1, f.store.Len())

	passes, err := f.bookings.PassesForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, passes, 2)
	assert.Equal(t, 250.0, passes[0].TotalAmount)
	assert.Equal(t, 400.0, passes[1].TotalAmount)
	assert.Equal(t, booking.BookingId, passes[1].BookingId)
}

func TestVerifyPaymentRejectsMismatchedSignatures(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()

	order, err := f.orders.CreateOrder(ctx, 650)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		req := signedRequest(order.Id, fmt.Sprintf("pay_%d", i), scenarioForm("user-1"))
		switch i % 4 {
		case 0:
			req.Signature = payment.Sign("wrong-secret", req.OrderId, req.PaymentId)
		case 1:
			req.Signature = payment.Sign(testSecret, req.OrderId, fmt.Sprintf("pay_other_%d", i))
		case 2:
			req.Signature = strings.ToUpper(req.Signature)
		case 3:
			req.Signature = ""
		}

		_, err := f.payments.VerifyPayment(ctx, req)
		require.ErrorIs(t, err, ErrInvalidSignature)
	}

	assert.Equal(t, 0, f.store.Len())
}

func TestVerifyPaymentIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()

	order, err := f.orders.CreateOrder(ctx, 650)
	require.NoError(t, err)
	req := signedRequest(order.Id, "pay_1", scenarioForm("user-1"))

	first, err := f.payments.VerifyPayment(ctx, req)
	require.NoError(t, err)
	second, err := f.payments.VerifyPayment(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.BookingId, second.BookingId)
	assert.Equal(t, 1, f.store.Len())
}

func TestVerifyPaymentConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()

	order, err := f.orders.CreateOrder(ctx, 650)
	require.NoError(t, err)
	req := signedRequest(order.Id, "pay_race", scenarioForm("user-1"))

	var wg sync.WaitGroup
	ids := make(chan string, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			booking, err := f.payments.VerifyPayment(ctx, req)
			if assert.NoError(t, err) {
				ids <- booking.BookingId
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, 1)
	assert.Equal(t, 1, f.store.Len())
}

func TestVerifyPaymentRejectsAmountMismatch(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()

	order, err := f.orders.CreateOrder(ctx, 250)
	require.NoError(t, err)

	_, err = f.payments.VerifyPayment(ctx, signedRequest(order.Id, "pay_1", scenarioForm("user-1")))
	assert.ErrorIs(t, err, ErrAmountMismatch)
	assert.Equal(t, 0, f.store.Len())
}

func TestVerifyPaymentFallsBackToProvider(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()

	order, err := f.gateway.CreateOrder(ctx, 65000, "receipt_external")
	require.NoError(t, err)

	booking, err := f.payments.VerifyPayment(ctx, signedRequest(order.Id, "pay_1", scenarioForm("user-1")))
	require.NoError(t, err)
	assert.Equal(t, 650.0, booking.TotalAmount)
	assert.Equal(t, 1, f.gateway.fetches)
}

func TestVerifyPaymentProviderUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()
	f.gateway.fetchErr = errors.New("timeout")

	_, err := f.payments.VerifyPayment(ctx, signedRequest("order_unknown", "pay_1", scenarioForm("user-1")))
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Equal(t, 0, f.store.Len())
}

func TestVerifyPaymentLedgerErrorUsesProvider(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	store := database.NewMemoryBookingStore()
	svc := NewPaymentService(testSecret, defaultCatalog(), gateway, failingLedger{err: errors.New("redis down")}, store, nopLogger())

	order, err := gateway.CreateOrder(ctx, 65000, "receipt_1")
	require.NoError(t, err)

	_, err = svc.VerifyPayment(ctx, signedRequest(order.Id, "pay_1", scenarioForm("user-1")))
	require.NoError(t, err)
	assert.Equal(t, 1, gateway.fetches)
}

func TestVerifyPaymentValidatesBookingForm(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*BookingForm)
		want   error
	}{
		{"no tickets", func(f *BookingForm) { f.Tickets = nil; f.TotalAmount = 0 }, ErrInvalidBooking},
		{"unknown type", func(f *BookingForm) { f.Tickets[0].Type = "VIP" }, ErrInvalidBooking},
		{"zero quantity", func(f *BookingForm) { f.Tickets[0].Quantity = 0; f.TotalAmount = 400 }, ErrInvalidBooking},
		{"wrong price", func(f *BookingForm) { f.Tickets[0].Price = 1; f.TotalAmount = 401 }, ErrInvalidBooking},
		{"total not sum", func(f *BookingForm) { f.TotalAmount = 600 }, ErrInvalidBooking},
		{"quantity above limit", func(f *BookingForm) { f.Tickets[0].Quantity = 11; f.TotalAmount = 3150 }, ErrInvalidBooking},
		{"quantity wraps total", func(f *BookingForm) {
			f.Tickets = []model.Ticket{{Type: model.TicketStag, Quantity: 1 + 1<<61, Price: 250}}
			f.TotalAmount = 250
		}, ErrInvalidBooking},
		{"missing name", func(f *BookingForm) { f.Name = "  " }, ErrInvalidBooking},
		{"missing user", func(f *BookingForm) { f.UserId = "" }, ErrInvalidBooking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPaymentFixture()
			order, err := f.orders.CreateOrder(ctx, 650)
			require.NoError(t, err)

			form := scenarioForm("user-1")
			tt.mutate(&form)

			_, err = f.payments.VerifyPayment(ctx, signedRequest(order.Id, "pay_1", form))
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, f.store.Len())
		})
	}
}

func TestVerifyPaymentRejectsWrappedQuantity(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()
	order, err := f.orders.CreateOrder(ctx, 250)
	require.NoError(t, err)

	form := scenarioForm("user-1")
	form.Tickets = []model.Ticket{{Type: model.TicketStag, Quantity: 1 + 1<<61, Price: 250}}
	form.TotalAmount = 250

	_, err = f.payments.VerifyPayment(ctx, signedRequest(order.Id, "pay_1", form))
	assert.ErrorIs(t, err, ErrInvalidBooking)
	assert.Equal(t, 0, f.store.Len())

	passes, err := f.bookings.PassesForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, passes)
}

func TestVerifyPaymentRegeneratesCollidingBookingID(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()

	ids := []string{"BNFIXED", "BNFIXED", "BNFRESH"}
	f.payments.newBookingID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	first, err := f.orders.CreateOrder(ctx, 650)
	require.NoError(t, err)
	second, err := f.orders.CreateOrder(ctx, 650)
	require.NoError(t, err)

	a, err := f.payments.VerifyPayment(ctx, signedRequest(first.Id, "pay_a", scenarioForm("user-1")))
	require.NoError(t, err)
	b, err := f.payments.VerifyPayment(ctx, signedRequest(second.Id, "pay_b", scenarioForm("user-1")))
	require.NoError(t, err)

	assert.Equal(t, "BNFIXED", a.BookingId)
	assert.Equal(t, "BNFRESH", b.BookingId)
	assert.Equal(t, 2, f.store.Len())
}

func TestNewBookingIDIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewBookingID()
		require.Len(t, id, 34)
		require.False(t, seen[id])
		seen[id] = true
	}
}
