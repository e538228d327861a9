package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tickets-webapp/database"
	"tickets-webapp/metrics"
	"tickets-webapp/model"
	"tickets-webapp/payment"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxInsertAttempts = 3

type BookingForm struct {
	Tickets     []model.Ticket `json:"tickets"`
	TotalAmount float64        `json:"totalAmount"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	UserId      string         `json:"userId"`
}

type VerifyPaymentRequest struct {
	PaymentId string      `json:"razorpay_payment_id"`
	OrderId   string      `json:"razorpay_order_id"`
	Signature string      `json:"razorpay_signature"`
	FormData  BookingForm `json:"formData"`
}

type PaymentService struct {
	secret       string
	catalog      Catalog
	gateway      OrderGateway
	ledger       payment.OrderLedger
	bookings     BookingStore
	logger       *zerolog.Logger
	now          func() time.Time
	newBookingID func() string
}

func NewPaymentService(
	secret string,
	catalog Catalog,
	gateway OrderGateway,
	ledger payment.OrderLedger,
	bookings BookingStore,
	logger *zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		secret:       secret,
		catalog:      catalog,
		gateway:      gateway,
		ledger:       ledger,
		bookings:     bookings,
		logger:       logger,
		now:          time.Now,
		newBookingID: NewBookingID,
	}
}

// NewBookingID returns "BN" followed by the 32 hex digits of a random UUID.
func NewBookingID() string {
	return "BN" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// VerifyPayment checks the provider signature for the order/payment pair and
// persists a confirmed booking. Verifying the same payment again returns the
// booking stored the first time.
func (s *PaymentService) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (model.Booking, error) {
	log := s.logger.With().Str("orderId", req.OrderId).Str("paymentId", req.PaymentId).Logger()

	if req.OrderId == "" || req.PaymentId == "" || req.Signature == "" ||
		!payment.VerifySignature(s.secret, req.OrderId, req.PaymentId, req.Signature) {
		log.Warn().Msg("payment signature mismatch")
		metrics.IncVerification("invalid_signature")
		return model.Booking{}, ErrInvalidSignature
	}

	existing, err := s.bookings.FindByPaymentID(ctx, req.PaymentId)
	switch {
	case err == nil:
		log.Info().Str("bookingId", existing.BookingId).Msg("payment already verified")
		metrics.IncVerification("duplicate")
		return existing, nil
	case !errors.Is(err, database.ErrNotFound):
		log.Error().Err(err).Msg("Error looking up booking")
		metrics.IncVerification("store_error")
		return model.Booking{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	form := req.FormData
	if err := s.catalog.Validate(form.Tickets, form.TotalAmount); err != nil {
		log.Warn().Err(err).Msg("rejected booking details")
		metrics.IncVerification("invalid_booking")
		return model.Booking{}, err
	}

	charged, err := s.chargedAmount(ctx, req.OrderId)
	if err != nil {
		log.Error().Err(err).Msg("Error resolving order amount")
		metrics.IncVerification("provider_error")
		return model.Booking{}, err
	}
	if claimed := model.ToMinorUnits(form.TotalAmount); claimed != charged {
		log.Warn().Int64("claimed", claimed).Int64("charged", charged).Msg("booking total differs from order")
		metrics.IncVerification("amount_mismatch")
		return model.Booking{}, fmt.Errorf("%w: claimed %d, order %d", ErrAmountMismatch, claimed, charged)
	}

	booking := model.Booking{
		Tickets:     form.Tickets,
		TotalAmount: form.TotalAmount,
		Name:        strings.TrimSpace(form.Name),
		Email:       strings.TrimSpace(form.Email),
		Phone:       strings.TrimSpace(form.Phone),
		UserId:      form.UserId,
		PaymentId:   req.PaymentId,
		OrderId:     req.OrderId,
		Status:      model.StatusConfirmed,
		CreatedAt:   s.now().UTC(),
	}

	saved, err := s.insert(ctx, booking)
	if err != nil {
		log.Error().Err(err).Msg("Error saving booking")
		metrics.IncVerification("store_error")
		return model.Booking{}, err
	}

	log.Info().Str("bookingId", saved.BookingId).Float64("totalAmount", saved.TotalAmount).Msg("booking confirmed")
	metrics.IncVerification("confirmed")
	return saved, nil
}

// chargedAmount resolves the authoritative order amount in paise: the ledger
// first, the provider when the ledger has no usable record.
func (s *PaymentService) chargedAmount(ctx context.Context, orderID string) (int64, error) {
	record, err := s.ledger.Lookup(ctx, orderID)
	if err == nil {
		return record.AmountMinor, nil
	}
	if !errors.Is(err, payment.ErrOrderNotRecorded) {
		s.logger.Warn().Err(err).Str("orderId", orderID).Msg("order ledger unavailable, asking provider")
	}

	order, err := s.gateway.FetchOrder(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return order.Amount, nil
}

func (s *PaymentService) insert(ctx context.Context, booking model.Booking) (model.Booking, error) {
	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		booking.BookingId = s.newBookingID()

		saved, err := s.bookings.Insert(ctx, booking)
		if err == nil {
			return saved, nil
		}
		if errors.Is(err, database.ErrMissingField) {
			return model.Booking{}, fmt.Errorf("%w: %v", ErrInvalidBooking, err)
		}
		if !errors.Is(err, database.ErrDuplicate) {
			return model.Booking{}, fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		// A concurrent verification of the same payment won the insert.
		existing, findErr := s.bookings.FindByPaymentID(ctx, booking.PaymentId)
		if findErr == nil {
			return existing, nil
		}
		if !errors.Is(findErr, database.ErrNotFound) {
			return model.Booking{}, fmt.Errorf("%w: %v", ErrPersistence, findErr)
		}
	}

	return model.Booking{}, fmt.Errorf("%w: could not allocate a unique booking id", ErrPersistence)
}
