package handlers

import (
	"context"

	"tickets-webapp/model"
	"tickets-webapp/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type OrderCreator interface {
	CreateOrder(ctx context.Context, amount float64) (model.Order, error)
}

type PaymentVerifier interface {
	VerifyPayment(ctx context.Context, req service.VerifyPaymentRequest) (model.Booking, error)
}

type BookingReader interface {
	BookingsForEmail(ctx context.Context, email string) ([]model.Booking, error)
	AllBookings(ctx context.Context) ([]model.Booking, error)
	PassesForUser(ctx context.Context, userID string) ([]model.Pass, error)
}

type AccountManager interface {
	Register(ctx context.Context, req service.RegisterRequest) (service.AuthResult, error)
	Login(ctx context.Context, req service.LoginRequest) (service.AuthResult, error)
}

type Handlers struct {
	orders   OrderCreator
	payments PaymentVerifier
	bookings BookingReader
	accounts AccountManager
	logger   *zerolog.Logger
}

func New(orders OrderCreator, payments PaymentVerifier, bookings BookingReader, accounts AccountManager, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		orders:   orders,
		payments: payments,
		bookings: bookings,
		accounts: accounts,
		logger:   logger,
	}
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}
