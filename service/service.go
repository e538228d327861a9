// Package service holds the payment, booking, and account use cases. Every
// dependency is handed in by the caller; nothing here keeps global state.
package service

import (
	"context"
	"errors"

	"tickets-webapp/model"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	ErrInvalidSignature    = errors.New("invalid payment signature")
	ErrInvalidBooking      = errors.New("invalid booking details")
	ErrAmountMismatch      = errors.New("amount does not match order")
	ErrPersistence         = errors.New("persistence failure")
	ErrUnauthorized        = errors.New("caller identity required")
	ErrInvalidAccount      = errors.New("invalid account details")
	ErrAccountExists       = errors.New("account already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
)

type BookingStore interface {
	Insert(ctx context.Context, booking model.Booking) (model.Booking, error)
	FindByEmail(ctx context.Context, email string) ([]model.Booking, error)
	FindByUserID(ctx context.Context, userID string) ([]model.Booking, error)
	FindByPaymentID(ctx context.Context, paymentID string) (model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
}

type UserStore interface {
	Insert(ctx context.Context, user model.UserData) (model.UserData, error)
	FindByEmail(ctx context.Context, email string) (model.UserData, error)
}

type OrderGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, receipt string) (model.Order, error)
	FetchOrder(ctx context.Context, orderID string) (model.Order, error)
	Currency() string
}
