package database

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tickets-webapp/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryBookingStore keeps bookings in insertion order and enforces the same
// uniqueness rules as the Mongo indexes.
type MemoryBookingStore struct {
	mu       sync.RWMutex
	bookings []model.Booking
}

func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{}
}

func (s *MemoryBookingStore) Insert(ctx context.Context, booking model.Booking) (model.Booking, error) {
	if field := booking.MissingField(); field != "" {
		return model.Booking{}, fmt.Errorf("%w: %s", ErrMissingField, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.bookings {
		if existing.PaymentId == booking.PaymentId || existing.BookingId == booking.BookingId {
			return model.Booking{}, fmt.Errorf("%w: booking for payment %s", ErrDuplicate, booking.PaymentId)
		}
	}
	if booking.Id.IsZero() {
		booking.Id = primitive.NewObjectID()
	}
	booking.Tickets = append([]model.Ticket(nil), booking.Tickets...)
	s.bookings = append(s.bookings, booking)

	return booking, nil
}

func (s *MemoryBookingStore) FindByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	return s.filter(func(b model.Booking) bool { return b.Email == email }), nil
}

func (s *MemoryBookingStore) FindByUserID(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.filter(func(b model.Booking) bool { return b.UserId == userID }), nil
}

func (s *MemoryBookingStore) ListAll(ctx context.Context) ([]model.Booking, error) {
	return s.filter(func(model.Booking) bool { return true }), nil
}

func (s *MemoryBookingStore) FindByPaymentID(ctx context.Context, paymentID string) (model.Booking, error) {
	found := s.filter(func(b model.Booking) bool { return b.PaymentId == paymentID })
	if len(found) == 0 {
		return model.Booking{}, ErrNotFound
	}
	return found[0], nil
}

func (s *MemoryBookingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}

func (s *MemoryBookingStore) filter(match func(model.Booking) bool) []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []model.Booking{}
	for _, booking := range s.bookings {
		if match(booking) {
			booking.Tickets = append([]model.Ticket(nil), booking.Tickets...)
			result = append(result, booking)
		}
	}
	return result
}

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]model.UserData
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[string]model.UserData{}}
}

func (s *MemoryUserStore) Insert(ctx context.Context, user model.UserData) (model.UserData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := s.users[key]; ok {
		return model.UserData{}, fmt.Errorf("%w: user %s", ErrDuplicate, user.Email)
	}
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	s.users[key] = user
	return user, nil
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (model.UserData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[strings.ToLower(email)]
	if !ok {
		return model.UserData{}, ErrNotFound
	}
	return user, nil
}
