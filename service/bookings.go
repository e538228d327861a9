package service

import (
	"context"
	"fmt"

	"tickets-webapp/model"
)

type BookingService struct {
	bookings BookingStore
}

func NewBookingService(bookings BookingStore) *BookingService {
	return &BookingService{bookings: bookings}
}

func (s *BookingService) BookingsForEmail(ctx context.Context, email string) ([]model.Booking, error) {
	bookings, err := s.bookings.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return bookings, nil
}

// AllBookings is the unfiltered diagnostic listing; callers gate it behind
// the admin role.
func (s *BookingService) AllBookings(ctx context.Context) ([]model.Booking, error) {
	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return bookings, nil
}

// PassesForUser derives one pass per ticket line-item of every booking the
// user holds, in store order.
func (s *BookingService) PassesForUser(ctx context.Context, userID string) ([]model.Pass, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	bookings, err := s.bookings.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return ProjectPasses(bookings), nil
}

func ProjectPasses(bookings []model.Booking) []model.Pass {
	passes := []model.Pass{}
	for _, booking := range bookings {
		for line, ticket := range booking.Tickets {
			passes = append(passes, model.Pass{
				Id:          model.PassID(booking, line),
				BookingId:   booking.BookingId,
				TicketType:  ticket.Type,
				Quantity:    ticket.Quantity,
				Price:       ticket.Price,
				TotalAmount: ticket.Subtotal(),
				Name:        booking.Name,
				Email:       booking.Email,
				Phone:       booking.Phone,
				Status:      booking.Status,
				CreatedAt:   booking.CreatedAt,
			})
		}
	}
	return passes
}
