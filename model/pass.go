package model

import (
	"fmt"
	"time"
)

// Pass is a read-only view of one ticket line-item of a booking. Id is
// unique per line-item; BookingId ties the passes of one booking together.
type Pass struct {
	Id          string        `json:"_id"`
	BookingId   string        `json:"bookingId"`
	TicketType  TicketType    `json:"ticketType"`
	Quantity    int           `json:"quantity"`
	Price       float64       `json:"price"`
	TotalAmount float64       `json:"totalAmount"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

func PassID(booking Booking, line int) string {
	return fmt.Sprintf("%s-%d", booking.Id.Hex(), line)
}
