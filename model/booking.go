package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusUsed      BookingStatus = "USED"
)

type Booking struct {
	Id          primitive.ObjectID `json:"_id" bson:"_id"`
	Tickets     []Ticket           `json:"tickets" bson:"tickets"`
	TotalAmount float64            `json:"totalAmount" bson:"totalAmount"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Phone       string             `json:"phone" bson:"phone"`
	UserId      string             `json:"userId" bson:"userId"`
	PaymentId   string             `json:"paymentId" bson:"paymentId"`
	OrderId     string             `json:"orderId,omitempty" bson:"orderId,omitempty"`
	BookingId   string             `json:"bookingId" bson:"bookingId"`
	Status      BookingStatus      `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// MissingField names the first required field that is empty, or "" when the
// booking can be persisted.
func (b Booking) MissingField() string {
	switch {
	case len(b.Tickets) == 0:
		return "tickets"
	case b.Name == "":
		return "name"
	case b.Email == "":
		return "email"
	case b.Phone == "":
		return "phone"
	case b.UserId == "":
		return "userId"
	case b.PaymentId == "":
		return "paymentId"
	case b.BookingId == "":
		return "bookingId"
	}
	return ""
}
