package model

import (
	"math"
	"math/bits"
)

type TicketType string

const (
	TicketStag   TicketType = "STAG"
	TicketCouple TicketType = "COUPLE"
)

func (t TicketType) Valid() bool {
	return t == TicketStag || t == TicketCouple
}

type Ticket struct {
	Type     TicketType `json:"type" bson:"type"`
	Quantity int        `json:"quantity" bson:"quantity"`
	Price    float64    `json:"price" bson:"price"`
}

func (t Ticket) Subtotal() float64 {
	return t.Price * float64(t.Quantity)
}

// ToMinorUnits converts a major-unit currency amount (rupees) to the
// provider's integer minor unit (paise).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func FromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}

func TicketsTotal(tickets []Ticket) float64 {
	total, _ := TicketsTotalMinor(tickets)
	return FromMinorUnits(total)
}

// TicketsTotalMinor sums price*quantity in paise. It reports false when a
// line has a negative price or quantity, or when the sum does not fit int64.
func TicketsTotalMinor(tickets []Ticket) (int64, bool) {
	var total uint64
	for _, ticket := range tickets {
		price := ToMinorUnits(ticket.Price)
		if price < 0 || ticket.Quantity < 0 {
			return 0, false
		}
		hi, subtotal := bits.Mul64(uint64(price), uint64(ticket.Quantity))
		if hi != 0 || subtotal > math.MaxInt64 {
			return 0, false
		}
		sum, carry := bits.Add64(total, subtotal, 0)
		if carry != 0 || sum > math.MaxInt64 {
			return 0, false
		}
		total = sum
	}
	return int64(total), true
}
