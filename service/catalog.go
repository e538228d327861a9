package service

import (
	"fmt"

	"tickets-webapp/model"
)

// DefaultMaxQuantity caps a single line-item when the config leaves it unset.
const DefaultMaxQuantity = 20

// Catalog holds the price in rupees of each ticket type on sale and the
// largest quantity one line-item may carry.
type Catalog struct {
	prices      map[model.TicketType]float64
	maxQuantity int
}

func NewCatalog(prices map[string]float64, maxQuantity int) Catalog {
	if maxQuantity <= 0 {
		maxQuantity = DefaultMaxQuantity
	}
	catalog := Catalog{
		prices:      make(map[model.TicketType]float64, len(prices)),
		maxQuantity: maxQuantity,
	}
	for ticketType, price := range prices {
		catalog.prices[model.TicketType(ticketType)] = price
	}
	return catalog
}

// Validate checks every line-item against the catalog and that totalAmount is
// the sum of the line-item subtotals.
func (c Catalog) Validate(tickets []model.Ticket, totalAmount float64) error {
	if len(tickets) == 0 {
		return fmt.Errorf("%w: no tickets", ErrInvalidBooking)
	}

	for i, ticket := range tickets {
		if !ticket.Type.Valid() {
			return fmt.Errorf("%w: ticket %d has unknown type %q", ErrInvalidBooking, i, ticket.Type)
		}
		price, ok := c.prices[ticket.Type]
		if !ok {
			return fmt.Errorf("%w: %s tickets are not on sale", ErrInvalidBooking, ticket.Type)
		}
		if ticket.Quantity <= 0 || ticket.Quantity > c.maxQuantity {
			return fmt.Errorf("%w: ticket %d quantity must be between 1 and %d", ErrInvalidBooking, i, c.maxQuantity)
		}
		if model.ToMinorUnits(ticket.Price) != model.ToMinorUnits(price) {
			return fmt.Errorf("%w: %s costs %.2f, got %.2f", ErrInvalidBooking, ticket.Type, price, ticket.Price)
		}
	}

	total, ok := model.TicketsTotalMinor(tickets)
	if !ok {
		return fmt.Errorf("%w: ticket total out of range", ErrInvalidBooking)
	}
	if model.ToMinorUnits(totalAmount) != total {
		return fmt.Errorf("%w: total %.2f does not match tickets", ErrInvalidBooking, totalAmount)
	}

	return nil
}
