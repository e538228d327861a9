package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tickets-webapp/model"

	"github.com/rs/zerolog"
)

const testSecret = "rzp_test_secret"

type fakeGateway struct {
	mu       sync.Mutex
	orders   map[string]model.Order
	seq      int
	err      error
	fetchErr error
	fetches  int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{orders: map[string]model.Order{}}
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amountMinor int64, receipt string) (model.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return model.Order{}, g.err
	}
	g.seq++
	order := model.Order{Id: fmt.Sprintf("order_%d", g.seq), Amount: amountMinor, Currency: "INR"}
	g.orders[order.Id] = order
	return order, nil
}

func (g *fakeGateway) FetchOrder(ctx context.Context, orderID string) (model.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetches++
	if g.fetchErr != nil {
		return model.Order{}, g.fetchErr
	}
	order, ok := g.orders[orderID]
	if !ok {
		return model.Order{}, errors.New("order does not exist")
	}
	return order, nil
}

func (g *fakeGateway) Currency() string {
	return "INR"
}

type failingLedger struct{ err error }

func (l failingLedger) Record(ctx context.Context, record model.OrderRecord) error { return l.err }

func (l failingLedger) Lookup(ctx context.Context, orderID string) (model.OrderRecord, error) {
	return model.OrderRecord{}, l.err
}

func nopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func defaultCatalog() Catalog {
	return NewCatalog(map[string]float64{"STAG": 250, "COUPLE": 400}, 10)
}

func scenarioForm(userID string) BookingForm {
	return BookingForm{
		Tickets: []model.Ticket{
			{Type: model.TicketStag, Quantity: 1, Price: 250},
			{Type: model.TicketCouple, Quantity: 1, Price: 400},
		},
		TotalAmount: 650,
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		UserId:      userID,
	}
}
