package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"tickets-webapp/metrics"
	"tickets-webapp/model"
	"tickets-webapp/payment"

	"github.com/rs/zerolog"
)

type OrderService struct {
	gateway OrderGateway
	ledger  payment.OrderLedger
	logger  *zerolog.Logger
	now     func() time.Time
}

func NewOrderService(gateway OrderGateway, ledger payment.OrderLedger, logger *zerolog.Logger) *OrderService {
	return &OrderService{
		gateway: gateway,
		ledger:  ledger,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateOrder registers a provider order for amount rupees and records the
// requested amount so a later verification can be checked against it.
// Retries by the caller create new provider orders.
func (s *OrderService) CreateOrder(ctx context.Context, amount float64) (model.Order, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		metrics.IncOrder("invalid")
		return model.Order{}, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	amountMinor := model.ToMinorUnits(amount)
	if amountMinor <= 0 {
		metrics.IncOrder("invalid")
		return model.Order{}, fmt.Errorf("%w: %v rounds to zero", ErrInvalidAmount, amount)
	}

	now := s.now()
	receipt := "receipt_" + strconv.FormatInt(now.UnixMilli(), 10)

	order, err := s.gateway.CreateOrder(ctx, amountMinor, receipt)
	if err != nil {
		s.logger.Error().Err(err).Int64("amount", amountMinor).Msg("Error creating order")
		metrics.IncOrder("provider_error")
		return model.Order{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if order.Amount != amountMinor {
		s.logger.Warn().
			Str("orderId", order.Id).
			Int64("requested", amountMinor).
			Int64("returned", order.Amount).
			Msg("provider returned a different order amount")
	}

	record := model.OrderRecord{
		OrderId:     order.Id,
		AmountMinor: amountMinor,
		Currency:    s.gateway.Currency(),
		Receipt:     receipt,
		CreatedAt:   now.UTC(),
	}
	if err := s.ledger.Record(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("orderId", order.Id).Msg("Error recording order")
		metrics.IncOrder("ledger_error")
		return model.Order{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Info().Str("orderId", order.Id).Int64("amount", amountMinor).Msg("order created")
	metrics.IncOrder("created")

	return order, nil
}
