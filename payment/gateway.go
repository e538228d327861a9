package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tickets-webapp/config"
	"tickets-webapp/model"

	razorpay "github.com/razorpay/razorpay-go"
)

var ErrProvider = errors.New("payment provider call failed")

// OrderAPI is the subset of the Razorpay orders resource the gateway uses.
type OrderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Fetch(orderID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type Gateway struct {
	orders   OrderAPI
	currency string
	timeout  time.Duration
}

func NewRazorpayGateway(cfg config.RazorpayConfig) *Gateway {
	client := razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	return NewGateway(client.Order, cfg.Currency, cfg.Timeout)
}

func NewGateway(orders OrderAPI, currency string, timeout time.Duration) *Gateway {
	return &Gateway{orders: orders, currency: currency, timeout: timeout}
}

func (g *Gateway) Currency() string {
	return g.currency
}

// CreateOrder registers an order for amountMinor paise. The receipt is sent
// to the provider as-is.
func (g *Gateway) CreateOrder(ctx context.Context, amountMinor int64, receipt string) (model.Order, error) {
	data := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        g.currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := g.call(ctx, func() (map[string]interface{}, error) {
		return g.orders.Create(data, nil)
	})
	if err != nil {
		return model.Order{}, err
	}

	return decodeOrder(body)
}

func (g *Gateway) FetchOrder(ctx context.Context, orderID string) (model.Order, error) {
	body, err := g.call(ctx, func() (map[string]interface{}, error) {
		return g.orders.Fetch(orderID, nil, nil)
	})
	if err != nil {
		return model.Order{}, err
	}

	return decodeOrder(body)
}

// call runs a blocking SDK request and gives up once the gateway timeout or
// ctx expires. The SDK has no context support, so an abandoned request keeps
// running in the background until its own HTTP client returns.
func (g *Gateway) call(ctx context.Context, fn func() (map[string]interface{}, error)) (map[string]interface{}, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	type result struct {
		body map[string]interface{}
		err  error
	}
	done := make(chan result, 1)
	go func() {
		body, err := fn()
		done <- result{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrProvider, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProvider, res.err)
		}
		return res.body, nil
	}
}

func decodeOrder(body map[string]interface{}) (model.Order, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return model.Order{}, fmt.Errorf("%w: response has no order id", ErrProvider)
	}

	amount, err := toInt64(body["amount"])
	if err != nil {
		return model.Order{}, fmt.Errorf("%w: order %s amount: %v", ErrProvider, id, err)
	}

	currency, _ := body["currency"].(string)

	return model.Order{Id: id, Amount: amount, Currency: currency}, nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	case nil:
		return 0, errors.New("missing")
	}
	return 0, fmt.Errorf("unexpected type %T", v)
}
