package model

import "time"

// Order is what the payment provider returns to the client.
type Order struct {
	Id       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// OrderRecord is the ledger entry kept for every order this service created;
// AmountMinor is the authoritative charge in paise.
type OrderRecord struct {
	OrderId     string    `json:"orderId"`
	AmountMinor int64     `json:"amountMinor"`
	Currency    string    `json:"currency"`
	Receipt     string    `json:"receipt"`
	CreatedAt   time.Time `json:"createdAt"`
}
