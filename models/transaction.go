package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypePurchase = "purchase"
	TransactionTypeResale   = "resale"
	TransactionTypeRefund   = "refund"

	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

type Transaction struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"` // purchase, resale, refund
	Amount    decimal.Decimal `json:"amount"`
	EventName string          `json:"event_name"`
	Status    string          `json:"status"` // pending, completed, failed
	Date      time.Time       `json:"date"`
}
