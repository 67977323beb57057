package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OfferStatusActive    = "active"
	OfferStatusSold      = "sold"
	OfferStatusCancelled = "cancelled"
)

type ResaleOffer struct {
	ID            string          `json:"id"`
	TicketID      string          `json:"ticket_id"`
	EventName     string          `json:"event_name"`
	Zone          string          `json:"zone"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	ResalePrice   decimal.Decimal `json:"resale_price"`
	PriceIncrease decimal.Decimal `json:"price_increase"` // percent over the original price
	Status        string          `json:"status"`         // active, sold, cancelled
	ListedAt      time.Time       `json:"listed_at"`
	SoldAt        *time.Time      `json:"sold_at,omitempty"`
}
