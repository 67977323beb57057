package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TicketStatusCustody     = "custody"     // payment held, ticket not listed
	TicketStatusReleased    = "released"    // listed on the resale market
	TicketStatusResold      = "resold"      // sold on the secondary market
	TicketStatusTransferred = "transferred" // handed over to another person
)

type Ticket struct {
	ID           string          `json:"id"`
	EventName    string          `json:"event_name"`
	Zone         string          `json:"zone"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status"` // custody, released, resold, transferred
	SeatNumbers  []string        `json:"seat_numbers,omitempty"`
	PurchaseDate time.Time       `json:"purchase_date"`
	EventDate    time.Time       `json:"event_date"`
	Transfer     *TransferInfo   `json:"transfer,omitempty"`
}

// TransferInfo is attached exactly once; a ticket can only be
// transferred a single time.
type TransferInfo struct {
	RecipientName  string    `json:"recipient_name"`
	RecipientEmail string    `json:"recipient_email"`
	OriginalOwner  string    `json:"original_owner"`
	TransferredAt  time.Time `json:"transferred_at"`
}
