package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ticket-marketplace/models"
	"ticket-marketplace/storage"
)

type testEnv struct {
	store   *storage.MemoryStore
	ledger  *LedgerService
	tickets *TicketService
	profile *ProfileService
	resale  *ResaleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := storage.NewMemoryStore()
	ledger := NewLedgerService(store)
	tickets := NewTicketService(store, ledger)
	profile := NewProfileService(store)
	resale := NewResaleService(store, tickets, ledger, profile, nil)

	return &testEnv{
		store:   store,
		ledger:  ledger,
		tickets: tickets,
		profile: profile,
		resale:  resale,
	}
}

func purchaseTicket(t *testing.T, env *testEnv, price int64) *models.Ticket {
	t.Helper()

	ticket, err := env.tickets.Purchase(context.Background(), PurchaseRequest{
		EventName:   "Indie Rock Night",
		Zone:        "VIP",
		Price:       decimal.NewFromInt(price),
		EventDate:   time.Now().Add(30 * 24 * time.Hour),
		SeatNumbers: []string{"A12"},
	})
	require.NoError(t, err)
	return ticket
}

func findTransaction(transactions []models.Transaction, txType string) *models.Transaction {
	for i := range transactions {
		if transactions[i].Type == txType {
			return &transactions[i]
		}
	}
	return nil
}
