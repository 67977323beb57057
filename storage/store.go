// Package storage persists marketplace collections as JSON documents
// under logical keys (tickets, offers, transactions, profile,
// settings). Implementations only need read-your-writes consistency
// within a session.
package storage

import "context"

const (
	KeyTickets      = "tickets"
	KeyOffers       = "offers"
	KeyTransactions = "transactions"
	KeyProfile      = "profile"
	KeySettings     = "settings"
)

type Store interface {
	// Load returns the document stored under key. The bool reports
	// whether the key was present.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	// Save overwrites the document stored under key.
	Save(ctx context.Context, key string, data []byte) error
}
