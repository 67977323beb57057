package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"ticket-marketplace/internal/status"
	"ticket-marketplace/models"
	"ticket-marketplace/storage"
	"ticket-marketplace/utils"
)

// LedgerService is the append-only activity log. Entries are kept
// newest first; the only mutation ever applied to a recorded entry is
// a status overwrite.
type LedgerService struct {
	store storage.Store
	mu    sync.Mutex
}

func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

func (s *LedgerService) loadTransactions(ctx context.Context) ([]models.Transaction, error) {
	data, ok, err := s.store.Load(ctx, storage.KeyTransactions)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var transactions []models.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		// Corrupted collection is fatal to the record, not the session.
		log.Printf("ledger: discarding corrupted transactions collection: %v", err)
		return nil, nil
	}
	return transactions, nil
}

func (s *LedgerService) saveTransactions(ctx context.Context, transactions []models.Transaction) error {
	data, err := json.Marshal(transactions)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, storage.KeyTransactions, data)
}

// Record prepends a transaction to the ledger. Missing ID and date are
// filled in; missing status defaults to completed.
func (s *LedgerService) Record(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = utils.NewID("txn")
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	if tx.Status == "" {
		tx.Status = models.TransactionStatusCompleted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	transactions = append([]models.Transaction{tx}, transactions...)
	if err := s.saveTransactions(ctx, transactions); err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateStatus overwrites a transaction's status. The overwrite is
// idempotent.
func (s *LedgerService) UpdateStatus(ctx context.Context, transactionID, newStatus string) error {
	switch newStatus {
	case models.TransactionStatusPending,
		models.TransactionStatusCompleted,
		models.TransactionStatusFailed:
	default:
		return status.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.loadTransactions(ctx)
	if err != nil {
		return err
	}

	for i := range transactions {
		if transactions[i].ID == transactionID {
			transactions[i].Status = newStatus
			return s.saveTransactions(ctx, transactions)
		}
	}
	return status.ErrTransactionNotFound
}

// List returns every ledger entry, newest first.
func (s *LedgerService) List(ctx context.Context) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadTransactions(ctx)
}

type LedgerSummary struct {
	Count       int                        `json:"count"`
	TotalVolume decimal.Decimal            `json:"total_volume"`
	ByType      map[string]TypeSummary     `json:"by_type"`
}

type TypeSummary struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary aggregates completed entries for the stats endpoints.
func (s *LedgerService) Summary(ctx context.Context) (LedgerSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.loadTransactions(ctx)
	if err != nil {
		return LedgerSummary{}, err
	}

	summary := LedgerSummary{
		TotalVolume: decimal.Zero,
		ByType:      make(map[string]TypeSummary),
	}
	for _, tx := range transactions {
		summary.Count++
		if tx.Status != models.TransactionStatusCompleted {
			continue
		}
		entry := summary.ByType[tx.Type]
		entry.Count++
		entry.Amount = entry.Amount.Add(tx.Amount)
		summary.ByType[tx.Type] = entry
		summary.TotalVolume = summary.TotalVolume.Add(tx.Amount)
	}
	return summary, nil
}
