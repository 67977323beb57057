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
	"ticket-marketplace/monitoring"
	"ticket-marketplace/storage"
	"ticket-marketplace/utils"
)

// TicketService holds the current user's tickets and drives the
// custody lifecycle. Allowed transitions:
//
//	custody -> released | transferred
//	released -> custody (offer cancellation only) | resold
type TicketService struct {
	store  storage.Store
	ledger *LedgerService
	mu     sync.Mutex
}

func NewTicketService(store storage.Store, ledger *LedgerService) *TicketService {
	return &TicketService{
		store:  store,
		ledger: ledger,
	}
}

func (s *TicketService) loadTickets(ctx context.Context) ([]models.Ticket, error) {
	data, ok, err := s.store.Load(ctx, storage.KeyTickets)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var tickets []models.Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		log.Printf("tickets: discarding corrupted tickets collection: %v", err)
		return nil, nil
	}
	return tickets, nil
}

func (s *TicketService) saveTickets(ctx context.Context, tickets []models.Ticket) error {
	data, err := json.Marshal(tickets)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, storage.KeyTickets, data)
}

type PurchaseRequest struct {
	EventName   string
	Zone        string
	Price       decimal.Decimal
	EventDate   time.Time
	SeatNumbers []string
}

// Purchase creates a ticket in custody and records the purchase on the
// ledger. The recorded amount is the base price; the buyer service fee
// is a presentation concern.
func (s *TicketService) Purchase(ctx context.Context, req PurchaseRequest) (*models.Ticket, error) {
	if req.EventName == "" || req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, status.ErrInvalidInput
	}

	ticket := models.Ticket{
		ID:           utils.NewID("tkt"),
		EventName:    req.EventName,
		Zone:         req.Zone,
		Price:        req.Price,
		Status:       models.TicketStatusCustody,
		SeatNumbers:  req.SeatNumbers,
		PurchaseDate: time.Now(),
		EventDate:    req.EventDate,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.loadTickets(ctx)
	if err != nil {
		return nil, err
	}

	tickets = append(tickets, ticket)
	if err := s.saveTickets(ctx, tickets); err != nil {
		return nil, err
	}

	if _, err := s.ledger.Record(ctx, models.Transaction{
		Type:      models.TransactionTypePurchase,
		Amount:    req.Price,
		EventName: req.EventName,
		Status:    models.TransactionStatusCompleted,
	}); err != nil {
		log.Printf("tickets: failed to record purchase transaction: %v", err)
	}

	monitoring.TrackPurchase(req.EventName)

	return &ticket, nil
}

func (s *TicketService) Get(ctx context.Context, ticketID string) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(ctx, ticketID)
}

func (s *TicketService) find(ctx context.Context, ticketID string) (*models.Ticket, error) {
	tickets, err := s.loadTickets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID == ticketID {
			return &tickets[i], nil
		}
	}
	return nil, status.ErrTicketNotFound
}

// ListActive returns every ticket that has not left the owner's set
// through a resale, oldest first.
func (s *TicketService) ListActive(ctx context.Context) ([]models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.loadTickets(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]models.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if ticket.Status != models.TicketStatusResold {
			active = append(active, ticket)
		}
	}
	return active, nil
}

type TransferRequest struct {
	RecipientName  string
	RecipientEmail string
	OwnerName      string
}

// Transfer hands the ticket over to another person. Only a custody
// ticket can be transferred, and only once; a listed ticket has to be
// cancelled off the market first.
func (s *TicketService) Transfer(ctx context.Context, ticketID string, req TransferRequest) (*models.Ticket, error) {
	if req.RecipientName == "" {
		return nil, status.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.loadTickets(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tickets {
		if tickets[i].ID != ticketID {
			continue
		}
		if tickets[i].Transfer != nil {
			return nil, status.ErrAlreadyTransferred
		}
		if tickets[i].Status != models.TicketStatusCustody {
			return nil, status.ErrTicketNotListable
		}

		tickets[i].Status = models.TicketStatusTransferred
		tickets[i].Transfer = &models.TransferInfo{
			RecipientName:  req.RecipientName,
			RecipientEmail: req.RecipientEmail,
			OriginalOwner:  req.OwnerName,
			TransferredAt:  time.Now(),
		}
		if err := s.saveTickets(ctx, tickets); err != nil {
			return nil, err
		}
		return &tickets[i], nil
	}
	return nil, status.ErrTicketNotFound
}

// Delete removes a ticket. Deleting an absent ticket is a no-op.
func (s *TicketService) Delete(ctx context.Context, ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.loadTickets(ctx)
	if err != nil {
		return err
	}

	kept := tickets[:0]
	for _, ticket := range tickets {
		if ticket.ID != ticketID {
			kept = append(kept, ticket)
		}
	}
	if len(kept) == len(tickets) {
		return nil
	}
	return s.saveTickets(ctx, kept)
}

// markListed moves a custody ticket to released. The custody check and
// the flip happen under the same lock, so two concurrent listings of
// the same ticket cannot both succeed.
func (s *TicketService) markListed(ctx context.Context, ticketID string) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.loadTickets(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tickets {
		if tickets[i].ID != ticketID {
			continue
		}
		if tickets[i].Status != models.TicketStatusCustody {
			return nil, status.ErrTicketNotListable
		}
		tickets[i].Status = models.TicketStatusReleased
		if err := s.saveTickets(ctx, tickets); err != nil {
			return nil, err
		}
		return &tickets[i], nil
	}
	return nil, status.ErrTicketNotFound
}

// setStatus is used by the resale flow to move a ticket between
// custody, released and resold.
func (s *TicketService) setStatus(ctx context.Context, ticketID, ticketStatus string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.loadTickets(ctx)
	if err != nil {
		return err
	}

	for i := range tickets {
		if tickets[i].ID == ticketID {
			tickets[i].Status = ticketStatus
			return s.saveTickets(ctx, tickets)
		}
	}
	return status.ErrTicketNotFound
}
