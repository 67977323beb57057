package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"ticket-marketplace/internal/status"
	"ticket-marketplace/models"
	"ticket-marketplace/monitoring"
	"ticket-marketplace/pricing"
	"ticket-marketplace/storage"
	"ticket-marketplace/utils"
)

// ResaleService manages the offer lifecycle:
//
//	active -> sold | cancelled
//
// Listing a ticket marks it released so it cannot be double listed;
// cancellation is the only path back to custody.
type ResaleService struct {
	store    storage.Store
	tickets  *TicketService
	ledger   *LedgerService
	profile  *ProfileService
	notifier *MarketNotifier
	mu       sync.Mutex
}

func NewResaleService(store storage.Store, tickets *TicketService, ledger *LedgerService, profile *ProfileService, notifier *MarketNotifier) *ResaleService {
	return &ResaleService{
		store:    store,
		tickets:  tickets,
		ledger:   ledger,
		profile:  profile,
		notifier: notifier,
	}
}

func (s *ResaleService) loadOffers(ctx context.Context) ([]models.ResaleOffer, error) {
	data, ok, err := s.store.Load(ctx, storage.KeyOffers)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var offers []models.ResaleOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		log.Printf("resale: discarding corrupted offers collection: %v", err)
		return nil, nil
	}
	return offers, nil
}

func (s *ResaleService) saveOffers(ctx context.Context, offers []models.ResaleOffer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, storage.KeyOffers, data)
}

func validateResalePrice(originalPrice, resalePrice decimal.Decimal) error {
	if resalePrice.GreaterThan(pricing.MaxResalePrice(originalPrice)) {
		return status.ErrPriceCapExceeded
	}
	if resalePrice.LessThan(originalPrice) {
		return status.ErrPriceBelowOriginal
	}
	return nil
}

// CreateOffer lists a custody ticket on the resale market at a price
// within [original, original*1.05].
func (s *ResaleService) CreateOffer(ctx context.Context, ticketID string, resalePrice decimal.Decimal) (*models.ResaleOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != models.TicketStatusCustody {
		return nil, status.ErrTicketNotListable
	}
	if err := validateResalePrice(ticket.Price, resalePrice); err != nil {
		return nil, err
	}

	// The ticket leaves the listable set before the offer exists.
	// markListed rechecks custody under the ticket lock, so the loser
	// of a concurrent listing fails here instead of producing a
	// second offer.
	ticket, err = s.tickets.markListed(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	offer := models.ResaleOffer{
		ID:            utils.NewID("off"),
		TicketID:      ticket.ID,
		EventName:     ticket.EventName,
		Zone:          ticket.Zone,
		OriginalPrice: ticket.Price,
		ResalePrice:   resalePrice,
		PriceIncrease: pricing.MarkupPercent(ticket.Price, resalePrice),
		Status:        models.OfferStatusActive,
		ListedAt:      time.Now(),
	}

	offers, err := s.loadOffers(ctx)
	if err != nil {
		s.unlist(ctx, ticketID)
		return nil, err
	}

	offers = append(offers, offer)
	if err := s.saveOffers(ctx, offers); err != nil {
		s.unlist(ctx, ticketID)
		return nil, err
	}

	monitoring.SetActiveOffers(countActive(offers))

	return &offer, nil
}

// unlist returns a ticket to custody after a failed listing.
func (s *ResaleService) unlist(ctx context.Context, ticketID string) {
	if err := s.tickets.setStatus(ctx, ticketID, models.TicketStatusCustody); err != nil {
		log.Printf("resale: failed to return ticket %s to custody: %v", ticketID, err)
	}
}

// EditPrice re-prices an active offer under the same cap and floor as
// listing. Validation failures leave the offer untouched.
func (s *ResaleService) EditPrice(ctx context.Context, offerID string, newPrice decimal.Decimal) (*models.ResaleOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers, err := s.loadOffers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range offers {
		if offers[i].ID != offerID {
			continue
		}
		if offers[i].Status != models.OfferStatusActive {
			return nil, status.ErrOfferNotActive
		}
		if err := validateResalePrice(offers[i].OriginalPrice, newPrice); err != nil {
			return nil, err
		}

		offers[i].ResalePrice = newPrice
		offers[i].PriceIncrease = pricing.MarkupPercent(offers[i].OriginalPrice, newPrice)
		if err := s.saveOffers(ctx, offers); err != nil {
			return nil, err
		}
		return &offers[i], nil
	}
	return nil, status.ErrOfferNotFound
}

// Cancel withdraws an active offer and returns the underlying ticket
// to custody, making it listable again.
func (s *ResaleService) Cancel(ctx context.Context, offerID, sellerID string) (*models.ResaleOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers, err := s.loadOffers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range offers {
		if offers[i].ID != offerID {
			continue
		}
		if offers[i].Status != models.OfferStatusActive {
			return nil, status.ErrOfferNotActive
		}

		offers[i].Status = models.OfferStatusCancelled
		if err := s.saveOffers(ctx, offers); err != nil {
			return nil, err
		}
		if err := s.tickets.setStatus(ctx, offers[i].TicketID, models.TicketStatusCustody); err != nil {
			return nil, err
		}

		monitoring.SetActiveOffers(countActive(offers))
		s.notifier.NotifyOfferCancelled(sellerID, offers[i])

		return &offers[i], nil
	}
	return nil, status.ErrOfferNotFound
}

type BuyerInfo struct {
	BuyerID       string
	BuyerName     string
	PaymentMethod string
}

// SaleRecord is returned to the caller for history display after a
// completed resale.
type SaleRecord struct {
	OfferID        string          `json:"offer_id"`
	TicketID       string          `json:"ticket_id"`
	EventName      string          `json:"event_name"`
	BuyerID        string          `json:"buyer_id"`
	BuyerName      string          `json:"buyer_name"`
	PaymentMethod  string          `json:"payment_method"`
	ResalePrice    decimal.Decimal `json:"resale_price"`
	SellerReceives decimal.Decimal `json:"seller_receives"`
	Split          pricing.Split   `json:"split"`
	SoldAt         time.Time       `json:"sold_at"`
}

// Sell completes an active offer: the commission split is computed,
// the seller balance credited, a resale transaction recorded and the
// ticket leaves the owner's active set.
func (s *ResaleService) Sell(ctx context.Context, offerID, sellerID string, buyer BuyerInfo) (*SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers, err := s.loadOffers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range offers {
		if offers[i].ID != offerID {
			continue
		}
		if offers[i].Status != models.OfferStatusActive {
			return nil, status.ErrOfferNotActive
		}

		split := pricing.SplitForPrice(offers[i].ResalePrice)
		now := time.Now()

		offers[i].Status = models.OfferStatusSold
		offers[i].SoldAt = &now
		if err := s.saveOffers(ctx, offers); err != nil {
			return nil, err
		}
		if err := s.tickets.setStatus(ctx, offers[i].TicketID, models.TicketStatusResold); err != nil {
			return nil, err
		}

		if _, err := s.profile.Credit(ctx, split.SellerReceives); err != nil {
			log.Printf("resale: failed to credit seller balance: %v", err)
		}
		if _, err := s.ledger.Record(ctx, models.Transaction{
			Type:      models.TransactionTypeResale,
			Amount:    offers[i].ResalePrice,
			EventName: offers[i].EventName,
			Status:    models.TransactionStatusCompleted,
		}); err != nil {
			log.Printf("resale: failed to record resale transaction: %v", err)
		}

		record := SaleRecord{
			OfferID:        offers[i].ID,
			TicketID:       offers[i].TicketID,
			EventName:      offers[i].EventName,
			BuyerID:        buyer.BuyerID,
			BuyerName:      buyer.BuyerName,
			PaymentMethod:  buyer.PaymentMethod,
			ResalePrice:    offers[i].ResalePrice,
			SellerReceives: split.SellerReceives,
			Split:          split,
			SoldAt:         now,
		}

		monitoring.TrackResale(offers[i].EventName)
		monitoring.SetActiveOffers(countActive(offers))
		trackCommissions(split)
		s.notifier.NotifyOfferSold(sellerID, offers[i], record)

		return &record, nil
	}
	return nil, status.ErrOfferNotFound
}

func trackCommissions(split pricing.Split) {
	monitoring.TrackCommission("seller", split.SellerCommission.InexactFloat64())
	monitoring.TrackCommission("organizer", split.OrganizerCommission.InexactFloat64())
	monitoring.TrackCommission("platform", split.PlatformCommission.InexactFloat64())
}

// ListActive returns active offers, optionally filtered by a
// case-insensitive substring match on the event name.
func (s *ResaleService) ListActive(ctx context.Context, search string) ([]models.ResaleOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers, err := s.loadOffers(ctx)
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	active := make([]models.ResaleOffer, 0, len(offers))
	for _, offer := range offers {
		if offer.Status != models.OfferStatusActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(offer.EventName), search) {
			continue
		}
		active = append(active, offer)
	}
	return active, nil
}

// Get returns a single offer by id regardless of status.
func (s *ResaleService) Get(ctx context.Context, offerID string) (*models.ResaleOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers, err := s.loadOffers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range offers {
		if offers[i].ID == offerID {
			return &offers[i], nil
		}
	}
	return nil, status.ErrOfferNotFound
}

func countActive(offers []models.ResaleOffer) int {
	count := 0
	for _, offer := range offers {
		if offer.Status == models.OfferStatusActive {
			count++
		}
	}
	return count
}
