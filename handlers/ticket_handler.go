package handlers

import (
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"ticket-marketplace/pricing"
	"ticket-marketplace/services"
)

type TicketHandler struct {
	app      *pocketbase.PocketBase
	tickets  *services.TicketService
	notifier *services.MarketNotifier
}

func NewTicketHandler(app *pocketbase.PocketBase, tickets *services.TicketService, notifier *services.MarketNotifier) *TicketHandler {
	return &TicketHandler{
		app:      app,
		tickets:  tickets,
		notifier: notifier,
	}
}

// Purchase - primary market purchase; the buyer pays price + service fee
func (h *TicketHandler) Purchase(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		EventName   string          `json:"event_name"`
		Zone        string          `json:"zone"`
		Price       decimal.Decimal `json:"price"`
		EventDate   time.Time       `json:"event_date"`
		SeatNumbers []string        `json:"seat_numbers"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ticket, err := h.tickets.Purchase(e.Request.Context(), services.PurchaseRequest{
		EventName:   req.EventName,
		Zone:        req.Zone,
		Price:       req.Price,
		EventDate:   req.EventDate,
		SeatNumbers: req.SeatNumbers,
	})
	if err != nil {
		return apiError(err)
	}

	buyerTotal, err := pricing.BuyerTotal(ticket.Price)
	if err != nil {
		return apiError(err)
	}

	h.notifier.NotifyPurchase(e.Auth.Id, *ticket)

	return e.JSON(http.StatusOK, map[string]any{
		"ticket":      ticket,
		"buyer_total": buyerTotal.Round(2),
	})
}

// List - the user's active tickets (everything not resold)
func (h *TicketHandler) List(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	tickets, err := h.tickets.ListActive(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"tickets": tickets,
		"total":   len(tickets),
	})
}

func (h *TicketHandler) Get(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	ticket, err := h.tickets.Get(e.Request.Context(), e.Request.PathValue("ticketId"))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, ticket)
}

// Transfer - one-time hand-over of a ticket to another person
func (h *TicketHandler) Transfer(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		RecipientName  string `json:"recipient_name"`
		RecipientEmail string `json:"recipient_email"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ticket, err := h.tickets.Transfer(e.Request.Context(), e.Request.PathValue("ticketId"), services.TransferRequest{
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		OwnerName:      e.Auth.GetString("name"),
	})
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, ticket)
}

// Delete - idempotent; deleting an unknown ticket is still a 204
func (h *TicketHandler) Delete(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	if err := h.tickets.Delete(e.Request.Context(), e.Request.PathValue("ticketId")); err != nil {
		return apiError(err)
	}
	return e.NoContent(http.StatusNoContent)
}
