package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"ticket-marketplace/services"
)

type ResaleHandler struct {
	app    *pocketbase.PocketBase
	resale *services.ResaleService
}

func NewResaleHandler(app *pocketbase.PocketBase, resale *services.ResaleService) *ResaleHandler {
	return &ResaleHandler{
		app:    app,
		resale: resale,
	}
}

// CreateOffer - list a custody ticket at a capped markup
func (h *ResaleHandler) CreateOffer(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		TicketID    string          `json:"ticket_id"`
		ResalePrice decimal.Decimal `json:"resale_price"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	offer, err := h.resale.CreateOffer(e.Request.Context(), req.TicketID, req.ResalePrice)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, offer)
}

// ListOffers - active offers, optional ?search= on the event name
func (h *ResaleHandler) ListOffers(e *core.RequestEvent) error {
	offers, err := h.resale.ListActive(e.Request.Context(), e.Request.URL.Query().Get("search"))
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"offers": offers,
		"total":  len(offers),
	})
}

// EditPrice - re-price an active offer within the same cap
func (h *ResaleHandler) EditPrice(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		ResalePrice decimal.Decimal `json:"resale_price"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	offer, err := h.resale.EditPrice(e.Request.Context(), e.Request.PathValue("offerId"), req.ResalePrice)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, offer)
}

// Cancel - withdraw an offer; the ticket becomes listable again
func (h *ResaleHandler) Cancel(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	offer, err := h.resale.Cancel(e.Request.Context(), e.Request.PathValue("offerId"), e.Auth.Id)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, offer)
}

// Sell - complete an offer and settle the commission split
func (h *ResaleHandler) Sell(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		BuyerID       string `json:"buyer_id"`
		BuyerName     string `json:"buyer_name"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	record, err := h.resale.Sell(e.Request.Context(), e.Request.PathValue("offerId"), e.Auth.Id, services.BuyerInfo{
		BuyerID:       req.BuyerID,
		BuyerName:     req.BuyerName,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"sale":            record,
		"seller_receives": record.SellerReceives.Round(2),
	})
}
