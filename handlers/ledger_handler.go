package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-marketplace/services"
)

type LedgerHandler struct {
	app    *pocketbase.PocketBase
	ledger *services.LedgerService
}

func NewLedgerHandler(app *pocketbase.PocketBase, ledger *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		app:    app,
		ledger: ledger,
	}
}

// List - full activity log, newest first
func (h *LedgerHandler) List(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	transactions, err := h.ledger.List(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"transactions": transactions,
		"total":        len(transactions),
	})
}

// UpdateStatus - pending -> completed/failed overwrites
func (h *LedgerHandler) UpdateStatus(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.ledger.UpdateStatus(e.Request.Context(), e.Request.PathValue("transactionId"), req.Status); err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]string{"status": req.Status})
}

// Summary - aggregated marketplace activity for the dashboard
func (h *LedgerHandler) Summary(e *core.RequestEvent) error {
	summary, err := h.ledger.Summary(e.Request.Context())
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, summary)
}
