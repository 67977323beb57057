package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"

	"ticket-marketplace/internal/status"
)

// apiError maps domain failures to API errors. Business-rule
// violations are client errors; anything else is a server fault.
func apiError(err error) error {
	switch {
	case errors.Is(err, status.ErrTicketNotFound),
		errors.Is(err, status.ErrOfferNotFound),
		errors.Is(err, status.ErrTransactionNotFound):
		return apis.NewNotFoundError(err.Error(), err)
	case errors.Is(err, status.ErrPriceCapExceeded),
		errors.Is(err, status.ErrPriceBelowOriginal),
		errors.Is(err, status.ErrOfferNotActive),
		errors.Is(err, status.ErrTicketNotListable),
		errors.Is(err, status.ErrAlreadyTransferred),
		errors.Is(err, status.ErrInvalidInput):
		return apis.NewBadRequestError(err.Error(), err)
	default:
		return apis.NewApiError(http.StatusInternalServerError, "Something went wrong while processing your request.", err)
	}
}
