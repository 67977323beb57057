package status

import "errors"

var (
	ErrTicketNotFound      = errors.New("ticket: ticket not found")
	ErrOfferNotFound       = errors.New("offer: offer not found")
	ErrTransactionNotFound = errors.New("transaction: transaction not found")

	ErrPriceCapExceeded   = errors.New("offer: resale price exceeds the allowed markup cap")
	ErrPriceBelowOriginal = errors.New("offer: resale price is below the original price")
	ErrOfferNotActive     = errors.New("offer: offer is not active")

	ErrTicketNotListable  = errors.New("ticket: ticket is not in custody")
	ErrAlreadyTransferred = errors.New("ticket: ticket has already been transferred")

	ErrInvalidInput = errors.New("input: invalid numeric input")
)
