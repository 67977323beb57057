package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile is the current user's marketplace profile. Balance holds
// resale settlements credited to the seller.
type Profile struct {
	UserID         string          `json:"user_id"`
	DisplayName    string          `json:"display_name"`
	Email          string          `json:"email"`
	AccessCodeHash string          `json:"access_code_hash,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type Settings struct {
	Currency      string `json:"currency"`
	Notifications bool   `json:"notifications"`
}
