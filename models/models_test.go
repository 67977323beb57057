package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicket_JSONSerialization(t *testing.T) {
	purchaseDate := time.Now()

	ticket := Ticket{
		ID:           "tkt_9f2c1a",
		EventName:    "Indie Rock Night",
		Zone:         "VIP",
		Price:        decimal.RequireFromString("75.25"),
		Status:       TicketStatusCustody,
		SeatNumbers:  []string{"A12", "A13"},
		PurchaseDate: purchaseDate,
		EventDate:    purchaseDate.Add(30 * 24 * time.Hour),
	}

	jsonData, err := json.Marshal(ticket)
	require.NoError(t, err)

	var unmarshaled Ticket
	require.NoError(t, json.Unmarshal(jsonData, &unmarshaled))

	assert.Equal(t, ticket.ID, unmarshaled.ID)
	assert.Equal(t, ticket.EventName, unmarshaled.EventName)
	assert.Equal(t, ticket.Status, unmarshaled.Status)
	assert.Equal(t, ticket.SeatNumbers, unmarshaled.SeatNumbers)
	assert.True(t, ticket.Price.Equal(unmarshaled.Price))
	assert.WithinDuration(t, ticket.PurchaseDate, unmarshaled.PurchaseDate, time.Second)

	// No transfer yet, so the field stays out of the payload.
	assert.Nil(t, unmarshaled.Transfer)
	assert.NotContains(t, string(jsonData), "transfer")
}

func TestTicket_TransferInfoRoundTrip(t *testing.T) {
	ticket := Ticket{
		ID:     "tkt_1",
		Status: TicketStatusTransferred,
		Price:  decimal.NewFromInt(100),
		Transfer: &TransferInfo{
			RecipientName:  "Maria Lopez",
			RecipientEmail: "maria@example.com",
			OriginalOwner:  "Alex Doe",
			TransferredAt:  time.Now(),
		},
	}

	jsonData, err := json.Marshal(ticket)
	require.NoError(t, err)

	var unmarshaled Ticket
	require.NoError(t, json.Unmarshal(jsonData, &unmarshaled))

	require.NotNil(t, unmarshaled.Transfer)
	assert.Equal(t, "Maria Lopez", unmarshaled.Transfer.RecipientName)
	assert.Equal(t, "Alex Doe", unmarshaled.Transfer.OriginalOwner)
}

func TestResaleOffer_DecimalFieldsSurviveJSON(t *testing.T) {
	offer := ResaleOffer{
		ID:            "off_1",
		TicketID:      "tkt_1",
		OriginalPrice: decimal.NewFromInt(100),
		ResalePrice:   decimal.RequireFromString("104"),
		PriceIncrease: decimal.NewFromInt(4),
		Status:        OfferStatusActive,
		ListedAt:      time.Now(),
	}

	jsonData, err := json.Marshal(offer)
	require.NoError(t, err)

	var unmarshaled ResaleOffer
	require.NoError(t, json.Unmarshal(jsonData, &unmarshaled))

	assert.True(t, offer.OriginalPrice.Equal(unmarshaled.OriginalPrice))
	assert.True(t, offer.ResalePrice.Equal(unmarshaled.ResalePrice))
	assert.True(t, offer.PriceIncrease.Equal(unmarshaled.PriceIncrease))
	assert.Nil(t, unmarshaled.SoldAt)
}

func TestTransaction_AcceptsNumericAmount(t *testing.T) {
	// Amounts written by earlier releases are plain JSON numbers;
	// decimal accepts both forms.
	raw := `{"id":"txn_1","type":"purchase","amount":104.5,"status":"completed"}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("104.5")))
	assert.Equal(t, TransactionTypePurchase, tx.Type)
}
