package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-marketplace/internal/status"
	"ticket-marketplace/models"
)

func TestTicketService_Purchase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ticket := purchaseTicket(t, env, 100)

	assert.NotEmpty(t, ticket.ID)
	assert.Equal(t, models.TicketStatusCustody, ticket.Status)
	assert.True(t, ticket.Price.Equal(decimal.NewFromInt(100)))
	assert.False(t, ticket.PurchaseDate.IsZero())

	// The purchase shows up on the ledger with the base price.
	transactions, err := env.ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, models.TransactionTypePurchase, transactions[0].Type)
	assert.Equal(t, models.TransactionStatusCompleted, transactions[0].Status)
	assert.True(t, transactions[0].Amount.Equal(decimal.NewFromInt(100)))
}

func TestTicketService_Purchase_InvalidInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tickets.Purchase(ctx, PurchaseRequest{EventName: "Show", Price: decimal.Zero})
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	_, err = env.tickets.Purchase(ctx, PurchaseRequest{Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, status.ErrInvalidInput)
}

func TestTicketService_Get_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tickets.Get(context.Background(), "tkt_missing")
	assert.ErrorIs(t, err, status.ErrTicketNotFound)
}

func TestTicketService_ListActive_OrderAndFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := purchaseTicket(t, env, 50)
	second := purchaseTicket(t, env, 60)
	third := purchaseTicket(t, env, 70)

	// A resold ticket leaves the active set; the others keep their
	// insertion order.
	require.NoError(t, env.tickets.setStatus(ctx, second.ID, models.TicketStatusResold))

	active, err := env.tickets.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, third.ID, active[1].ID)
}

func TestTicketService_Transfer_OnlyOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ticket := purchaseTicket(t, env, 100)

	transferred, err := env.tickets.Transfer(ctx, ticket.ID, TransferRequest{
		RecipientName:  "Maria Lopez",
		RecipientEmail: "maria@example.com",
		OwnerName:      "Alex Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusTransferred, transferred.Status)
	require.NotNil(t, transferred.Transfer)
	assert.Equal(t, "Maria Lopez", transferred.Transfer.RecipientName)
	assert.Equal(t, "Alex Doe", transferred.Transfer.OriginalOwner)
	assert.False(t, transferred.Transfer.TransferredAt.IsZero())

	// Second transfer is rejected.
	_, err = env.tickets.Transfer(ctx, ticket.ID, TransferRequest{RecipientName: "Someone Else"})
	assert.ErrorIs(t, err, status.ErrAlreadyTransferred)
}

func TestTicketService_Transfer_ListedTicketRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ticket := purchaseTicket(t, env, 100)
	offer, err := env.resale.CreateOffer(ctx, ticket.ID, decimal.NewFromInt(104))
	require.NoError(t, err)

	// A listed ticket cannot be handed over; the offer owns it until
	// it is sold or cancelled.
	_, err = env.tickets.Transfer(ctx, ticket.ID, TransferRequest{RecipientName: "Maria Lopez"})
	assert.ErrorIs(t, err, status.ErrTicketNotListable)

	listed, err := env.tickets.Get(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusReleased, listed.Status)
	assert.Nil(t, listed.Transfer)

	// Cancelling the offer makes the ticket transferable.
	_, err = env.resale.Cancel(ctx, offer.ID, "seller-1")
	require.NoError(t, err)

	transferred, err := env.tickets.Transfer(ctx, ticket.ID, TransferRequest{RecipientName: "Maria Lopez"})
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusTransferred, transferred.Status)
}

func TestTicketService_Transfer_SoldTicketRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ticket := purchaseTicket(t, env, 100)
	offer, err := env.resale.CreateOffer(ctx, ticket.ID, decimal.NewFromInt(104))
	require.NoError(t, err)
	_, err = env.resale.Sell(ctx, offer.ID, "seller-1", BuyerInfo{BuyerID: "b1"})
	require.NoError(t, err)

	_, err = env.tickets.Transfer(ctx, ticket.ID, TransferRequest{RecipientName: "Maria Lopez"})
	assert.ErrorIs(t, err, status.ErrTicketNotListable)
}

func TestTicketService_Transfer_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tickets.Transfer(context.Background(), "tkt_missing", TransferRequest{RecipientName: "Maria"})
	assert.ErrorIs(t, err, status.ErrTicketNotFound)
}

func TestTicketService_Delete_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ticket := purchaseTicket(t, env, 100)
	keep := purchaseTicket(t, env, 80)

	require.NoError(t, env.tickets.Delete(ctx, ticket.ID))

	firstPass, err := env.tickets.ListActive(ctx)
	require.NoError(t, err)

	// Deleting again changes nothing.
	require.NoError(t, env.tickets.Delete(ctx, ticket.ID))

	secondPass, err := env.tickets.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, firstPass, secondPass)
	require.Len(t, secondPass, 1)
	assert.Equal(t, keep.ID, secondPass[0].ID)
}

func TestTicketService_CorruptedCollectionFallsBackToEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.store.Save(ctx, "tickets", []byte("{not json")))

	active, err := env.tickets.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	// The store keeps working after the bad read.
	purchaseTicket(t, env, 40)
	active, err = env.tickets.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
