package services

import (
	"fmt"
	"time"

	pubnub "github.com/pubnub/go"

	"ticket-marketplace/models"
)

// MarketNotifier pushes marketplace events to per-user channels. A nil
// notifier (or one without a PubNub client) drops everything, so demo
// mode and tests run without credentials.
type MarketNotifier struct {
	pubnub *pubnub.PubNub
}

func NewMarketNotifier(pn *pubnub.PubNub) *MarketNotifier {
	return &MarketNotifier{pubnub: pn}
}

func (n *MarketNotifier) publish(userID string, message map[string]any) {
	if n == nil || n.pubnub == nil {
		return
	}

	channel := fmt.Sprintf("user-%s", userID)
	n.pubnub.Publish().
		Channel(channel).
		Message(message).
		Execute()
}

func (n *MarketNotifier) NotifyPurchase(userID string, ticket models.Ticket) {
	n.publish(userID, map[string]any{
		"type":       "ticket_purchased",
		"ticket_id":  ticket.ID,
		"event_name": ticket.EventName,
		"timestamp":  time.Now().Unix(),
	})
}

func (n *MarketNotifier) NotifyOfferSold(userID string, offer models.ResaleOffer, record SaleRecord) {
	n.publish(userID, map[string]any{
		"type":            "offer_sold",
		"offer_id":        offer.ID,
		"ticket_id":       offer.TicketID,
		"event_name":      offer.EventName,
		"resale_price":    offer.ResalePrice.String(),
		"seller_receives": record.SellerReceives.String(),
		"timestamp":       time.Now().Unix(),
	})
}

func (n *MarketNotifier) NotifyOfferCancelled(userID string, offer models.ResaleOffer) {
	n.publish(userID, map[string]any{
		"type":       "offer_cancelled",
		"offer_id":   offer.ID,
		"ticket_id":  offer.TicketID,
		"event_name": offer.EventName,
		"timestamp":  time.Now().Unix(),
	})
}
