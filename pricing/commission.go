package pricing

import (
	"ticket-marketplace/internal/status"

	"github.com/shopspring/decimal"
)

// Fee schedule. BuyerServiceFeeRate (primary market, charged to the
// buyer) and SellerCommissionRate (secondary market, deducted from the
// seller) are the same percentage today but are distinct fees; do not
// fold them into one constant.
var (
	BuyerServiceFeeRate     = decimal.NewFromFloat(0.05)
	SellerCommissionRate    = decimal.NewFromFloat(0.05)
	OrganizerCommissionRate = decimal.NewFromFloat(0.03)
	PlatformCommissionRate  = decimal.NewFromFloat(0.02)

	// MaxMarkupPercent caps resale listings at 5% over the original price.
	MaxMarkupPercent = decimal.NewFromInt(5)

	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Split is the commission breakdown of a resale price. Values carry
// full precision; round only when rendering.
type Split struct {
	ResalePrice         decimal.Decimal `json:"resale_price"`
	SellerCommission    decimal.Decimal `json:"seller_commission"`
	OrganizerCommission decimal.Decimal `json:"organizer_commission"`
	PlatformCommission  decimal.Decimal `json:"platform_commission"`
	SellerReceives      decimal.Decimal `json:"seller_receives"`
}

// ComputeResaleSplit prices a resale from the original price and a
// markup percentage in [0, MaxMarkupPercent].
func ComputeResaleSplit(basePrice, markupPercent decimal.Decimal) (Split, error) {
	if basePrice.LessThanOrEqual(decimal.Zero) {
		return Split{}, status.ErrInvalidInput
	}
	if markupPercent.IsNegative() || markupPercent.GreaterThan(MaxMarkupPercent) {
		return Split{}, status.ErrInvalidInput
	}

	resalePrice := basePrice.Mul(one.Add(markupPercent.Div(hundred)))
	return SplitForPrice(resalePrice), nil
}

// SplitForPrice breaks an already-agreed resale price into commissions.
func SplitForPrice(resalePrice decimal.Decimal) Split {
	sellerCommission := resalePrice.Mul(SellerCommissionRate)
	return Split{
		ResalePrice:         resalePrice,
		SellerCommission:    sellerCommission,
		OrganizerCommission: resalePrice.Mul(OrganizerCommissionRate),
		PlatformCommission:  resalePrice.Mul(PlatformCommissionRate),
		SellerReceives:      resalePrice.Sub(sellerCommission),
	}
}

// BuyerTotal is the buyer-facing total on a primary purchase: the base
// price plus the flat service fee.
func BuyerTotal(basePrice decimal.Decimal) (decimal.Decimal, error) {
	if basePrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, status.ErrInvalidInput
	}
	return basePrice.Mul(one.Add(BuyerServiceFeeRate)), nil
}

// MaxResalePrice is the highest listing price allowed for a ticket
// bought at originalPrice.
func MaxResalePrice(originalPrice decimal.Decimal) decimal.Decimal {
	return originalPrice.Mul(one.Add(MaxMarkupPercent.Div(hundred)))
}

// MarkupPercent is the percentage increase of resalePrice over
// originalPrice.
func MarkupPercent(originalPrice, resalePrice decimal.Decimal) decimal.Decimal {
	return resalePrice.Sub(originalPrice).Div(originalPrice).Mul(hundred)
}
