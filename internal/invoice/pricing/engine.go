// Package pricing computes invoice totals. It holds no state: every
// mutation of the form is followed by a full Compute over the current items,
// rank selection and discount.
package pricing

import (
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/rankinvoice/internal/invoice/domain"
	"github.com/smallbiznis/rankinvoice/internal/invoice/format"
)

var hundred = decimal.NewFromInt(100)

// Compute returns subtotal, discount and total for the given form state.
// Blank-named items still count; the discount is clamped to [0,100].
func Compute(items []invoicedomain.LineItem, sel invoicedomain.RankSelection, discountPercent int) invoicedomain.Totals {
	subtotal := ItemsSubtotal(items).Add(RankContribution(sel))

	percent := format.ClampDiscount(discountPercent)
	discount := subtotal.Mul(decimal.NewFromInt(int64(percent))).Div(hundred)

	return invoicedomain.Totals{
		Subtotal:        subtotal,
		DiscountPercent: percent,
		DiscountAmount:  discount,
		Total:           subtotal.Sub(discount),
	}
}

// ItemsSubtotal sums quantity times unit price over all items.
func ItemsSubtotal(items []invoicedomain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Line())
	}
	return sum
}

// RankContribution is the upgrade price when an upgrade is active, else the
// purchase price (even when not positive), else zero.
func RankContribution(sel invoicedomain.RankSelection) decimal.Decimal {
	switch {
	case sel.Upgrade != nil:
		return sel.Upgrade.Price
	case sel.Purchase != nil:
		return sel.Purchase.Price
	default:
		return decimal.Zero
	}
}

// HasBillableContent reports whether the form holds at least one purchase
// worth exporting: an item with quantity and price, or a rank purchase or
// upgrade with a positive price.
func HasBillableContent(items []invoicedomain.LineItem, sel invoicedomain.RankSelection) bool {
	for _, item := range items {
		if item.IsBillable() {
			return true
		}
	}
	if sel.Upgrade != nil && sel.Upgrade.Price.IsPositive() {
		return true
	}
	return sel.Purchase != nil && sel.Purchase.Price.IsPositive()
}
