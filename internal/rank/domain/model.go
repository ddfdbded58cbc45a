package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rank is a named tier of the game server's privilege system.
type Rank string

// Rank names are ENGINE-CONSTANTS: they are encoded into purchase selector
// values ("<name>|<price>") and printed on invoices.
const (
	VIP         Rank = "VIP"
	VIPPlus     Rank = "VIP+"
	Custom      Rank = "CUSTOM"
	CrispyPlus  Rank = "CRISPY+"
	Rich        Rank = "RICH"
	MVPPlusPlus Rank = "MVP++"
	MVPPlus     Rank = "MVP+"
	MVP         Rank = "MVP"
)

// order is the display order of the selectors.
var order = []Rank{VIP, VIPPlus, Custom, CrispyPlus, Rich, MVPPlusPlus, MVPPlus, MVP}

var prices = map[Rank]decimal.Decimal{
	VIP:         decimal.NewFromInt(50000),
	VIPPlus:     decimal.NewFromInt(80000),
	Custom:      decimal.NewFromInt(1000000),
	CrispyPlus:  decimal.NewFromInt(570000),
	Rich:        decimal.NewFromInt(360000),
	MVPPlusPlus: decimal.NewFromInt(220000),
	MVPPlus:     decimal.NewFromInt(180000),
	MVP:         decimal.NewFromInt(140000),
}

// PriceOf looks up the fixed price of r.
func PriceOf(r Rank) (decimal.Decimal, bool) {
	p, ok := prices[r]
	return p, ok
}

// Valid reports whether r is in the price table.
func (r Rank) Valid() bool {
	_, ok := prices[r]
	return ok
}

// UpgradePrice is price(to) - price(from). The upgrade exists only when both
// ranks are known and the difference is not negative; a zero difference is
// a free upgrade.
func UpgradePrice(from, to Rank) (decimal.Decimal, bool) {
	fromPrice, ok := PriceOf(from)
	if !ok {
		return decimal.Zero, false
	}
	toPrice, ok := PriceOf(to)
	if !ok {
		return decimal.Zero, false
	}

	diff := toPrice.Sub(fromPrice)
	if diff.IsNegative() {
		return decimal.Zero, false
	}
	return diff, true
}

// Upgrade is a priced transition between two ranks.
type Upgrade struct {
	From  Rank            `json:"from"`
	To    Rank            `json:"to"`
	Price decimal.Decimal `json:"price"`
}

// Label is the line shown for the upgrade on the invoice.
func (u Upgrade) Label() string {
	return string(u.From) + " → " + string(u.To)
}

// Purchase is a rank bought outright, as encoded by the purchase selector.
type Purchase struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Value encodes p the way the purchase selector does.
func (p Purchase) Value() string {
	return p.Name + "|" + p.Price.String()
}

// ParsePurchase decodes a "<name>|<price>" selector value. An empty value or
// one without exactly two parts is no purchase. A price that is not a number
// is treated as zero.
func ParsePurchase(value string) (Purchase, bool) {
	if value == "" {
		return Purchase{}, false
	}
	parts := strings.Split(value, "|")
	if len(parts) != 2 {
		return Purchase{}, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		price = decimal.Zero
	}
	return Purchase{Name: parts[0], Price: price}, true
}

// Option is one entry of a rank selector.
type Option struct {
	Rank     Rank            `json:"rank"`
	Price    decimal.Decimal `json:"price"`
	Value    string          `json:"value"`
	Disabled bool            `json:"disabled,omitempty"`
}

// Ranks lists the price table in display order.
func Ranks() []Option {
	out := make([]Option, 0, len(order))
	for _, r := range order {
		p := prices[r]
		out = append(out, Option{
			Rank:  r,
			Price: p,
			Value: Purchase{Name: string(r), Price: p}.Value(),
		})
	}
	return out
}
