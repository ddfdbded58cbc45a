package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	rankdomain "github.com/smallbiznis/rankinvoice/internal/rank/domain"
)

// LineItem is one billable row. The *Text fields hold what the input
// currently shows; Quantity and UnitPrice are always derived from them.
type LineItem struct {
	ID           snowflake.ID    `json:"id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	QuantityText string          `json:"quantity_text"`
	PriceText    string          `json:"price_text"`
}

// Line is quantity times unit price.
func (i LineItem) Line() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// IsBlank reports an untouched row; blank rows are left off the preview.
func (i LineItem) IsBlank() bool {
	return i.Name == "" && i.Quantity == 0 && i.UnitPrice.IsZero()
}

// IsBillable reports a row that counts as a purchase.
func (i LineItem) IsBillable() bool {
	return i.Quantity > 0 && i.UnitPrice.IsPositive()
}

// RankSelection is the rank part of the invoice. Upgrade, when set, takes
// precedence over Purchase.
type RankSelection struct {
	Purchase *rankdomain.Purchase
	Upgrade  *rankdomain.Upgrade
}

// Totals is always recomputed from items, rank selection and discount.
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent int             `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Total           decimal.Decimal `json:"total"`
}

// ItemView is a line item as the form shows it.
type ItemView struct {
	LineItem
	LineTotal string `json:"line_total"`
}

// FormView is the snapshot returned after every form event.
type FormView struct {
	InvoiceNo      string              `json:"invoice_no"`
	Date           string              `json:"date"`
	DisplayName    string              `json:"display_name"`
	SecondaryID    string              `json:"secondary_id"`
	RankValue      string              `json:"rank"`
	UpgradeFrom    string              `json:"upgrade_from"`
	UpgradeTo      string              `json:"upgrade_to"`
	UpgradeOptions []rankdomain.Option `json:"upgrade_options"`
	Upgrade        *rankdomain.Upgrade `json:"upgrade,omitempty"`
	Notes          string              `json:"notes"`
	Discount       string              `json:"discount"`
	Items          []ItemView          `json:"items"`
	Totals         Totals              `json:"totals"`
	Subtotal       string              `json:"subtotal_display"`
	Total          string              `json:"total_display"`
	Preview        Preview             `json:"preview"`
}

// PreviewRow is one line of the read-only invoice table.
type PreviewRow struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Amount      string `json:"amount"`
}

// Preview is the presentable projection of the form.
type Preview struct {
	InvoiceNo   string       `json:"invoice_no"`
	Date        string       `json:"date"`
	DisplayName string       `json:"display_name"`
	SecondaryID string       `json:"secondary_id"`
	Rows        []PreviewRow `json:"rows"`
	Subtotal    string       `json:"subtotal"`
	Discount    string       `json:"discount"`
	Total       string       `json:"total"`
	Notes       string       `json:"notes"`
}
