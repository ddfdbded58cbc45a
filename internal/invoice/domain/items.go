package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/rankinvoice/internal/invoice/format"
)

type ItemField string

const (
	ItemFieldName     ItemField = "name"
	ItemFieldQuantity ItemField = "quantity"
	ItemFieldPrice    ItemField = "price"
)

// Collection is the ordered list of line items. It owns its items; callers
// only ever receive copies.
type Collection struct {
	genID *snowflake.Node
	items []LineItem
}

func NewCollection(genID *snowflake.Node) *Collection {
	return &Collection{genID: genID}
}

// Add appends a row. Quantity is clamped and a negative price becomes zero.
func (c *Collection) Add(name string, qty int, price decimal.Decimal) LineItem {
	qty = format.ClampQuantity(float64(qty))
	if price.IsNegative() {
		price = decimal.Zero
	}

	item := LineItem{
		ID:           c.genID.Generate(),
		Name:         name,
		Quantity:     qty,
		UnitPrice:    price,
		QuantityText: format.QuantityDisplay(qty),
		PriceText:    format.PriceDisplay(price),
	}
	c.items = append(c.items, item)
	return item
}

// Update applies one edit to the field of a row and returns the row as the
// input now shows it.
func (c *Collection) Update(id snowflake.ID, field ItemField, raw string) (LineItem, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		return LineItem{}, ErrItemNotFound
	}

	item := &c.items[idx]
	switch field {
	case ItemFieldName:
		item.Name = raw
	case ItemFieldQuantity:
		item.QuantityText, item.Quantity = format.QuantityInput(raw)
	case ItemFieldPrice:
		item.PriceText, item.UnitPrice = format.PriceInput(raw)
	default:
		return LineItem{}, ErrInvalidItemField
	}
	return *item, nil
}

// Remove deletes a row. The collection may become empty.
func (c *Collection) Remove(id snowflake.ID) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return ErrItemNotFound
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return nil
}

// Clear removes every row.
func (c *Collection) Clear() {
	c.items = nil
}

func (c *Collection) Len() int {
	return len(c.items)
}

// Items returns a copy of the rows in order.
func (c *Collection) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection) indexOf(id snowflake.ID) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}
