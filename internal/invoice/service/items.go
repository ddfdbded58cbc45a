package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/rankinvoice/internal/invoice/domain"
	"github.com/smallbiznis/rankinvoice/internal/invoice/format"
)

// AddItem appends a row. The price is read the same way the price input
// reads keystrokes.
func (s *Service) AddItem(ctx context.Context, req invoicedomain.AddItemRequest) (invoicedomain.FormView, error) {
	return s.mutate(func() error {
		_, price := format.PriceInput(req.Price)
		s.items.Add(req.Name, req.Quantity, price)
		return nil
	})
}

func (s *Service) UpdateItem(ctx context.Context, req invoicedomain.UpdateItemRequest) (invoicedomain.FormView, error) {
	return s.mutate(func() error {
		id, err := parseItemID(req.ID)
		if err != nil {
			return err
		}
		_, err = s.items.Update(id, req.Field, req.Value)
		return err
	})
}

// RemoveItem deletes one row; the list may end up empty.
func (s *Service) RemoveItem(ctx context.Context, id string) (invoicedomain.FormView, error) {
	return s.mutate(func() error {
		itemID, err := parseItemID(id)
		if err != nil {
			return err
		}
		return s.items.Remove(itemID)
	})
}

// ClearItems empties the list and starts over with one blank row.
func (s *Service) ClearItems(ctx context.Context) (invoicedomain.FormView, error) {
	return s.mutate(func() error {
		s.items.Clear()
		s.items.Add("", 0, decimal.Zero)
		return nil
	})
}

func parseItemID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, invoicedomain.ErrInvalidItemID
	}
	return id, nil
}
