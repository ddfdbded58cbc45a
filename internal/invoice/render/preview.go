package render

import (
	"time"

	invoicedomain "github.com/smallbiznis/rankinvoice/internal/invoice/domain"
	"github.com/smallbiznis/rankinvoice/internal/invoice/format"
)

const emptyNotes = "-"

// PreviewInput is everything the preview is projected from.
type PreviewInput struct {
	InvoiceNo   string
	Date        *time.Time
	DisplayName string
	SecondaryID string
	Selection   invoicedomain.RankSelection
	Items       []invoicedomain.LineItem
	Totals      invoicedomain.Totals
	Notes       string
}

// BuildPreview projects the form into display rows. It is deterministic and
// never mutates its input.
func BuildPreview(in PreviewInput) invoicedomain.Preview {
	out := invoicedomain.Preview{
		InvoiceNo:   in.InvoiceNo,
		Date:        format.FormatDate(in.Date),
		DisplayName: in.DisplayName,
		SecondaryID: in.SecondaryID,
		Rows:        make([]invoicedomain.PreviewRow, 0, len(in.Items)+1),
		Subtotal:    format.FormatAmount(in.Totals.Subtotal),
		Discount:    format.FormatAmount(in.Totals.DiscountAmount),
		Total:       format.FormatAmount(in.Totals.Total),
		Notes:       in.Notes,
	}

	if out.DisplayName == "" && in.Selection.Purchase != nil {
		out.DisplayName = in.Selection.Purchase.Name
	}
	if out.Notes == "" {
		out.Notes = emptyNotes
	}

	switch {
	case in.Selection.Upgrade != nil:
		up := in.Selection.Upgrade
		out.Rows = append(out.Rows, invoicedomain.PreviewRow{
			Description: up.Label(),
			Quantity:    1,
			UnitPrice:   format.FormatAmount(up.Price),
			Amount:      format.FormatAmount(up.Price),
		})
	case in.Selection.Purchase != nil && in.Selection.Purchase.Price.IsPositive():
		p := in.Selection.Purchase
		out.Rows = append(out.Rows, invoicedomain.PreviewRow{
			Description: "Rank: " + p.Name,
			Quantity:    1,
			UnitPrice:   format.FormatAmount(p.Price),
			Amount:      format.FormatAmount(p.Price),
		})
	}

	for _, item := range in.Items {
		if item.IsBlank() {
			continue
		}
		out.Rows = append(out.Rows, invoicedomain.PreviewRow{
			Description: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   format.FormatAmount(item.UnitPrice),
			Amount:      format.FormatAmount(item.Line()),
		})
	}

	return out
}
