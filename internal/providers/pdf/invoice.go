package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("pdf",
	fx.Provide(New),
)

type PDFProvider struct {
	log *zap.Logger
}

func New(log *zap.Logger) Provider {
	return &PDFProvider{log: log.Named("pdf.provider")}
}

func (p *PDFProvider) GenerateInvoice(ctx context.Context, doc Document, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	preview := doc.Preview
	if preview.InvoiceNo == "" && len(preview.Rows) == 0 {
		return nil, ErrEmptyDocument
	}

	m := maroto.New(buildConfig(doc, opts))

	if len(doc.Images) > 0 {
		cols := make([]core.Col, 0, len(doc.Images))
		size := 12 / len(doc.Images)
		if size < 2 {
			size = 2
		}
		for _, img := range doc.Images {
			if len(cols)*size >= 12 {
				break
			}
			cols = append(cols, image.NewFromBytesCol(size, img.Data, img.Ext, props.Rect{
				Center:  true,
				Percent: 80,
			}))
		}
		m.AddRow(30, cols...)
	}

	m.AddRow(12,
		text.NewCol(6, doc.CompanyName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(6, "INVOICE", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	m.AddRow(18,
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(preview.DisplayName, props.Text{Top: 5}),
			text.New(preview.SecondaryID, props.Text{Top: 10}),
		),
		col.New(6).Add(
			text.New(preview.InvoiceNo, props.Text{Align: align.Right}),
			text.New("Date: "+preview.Date, props.Text{Top: 5, Align: align.Right}),
		),
	)

	header := props.Text{Style: fontstyle.Bold, Size: 9}
	m.AddRow(10,
		text.NewCol(6, "Description", header),
		text.NewCol(2, "Qty", withAlign(header, align.Right)),
		text.NewCol(2, "Unit price", withAlign(header, align.Right)),
		text.NewCol(2, "Amount", withAlign(header, align.Right)),
	)

	cell := props.Text{Size: 9}
	for _, row := range preview.Rows {
		m.AddRow(8,
			text.NewCol(6, printable(row.Description), cell),
			text.NewCol(2, fmt.Sprintf("%d", row.Quantity), withAlign(cell, align.Right)),
			text.NewCol(2, row.UnitPrice, withAlign(cell, align.Right)),
			text.NewCol(2, row.Amount, withAlign(cell, align.Right)),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", cell),
		text.NewCol(2, preview.Subtotal, withAlign(cell, align.Right)),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Discount", cell),
		text.NewCol(2, preview.Discount, withAlign(cell, align.Right)),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", withStyle(cell, fontstyle.Bold)),
		text.NewCol(2, preview.Total, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)

	m.AddRow(6, text.NewCol(12, "Notes", withStyle(cell, fontstyle.Bold)))
	m.AddRow(12, text.NewCol(12, printable(preview.Notes), cell))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}

	data := out.GetBytes()
	p.log.Debug("invoice pdf generated",
		zap.String("invoice_no", preview.InvoiceNo),
		zap.Int("rows", len(preview.Rows)),
		zap.Int("images", len(doc.Images)),
		zap.Int("bytes", len(data)),
	)
	return data, nil
}

func buildConfig(doc Document, opts Options) *entity.Config {
	builder := config.NewBuilder().
		WithPageSize(pageSize(opts.PageFormat)).
		WithOrientation(pageOrientation(opts.Orientation)).
		WithTopMargin(opts.Margins[0]).
		WithRightMargin(opts.Margins[1]).
		WithBottomMargin(opts.Margins[2]).
		WithLeftMargin(opts.Margins[3]).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		})
	if doc.Preview.InvoiceNo != "" {
		builder = builder.WithTitle(doc.Preview.InvoiceNo, true)
	}
	return builder.Build()
}

func pageSize(format string) pagesize.Type {
	if strings.EqualFold(format, "letter") {
		return pagesize.Letter
	}
	return pagesize.A4
}

func pageOrientation(value string) orientation.Type {
	if strings.EqualFold(value, "landscape") {
		return orientation.Horizontal
	}
	return orientation.Vertical
}

func withAlign(t props.Text, a align.Type) props.Text {
	t.Align = a
	return t
}

func withStyle(t props.Text, s fontstyle.Type) props.Text {
	t.Style = s
	return t
}

// printable swaps runes the core PDF fonts cannot draw.
func printable(s string) string {
	return strings.ReplaceAll(s, "→", "->")
}
