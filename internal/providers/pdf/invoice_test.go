package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/smallbiznis/rankinvoice/internal/config"
	invoicedomain "github.com/smallbiznis/rankinvoice/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func samplePreview() invoicedomain.Preview {
	return invoicedomain.Preview{
		InvoiceNo:   "Invoice No. 0008",
		Date:        "19/10/2026",
		DisplayName: "Steve_Alex",
		SecondaryID: "steve#1",
		Rows: []invoicedomain.PreviewRow{
			{Description: "MVP → VIP", Quantity: 1, UnitPrice: "Rp. 90.000", Amount: "Rp. 90.000"},
			{Description: "Sword", Quantity: 2, UnitPrice: "Rp. 5.000", Amount: "Rp. 10.000"},
		},
		Subtotal: "Rp. 100.000",
		Discount: "Rp. 10.000",
		Total:    "Rp. 90.000",
		Notes:    "-",
	}
}

func TestGenerateInvoiceProducesPDF(t *testing.T) {
	p := New(zap.NewNop())
	opts := OptionsFrom(config.DefaultExportConfig(), "Steve_Alex_Invoice No. 0008.pdf")

	data, err := p.GenerateInvoice(context.Background(), Document{
		CompanyName: "Rank Store",
		Preview:     samplePreview(),
	}, opts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateInvoiceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(zap.NewNop()).GenerateInvoice(ctx, Document{Preview: samplePreview()}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateInvoiceEmpty(t *testing.T) {
	_, err := New(zap.NewNop()).GenerateInvoice(context.Background(), Document{}, Options{})
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestOptionsFrom(t *testing.T) {
	opts := OptionsFrom(config.DefaultExportConfig(), "x.pdf")
	assert.Equal(t, [4]float64{10, 10, 10, 10}, opts.Margins)
	assert.Equal(t, 3.0, opts.Scale)
	assert.Equal(t, "jpeg", opts.ImageType)
	assert.Equal(t, 1.0, opts.ImageQuality)
	assert.Equal(t, "a4", opts.PageFormat)
	assert.Equal(t, "portrait", opts.Orientation)
	assert.Equal(t, "mm", opts.Unit)
	assert.Equal(t, "x.pdf", opts.Filename)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Steve_Invoice No. 0008.pdf", Filename("Steve", "Invoice No. 0008"))
	assert.Equal(t, "invoice_Invoice No. 0001.pdf", Filename("  ", "Invoice No. 0001"))
	assert.Equal(t, "steve_invoice-no-0008.pdf", ASCIIFilename("Steve_Invoice No. 0008.pdf"))
	assert.Equal(t, "invoice.pdf", ASCIIFilename("★.pdf"))
}
