package pdf

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/smallbiznis/rankinvoice/internal/config"
	invoicedomain "github.com/smallbiznis/rankinvoice/internal/invoice/domain"
)

var ErrEmptyDocument = errors.New("empty_document")

// Provider turns an invoice preview into a printable document.
type Provider interface {
	GenerateInvoice(ctx context.Context, doc Document, opts Options) ([]byte, error)
}

// Document is everything printed on the invoice.
type Document struct {
	CompanyName string
	Preview     invoicedomain.Preview
	Images      []Image
}

// Options mirror the export settings of one attempt.
type Options struct {
	// Margins are top, right, bottom, left in Unit.
	Margins      [4]float64
	Filename     string
	Scale        float64
	ImageType    string
	ImageQuality float64
	PageFormat   string
	Orientation  string
	Unit         string
}

// OptionsFrom builds attempt options from the current export config.
func OptionsFrom(cfg config.ExportConfig, filename string) Options {
	opts := Options{
		Filename:     filename,
		Scale:        cfg.Scale,
		ImageType:    cfg.ImageType,
		ImageQuality: cfg.ImageQuality,
		PageFormat:   cfg.PageFormat,
		Orientation:  cfg.Orientation,
		Unit:         cfg.Unit,
	}
	copy(opts.Margins[:], cfg.Margins)
	return opts
}

// Filename is "<name>_<invoice id>.pdf", falling back to "invoice" when the
// display name is blank.
func Filename(displayName, invoiceNo string) string {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = "invoice"
	}
	return fmt.Sprintf("%s_%s.pdf", name, invoiceNo)
}

// ASCIIFilename is a header-safe variant of Filename.
func ASCIIFilename(filename string) string {
	base := strings.TrimSuffix(filename, ".pdf")
	safe := slug.Make(base)
	if safe == "" {
		safe = "invoice"
	}
	return safe + ".pdf"
}
