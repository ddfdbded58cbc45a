package domain

import (
	"context"

	rankdomain "github.com/smallbiznis/rankinvoice/internal/rank/domain"
)

// Service is the form controller. Every call is one discrete user event:
// it mutates the form, recomputes the totals and returns the new snapshot.
type Service interface {
	Snapshot(ctx context.Context) (FormView, error)
	Preview(ctx context.Context) (Preview, error)
	PreviewHTML(ctx context.Context) (string, error)

	SetIdentity(ctx context.Context, req IdentityRequest) (FormView, error)
	SetRank(ctx context.Context, value string) (FormView, error)
	SetUpgradeFrom(ctx context.Context, r rankdomain.Rank) (FormView, error)
	SetUpgradeTo(ctx context.Context, r rankdomain.Rank) (FormView, error)
	SetDiscount(ctx context.Context, text string) (FormView, error)
	BackspaceDiscount(ctx context.Context) (FormView, error)
	SetNotes(ctx context.Context, notes string) (FormView, error)
	SetDate(ctx context.Context, date string) (FormView, error)

	AddItem(ctx context.Context, req AddItemRequest) (FormView, error)
	UpdateItem(ctx context.Context, req UpdateItemRequest) (FormView, error)
	RemoveItem(ctx context.Context, id string) (FormView, error)
	ClearItems(ctx context.Context) (FormView, error)
	Reset(ctx context.Context) (FormView, error)

	Download(ctx context.Context, sink Sink) (DownloadResult, error)
}

type IdentityRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	SecondaryID *string `json:"secondary_id,omitempty"`
}

type AddItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

type UpdateItemRequest struct {
	ID    string    `json:"id"`
	Field ItemField `json:"field"`
	Value string    `json:"value"`
}

// Sink offers a produced document to the user. A returned error means the
// user never received it.
type Sink interface {
	Deliver(ctx context.Context, filename string, data []byte) error
}

type DownloadResult struct {
	ExportID  string `json:"export_id"`
	Filename  string `json:"filename"`
	InvoiceNo string `json:"invoice_no"`
	Bytes     int    `json:"bytes"`
}
