package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/rankinvoice/internal/clock"
	"github.com/smallbiznis/rankinvoice/internal/config"
	counterdomain "github.com/smallbiznis/rankinvoice/internal/counter/domain"
	invoicedomain "github.com/smallbiznis/rankinvoice/internal/invoice/domain"
	"github.com/smallbiznis/rankinvoice/internal/invoice/format"
	"github.com/smallbiznis/rankinvoice/internal/invoice/pricing"
	"github.com/smallbiznis/rankinvoice/internal/invoice/render"
	"github.com/smallbiznis/rankinvoice/internal/providers/pdf"
	rankdomain "github.com/smallbiznis/rankinvoice/internal/rank/domain"
	"github.com/smallbiznis/rankinvoice/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// dateLayout is what the date input submits.
const dateLayout = "2006-01-02"

var whitespaceRun = regexp.MustCompile(`\s+`)

type ServiceParam struct {
	fx.In

	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Counter      counterdomain.Service
	PDF          pdf.Provider
	Renderer     render.Renderer
	ExportConfig *config.ExportConfigHolder
	Metrics      *telemetry.Metrics `optional:"true"`
}

// Service holds the single invoice form. mu serializes every event so a
// recompute always reads fully normalized input.
type Service struct {
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	counter   counterdomain.Service
	pdf       pdf.Provider
	renderer  render.Renderer
	exportCfg *config.ExportConfigHolder
	metrics   *telemetry.Metrics

	mu           sync.Mutex
	displayName  string
	secondaryID  string
	rankValue    string
	purchase     *rankdomain.Purchase
	upgrade      rankdomain.UpgradeSelector
	discountText string
	discount     int
	notes        string
	date         *time.Time
	items        *invoicedomain.Collection
	totals       invoicedomain.Totals
}

func NewService(p ServiceParam) invoicedomain.Service {
	s := &Service{
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		counter:   p.Counter,
		pdf:       p.PDF,
		renderer:  p.Renderer,
		exportCfg: p.ExportConfig,
		metrics:   p.Metrics,
		items:     invoicedomain.NewCollection(p.GenID),
	}

	today := s.clock.Now()
	s.date = &today
	s.items.Add("", 0, decimal.Zero)
	s.recomputeLocked()
	return s
}

func (s *Service) Snapshot(ctx context.Context) (invoicedomain.FormView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked(), nil
}

func (s *Service) Preview(ctx context.Context) (invoicedomain.Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewLocked(), nil
}

// SetIdentity updates the customer fields that are present in req. Runs of
// whitespace in the display name become underscores.
func (s *Service) SetIdentity(ctx context.Context, req invoicedomain.IdentityRequest) (invoicedomain.FormView, error) {
	return s.mutate(func() error {
		if req.DisplayName != nil {
			s.displayName = whitespaceRun.ReplaceAllString(*req.DisplayName, "_")
		}
		if req.SecondaryID != nil {
			s.secondaryID = *req.SecondaryID
		}
		return nil
	})
}

// SetRank selects a rank purchase from its "<name>|<price>" value. A value
// that does not decode is kept for display but purchases nothing.
func (s *Service) SetRank(ctx context.Context, value string) (invoicedomain.FormView, error) {
	return s.mutate(func() error {
		s.rankValue = value
		s.purchase = nil
		if p, ok := rankdomain.ParsePurchase(value); ok {
			s.purchase = &p
		}
		return nil
	})
}

func (s *Service) SetUpgradeFrom(ctx context.Context, r rankdomain.Rank) (invoicedomain.FormView, error) {
	return s.mutate(func() error {
		return s.upgrade.SetFrom(r)
	})
}

func (s *Service) SetUpgradeTo(ctx context.Context, r rankdomain.Rank) (invoicedomain.FormView, error) {
	return s.mutate(func() error {
		return s.upgrade.SetTo(r)
	})
}

func (s *Service) SetDiscount(ctx context.Context, text string) (invoicedomain.FormView, error) {
	return s.mutate(func() error {
		s.discountText, s.discount = format.DiscountInput(text)
		return nil
	})
}

func (s *Service) BackspaceDiscount(ctx context.Context) (invoicedomain.FormView, error) {
	return s.mutate(func() error {
		s.discountText, s.discount = format.DiscountBackspace(s.discountText)
		return nil
	})
}

func (s *Service) SetNotes(ctx context.Context, notes string) (invoicedomain.FormView, error) {
	return s.mutate(func() error {
		s.notes = notes
		return nil
	})
}

// SetDate sets the invoice date from a yyyy-mm-dd value; empty clears it.
func (s *Service) SetDate(ctx context.Context, date string) (invoicedomain.FormView, error) {
	return s.mutate(func() error {
		date = strings.TrimSpace(date)
		if date == "" {
			s.date = nil
			return nil
		}
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return fmt.Errorf("%w: %q", invoicedomain.ErrInvalidDate, date)
		}
		s.date = &parsed
		return nil
	})
}

// Reset clears the form but keeps the invoice number.
func (s *Service) Reset(ctx context.Context) (invoicedomain.FormView, error) {
	return s.mutate(func() error {
		s.displayName = ""
		s.secondaryID = ""
		s.rankValue = ""
		s.purchase = nil
		s.upgrade.Reset()
		s.discountText = ""
		s.discount = 0
		s.notes = ""
		s.date = nil
		s.items.Clear()
		s.items.Add("", 0, decimal.Zero)
		s.log.Debug("invoice form reset", zap.String("invoice_no", s.counter.Current()))
		return nil
	})
}

// mutate applies one form event under the lock, then recomputes. A failed
// event skips the recompute and returns no snapshot.
func (s *Service) mutate(fn func() error) (invoicedomain.FormView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(); err != nil {
		return invoicedomain.FormView{}, err
	}
	s.recomputeLocked()
	return s.viewLocked(), nil
}

func (s *Service) selectionLocked() invoicedomain.RankSelection {
	return invoicedomain.RankSelection{
		Purchase: s.purchase,
		Upgrade:  s.upgrade.Upgrade(),
	}
}

func (s *Service) recomputeLocked() {
	s.totals = pricing.Compute(s.items.Items(), s.selectionLocked(), s.discount)
	s.metrics.IncRecompute()
}

func (s *Service) previewLocked() invoicedomain.Preview {
	return render.BuildPreview(render.PreviewInput{
		InvoiceNo:   s.counter.Current(),
		Date:        s.date,
		DisplayName: s.displayName,
		SecondaryID: s.secondaryID,
		Selection:   s.selectionLocked(),
		Items:       s.items.Items(),
		Totals:      s.totals,
		Notes:       s.notes,
	})
}

func (s *Service) viewLocked() invoicedomain.FormView {
	items := s.items.Items()
	views := make([]invoicedomain.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, invoicedomain.ItemView{
			LineItem:  item,
			LineTotal: format.FormatAmount(item.Line()),
		})
	}

	date := ""
	if s.date != nil {
		date = s.date.Format(dateLayout)
	}

	return invoicedomain.FormView{
		InvoiceNo:      s.counter.Current(),
		Date:           date,
		DisplayName:    s.displayName,
		SecondaryID:    s.secondaryID,
		RankValue:      s.rankValue,
		UpgradeFrom:    string(s.upgrade.From()),
		UpgradeTo:      string(s.upgrade.To()),
		UpgradeOptions: s.upgrade.Options(),
		Upgrade:        s.upgrade.Upgrade(),
		Notes:          s.notes,
		Discount:       s.discountText,
		Items:          views,
		Totals:         s.totals,
		Subtotal:       format.FormatAmount(s.totals.Subtotal),
		Total:          format.FormatAmount(s.totals.Total),
		Preview:        s.previewLocked(),
	}
}

// validateExportLocked checks the two preconditions of a download.
func (s *Service) validateExportLocked() error {
	if strings.TrimSpace(s.displayName) == "" || strings.TrimSpace(s.secondaryID) == "" {
		return invoicedomain.ErrMissingIdentity
	}
	if !pricing.HasBillableContent(s.items.Items(), s.selectionLocked()) {
		return invoicedomain.ErrNoBillableContent
	}
	return nil
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
