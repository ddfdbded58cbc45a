package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	counterdomain "github.com/smallbiznis/rankinvoice/internal/counter/domain"
	"github.com/smallbiznis/rankinvoice/internal/invoice/format"
	"github.com/smallbiznis/rankinvoice/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log     *zap.Logger
	Store   counterdomain.Store
	Metrics *telemetry.Metrics `optional:"true"`
}

// Service mirrors the persisted counter in memory. The in-memory value only
// moves after the store accepted the new value.
type Service struct {
	log      *zap.Logger
	store    counterdomain.Store
	metrics  *telemetry.Metrics
	template string

	mu    sync.Mutex
	value int64
}

func NewService(p ServiceParam) counterdomain.Service {
	return &Service{
		log:      p.Log.Named("counter.service"),
		store:    p.Store,
		metrics:  p.Metrics,
		template: format.DefaultInvoiceNumberTemplate,
	}
}

// Load reads the persisted counter. A missing, unparsable or negative value
// starts the counter at zero.
func (s *Service) Load(ctx context.Context) error {
	if s.store == nil {
		return counterdomain.ErrStoreNotConfigured
	}

	raw, ok, err := s.store.Get(ctx, counterdomain.CounterKey)
	if err != nil {
		return fmt.Errorf("load invoice counter: %w", err)
	}

	var value int64
	if ok {
		parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		switch {
		case err != nil:
			s.log.Warn("invoice counter is not a number, starting from zero",
				zap.String("raw", raw),
				zap.Error(err),
			)
		case parsed < 0:
			s.log.Warn("invoice counter is negative, starting from zero", zap.Int64("raw", parsed))
		default:
			value = parsed
		}
	}

	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	s.metrics.SetInvoiceCounter(value)
	s.log.Info("invoice counter loaded", zap.Int64("counter", value), zap.Bool("persisted", ok))
	return nil
}

func (s *Service) Value() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Current formats the counter without touching it.
func (s *Service) Current() string {
	return s.format(s.Value())
}

// Advance moves the counter forward by one, persists it and returns the new
// invoice number.
func (s *Service) Advance(ctx context.Context) (string, error) {
	if s.store == nil {
		return "", counterdomain.ErrStoreNotConfigured
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.value + 1
	if err := s.store.Set(ctx, counterdomain.CounterKey, strconv.FormatInt(next, 10)); err != nil {
		return "", fmt.Errorf("persist invoice counter: %w", err)
	}
	s.value = next

	s.metrics.SetInvoiceCounter(next)
	return s.format(next), nil
}

func (s *Service) format(value int64) string {
	out, err := format.FormatInvoiceNumber(s.template, value)
	if err != nil {
		return fmt.Sprintf("Invoice No. %04d", value)
	}
	return out
}
