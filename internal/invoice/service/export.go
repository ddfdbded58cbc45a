package service

import (
	"context"
	"errors"
	"strings"
	"time"

	invoicedomain "github.com/smallbiznis/rankinvoice/internal/invoice/domain"
	obstracing "github.com/smallbiznis/rankinvoice/internal/observability/tracing"
	"github.com/smallbiznis/rankinvoice/internal/providers/pdf"
	"github.com/smallbiznis/rankinvoice/pkg/log/ctxlogger"
	"github.com/smallbiznis/rankinvoice/pkg/telemetry"
	"github.com/smallbiznis/rankinvoice/pkg/telemetry/correlation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Download exports the current preview and hands it to sink. The invoice
// counter advances only after sink accepted the document; a rejected,
// failed or cancelled export leaves it unchanged.
func (s *Service) Download(ctx context.Context, sink invoicedomain.Sink) (invoicedomain.DownloadResult, error) {
	start := time.Now()
	exportID := correlation.NewID()
	ctx = ctxlogger.ContextWithExportID(ctx, exportID)
	ctx, span := obstracing.StartSpan(ctx, "invoice.export", attribute.String("export_id", exportID))
	defer span.End()
	log := ctxlogger.WithContext(ctx, s.log)

	s.mu.Lock()
	if err := s.validateExportLocked(); err != nil {
		s.mu.Unlock()
		s.metrics.ObserveExport(telemetry.ExportResultRejected, 0)
		span.SetAttributes(attribute.String("export.result", telemetry.ExportResultRejected))
		return invoicedomain.DownloadResult{}, err
	}
	s.recomputeLocked()
	preview := s.previewLocked()
	displayName := strings.TrimSpace(s.displayName)
	s.mu.Unlock()

	cfg := s.exportCfg.Get()
	filename := pdf.Filename(displayName, preview.InvoiceNo)
	opts := pdf.OptionsFrom(cfg, filename)

	images, imageErrs := pdf.LoadImages(ctx, cfg.Images, opts)
	for _, imgErr := range imageErrs {
		log.Warn("invoice image skipped", zap.String("path", imgErr.Path), zap.Error(imgErr.Err))
	}

	data, err := s.pdf.GenerateInvoice(ctx, pdf.Document{
		CompanyName: cfg.CompanyName,
		Preview:     preview,
		Images:      images,
	}, opts)
	if err != nil {
		return invoicedomain.DownloadResult{}, s.exportFailed(ctx, log, start, "generate", err)
	}

	if err := sink.Deliver(ctx, filename, data); err != nil {
		return invoicedomain.DownloadResult{}, s.exportFailed(ctx, log, start, "deliver", err)
	}

	// The user already holds the document, so the advance must not be
	// dropped if the request context ends now.
	s.mu.Lock()
	invoiceNo, err := s.counter.Advance(context.WithoutCancel(ctx))
	s.mu.Unlock()

	result := invoicedomain.DownloadResult{
		ExportID:  exportID,
		Filename:  filename,
		InvoiceNo: preview.InvoiceNo,
		Bytes:     len(data),
	}
	if err != nil {
		log.Error("invoice delivered but counter not advanced", zap.String("invoice_no", preview.InvoiceNo), zap.Error(err))
		s.metrics.ObserveExport(telemetry.ExportResultFailed, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "counter advance failed")
		return result, errors.Join(invoicedomain.ErrExportFailed, err)
	}

	s.metrics.ObserveExport(telemetry.ExportResultSuccess, time.Since(start))
	span.SetAttributes(attribute.String("export.result", telemetry.ExportResultSuccess))
	log.Info("invoice exported",
		zap.String("invoice_no", preview.InvoiceNo),
		zap.String("next_invoice_no", invoiceNo),
		zap.String("filename", filename),
		zap.Int("bytes", len(data)),
		zap.Int("images", len(images)),
	)
	return result, nil
}

func (s *Service) exportFailed(ctx context.Context, log *zap.Logger, start time.Time, stage string, err error) error {
	result := telemetry.ExportResultFailed
	if isCancellation(err) || ctx.Err() != nil {
		result = telemetry.ExportResultCancelled
	}
	s.metrics.ObserveExport(result, time.Since(start))

	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, stage+" failed")
	span.SetAttributes(attribute.String("export.result", result))

	log.Warn("invoice export did not complete, counter unchanged",
		zap.String("stage", stage),
		zap.String("result", result),
		zap.Error(err),
	)
	return errors.Join(invoicedomain.ErrExportFailed, err)
}
