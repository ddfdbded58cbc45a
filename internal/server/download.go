package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	obsmiddleware "github.com/smallbiznis/rankinvoice/internal/observability/logger"
	"github.com/smallbiznis/rankinvoice/internal/providers/pdf"
	"go.uber.org/zap"
)

// DownloadInvoice streams the exported invoice as an attachment. The client
// refetches the form afterwards to pick up the next invoice number.
func (s *Server) DownloadInvoice(c *gin.Context) {
	result, err := s.invoiceSvc.Download(c.Request.Context(), &attachmentSink{c: c})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Set(obsmiddleware.InvoiceNoKey, result.InvoiceNo)

	s.log.Debug("invoice downloaded",
		zap.String("export_id", result.ExportID),
		zap.String("invoice_no", result.InvoiceNo),
		zap.String("filename", result.Filename),
	)
}

// attachmentSink writes the document as the response body.
type attachmentSink struct {
	c *gin.Context
}

func (a *attachmentSink) Deliver(ctx context.Context, filename string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.c.Header("Content-Type", "application/pdf")
	a.c.Header("Content-Disposition", contentDisposition(filename))
	a.c.Header("Content-Length", strconv.Itoa(len(data)))
	a.c.Status(http.StatusOK)
	if _, err := a.c.Writer.Write(data); err != nil {
		return err
	}
	a.c.Writer.Flush()
	return nil
}

func contentDisposition(filename string) string {
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`,
		pdf.ASCIIFilename(filename), url.PathEscape(filename))
}
