package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGinMiddlewareAccessLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	r := gin.New()
	r.Use(GinMiddleware(MiddlewareConfig{
		ErrorClassifier: func(err error) (string, string) { return "dialog", "missing_identity" },
	}))
	r.POST("/api/form/download", func(c *gin.Context) {
		_ = c.Error(errors.New("missing identity"))
		c.Status(http.StatusUnprocessableEntity)
	})
	r.GET("/ok", func(c *gin.Context) {
		c.Set(InvoiceNoKey, "Invoice No. 0007")
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(requestIDHeader, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get(requestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/form/download", nil))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Invoice No. 0007", entries[0].ContextMap()[InvoiceNoKey])
	assert.Equal(t, "/ok", entries[0].ContextMap()["route"])

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, "missing_identity", entries[1].ContextMap()["error_code"])
}

func TestAccessLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, accessLevel("/health", http.StatusOK, ""))
	assert.Equal(t, zapcore.DebugLevel, accessLevel("/metrics", http.StatusInternalServerError, ""))
	assert.Equal(t, zapcore.ErrorLevel, accessLevel("/api/form/download", http.StatusInternalServerError, "export_failed"))
	assert.Equal(t, zapcore.InfoLevel, accessLevel("/api/form/download", http.StatusUnprocessableEntity, "validation_error"))
	assert.Equal(t, zapcore.InfoLevel, accessLevel("/api/form", http.StatusOK, ""))
}
