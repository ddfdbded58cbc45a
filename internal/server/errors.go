package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/rankinvoice/internal/invoice/domain"
	rankdomain "github.com/smallbiznis/rankinvoice/internal/rank/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Key     string            `json:"key,omitempty"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrNotFound answers routes the form does not serve.
var ErrNotFound = errors.New("not_found")

var errInternal = errorPayload{Type: "internal_error", Message: "internal server error"}

// domainStatuses maps domain sentinels onto HTTP answers. Order matters only
// for errors wrapping more than one sentinel.
var domainStatuses = []struct {
	err     error
	status  int
	payload errorPayload
}{
	{ErrNotFound, http.StatusNotFound, errorPayload{Type: "not_found", Message: "not found"}},
	{invoicedomain.ErrItemNotFound, http.StatusNotFound, errorPayload{Type: "not_found", Message: "item not found"}},
	{rankdomain.ErrRankUnavailable, http.StatusConflict, errorPayload{Type: "conflict", Message: "rank is not available as an upgrade target"}},
	{invoicedomain.ErrExportFailed, http.StatusInternalServerError, errorPayload{Type: "export_failed", Message: "the invoice could not be exported"}},
}

// fieldSentinels names the request field each rejected input belongs to.
var fieldSentinels = []struct {
	field string
	err   error
}{
	{"id", invoicedomain.ErrInvalidItemID},
	{"field", invoicedomain.ErrInvalidItemField},
	{"date", invoicedomain.ErrInvalidDate},
	{"rank", rankdomain.ErrUnknownRank},
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return &ValidationErrors{Errors: []ValidationError{
		{Field: "request", Code: "invalid_request", Message: "invalid request"},
	}}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errInternal
	}

	if dErr, ok := invoicedomain.AsDialogError(err); ok {
		return http.StatusUnprocessableEntity, errorPayload{Type: "dialog", Key: dErr.Key, Message: dErr.Message}
	}

	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return http.StatusBadRequest, validationPayload(vErr.Errors...)
	}

	for _, f := range fieldSentinels {
		if errors.Is(err, f.err) {
			return http.StatusBadRequest, validationPayload(ValidationError{
				Field:   f.field,
				Code:    f.err.Error(),
				Message: "invalid value",
			})
		}
	}

	for _, d := range domainStatuses {
		if errors.Is(err, d.err) {
			return d.status, d.payload
		}
	}
	return http.StatusInternalServerError, errInternal
}

func validationPayload(errs ...ValidationError) errorPayload {
	return errorPayload{Type: "validation_error", Message: "validation error", Errors: errs}
}

// classifyErrorForLog reports the error type and a stable code for the
// request log line.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	switch {
	case payload.Key != "":
		return payload.Type, payload.Key
	case len(payload.Errors) > 0:
		return payload.Type, payload.Errors[0].Code
	default:
		return payload.Type, payload.Type
	}
}
