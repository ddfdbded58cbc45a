package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)
)

const DefaultInvoiceNumberTemplate = "Invoice No. {SEQ4}"

// FormatInvoiceNumber formats a human-readable invoice number
// based on a template and the counter value.
//
// This function is PURE:
// - No side effects
// - No store access
// - Fully deterministic
func FormatInvoiceNumber(template string, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}

	if seq < 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := strings.ReplaceAll(template, "{SEQ}", strconv.FormatInt(seq, 10))

	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		if len(match) != 2 {
			return m
		}

		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}

		return fmt.Sprintf("%0*d", width, seq)
	})

	// Final safety check: unresolved tokens
	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in invoice format: %s", out)
	}

	return out, nil
}
