package format

import (
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	MinQuantity = 0
	MaxQuantity = 64

	MinDiscount = 0
	MaxDiscount = 100

	// MaxPriceDigits bounds the live price input; digits typed past it are dropped.
	MaxPriceDigits = 15
)

var nonDigitRe = regexp.MustCompile(`\D+`)

// PriceInput re-derives the digits of a price field and returns the text the
// field should show together with the value it now holds. An emptied field
// shows the bare currency prefix.
func PriceInput(text string) (string, decimal.Decimal) {
	raw := nonDigitRe.ReplaceAllString(text, "")
	if raw == "" {
		return CurrencyPrefix, decimal.Zero
	}
	if len(raw) > MaxPriceDigits {
		raw = raw[:MaxPriceDigits]
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return CurrencyPrefix, decimal.Zero
	}

	p := message.NewPrinter(language.Indonesian)
	return CurrencyPrefix + p.Sprintf("%d", n), decimal.NewFromInt(n)
}

// PriceDisplay is the initial text of a price field: empty for zero.
func PriceDisplay(price decimal.Decimal) string {
	if price.IsZero() {
		return ""
	}
	return FormatAmount(price)
}

// ClampQuantity bounds q to [MinQuantity, MaxQuantity].
func ClampQuantity(q float64) int {
	if q > MaxQuantity {
		return MaxQuantity
	}
	if q < MinQuantity {
		return MinQuantity
	}
	return int(q)
}

// QuantityInput parses and clamps a quantity field. Zero displays as empty.
func QuantityInput(text string) (string, int) {
	q := ClampQuantity(ParseAmount(text))
	return QuantityDisplay(q), q
}

func QuantityDisplay(q int) string {
	if q == 0 {
		return ""
	}
	return strconv.Itoa(q)
}

// ClampDiscount bounds a percentage to [MinDiscount, MaxDiscount].
func ClampDiscount(percent int) int {
	if percent > MaxDiscount {
		return MaxDiscount
	}
	if percent < MinDiscount {
		return MinDiscount
	}
	return percent
}

// DiscountInput keeps the digits of a discount field, clamps them and
// renders the field as "<n>%".
func DiscountInput(text string) (string, int) {
	raw := nonDigitRe.ReplaceAllString(text, "")
	if raw == "" {
		raw = "0"
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		// only digits remain, so the value overflowed
		n = MaxDiscount
	}
	n = ClampDiscount(n)
	return strconv.Itoa(n) + "%", n
}

// DiscountBackspace deletes the last digit of a discount field while
// keeping the "%" suffix in place.
func DiscountBackspace(text string) (string, int) {
	raw := nonDigitRe.ReplaceAllString(text, "")
	if raw != "" {
		raw = raw[:len(raw)-1]
	}
	return DiscountInput(raw)
}

// ParseDiscount reads the percentage held by a discount field.
func ParseDiscount(text string) int {
	_, n := DiscountInput(text)
	return n
}

// FormatDate renders the invoice date the way Indonesian locales write
// short dates (d/m/yyyy). A missing date renders empty.
func FormatDate(value *time.Time) string {
	if value == nil || value.IsZero() {
		return ""
	}
	return value.Format("2/1/2006")
}
