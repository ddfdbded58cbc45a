package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// CurrencyPrefix precedes every formatted amount.
const CurrencyPrefix = "Rp. "

// thousands separated by ".", no fractional digits
const groupPattern = "#.###,"

var (
	nonAmountRe = regexp.MustCompile(`[^0-9-]+`)
	hundred     = decimal.NewFromInt(100)
)

// Format renders amount in the fixed Rupiah display format, e.g.
// "Rp. 1.234.567" or "-Rp. 1.000,50". NaN and infinities render as "Rp. 0".
func Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return CurrencyPrefix + "0"
	}
	return FormatAmount(decimal.NewFromFloat(amount))
}

// FormatAmount is Format for decimal values produced by the pricing engine.
func FormatAmount(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}

	abs := amount.Abs()
	intPart := abs.Floor()
	cents := abs.Sub(intPart).Mul(hundred).Round(0).IntPart()
	if cents >= 100 {
		intPart = intPart.Add(decimal.NewFromInt(1))
		cents = 0
	}

	out := sign + CurrencyPrefix + groupThousands(intPart)
	if cents == 0 {
		return out
	}
	return fmt.Sprintf("%s,%02d", out, cents)
}

// ParseAmount converts display or input text back to a number. Every rune
// other than a digit or "-" is discarded, so fractional cents are lost:
// ParseAmount("Rp. 1.000,50") == 100050 is not the value that was formatted.
// Unparseable text yields 0.
func ParseAmount(text string) float64 {
	cleaned := cleanAmount(text)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v == 0 || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseDecimal applies the ParseAmount rules and returns an exact value.
func ParseDecimal(text string) decimal.Decimal {
	cleaned := cleanAmount(text)
	if cleaned == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return v
}

func cleanAmount(text string) string {
	if text == "" {
		return ""
	}
	return nonAmountRe.ReplaceAllString(text, "")
}

func groupThousands(v decimal.Decimal) string {
	if !v.LessThanOrEqual(decimal.NewFromInt(math.MaxInt64)) {
		return v.String()
	}
	return humanize.FormatInteger(groupPattern, int(v.IntPart()))
}
