package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriceInput(t *testing.T) {
	display, value := PriceInput("")
	assert.Equal(t, "Rp. ", display)
	assert.True(t, value.IsZero())

	display, value = PriceInput("Rp. 1.2345")
	assert.Equal(t, "Rp. 12.345", display)
	assert.Equal(t, int64(12345), value.IntPart())

	// reformatting the rendered text must be stable
	again, _ := PriceInput(display)
	assert.Equal(t, display, again)

	display, value = PriceInput("Rp. ")
	assert.Equal(t, "Rp. ", display)
	assert.True(t, value.IsZero())
}

func TestPriceInputDropsExcessDigits(t *testing.T) {
	_, value := PriceInput("12345678901234567890")
	assert.Equal(t, int64(123456789012345), value.IntPart())
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 64, ClampQuantity(100))
	assert.Equal(t, 0, ClampQuantity(-5))
	assert.Equal(t, 12, ClampQuantity(12))

	for q := -200.0; q <= 200; q += 7 {
		got := ClampQuantity(q)
		assert.GreaterOrEqual(t, got, MinQuantity)
		assert.LessOrEqual(t, got, MaxQuantity)
	}
}

func TestQuantityInput(t *testing.T) {
	display, q := QuantityInput("100")
	assert.Equal(t, "64", display)
	assert.Equal(t, 64, q)

	display, q = QuantityInput("-5")
	assert.Equal(t, "", display)
	assert.Equal(t, 0, q)

	display, q = QuantityInput("3x")
	assert.Equal(t, "3", display)
	assert.Equal(t, 3, q)
}

func TestDiscountInput(t *testing.T) {
	cases := map[string]struct {
		display string
		percent int
	}{
		"":     {"0%", 0},
		"10":   {"10%", 10},
		"10%":  {"10%", 10},
		"250%": {"100%", 100},
		"-5":   {"5%", 5},
		"abc":  {"0%", 0},
		"99999999999999999999999": {"100%", 100},
	}
	for in, want := range cases {
		display, percent := DiscountInput(in)
		assert.Equal(t, want.display, display, in)
		assert.Equal(t, want.percent, percent, in)
	}
}

func TestDiscountBackspace(t *testing.T) {
	display, percent := DiscountBackspace("15%")
	assert.Equal(t, "1%", display)
	assert.Equal(t, 1, percent)

	display, percent = DiscountBackspace("1%")
	assert.Equal(t, "0%", display)
	assert.Equal(t, 0, percent)

	display, _ = DiscountBackspace("0%")
	assert.Equal(t, "0%", display)
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "5/3/2026", FormatDate(&d))
	assert.Equal(t, "", FormatDate(nil))
}
