// Package format renders amounts in the calculator's fixed display format:
// currency with two decimals, percentages with one and order counts with none.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/business-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Currency returns a currency string with thousands separators and the
// currency symbol (e.g., "-1,234.56€").
func Currency(amount float64) string {
	return NumericCurrency(amount) + constants.CurrencySymbol
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return fixed(amount, constants.CurrencyDecimals)
}

// Percent returns a percentage with one decimal (e.g., "49.2%").
func Percent(value float64) string {
	return fixed(value, constants.PercentDecimals) + "%"
}

// Count returns a whole number with separators (e.g., "1,250").
func Count(value float64) string {
	return fixed(value, constants.CountDecimals)
}

// fixed rounds half away from zero on the decimal representation, so 0.125
// becomes 0.13 even though the float is slightly below it.
// Non-finite values are printed as NaN, +Inf or -Inf.
func fixed(value float64, places int32) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	formatted := decimal.NewFromFloat(value).StringFixed(places)

	sign := ""
	if strings.HasPrefix(formatted, "-") {
		sign = "-"
		formatted = formatted[1:]
	}

	parts := strings.SplitN(formatted, ".", 2)
	intPart := groupThousands(parts[0])
	if len(parts) == 2 {
		return sign + intPart + "." + parts[1]
	}
	return sign + intPart
}

func groupThousands(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}

	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}
