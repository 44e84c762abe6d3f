package order

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// PurityNumber extracts the numeric portion of a kadar code ("8k" -> 8,
// "24K" -> 24). Codes without leading digits count as 0.
func PurityNumber(purity string) int {
	s := strings.TrimSpace(purity)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// WeightValue returns the numeric value of a berat token. Non-numeric tokens
// count as zero. Decimal tokens compare exactly ("2.10" == "2.1").
func WeightValue(weight string) decimal.Decimal {
	if d, ok := parseDecimal(weight); ok {
		return d
	}
	return decimal.Zero
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
