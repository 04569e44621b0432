package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseLocalizedDecimal parses numbers written in either "1.234,56" or
// "1,234.56" style. When a lone separator is followed by exactly three
// digits it is read as a thousands separator ("1,234" -> 1234); otherwise
// it is the decimal mark ("1,5" -> 1.5).
func ParseLocalizedDecimal(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, NewValidationError("number")
	}
	s = strings.ReplaceAll(s, " ", "")

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// Both present: the rightmost is the decimal mark.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		s = normalizeSingleSeparator(s, ",")
	case lastDot >= 0:
		s = normalizeSingleSeparator(s, ".")
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, NewValidationError("number")
	}
	return value, nil
}

func normalizeSingleSeparator(s, sep string) string {
	if strings.Count(s, sep) > 1 {
		return strings.ReplaceAll(s, sep, "")
	}
	idx := strings.LastIndex(s, sep)
	digitsAfter := len(s) - idx - 1
	if digitsAfter == 3 && idx > 0 {
		return strings.ReplaceAll(s, sep, "")
	}
	return strings.Replace(s, sep, ".", 1)
}
