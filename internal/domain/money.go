package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is an amount of money in minor units.
type Cents int64

const InitialFunds Cents = 1000_00

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}

// Decimal renders the amount without a currency symbol, e.g. "199.99".
func (c Cents) Decimal() string {
	return strings.Replace(c.String(), "$", "", 1)
}

// ParseCents parses a decimal amount with at most two fraction digits.
func ParseCents(raw string) (Cents, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "$")
	if trimmed == "" {
		return 0, fmt.Errorf("parse amount %q: empty", raw)
	}

	negative := strings.HasPrefix(trimmed, "-")
	trimmed = strings.TrimPrefix(trimmed, "-")

	whole, frac, hasFrac := strings.Cut(trimmed, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return 0, fmt.Errorf("parse amount %q: expected at most two decimal places", raw)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	minor, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || minor < 0 {
		return 0, fmt.Errorf("parse amount %q: invalid fraction", raw)
	}

	total := units*100 + minor
	if negative {
		total = -total
	}

	return Cents(total), nil
}
