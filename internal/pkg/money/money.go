// Package money represents monetary values as integer minor units (cents) so
// repeated sums never accumulate floating-point drift. On the wire an Amount
// is a plain decimal number, matching what the dashboard expects.
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary value in minor units (cents).
type Amount int64

// FromMajor converts whole currency units to an Amount.
func FromMajor(units int64) Amount {
	return Amount(units * 100)
}

// Parse converts a decimal string such as "150", "99.5" or "12.75" to an
// Amount. More than two fractional digits is an error; money never carries
// sub-cent precision here.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	var cents int64
	switch len(frac) {
	case 0:
	case 1:
		d, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		cents = d * 10
	case 2:
		d, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		cents = d
	default:
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
	}

	total := units*100 + cents
	if neg {
		total = -total
	}
	return Amount(total), nil
}

// String formats the amount as a decimal number without a trailing ".00".
func (a Amount) String() string {
	units := int64(a) / 100
	cents := int64(a) % 100
	if cents == 0 {
		return strconv.FormatInt(units, 10)
	}
	if cents < 0 {
		cents = -cents
		if units == 0 && a < 0 {
			return fmt.Sprintf("-0.%02d", cents)
		}
	}
	s := fmt.Sprintf("%d.%02d", units, cents)
	return strings.TrimSuffix(s, "0")
}

// MarshalJSON encodes the amount as a plain decimal number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number (or numeric string) with at most two
// decimal places.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
