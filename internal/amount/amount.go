// Package amount provides a fixed-point money type.
//
// Amount abstracts an integer scaled by 10^4 so that balance arithmetic
// never goes through floating point. Conversion to and from decimal text
// or float64 happens only at the system boundary (parsing input,
// rendering output).
package amount

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// fractionalDigits is the number of decimal places an Amount can
// represent exactly. Four digits covers typical currency sub-units.
const fractionalDigits = 4

const scale = 10_000

// ErrOutOfRange is returned when a value cannot be represented as a
// scaled int64, or is not a finite number.
var ErrOutOfRange = errors.New("amount out of range")

// Amount is a fixed-point monetary value with four fractional digits.
// The zero value is zero money.
type Amount struct {
	raw int64
}

// FromFloat64 converts a float to an Amount, rounding to the nearest
// representable value. It fails on NaN, infinities, and values whose
// scaled form overflows int64.
func FromFloat64(f float64) (Amount, error) {
	scaled := math.Round(f * scale)
	// float64(math.MaxInt64) rounds up to 2^63, so comparing against it
	// would let a value of exactly 2^63 wrap in the int64 conversion.
	// -2^63 is exactly representable, so the lower bound is a plain
	// comparison.
	if math.IsNaN(scaled) || scaled >= math.Ldexp(1, 63) || scaled < math.MinInt64 {
		return Amount{}, ErrOutOfRange
	}
	return Amount{raw: int64(scaled)}, nil
}

// FromString converts a decimal text token (e.g. "1.5", "0.0001") to an
// Amount, rounding to the nearest representable value. Parsing is exact:
// the token never passes through a float64.
func FromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	scaled := d.Shift(fractionalDigits).Round(0)
	if scaled.Cmp(decimal.NewFromInt(math.MaxInt64)) > 0 ||
		scaled.Cmp(decimal.NewFromInt(math.MinInt64)) < 0 {
		return Amount{}, ErrOutOfRange
	}
	return Amount{raw: scaled.IntPart()}, nil
}

// Float64 returns the amount as a float. Display use only.
func (a Amount) Float64() float64 {
	return float64(a.raw) / scale
}

// Decimal returns the amount as an exact decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(a.raw, -fractionalDigits)
}

// String renders the amount as decimal text with trailing zeros trimmed,
// e.g. "100", "1.5", "0.0001".
func (a Amount) String() string {
	return a.Decimal().String()
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{raw: a.raw + b.raw}
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{raw: a.raw - b.raw}
}

// Neg returns -a.
func (a Amount) Neg() Amount {
	return Amount{raw: -a.raw}
}

// Cmp compares two amounts, returning -1, 0, or 1.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.raw < b.raw:
		return -1
	case a.raw > b.raw:
		return 1
	default:
		return 0
	}
}

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool {
	return a.raw < 0
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.raw == 0
}

// MarshalJSON renders the amount as a JSON number with exact decimal
// digits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
