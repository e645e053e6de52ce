package fx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var errInvalidRate = errors.New("invalid exchange rate")

// Rate is an exchange rate held as an exact fraction, so that rates such as
// 1/150 are not truncated before they are applied.
type Rate struct {
	num decimal.Decimal
	den decimal.Decimal
}

// NewRate builds num/den. Both parts must be positive.
func NewRate(num, den decimal.Decimal) (Rate, error) {
	if !num.IsPositive() || !den.IsPositive() {
		return Rate{}, fmt.Errorf("%w: %s/%s", errInvalidRate, num, den)
	}
	return Rate{num: num, den: den}, nil
}

func mustRate(num, den string) Rate {
	r, err := NewRate(decimal.RequireFromString(num), decimal.RequireFromString(den))
	if err != nil {
		panic(err)
	}
	return r
}

// ParseRate reads either a decimal ("10.67") or a fraction ("1/150").
func ParseRate(value string) (Rate, error) {
	value = strings.TrimSpace(value)
	numRaw, denRaw, isFraction := strings.Cut(value, "/")
	if !isFraction {
		denRaw = "1"
	}

	num, err := decimal.NewFromString(strings.TrimSpace(numRaw))
	if err != nil {
		return Rate{}, fmt.Errorf("%w: %q", errInvalidRate, value)
	}
	den, err := decimal.NewFromString(strings.TrimSpace(denRaw))
	if err != nil {
		return Rate{}, fmt.Errorf("%w: %q", errInvalidRate, value)
	}

	return NewRate(num, den)
}

// Apply multiplies amount by the rate without rounding.
func (r Rate) Apply(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.num).Div(r.den)
}

// Decimal returns the rate as a decimal with the package division precision.
func (r Rate) Decimal() decimal.Decimal {
	return r.num.Div(r.den)
}

func (r Rate) String() string {
	if r.den.Equal(decimal.NewFromInt(1)) {
		return r.num.String()
	}
	return r.num.String() + "/" + r.den.String()
}
