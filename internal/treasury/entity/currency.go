package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ErrUnsupportedCurrency is returned when a currency code is outside the ledger's closed set.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Currency is one of the currencies an account can be denominated in.
type Currency string

const (
	CurrencyKES Currency = "KES"
	CurrencyUSD Currency = "USD"
	CurrencyNGN Currency = "NGN"
)

// Currencies lists the supported currencies in display order.
func Currencies() []Currency {
	return []Currency{CurrencyKES, CurrencyUSD, CurrencyNGN}
}

// ParseCurrency converts an external code into a Currency.
func ParseCurrency(value string) (Currency, error) {
	switch c := Currency(strings.ToUpper(strings.TrimSpace(value))); c {
	case CurrencyKES, CurrencyUSD, CurrencyNGN:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, value)
	}
}

func (c Currency) Valid() bool {
	switch c {
	case CurrencyKES, CurrencyUSD, CurrencyNGN:
		return true
	default:
		return false
	}
}

func (c Currency) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown codes are rejected.
func (c *Currency) UnmarshalText(text []byte) error {
	parsed, err := ParseCurrency(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Currency) meta() *money.Currency {
	// money.New never returns a nil currency, unlike a direct lookup.
	return money.New(0, string(c)).Currency()
}

// Fraction is the number of minor-unit digits of the currency.
func (c Currency) Fraction() int32 {
	return int32(c.meta().Fraction)
}

// Format renders amount with the currency symbol and grouping, e.g. "KSh250,000.00".
func (c Currency) Format(amount decimal.Decimal) string {
	cur := c.meta()
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
