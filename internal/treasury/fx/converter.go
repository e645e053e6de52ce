package fx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
	"github.com/shopspring/decimal"
)

// ErrUnsupportedCurrencyPair is returned when no rate exists for a pair.
var ErrUnsupportedCurrencyPair = errors.New("unsupported currency pair")

// Places is the number of decimal places converted amounts are rounded to.
const Places = 2

type Pair struct {
	From entity.Currency
	To   entity.Currency
}

func (p Pair) String() string {
	return string(p.From) + "-" + string(p.To)
}

// Table maps an ordered currency pair to its rate. The entries are not
// required to be inverses of one another.
type Table map[Pair]Rate

// DefaultTable returns the static treasury rates.
//
// KES->NGN and NGN->KES are quoted independently of the USD legs, so a
// conversion there and back is not guaranteed to return the original amount.
func DefaultTable() Table {
	return Table{
		{From: entity.CurrencyUSD, To: entity.CurrencyKES}: mustRate("150", "1"),
		{From: entity.CurrencyUSD, To: entity.CurrencyNGN}: mustRate("1600", "1"),
		{From: entity.CurrencyKES, To: entity.CurrencyUSD}: mustRate("1", "150"),
		{From: entity.CurrencyKES, To: entity.CurrencyNGN}: mustRate("10.67", "1"),
		{From: entity.CurrencyNGN, To: entity.CurrencyUSD}: mustRate("1", "1600"),
		{From: entity.CurrencyNGN, To: entity.CurrencyKES}: mustRate("1", "10.67"),
	}
}

// ParseTable reads "FROM-TO" keyed rates, e.g. {"USD-KES": "150", "KES-USD": "1/150"}.
// Pairs that are not listed keep their DefaultTable value.
func ParseTable(pairs map[string]string) (Table, error) {
	table := DefaultTable()
	for key, raw := range pairs {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		fromRaw, toRaw, ok := strings.Cut(key, "-")
		if !ok {
			return nil, fmt.Errorf("invalid currency pair %q", key)
		}
		from, err := entity.ParseCurrency(fromRaw)
		if err != nil {
			return nil, err
		}
		to, err := entity.ParseCurrency(toRaw)
		if err != nil {
			return nil, err
		}
		if from == to {
			return nil, fmt.Errorf("invalid currency pair %q", key)
		}

		rate, err := ParseRate(raw)
		if err != nil {
			return nil, fmt.Errorf("pair %s: %w", key, err)
		}
		table[Pair{From: from, To: to}] = rate
	}

	return table, nil
}

// Quote is the result of converting an amount at a given rate.
type Quote struct {
	Amount    decimal.Decimal
	From      entity.Currency
	To        entity.Currency
	Rate      Rate
	Converted decimal.Decimal
}

// Converter converts amounts between currencies using a fixed rate table.
type Converter struct {
	rates Table
}

// NewConverter copies table; a nil or empty table selects DefaultTable.
func NewConverter(table Table) *Converter {
	if len(table) == 0 {
		table = DefaultTable()
	}

	rates := make(Table, len(table))
	for pair, rate := range table {
		rates[pair] = rate
	}

	return &Converter{rates: rates}
}

// Rate returns the rate for from->to. The identity rate is returned when both are equal.
func (c *Converter) Rate(from, to entity.Currency) (Rate, error) {
	if !from.Valid() || !to.Valid() {
		return Rate{}, fmt.Errorf("%w: %s-%s", ErrUnsupportedCurrencyPair, from, to)
	}
	if from == to {
		return mustRate("1", "1"), nil
	}

	rate, ok := c.rates[Pair{From: from, To: to}]
	if !ok {
		return Rate{}, fmt.Errorf("%w: %s-%s", ErrUnsupportedCurrencyPair, from, to)
	}
	return rate, nil
}

// Convert returns amount expressed in to. Same-currency conversion returns
// amount unchanged; otherwise the result is rounded half away from zero to Places.
func (c *Converter) Convert(amount decimal.Decimal, from, to entity.Currency) (decimal.Decimal, error) {
	rate, err := c.Rate(from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if from == to {
		return amount, nil
	}
	return rate.Apply(amount).Round(Places), nil
}

func (c *Converter) Quote(amount decimal.Decimal, from, to entity.Currency) (Quote, error) {
	rate, err := c.Rate(from, to)
	if err != nil {
		return Quote{}, err
	}

	converted, err := c.Convert(amount, from, to)
	if err != nil {
		return Quote{}, err
	}

	return Quote{Amount: amount, From: from, To: to, Rate: rate, Converted: converted}, nil
}

// Pairs lists the configured pairs.
func (c *Converter) Pairs() []Pair {
	pairs := make([]Pair, 0, len(c.rates))
	for _, from := range entity.Currencies() {
		for _, to := range entity.Currencies() {
			if _, ok := c.rates[Pair{From: from, To: to}]; ok {
				pairs = append(pairs, Pair{From: from, To: to})
			}
		}
	}
	return pairs
}
