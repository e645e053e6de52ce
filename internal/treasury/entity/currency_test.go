package entity

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in      string
		want    Currency
		wantErr bool
	}{
		{in: "KES", want: CurrencyKES},
		{in: "usd", want: CurrencyUSD},
		{in: " NGN ", want: CurrencyNGN},
		{in: "EUR", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCurrency(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedCurrency) {
				t.Fatalf("ParseCurrency(%q) err = %v, want ErrUnsupportedCurrency", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseCurrency(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestCurrencyUnmarshalText(t *testing.T) {
	var c Currency
	if err := c.UnmarshalText([]byte("kes")); err != nil || c != CurrencyKES {
		t.Fatalf("UnmarshalText(kes) = %q, %v", c, err)
	}
	if err := c.UnmarshalText([]byte("JPY")); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Fatalf("UnmarshalText(JPY) err = %v", err)
	}
	if c != CurrencyKES {
		t.Fatalf("failed unmarshal must not modify the receiver, got %q", c)
	}
}

func TestCurrencyFormat(t *testing.T) {
	if got := CurrencyUSD.Fraction(); got != 2 {
		t.Fatalf("USD fraction = %d", got)
	}
	if got := CurrencyUSD.Format(decimal.RequireFromString("15000")); got != "$15,000.00" {
		t.Fatalf("Format = %q", got)
	}
	if got := CurrencyUSD.Format(decimal.RequireFromString("0.675")); got != "$0.68" {
		t.Fatalf("Format rounding = %q", got)
	}
}
