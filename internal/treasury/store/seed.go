package store

import (
	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
	"github.com/shopspring/decimal"
)

// SeedAccounts returns the default treasury accounts.
func SeedAccounts() []entity.Account {
	account := func(id, name string, cur entity.Currency, balance int64) entity.Account {
		return entity.Account{ID: id, Name: name, Currency: cur, Balance: decimal.NewFromInt(balance)}
	}

	return []entity.Account{
		account("1", "Mpesa_KES_1", entity.CurrencyKES, 250000),
		account("2", "Mpesa_KES_2", entity.CurrencyKES, 180000),
		account("3", "Bank_KES_Main", entity.CurrencyKES, 500000),
		account("4", "Bank_USD_1", entity.CurrencyUSD, 15000),
		account("5", "Bank_USD_2", entity.CurrencyUSD, 25000),
		account("6", "Forex_USD_Reserve", entity.CurrencyUSD, 50000),
		account("7", "Bank_NGN_1", entity.CurrencyNGN, 2500000),
		account("8", "Bank_NGN_2", entity.CurrencyNGN, 1800000),
		account("9", "Mobile_NGN_Main", entity.CurrencyNGN, 750000),
		account("10", "Treasury_NGN_Reserve", entity.CurrencyNGN, 3200000),
	}
}
