package usecase

import (
	"errors"

	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgerror"
	"github.com/WuorBhang/fund-transfer/internal/treasury/fx"
)

// Transfer errors.
var (
	ErrAccountNotFound     = pkgerror.NewBusiness("account not found", pkgerror.CodeNotFound)
	ErrSameAccount         = pkgerror.NewValidation("source and destination accounts must differ")
	ErrInvalidAmount       = pkgerror.NewValidation("amount must be a positive number")
	ErrInsufficientBalance = pkgerror.NewBusiness("insufficient balance in source account", pkgerror.CodeInsufficientFunds)
)

// Reversal errors.
var (
	ErrTransactionNotFound            = pkgerror.NewBusiness("transaction not found", pkgerror.CodeNotFound)
	ErrAlreadyReversed                = pkgerror.NewBusiness("transaction has already been reversed", pkgerror.CodeConflict)
	ErrCannotReverseAReversal         = pkgerror.NewBusiness("cannot reverse a reversal transaction", pkgerror.CodeConflict)
	ErrAccountsNotFound               = pkgerror.NewBusiness("could not find the accounts involved in this transaction", pkgerror.CodeNotFound)
	ErrInsufficientBalanceForReversal = pkgerror.NewBusiness("insufficient balance in destination account to reverse this transaction", pkgerror.CodeInsufficientFunds)
)

var ErrUnsupportedCurrencyPair = pkgerror.NewValidation("unsupported currency pair")

func mapConvertErr(err error) error {
	if errors.Is(err, fx.ErrUnsupportedCurrencyPair) {
		return ErrUnsupportedCurrencyPair
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
