package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/WuorBhang/fund-transfer/internal/treasury/client"
	"github.com/WuorBhang/fund-transfer/internal/treasury/entity"
	"github.com/WuorBhang/fund-transfer/internal/treasury/inbound"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// env is shared by every subcommand.
type env struct {
	addr   *string
	out    io.Writer
	errOut io.Writer
}

func (e *env) client() (*client.Client, error) {
	return client.New(*e.addr, nil)
}

func (e *env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(e.errOut, "Error: %v\n", err)
	return subcommands.ExitFailure
}

func register(c *subcommands.Commander, e *env) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")

	c.Register(&accountsCmd{env: e}, "ledger")
	c.Register(&summaryCmd{env: e}, "ledger")
	c.Register(&transactionsCmd{env: e}, "ledger")

	c.Register(&transferCmd{env: e}, "operations")
	c.Register(&reverseCmd{env: e}, "operations")
	c.Register(&quoteCmd{env: e}, "operations")
}

func money(amount decimal.Decimal, cur entity.Currency) string {
	return cur.Format(amount)
}

type accountsCmd struct{ *env }

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list treasury accounts and balances" }
func (*accountsCmd) Usage() string {
	return `treasury accounts

  Lists every account with its currency and current balance.
`
}
func (*accountsCmd) SetFlags(*flag.FlagSet) {}

func (c *accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cl, err := c.client()
	if err != nil {
		return c.fail(err)
	}

	accounts, err := cl.Accounts(ctx)
	if err != nil {
		return c.fail(err)
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCURRENCY\tBALANCE")
	for _, acc := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", acc.ID, acc.Name, acc.Currency, money(acc.Balance, acc.Currency))
	}
	if err := w.Flush(); err != nil {
		return c.fail(err)
	}

	return subcommands.ExitSuccess
}

type summaryCmd struct{ *env }

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show total balance per currency" }
func (*summaryCmd) Usage() string {
	return `treasury summary

  Shows the total balance held in each currency and ledger counters.
`
}
func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cl, err := c.client()
	if err != nil {
		return c.fail(err)
	}

	s, err := cl.Summary(ctx)
	if err != nil {
		return c.fail(err)
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CURRENCY\tACCOUNTS\tTOTAL")
	for _, t := range s.Totals {
		fmt.Fprintf(w, "%s\t%d\t%s\n", t.Currency, t.Accounts, money(t.Balance, t.Currency))
	}
	if err := w.Flush(); err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.out, "\n%d transactions, %d conversions, %d reversed\n", s.Transactions, s.Conversions, s.Reversed)

	return subcommands.ExitSuccess
}

type transferCmd struct {
	*env
	from   string
	to     string
	amount string
	note   string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move funds between two accounts" }
func (*transferCmd) Usage() string {
	return `treasury transfer -from <id> -to <id> -amount <amount> [-note <text>]

  Debits the source account and credits the destination. When the accounts
  hold different currencies the amount is converted at the static rate.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "source account id")
	f.StringVar(&c.to, "to", "", "destination account id")
	f.StringVar(&c.amount, "amount", "", "amount in the source account currency")
	f.StringVar(&c.note, "note", "", "optional note")
}

func (c *transferCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.from == "" || c.to == "" || c.amount == "" {
		fmt.Fprint(c.errOut, c.Usage())
		return subcommands.ExitUsageError
	}

	cl, err := c.client()
	if err != nil {
		return c.fail(err)
	}

	tx, err := cl.Transfer(ctx, client.TransferRequest{FromAccountID: c.from, ToAccountID: c.to, Amount: c.amount, Note: c.note})
	if err != nil {
		return c.fail(err)
	}

	fmt.Fprintf(c.out, "%s %s: %s -> %s, %s", tx.ID, tx.Type, tx.FromAccount, tx.ToAccount, money(tx.Amount, tx.Currency))
	if tx.ConvertedAmount.Valid {
		fmt.Fprintf(c.out, " (credited %s)", money(tx.ConvertedAmount.Decimal, tx.ConvertedCurrency))
	}
	fmt.Fprintln(c.out)

	return subcommands.ExitSuccess
}

type reverseCmd struct{ *env }

func (*reverseCmd) Name() string     { return "reverse" }
func (*reverseCmd) Synopsis() string { return "reverse a transaction" }
func (*reverseCmd) Usage() string {
	return `treasury reverse <transaction-id>

  Returns the funds of a transfer or conversion to the source account.
  A transaction can be reversed once; reversals cannot be reversed.
`
}
func (*reverseCmd) SetFlags(*flag.FlagSet) {}

func (c *reverseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(c.errOut, c.Usage())
		return subcommands.ExitUsageError
	}

	cl, err := c.client()
	if err != nil {
		return c.fail(err)
	}

	res, err := cl.Reverse(ctx, f.Arg(0))
	if err != nil {
		return c.fail(err)
	}

	rev := res.Reversal
	fmt.Fprintf(c.out, "%s reversed %s: %s -> %s, %s\n", rev.ID, rev.ReversalOf, rev.FromAccount, rev.ToAccount, money(rev.Amount, rev.Currency))

	return subcommands.ExitSuccess
}

type transactionsCmd struct {
	*env
	currency string
	page     int
	pageSize int
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list ledger transactions, most recent first" }
func (*transactionsCmd) Usage() string {
	return `treasury transactions [-currency KES|USD|NGN] [-page N] [-size N]

  Lists transactions. The currency filter matches either leg of a conversion.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "only transactions involving this currency")
	f.IntVar(&c.page, "page", 1, "page number")
	f.IntVar(&c.pageSize, "size", 20, "page size")
}

func (c *transactionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	q := client.TransactionsQuery{Page: c.page, PageSize: c.pageSize}
	if c.currency != "" {
		cur, err := entity.ParseCurrency(c.currency)
		if err != nil {
			fmt.Fprintf(c.errOut, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		q.Currency = cur
	}

	cl, err := c.client()
	if err != nil {
		return c.fail(err)
	}

	page, err := cl.Transactions(ctx, q)
	if err != nil {
		return c.fail(err)
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tFROM\tTO\tAMOUNT\tCREDITED\tSTATE\tNOTE")
	for _, tx := range page.Transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID,
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			tx.FromAccount,
			tx.ToAccount,
			money(tx.Amount, tx.Currency),
			credited(tx),
			tx.State,
			tx.Note,
		)
	}
	if err := w.Flush(); err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.out, "page %d, %d of %d transactions\n", page.Page, len(page.Transactions), page.Total)

	return subcommands.ExitSuccess
}

func credited(tx inbound.Transaction) string {
	if !tx.ConvertedAmount.Valid {
		return "-"
	}
	return money(tx.ConvertedAmount.Decimal, tx.ConvertedCurrency)
}

type quoteCmd struct{ *env }

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "preview a currency conversion" }
func (*quoteCmd) Usage() string {
	return `treasury quote <amount> <from> <to>

  Shows what amount would be credited for a conversion, e.g. "treasury quote 100 USD KES".
`
}
func (*quoteCmd) SetFlags(*flag.FlagSet) {}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprint(c.errOut, c.Usage())
		return subcommands.ExitUsageError
	}

	amount, err := decimal.NewFromString(f.Arg(0))
	if err != nil {
		fmt.Fprintf(c.errOut, "Error: invalid amount %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
	from, errFrom := entity.ParseCurrency(f.Arg(1))
	to, errTo := entity.ParseCurrency(f.Arg(2))
	if err := errors.Join(errFrom, errTo); err != nil {
		fmt.Fprintf(c.errOut, "Error: %s\n", strings.ReplaceAll(err.Error(), "\n", "; "))
		return subcommands.ExitUsageError
	}

	cl, err := c.client()
	if err != nil {
		return c.fail(err)
	}

	q, err := cl.Quote(ctx, amount, from, to)
	if err != nil {
		return c.fail(err)
	}

	fmt.Fprintf(c.out, "%s = %s at %s\n", money(q.Amount, q.From), money(q.Converted, q.To), q.Rate)

	return subcommands.ExitSuccess
}
