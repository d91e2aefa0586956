package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/folioperf/folioperf"
)

// appendTransaction appends a transaction to the configured ledger file.
func appendTransaction(tx folioperf.Transaction) subcommands.ExitStatus {
	if err := tx.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid transaction: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(cfg.LedgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", cfg.LedgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := folioperf.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", cfg.LedgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", cfg.LedgerFile)
	return subcommands.ExitSuccess
}

// --- Buy Command ---

type buyCmd struct {
	date     string
	security string
	quantity float64
	price    float64
	fee      float64
	memo     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `buy -d <date> -s <security> -q <quantity> -p <price> [-f <fee>] [-m <memo>]

  Purchases shares of a security, appending a FIFO lot to the position.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folioperf.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.security, "s", "", "Security ticker")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.Float64Var(&c.fee, "f", 0, "Commission paid, not part of the cost basis")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := folioperf.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx := folioperf.NewBuy(day, c.memo, c.security,
		folioperf.Q(c.quantity), folioperf.M(c.price, cfg.Currency), folioperf.M(c.fee, cfg.Currency))
	tx.ID = uuid.NewString()
	return appendTransaction(tx)
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	security string
	quantity float64
	price    float64
	fee      float64
	memo     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `sell -d <date> -s <security> -q <quantity> -p <price> [-f <fee>] [-m <memo>]

  Sells shares of a security, consuming the oldest FIFO lots first.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folioperf.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.security, "s", "", "Security ticker")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.Float64Var(&c.fee, "f", 0, "Commission paid, not part of the proceeds")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || c.quantity <= 0 || c.price < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := folioperf.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx := folioperf.NewSell(day, c.memo, c.security,
		folioperf.Q(c.quantity), folioperf.M(c.price, cfg.Currency), folioperf.M(c.fee, cfg.Currency))
	tx.ID = uuid.NewString()
	return appendTransaction(tx)
}

// --- Dividend Command ---

type dividendCmd struct {
	date     string
	security string
	amount   float64
	perShare float64
	quantity float64
	memo     string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payment for a security" }
func (*dividendCmd) Usage() string {
	return `dividend -d <date> -s <security> -a <amount> [-m <memo>]
dividend -d <date> -s <security> -ps <per-share> -q <quantity> [-m <memo>]

  Records a dividend payment, either as a total amount or as a per-share rate
  applied to a quantity.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folioperf.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.security, "s", "", "Security ticker")
	f.Float64Var(&c.amount, "a", 0, "Total amount received")
	f.Float64Var(&c.perShare, "ps", 0, "Dividend per share")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares the per-share rate applies to")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || (c.amount <= 0 && (c.perShare <= 0 || c.quantity <= 0)) {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := folioperf.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var tx folioperf.Dividend
	if c.amount > 0 {
		tx = folioperf.NewDividend(day, c.memo, c.security, folioperf.M(c.amount, cfg.Currency))
	} else {
		tx = folioperf.NewDividendPerShare(day, c.memo, c.security,
			folioperf.Q(c.quantity), folioperf.M(c.perShare, cfg.Currency))
	}
	tx.ID = uuid.NewString()
	return appendTransaction(tx)
}
