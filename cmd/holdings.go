package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/folioperf/folioperf"
	"github.com/folioperf/folioperf/renderer"
)

type holdingsCmd struct {
	date string
	live bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the valued holdings of the portfolio" }
func (*holdingsCmd) Usage() string {
	return `fpf holdings [-d <date>] [-live]

  Values every open position at the given date's prices, with average cost,
  unrealized gain, dividends received and realized gains per security.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folioperf.Today().String(), "Valuation date (YYYY-MM-DD)")
	f.BoolVar(&c.live, "live", false, "Fetch prices from Alpha Vantage instead of the local store")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := folioperf.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	lookup, err := priceSource(folioperf.NewRange(ledger.Earliest(), on), c.live)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report := folioperf.NewHoldingsReport(ledger, on, lookup, cfg.Currency)
	printMarkdown(renderer.RenderHoldings(report))
	return subcommands.ExitSuccess
}
