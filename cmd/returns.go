package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/folioperf/folioperf"
)

type returnsCmd struct {
	rangeKey string
	guess    float64
	live     bool
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "compute the money-weighted annualized return (XIRR)" }
func (*returnsCmd) Usage() string {
	return `fpf returns [-r <range>] [-guess <rate>] [-live]

  Derives the portfolio's cash flows over the range, closes them with the
  terminal valuation, and solves for the annualized money-weighted return.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rangeKey, "r", "MAX", "Range to measure (7D, 1M, 3M, 6M, 1Y, YTD, MAX)")
	f.Float64Var(&c.guess, "guess", 0.1, "Initial guess for the solver")
	f.BoolVar(&c.live, "live", false, "Fetch prices from Alpha Vantage instead of the local store")
}

func (c *returnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	rng, err := resolveRange(c.rangeKey, ledger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	lookup, err := priceSource(rng, c.live)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	series, meta := folioperf.Reconstruct(ledger, rng, lookup)
	if meta.NoData {
		fmt.Fprintln(os.Stderr, meta.Guidance)
		return subcommands.ExitSuccess
	}

	last := series[len(series)-1]
	flows := folioperf.PortfolioCashFlows(ledger, last.Value, last.Date)
	rate, ok := folioperf.XIRR(flows, c.guess)
	if !ok {
		fmt.Fprintln(os.Stderr, "No annualized return can be computed from these cash flows.")
		return subcommands.ExitSuccess
	}

	fmt.Printf("Annualized money-weighted return (XIRR): %s\n", folioperf.Percent(100*rate).SignedString())
	fmt.Printf("Terminal value on %s: %s\n", last.Date, last.Value.StringFixed(2))
	return subcommands.ExitSuccess
}
