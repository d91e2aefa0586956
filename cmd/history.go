package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/folioperf/folioperf"
)

type historyCmd struct {
	rangeKey string
	live     bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the portfolio's daily value over a range" }
func (*historyCmd) Usage() string {
	return `fpf history [-r <range>] [-live]

  Reconstructs the portfolio's value day by day over the range
  (7D, 1M, 3M, 6M, 1Y, YTD or MAX) and prints the series.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rangeKey, "r", "1M", "Range to reconstruct (7D, 1M, 3M, 6M, 1Y, YTD, MAX)")
	f.BoolVar(&c.live, "live", false, "Fetch prices from Alpha Vantage instead of the local store")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	fmt.Printf("Date\t\tValue\n")
	for _, p := range series {
		fmt.Printf("%s\t%s\n", p.Date, p.Value.StringFixed(2))
	}
	return subcommands.ExitSuccess
}
