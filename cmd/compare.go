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

type compareCmd struct {
	rangeKey  string
	benchmark string
	lumpsum   bool
	live      bool
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the portfolio against a benchmark" }
func (*compareCmd) Usage() string {
	return `fpf compare -b <benchmark> [-r <range>] [-lumpsum] [-live]

  Replays the portfolio's cash flows against a benchmark ticker and renders
  both daily series with their returns. With -lumpsum the whole starting
  value is invested at once instead of mirroring each cash flow.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.benchmark, "b", "", "Benchmark ticker (for example SPY)")
	f.StringVar(&c.rangeKey, "r", "1Y", "Range to compare (7D, 1M, 3M, 6M, 1Y, YTD, MAX)")
	f.BoolVar(&c.lumpsum, "lumpsum", false, "Invest the starting value at once instead of replaying cash flows")
	f.BoolVar(&c.live, "live", false, "Fetch prices from Alpha Vantage instead of the local store")
}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.benchmark == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

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

	strategy := folioperf.CashFlowReplay
	if c.lumpsum {
		strategy = folioperf.LumpSum
	}

	report := folioperf.NewComparison(ledger, rng, lookup, c.benchmark, strategy)
	printMarkdown(renderer.RenderComparison(report))
	return subcommands.ExitSuccess
}
