package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/folioperf/folioperf"
	"github.com/folioperf/folioperf/alphavantage"
)

type fetchCmd struct {
	rangeKey string
	tickers  string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch daily prices into the local price store" }
func (*fetchCmd) Usage() string {
	return `fpf fetch [-r <range>] [-t <ticker,...>]

  Fetches daily closing prices from Alpha Vantage for every security in the
  ledger (or the explicit ticker list) and merges them into the local price
  store, so reports work offline afterwards.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rangeKey, "r", "MAX", "Range to fetch (7D, 1M, 3M, 6M, 1Y, YTD, MAX)")
	f.StringVar(&c.tickers, "t", "", "Comma-separated tickers; defaults to every security in the ledger")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if cfg.APIKey == "" {
		fmt.Fprintln(os.Stderr, "fetch needs ALPHAVANTAGE_API_KEY to be set")
		return subcommands.ExitFailure
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

	tickers := splitTickers(c.tickers)
	if len(tickers) == 0 {
		for ticker := range ledger.Securities() {
			tickers = append(tickers, ticker)
		}
	}
	if len(tickers) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to fetch: the ledger holds no securities and no -t was given.")
		return subcommands.ExitSuccess
	}

	prices, err := DecodePricesFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	client := alphavantage.New(cfg.APIKey)
	for _, ticker := range tickers {
		series, err := client.Daily(ticker, rng)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching %q: %v\n", ticker, err)
			return subcommands.ExitFailure
		}
		for on, close := range series.Values() {
			prices.Add(ticker, on, close)
		}
		fmt.Printf("Fetched %d prices for %s\n", series.Len(), ticker)
	}

	f2, err := os.Create(cfg.PricesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing price store %q: %v\n", cfg.PricesFile, err)
		return subcommands.ExitFailure
	}
	defer f2.Close()
	if err := folioperf.EncodePrices(f2, prices); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing price store %q: %v\n", cfg.PricesFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Price store %s updated.\n", cfg.PricesFile)
	return subcommands.ExitSuccess
}

func splitTickers(s string) []string {
	var tickers []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}
