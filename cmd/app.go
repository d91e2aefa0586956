// Package cmd implements the CLI application to track a portfolio and
// measure its performance.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/folioperf/folioperf"
	"github.com/folioperf/folioperf/alphavantage"
	"github.com/folioperf/folioperf/pricecache"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&dividendCmd{}, "transactions")
	c.Register(&fmtCmd{}, "transactions")

	c.Register(&fetchCmd{}, "prices")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&returnsCmd{}, "reports")
	c.Register(&compareCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFlag = flag.String("ledger-file", "", "Path to the ledger file (JSONL format). Overrides FPF_LEDGER.")
var pricesFlag = flag.String("prices-file", "", "Path to the local price store (JSONL format). Overrides FPF_PRICES.")

// Config holds the environment-sourced settings.
type Config struct {
	LedgerFile string        `env:"FPF_LEDGER" envDefault:"transactions.jsonl"`
	PricesFile string        `env:"FPF_PRICES" envDefault:"prices.jsonl"`
	Currency   string        `env:"FPF_CURRENCY" envDefault:"USD"`
	APIKey     string        `env:"ALPHAVANTAGE_API_KEY"`
	CacheTTL   time.Duration `env:"FPF_CACHE_TTL" envDefault:"15m"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid environment configuration: %w", err)
	}
	if *ledgerFlag != "" {
		cfg.LedgerFile = *ledgerFlag
	}
	if *pricesFlag != "" {
		cfg.PricesFile = *pricesFlag
	}
	return cfg, nil
}

// DecodeLedgerFile reads the configured ledger. A missing file is an empty
// ledger, not an error.
func DecodeLedgerFile() (*folioperf.Ledger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(cfg.LedgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, ledger %q does not exist, starting empty", cfg.LedgerFile)
		return folioperf.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger %q: %w", cfg.LedgerFile, err)
	}
	defer f.Close()
	return folioperf.DecodeLedger(f)
}

// DecodePricesFile reads the local price store. A missing file is an empty
// store, not an error.
func DecodePricesFile() (*folioperf.MemoryPrices, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(cfg.PricesFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, price store %q does not exist, starting empty", cfg.PricesFile)
		return folioperf.NewMemoryPrices(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open price store %q: %w", cfg.PricesFile, err)
	}
	defer f.Close()
	return folioperf.DecodePrices(f)
}

// priceSource builds the price lookup for a report: the local store by
// default, or a cached live Alpha Vantage lookup over the range with -live.
func priceSource(rng folioperf.Range, live bool) (folioperf.PriceLookup, error) {
	if !live {
		return DecodePricesFile()
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, errors.New("live prices need ALPHAVANTAGE_API_KEY to be set")
	}
	lookup := alphavantage.NewLookup(alphavantage.New(cfg.APIKey), rng)
	return pricecache.New(lookup, 1<<16, cfg.CacheTTL)
}

// resolveRange turns a range key flag into a concrete range ending today.
func resolveRange(key string, ledger *folioperf.Ledger) (folioperf.Range, error) {
	k, err := folioperf.ParseRangeKey(key)
	if err != nil {
		return folioperf.Range{}, err
	}
	return k.Resolve(folioperf.Today(), ledger.Earliest()), nil
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Raw markdown is still readable.
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
