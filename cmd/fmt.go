package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/folioperf/folioperf"
)

type fmtCmd struct {
	outputFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `fpf fmt [-o <output_file>]

  Validates and formats the ledger file. This command reads all transactions,
  validates them, sorts them by date, and writes them back in a canonical
  JSONL format. By default it rewrites the ledger in place.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputFile, "o", "", "Write the formatted ledger here instead of in place")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	ledger, err := DecodeLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := ledger.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: ledger is invalid: %v\n", err)
		return subcommands.ExitFailure
	}

	target := c.outputFile
	if target == "" {
		target = cfg.LedgerFile
	}
	out, err := os.Create(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger %q: %v\n", target, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := folioperf.EncodeLedger(out, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger %q: %v\n", target, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Formatted %d transactions into %s\n", ledger.Len(), target)
	return subcommands.ExitSuccess
}
