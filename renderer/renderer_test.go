package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/folioperf/folioperf"
)

func day(month time.Month, d int) folioperf.Date { return folioperf.NewDate(2025, month, d) }

func usd(v float64) folioperf.Money { return folioperf.M(v, "USD") }

func sampleHoldings(t *testing.T) *folioperf.HoldingsReport {
	t.Helper()
	ledger := folioperf.NewLedger()
	ledger.Append(
		folioperf.NewBuy(day(time.January, 10), "", "AAPL", folioperf.Q(10), usd(100), usd(0)),
		folioperf.NewDividend(day(time.March, 1), "", "AAPL", usd(25)),
	)
	prices := folioperf.NewMemoryPrices().Add("AAPL", day(time.June, 2), decimal.NewFromInt(120))
	return folioperf.NewHoldingsReport(ledger, day(time.June, 2), prices, "USD")
}

func TestRenderHoldings(t *testing.T) {
	got := RenderHoldings(sampleHoldings(t))

	for _, want := range []string{
		"# Holdings on 2025-06-02",
		"| Ticker | Quantity |",
		"| AAPL | 10 |",
		"**Total value**",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "error") {
		t.Errorf("template error leaked into output:\n%s", got)
	}
}

func TestRenderComparison(t *testing.T) {
	ledger := folioperf.NewLedger()
	ledger.Append(folioperf.NewBuy(day(time.January, 6), "", "AAPL", folioperf.Q(10), usd(100), usd(0)))

	prices := folioperf.NewMemoryPrices()
	for d := range folioperf.NewRange(day(time.January, 1), day(time.January, 10)).Weekdays() {
		prices.Add("AAPL", d, decimal.NewFromInt(100))
		prices.Add("SPY", d, decimal.NewFromInt(50))
	}

	rng := folioperf.NewRange(day(time.January, 6), day(time.January, 10))
	report := folioperf.NewComparison(ledger, rng, prices, "SPY", folioperf.CashFlowReplay)
	got := RenderComparison(report)

	for _, want := range []string{
		"# Portfolio vs SPY from 2025-01-06 to 2025-01-10",
		"| Portfolio |",
		"| SPY (replay) |",
		"## Daily values",
		"| 2025-01-06 |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderComparison_NoData(t *testing.T) {
	rng := folioperf.NewRange(day(time.January, 6), day(time.January, 10))
	report := folioperf.NewComparison(folioperf.NewLedger(), rng, folioperf.NewMemoryPrices(), "SPY", folioperf.CashFlowReplay)
	got := RenderComparison(report)

	if !strings.Contains(got, report.PortfolioMeta.Guidance) {
		t.Errorf("no-data report must surface the guidance text:\n%s", got)
	}
	if strings.Contains(got, "## Daily values") {
		t.Errorf("no-data report must not render an empty table:\n%s", got)
	}
}
