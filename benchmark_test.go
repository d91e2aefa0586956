package folioperf

import (
	"testing"
	"time"
)

// spyPrices fills SPY with a constant price over January weekdays.
func spyPrices(price float64) *MemoryPrices {
	prices := NewMemoryPrices()
	for d := range NewRange(day(time.January, 1), day(time.January, 31)).Weekdays() {
		prices.Add("SPY", d, dec(price))
	}
	return prices
}

func TestSimulateBenchmark_ShareMath(t *testing.T) {
	// $1,000 against a $100/share benchmark buys exactly 10 shares.
	series, meta := SimulateBenchmark(dec(1000), day(time.January, 6), NewLedger(), "SPY", spyPrices(100), day(time.January, 10), CashFlowReplay)
	if meta.NoData {
		t.Fatalf("unexpected no-data outcome: %s", meta.Reason)
	}
	for _, p := range series {
		if !p.Value.Equal(dec(1000)) {
			t.Errorf("value on %s = %s, want 10 shares at 100 = 1000", p.Date, p.Value)
		}
	}
}

func TestSimulateBenchmark_ReplaysCashFlows(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day(time.January, 6), "", "AAPL", Q(10), USD(100), USD(0)),
		NewBuy(day(time.January, 8), "", "AAPL", Q(5), USD(100), USD(0)), // +500 mirrored
	)

	series, meta := SimulateBenchmark(dec(1000), day(time.January, 6), ledger, "SPY", spyPrices(100), day(time.January, 10), CashFlowReplay)
	if meta.NoData {
		t.Fatalf("unexpected no-data outcome: %s", meta.Reason)
	}
	last := series[len(series)-1]
	if !last.Value.Equal(dec(1500)) {
		t.Errorf("final value = %s, want 1500 after mirrored buy", last.Value)
	}
	// Before the mirrored flow only the seed shares are held.
	if !series[1].Value.Equal(dec(1000)) {
		t.Errorf("value on %s = %s, want 1000 before the mirrored buy", series[1].Date, series[1].Value)
	}
}

func TestSimulateBenchmark_SellReducesShares(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(NewSell(day(time.January, 8), "", "AAPL", Q(5), USD(80), USD(0))) // -400 mirrored

	series, _ := SimulateBenchmark(dec(1000), day(time.January, 6), ledger, "SPY", spyPrices(100), day(time.January, 10), CashFlowReplay)
	last := series[len(series)-1]
	if !last.Value.Equal(dec(600)) {
		t.Errorf("final value = %s, want 600 after mirrored sell", last.Value)
	}
}

func TestSimulateBenchmark_LumpSumIgnoresFlows(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(NewBuy(day(time.January, 8), "", "AAPL", Q(50), USD(100), USD(0)))

	series, _ := SimulateBenchmark(dec(1000), day(time.January, 6), ledger, "SPY", spyPrices(100), day(time.January, 10), LumpSum)
	for _, p := range series {
		if !p.Value.Equal(dec(1000)) {
			t.Errorf("value on %s = %s, want the untouched lump sum", p.Date, p.Value)
		}
	}
}

func TestSimulateBenchmark_WeekendFlowUsesNextTradingPrice(t *testing.T) {
	// January 11th 2025 is a Saturday: the flow prices at Monday the 13th.
	ledger := NewLedger()
	ledger.Append(NewBuy(day(time.January, 11), "", "AAPL", Q(2), USD(100), USD(0)))

	prices := NewMemoryPrices().
		Add("SPY", day(time.January, 6), dec(100)).
		Add("SPY", day(time.January, 13), dec(200))

	series, _ := SimulateBenchmark(dec(1000), day(time.January, 6), ledger, "SPY", prices, day(time.January, 17), CashFlowReplay)
	// Seed: 10 shares. Weekend flow of 200 at the Monday price adds 1 share.
	last := series[len(series)-1]
	if !last.Value.Equal(dec(2200)) {
		t.Errorf("final value = %s, want 11 shares at 200 = 2200", last.Value)
	}
}

func TestSimulateBenchmark_FractionalShares(t *testing.T) {
	series, _ := SimulateBenchmark(dec(100), day(time.January, 6), NewLedger(), "SPY", spyPrices(333), day(time.January, 6), CashFlowReplay)
	if len(series) != 1 {
		t.Fatalf("len(series) = %d, want 1", len(series))
	}
	// 100/333 shares back at 333 must restore the seed exactly.
	if !series[0].Value.Round(10).Equal(dec(100)) {
		t.Errorf("value = %s, want 100 from fractional shares", series[0].Value)
	}
}

func TestSimulateBenchmark_NoPriceData(t *testing.T) {
	series, meta := SimulateBenchmark(dec(1000), day(time.January, 6), NewLedger(), "SPY", NewMemoryPrices(), day(time.January, 10), CashFlowReplay)
	if len(series) != 0 || meta.Reason != ReasonNoPriceData || !meta.NoData {
		t.Errorf("got %v / %+v, want empty series with no_price_data", series, meta)
	}
}

func TestResolveBenchmarkPrice(t *testing.T) {
	prices := NewMemoryPrices().
		Add("SPY", day(time.January, 6), dec(100)).
		Add("SPY", day(time.January, 20), dec(150))

	// Exact hit.
	if p, ok := resolveBenchmarkPrice(prices, "SPY", day(time.January, 6)); !ok || !p.Equal(dec(100)) {
		t.Errorf("exact = %s %v, want 100", p, ok)
	}
	// Within the 7 day lookahead window.
	if p, ok := resolveBenchmarkPrice(prices, "SPY", day(time.January, 15)); !ok || !p.Equal(dec(150)) {
		t.Errorf("lookahead = %s %v, want 150", p, ok)
	}
	// Beyond the window: falls back to the most recent earlier price.
	if p, ok := resolveBenchmarkPrice(prices, "SPY", day(time.February, 10)); !ok || !p.Equal(dec(150)) {
		t.Errorf("fallback = %s %v, want 150", p, ok)
	}
}
