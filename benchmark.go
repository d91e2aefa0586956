package folioperf

import "github.com/shopspring/decimal"

// BenchmarkStrategy selects how the benchmark mirror portfolio is built.
type BenchmarkStrategy int

const (
	// CashFlowReplay invests the seed value in the benchmark at the seed
	// date, then mirrors every subsequent cash flow of the real portfolio
	// as a fractional-share trade in the benchmark.
	CashFlowReplay BenchmarkStrategy = iota
	// LumpSum invests the entire seed value at the seed date in one lot and
	// ignores all subsequent transactions.
	LumpSum
)

func (s BenchmarkStrategy) String() string {
	switch s {
	case CashFlowReplay:
		return "replay"
	case LumpSum:
		return "lumpsum"
	}
	return "unknown"
}

// benchmarkLookaheadDays bounds the search for the next trading price after a
// cash-flow date that falls on a non-trading day.
const benchmarkLookaheadDays = 7

// SimulateBenchmark replays the portfolio's cash flows against a single
// benchmark instrument and returns the synthetic portfolio's daily value from
// seedDate to end. It answers "what if I had bought the index instead?".
//
// For the LumpSum strategy, seedDate must be the date of the portfolio's own
// first reconstructed value, not the nominally requested range start, so the
// portfolio and benchmark baselines match even when their data starts on
// different trading days. The effective start date is visible as the first
// point of the returned series.
//
// If no benchmark price data exists at all the result is an empty series with
// a no-data reason, never an error.
func SimulateBenchmark(seedValue decimal.Decimal, seedDate Date, ledger *Ledger, benchmark string, lookup PriceLookup, end Date, strategy BenchmarkStrategy) ([]TimeSeriesPoint, Metadata) {
	seedPrice, ok := resolveBenchmarkPrice(lookup, benchmark, seedDate)
	if !ok {
		return nil, newMetadata(ReasonNoPriceData)
	}

	// The seed is an initial purchase of the benchmark, in fractional shares.
	shares := &History[decimal.Decimal]{}
	cumulative := seedValue.Div(seedPrice)
	shares.Append(seedDate, cumulative)

	if strategy == CashFlowReplay {
		for tx := range ledger.Transactions() {
			if !tx.When().After(seedDate) {
				continue // the seed already covers everything up to its date
			}
			if tx.When().After(end) {
				break
			}
			cash := replayCashAmount(tx)
			if cash.IsZero() {
				continue
			}
			price, ok := resolveBenchmarkPrice(lookup, benchmark, tx.When())
			if !ok {
				continue // documented undercount: the flow cannot be mirrored
			}
			cumulative = cumulative.Add(cash.Div(price))
			shares.Append(tx.When(), cumulative)
		}
	}

	var series []TimeSeriesPoint
	for day := range NewRange(seedDate, end).Weekdays() {
		held, ok := shares.ValueAsOf(day)
		if !ok {
			continue
		}
		price, ok := lookup.AsOf(benchmark, day)
		if !ok {
			continue // before the first known benchmark price
		}
		series = append(series, TimeSeriesPoint{Date: day, Value: held.Mul(price)})
	}

	if len(series) == 0 {
		return nil, newMetadata(ReasonNoPriceData)
	}
	return series, newMetadata(ReasonSuccess)
}

// replayCashAmount derives the signed notional to mirror into the benchmark:
// positive for money entering the portfolio's positions (buys, dividends),
// negative for money leaving (sells). Amounts come from the original
// transaction, not the benchmark.
func replayCashAmount(tx Transaction) decimal.Decimal {
	switch v := tx.(type) {
	case Buy:
		return v.Amount().Decimal()
	case Sell:
		return v.Amount().Decimal().Neg()
	case Dividend:
		return v.Value().Decimal()
	}
	return decimal.Zero
}

// resolveBenchmarkPrice resolves a benchmark price for a cash-flow date:
// the exact date first, then up to 7 calendar days ahead for the next trading
// price, then the most recent price at or before the date.
func resolveBenchmarkPrice(lookup PriceLookup, benchmark string, day Date) (decimal.Decimal, bool) {
	if price, ok := lookup.At(benchmark, day); ok {
		return price, true
	}
	for i := 1; i <= benchmarkLookaheadDays; i++ {
		if price, ok := lookup.At(benchmark, day.Add(i)); ok {
			return price, true
		}
	}
	return lookup.AsOf(benchmark, day)
}
