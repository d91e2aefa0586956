package folioperf

import "github.com/shopspring/decimal"

// TimeSeriesPoint is a portfolio (or benchmark) value on a given date.
// A series is append-only and chronological.
type TimeSeriesPoint struct {
	Date  Date
	Value decimal.Decimal
}

// ReasonCode qualifies why a reconstructed series is usable or not, so
// callers can render guidance instead of a blank chart.
type ReasonCode string

const (
	ReasonNoTransactions ReasonCode = "no_transactions"
	ReasonNoTradingDates ReasonCode = "no_trading_dates"
	ReasonNoPriceData    ReasonCode = "no_price_data"
	ReasonEmptySeries    ReasonCode = "empty_series"
	ReasonAllZeroValues  ReasonCode = "all_zero_values"
	ReasonSuccess        ReasonCode = "success"
)

// Metadata describes the outcome of a series reconstruction.
type Metadata struct {
	NoData   bool
	Reason   ReasonCode
	Guidance string
}

func newMetadata(reason ReasonCode) Metadata {
	guidance := map[ReasonCode]string{
		ReasonNoTransactions: "No transactions recorded yet. Add a buy transaction to start tracking.",
		ReasonNoTradingDates: "The requested range contains no trading days. Widen the range.",
		ReasonNoPriceData:    "No price data is available for the securities held in this range.",
		ReasonEmptySeries:    "No portfolio values could be computed for this range.",
		ReasonAllZeroValues:  "The portfolio had no valued holdings in this range. Try a wider range.",
		ReasonSuccess:        "",
	}[reason]
	return Metadata{NoData: reason != ReasonSuccess, Reason: reason, Guidance: guidance}
}

// Reconstruct walks the range day by day and rebuilds the portfolio's daily
// value from the transaction history and the injected price lookup.
//
// Holdings are seeded from all transactions strictly before the range, then
// each weekday applies that day's quantity deltas and values every positive
// position at its exact price, falling back to the most recent earlier price.
// A security with no price at all contributes zero to that day (an
// undercount, not an error). Leading all-zero days are trimmed so charts do
// not show a false flat line before the first real holding existed.
//
// The function is pure: identical arguments always produce identical output.
func Reconstruct(ledger *Ledger, rng Range, lookup PriceLookup) ([]TimeSeriesPoint, Metadata) {
	if ledger.Len() == 0 {
		return nil, newMetadata(ReasonNoTransactions)
	}

	positions := positionsBefore(ledger, rng.From)

	var series []TimeSeriesPoint
	tradingDays := 0
	priceResolved := false
	hadHolding := false
	for day := range rng.Weekdays() {
		tradingDays++
		for tx := range ledger.TransactionsOn(day) {
			applyQuantityDelta(positions, tx)
		}

		value := decimal.Zero
		for ticker, quantity := range positions {
			if !quantity.IsPositive() {
				continue
			}
			hadHolding = true
			price, ok := lookup.At(ticker, day)
			if !ok {
				price, ok = lookup.AsOf(ticker, day)
			}
			if !ok {
				continue // no price ever: the security contributes 0 today
			}
			priceResolved = true
			value = value.Add(quantity.Decimal().Mul(price))
		}
		series = append(series, TimeSeriesPoint{Date: day, Value: value})
	}

	if tradingDays == 0 {
		return nil, newMetadata(ReasonNoTradingDates)
	}
	if len(series) == 0 {
		return nil, newMetadata(ReasonEmptySeries)
	}

	series = trimLeadingZeros(series)
	if len(series) == 0 {
		if hadHolding && !priceResolved {
			return nil, newMetadata(ReasonNoPriceData)
		}
		return nil, newMetadata(ReasonAllZeroValues)
	}
	return series, newMetadata(ReasonSuccess)
}

// trimLeadingZeros removes the leading run of zero-value points, stopping at
// the first positive value. Order is preserved.
func trimLeadingZeros(series []TimeSeriesPoint) []TimeSeriesPoint {
	for i, p := range series {
		if p.Value.IsPositive() {
			return series[i:]
		}
	}
	return nil
}
