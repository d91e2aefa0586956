package folioperf

import "sort"

// SecurityHolding is the valued view of a single security's holding.
type SecurityHolding struct {
	Security          string
	Quantity          Quantity
	AvgCost           Money
	TotalCost         Money
	CurrentPrice      Money
	CurrentValue      Money
	GainLoss          Money
	GainLossPercent   Percent
	DividendsReceived Money
	RealizedPNL       Money
}

// HoldingsReport is the portfolio's valued holdings on a specific date.
type HoldingsReport struct {
	Date       Date
	Currency   string
	Securities []SecurityHolding
	TotalValue Money
	TotalCost  Money
	TotalGain  Money
}

// NewHoldingsReport values every open holding of the ledger at the given
// date's prices. Closed positions (quantity <= 0) are excluded from valuation
// but their lifetime realized gains and dividends still appear. A missing
// price falls back to the most recent earlier one; a security with no price
// at all is valued at zero.
func NewHoldingsReport(ledger *Ledger, on Date, lookup PriceLookup, currency string) *HoldingsReport {
	report := &HoldingsReport{
		Date:       on,
		Currency:   currency,
		TotalValue: M(0, currency),
		TotalCost:  M(0, currency),
		TotalGain:  M(0, currency),
	}

	holdings := ComputeHoldings(ledger)
	tickers := make([]string, 0, len(holdings))
	for ticker := range holdings {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		h := holdings[ticker]

		row := SecurityHolding{
			Security:          ticker,
			Quantity:          h.Quantity,
			AvgCost:           h.AvgCost(),
			TotalCost:         h.TotalCost,
			DividendsReceived: h.DividendsReceived,
			RealizedPNL:       h.RealizedPNL,
			CurrentPrice:      M(0, currency),
			CurrentValue:      M(0, currency),
			GainLoss:          M(0, currency),
		}

		if h.IsOpen() {
			if price, ok := lookup.AsOf(ticker, on); ok {
				row.CurrentPrice = M(price, currency)
				row.CurrentValue = row.CurrentPrice.Mul(h.Quantity)
				row.GainLoss = row.CurrentValue.Sub(h.TotalCost)
				if h.TotalCost.IsPositive() {
					row.GainLossPercent = Percent(100 * row.GainLoss.AsFloat() / h.TotalCost.AsFloat())
				}
			}
			report.TotalValue = report.TotalValue.Add(row.CurrentValue)
			report.TotalCost = report.TotalCost.Add(h.TotalCost)
			report.TotalGain = report.TotalGain.Add(row.GainLoss)
		}

		report.Securities = append(report.Securities, row)
	}
	return report
}
