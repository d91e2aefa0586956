package folioperf

import "fmt"

// Holding is the lifetime accumulation of one security's transactions:
// the open FIFO lots plus quantity, cost basis, realized gains, dividends,
// and gross bought/sold totals.
//
// Invariant: TotalCost always equals the sum of the remaining lots' costs.
type Holding struct {
	Security          string
	Quantity          Quantity
	TotalCost         Money
	DividendsReceived Money
	RealizedPNL       Money
	TotalBought       Money
	TotalSold         Money
	Lots              []Lot
}

// AvgCost returns the average cost per share of the open position, or zero
// money for an empty position.
func (h *Holding) AvgCost() Money {
	if h.Quantity.IsZero() || h.Quantity.IsNegative() {
		return M(0, h.TotalCost.Currency())
	}
	return h.TotalCost.Div(h.Quantity)
}

// IsOpen reports whether the holding still has a positive position.
// Closed holdings keep their lifetime totals but are excluded from valuation.
func (h *Holding) IsOpen() bool { return h.Quantity.IsPositive() }

func (h *Holding) buy(tx Buy) {
	h.Lots = append(h.Lots, Lot{Date: tx.When(), Quantity: tx.Quantity, Price: tx.Price})
	h.Quantity = h.Quantity.Add(tx.Quantity)
	h.TotalCost = h.TotalCost.Add(tx.Amount())
	h.TotalBought = h.TotalBought.Add(tx.Amount())
}

func (h *Holding) sell(tx Sell) {
	h.Quantity = h.Quantity.Sub(tx.Quantity)
	h.TotalSold = h.TotalSold.Add(tx.Amount())

	remaining, realized, costRemoved := lots(h.Lots).sell(tx.Quantity, tx.Price)
	h.Lots = remaining
	h.RealizedPNL = h.RealizedPNL.Add(realized)
	h.TotalCost = h.TotalCost.Sub(costRemoved)
}

func (h *Holding) dividend(tx Dividend) {
	h.DividendsReceived = h.DividendsReceived.Add(tx.Value())
}

// ComputeHoldings processes the ledger's transactions in chronological order
// and returns the resulting holding per security, including closed positions.
//
// The ledger guarantees the chronological order and the stable same-day
// tie-break; this function is pure given its input.
func ComputeHoldings(ledger *Ledger) map[string]*Holding {
	holdings := make(map[string]*Holding)

	get := func(ticker string) *Holding {
		h, ok := holdings[ticker]
		if !ok {
			h = &Holding{Security: ticker}
			holdings[ticker] = h
		}
		return h
	}

	for tx := range ledger.Transactions() {
		switch v := tx.(type) {
		case Buy:
			get(v.Security).buy(v)
		case Sell:
			get(v.Security).sell(v)
		case Dividend:
			get(v.Security).dividend(v)
		default:
			panic(fmt.Sprintf("unhandled transaction type: %T", tx))
		}
	}
	return holdings
}

// positionsBefore seeds per-security quantities from all transactions
// strictly before 'day'. Only quantity deltas matter here, not cost basis.
func positionsBefore(ledger *Ledger, day Date) map[string]Quantity {
	positions := make(map[string]Quantity)
	for tx := range ledger.TransactionsBefore(day) {
		applyQuantityDelta(positions, tx)
	}
	return positions
}

// applyQuantityDelta adjusts a per-security quantity map for one transaction.
// Dividends do not change quantity.
func applyQuantityDelta(positions map[string]Quantity, tx Transaction) {
	switch v := tx.(type) {
	case Buy:
		positions[v.Security] = positions[v.Security].Add(v.Quantity)
	case Sell:
		positions[v.Security] = positions[v.Security].Sub(v.Quantity)
	}
}
