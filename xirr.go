package folioperf

import (
	"math"

	"github.com/shopspring/decimal"
)

// CashFlow is a dated, signed amount of money: negative for outflows
// (purchases), positive for inflows (sales, dividends, terminal valuation).
type CashFlow struct {
	Date   Date
	Amount decimal.Decimal
}

const (
	xirrMaxIterations = 100
	xirrPrecision     = 1e-6
	xirrRateFloor     = -0.99
	xirrRateCeil      = 10.0
)

// XIRR computes the money-weighted annualized return of the given cash flows:
// the rate that zeroes the net present value of all dated amounts. The result
// is a decimal rate (0.15 means 15%).
//
// It returns false when no valid rate exists: fewer than two flows, or all
// flows sharing the same sign. That is a data-quality outcome, not an error.
//
// The Newton-Raphson iteration runs on float64; inputs are decimal and only
// the root-finding itself is approximated. Divergent guesses are clamped to
// [-0.99, 10.0] and a bounded list of fallback guesses is tried before giving
// up, instead of recursing with new guesses forever.
func XIRR(flows []CashFlow, guess float64) (float64, bool) {
	if len(flows) < 2 {
		return 0, false
	}

	hasPositive, hasNegative := false, false
	for _, cf := range flows {
		if cf.Amount.IsPositive() {
			hasPositive = true
		}
		if cf.Amount.IsNegative() {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return 0, false
	}

	start := flows[0].Date
	for _, cf := range flows[1:] {
		if cf.Date.Before(start) {
			start = cf.Date
		}
	}

	amounts := make([]float64, len(flows))
	years := make([]float64, len(flows))
	for i, cf := range flows {
		amounts[i] = cf.Amount.InexactFloat64()
		years[i] = float64(cf.Date.DaysSince(start)) / 365.0
	}

	for _, g := range candidateGuesses(guess) {
		if rate, ok := newtonRaphson(amounts, years, g); ok {
			return rate, true
		}
	}
	return 0, false
}

// candidateGuesses returns the initial guesses to try, starting with the
// caller's and falling back to a small fixed list, without duplicates.
func candidateGuesses(guess float64) []float64 {
	candidates := []float64{guess}
	for _, g := range []float64{0.0, -0.5} {
		if g != guess {
			candidates = append(candidates, g)
		}
	}
	return candidates
}

// newtonRaphson runs a bounded Newton-Raphson iteration from one guess.
func newtonRaphson(amounts, years []float64, guess float64) (float64, bool) {
	rate := guess
	for range xirrMaxIterations {
		npv, dnpv := 0.0, 0.0
		for i, amount := range amounts {
			npv += amount * math.Pow(1+rate, -years[i])
			// The first flow (years=0) contributes to NPV but its derivative
			// term is zero.
			dnpv += -amount * years[i] * math.Pow(1+rate, -years[i]-1)
		}

		if math.Abs(dnpv) < 1e-12 {
			// Near-vertical tangent, this guess will not converge.
			return 0, false
		}

		next := rate - npv/dnpv
		// Clamp to prevent divergence into invalid domains (1+rate <= 0).
		next = math.Max(xirrRateFloor, math.Min(xirrRateCeil, next))

		if math.Abs(npv) < xirrPrecision || math.Abs(next-rate) < xirrPrecision {
			return next, true
		}
		rate = next
	}
	return 0, false
}

// PortfolioCashFlows derives the signed cash flows of the whole ledger:
// buys are outflows, sells and dividends inflows, closed with the portfolio's
// value on 'day' as a terminal inflow (zero terminal values are skipped).
// The result feeds XIRR.
func PortfolioCashFlows(ledger *Ledger, terminal decimal.Decimal, day Date) []CashFlow {
	flows := make([]CashFlow, 0, ledger.Len()+1)
	for tx := range ledger.Transactions() {
		if tx.When().After(day) {
			break
		}
		switch v := tx.(type) {
		case Buy:
			flows = append(flows, CashFlow{Date: v.When(), Amount: v.Amount().Decimal().Neg()})
		case Sell:
			flows = append(flows, CashFlow{Date: v.When(), Amount: v.Amount().Decimal()})
		case Dividend:
			flows = append(flows, CashFlow{Date: v.When(), Amount: v.Value().Decimal()})
		}
	}
	if !terminal.IsZero() {
		flows = append(flows, CashFlow{Date: day, Amount: terminal})
	}
	return flows
}
