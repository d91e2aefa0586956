package folioperf

import (
	"math"
	"testing"
	"time"
)

func TestXIRR_RoundTrip(t *testing.T) {
	// -1000 now, +1100 a year later: 10% annualized.
	flows := []CashFlow{
		{Date: day(time.January, 1), Amount: dec(-1000)},
		{Date: day(time.January, 1).Add(365), Amount: dec(1100)},
	}

	rate, ok := XIRR(flows, 0.1)
	if !ok {
		t.Fatal("XIRR did not converge")
	}
	if math.Abs(rate-0.10) > 1e-4 {
		t.Errorf("rate = %v, want 0.10 within 1e-4", rate)
	}
}

func TestXIRR_MultipleFlows(t *testing.T) {
	// Monthly investments followed by a terminal valuation: the rate must
	// zero the NPV within the solver's own tolerance.
	start := day(time.January, 1)
	flows := []CashFlow{
		{Date: start, Amount: dec(-1000)},
		{Date: start.AddMonth(3), Amount: dec(-500)},
		{Date: start.AddMonth(6), Amount: dec(-500)},
		{Date: start.AddMonth(12), Amount: dec(2200)},
	}

	rate, ok := XIRR(flows, 0.1)
	if !ok {
		t.Fatal("XIRR did not converge")
	}

	// Check the found rate actually zeroes the NPV.
	npv := 0.0
	for _, cf := range flows {
		years := float64(cf.Date.DaysSince(start)) / 365.0
		npv += cf.Amount.InexactFloat64() * math.Pow(1+rate, -years)
	}
	if math.Abs(npv) > 1e-3 {
		t.Errorf("NPV at found rate = %v, want ~0", npv)
	}
}

func TestXIRR_Degenerate(t *testing.T) {
	tests := []struct {
		name  string
		flows []CashFlow
	}{
		{"no flows", nil},
		{"single flow", []CashFlow{{Date: day(time.January, 1), Amount: dec(-1000)}}},
		{"all negative", []CashFlow{
			{Date: day(time.January, 1), Amount: dec(-1000)},
			{Date: day(time.June, 1), Amount: dec(-500)},
		}},
		{"all positive", []CashFlow{
			{Date: day(time.January, 1), Amount: dec(1000)},
			{Date: day(time.June, 1), Amount: dec(500)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := XIRR(tt.flows, 0.1); ok {
				t.Errorf("XIRR(%s) converged, want not-ok", tt.name)
			}
		})
	}
}

func TestXIRR_NegativeReturn(t *testing.T) {
	flows := []CashFlow{
		{Date: day(time.January, 1), Amount: dec(-1000)},
		{Date: day(time.January, 1).Add(365), Amount: dec(800)},
	}

	rate, ok := XIRR(flows, 0.1)
	if !ok {
		t.Fatal("XIRR did not converge")
	}
	if math.Abs(rate-(-0.20)) > 1e-4 {
		t.Errorf("rate = %v, want -0.20 within 1e-4", rate)
	}
}

func TestXIRR_FallbackGuess(t *testing.T) {
	// A wild caller guess still converges through the fallback guesses.
	flows := []CashFlow{
		{Date: day(time.January, 1), Amount: dec(-1000)},
		{Date: day(time.January, 1).Add(365), Amount: dec(1100)},
	}

	rate, ok := XIRR(flows, 9.99)
	if !ok {
		t.Fatal("XIRR did not converge from any candidate guess")
	}
	if math.Abs(rate-0.10) > 1e-3 {
		t.Errorf("rate = %v, want ~0.10", rate)
	}
}

func TestPortfolioCashFlows(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day(time.January, 10), "", "AAPL", Q(10), USD(100), USD(1)),
		NewDividend(day(time.March, 1), "", "AAPL", USD(15)),
		NewSell(day(time.June, 1), "", "AAPL", Q(5), USD(120), USD(1)),
	)

	flows := PortfolioCashFlows(ledger, dec(700), day(time.December, 31))
	if len(flows) != 4 {
		t.Fatalf("len(flows) = %d, want 4", len(flows))
	}
	if !flows[0].Amount.Equal(dec(-1000)) {
		t.Errorf("buy flow = %s, want -1000 (fees excluded)", flows[0].Amount)
	}
	if !flows[1].Amount.Equal(dec(15)) {
		t.Errorf("dividend flow = %s, want 15", flows[1].Amount)
	}
	if !flows[2].Amount.Equal(dec(600)) {
		t.Errorf("sell flow = %s, want 600", flows[2].Amount)
	}
	if !flows[3].Amount.Equal(dec(700)) || flows[3].Date != day(time.December, 31) {
		t.Errorf("terminal flow = %s on %s, want 700 on 2025-12-31", flows[3].Amount, flows[3].Date)
	}
}
