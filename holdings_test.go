package folioperf

import (
	"testing"
	"time"
)

func TestComputeHoldings_FIFO(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day(time.January, 10), "", "AAPL", Q(10), USD(100), USD(0)),
		NewSell(day(time.January, 20), "", "AAPL", Q(4), USD(150), USD(0)),
	)

	h := ComputeHoldings(ledger)["AAPL"]
	if h == nil {
		t.Fatal("no holding for AAPL")
	}
	if !h.Quantity.Equal(Q(6)) {
		t.Errorf("Quantity = %s, want 6", h.Quantity)
	}
	if !h.RealizedPNL.Equal(USD(200)) {
		t.Errorf("RealizedPNL = %s, want $200.00", h.RealizedPNL)
	}
	if !h.TotalCost.Equal(USD(600)) {
		t.Errorf("TotalCost = %s, want $600.00", h.TotalCost)
	}
	if !h.TotalBought.Equal(USD(1000)) {
		t.Errorf("TotalBought = %s, want $1,000.00", h.TotalBought)
	}
	if !h.TotalSold.Equal(USD(600)) {
		t.Errorf("TotalSold = %s, want $600.00", h.TotalSold)
	}
}

func TestComputeHoldings_PartialLotSell(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day(time.January, 10), "", "AAPL", Q(10), USD(100), USD(0)),
		NewSell(day(time.January, 20), "", "AAPL", Q(3), USD(120), USD(0)),
	)

	h := ComputeHoldings(ledger)["AAPL"]
	if len(h.Lots) != 1 {
		t.Fatalf("len(Lots) = %d, want 1", len(h.Lots))
	}
	if !h.Lots[0].Quantity.Equal(Q(7)) {
		t.Errorf("lot quantity = %s, want 7", h.Lots[0].Quantity)
	}
	if !h.Lots[0].Price.Equal(USD(100)) {
		t.Errorf("lot price = %s, want $100.00", h.Lots[0].Price)
	}
	if !h.RealizedPNL.Equal(USD(60)) {
		t.Errorf("RealizedPNL = %s, want $60.00", h.RealizedPNL)
	}
}

func TestComputeHoldings_MultipleLots(t *testing.T) {
	// Selling 15 consumes the whole first lot (10@100) and half of the
	// second (10@200).
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day(time.January, 10), "", "AAPL", Q(10), USD(100), USD(0)),
		NewBuy(day(time.February, 10), "", "AAPL", Q(10), USD(200), USD(0)),
		NewSell(day(time.March, 10), "", "AAPL", Q(15), USD(300), USD(0)),
	)

	h := ComputeHoldings(ledger)["AAPL"]
	if !h.Quantity.Equal(Q(5)) {
		t.Errorf("Quantity = %s, want 5", h.Quantity)
	}
	// realized: (300-100)*10 + (300-200)*5 = 2000 + 500
	if !h.RealizedPNL.Equal(USD(2500)) {
		t.Errorf("RealizedPNL = %s, want $2,500.00", h.RealizedPNL)
	}
	// remaining cost: 5 * 200
	if !h.TotalCost.Equal(USD(1000)) {
		t.Errorf("TotalCost = %s, want $1,000.00", h.TotalCost)
	}
	if len(h.Lots) != 1 {
		t.Fatalf("len(Lots) = %d, want 1", len(h.Lots))
	}
	if h.Lots[0].Date != day(time.February, 10) {
		t.Errorf("remaining lot date = %s, want 2025-02-10", h.Lots[0].Date)
	}
}

func TestComputeHoldings_OversellStopsAtEmptyQueue(t *testing.T) {
	// Selling more than owned: quantity goes negative, but realized gain and
	// cost basis only account for the lots that existed.
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day(time.January, 10), "", "AAPL", Q(10), USD(100), USD(0)),
		NewSell(day(time.January, 20), "", "AAPL", Q(15), USD(150), USD(0)),
	)

	h := ComputeHoldings(ledger)["AAPL"]
	if !h.Quantity.Equal(Q(-5)) {
		t.Errorf("Quantity = %s, want -5", h.Quantity)
	}
	if !h.RealizedPNL.Equal(USD(500)) {
		t.Errorf("RealizedPNL = %s, want $500.00 (only 10 shares had lots)", h.RealizedPNL)
	}
	if !h.TotalCost.IsZero() {
		t.Errorf("TotalCost = %s, want zero", h.TotalCost)
	}
	if h.IsOpen() {
		t.Error("negative position must not be treated as open")
	}
}

func TestComputeHoldings_Dividend(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day(time.January, 10), "", "AAPL", Q(10), USD(100), USD(0)),
		NewDividend(day(time.March, 1), "", "AAPL", USD(12.5)),
		NewDividendPerShare(day(time.June, 1), "", "AAPL", Q(10), USD(0.25)),
	)

	h := ComputeHoldings(ledger)["AAPL"]
	if !h.DividendsReceived.Equal(USD(15)) {
		t.Errorf("DividendsReceived = %s, want $15.00", h.DividendsReceived)
	}
	if !h.Quantity.Equal(Q(10)) {
		t.Errorf("Quantity = %s, dividends must not change quantity", h.Quantity)
	}
}

func TestComputeHoldings_ClosedPositionKeepsLifetimeTotals(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day(time.January, 10), "", "AAPL", Q(10), USD(100), USD(0)),
		NewSell(day(time.February, 10), "", "AAPL", Q(10), USD(110), USD(0)),
	)

	h := ComputeHoldings(ledger)["AAPL"]
	if h.IsOpen() {
		t.Error("fully sold holding must be closed")
	}
	if !h.RealizedPNL.Equal(USD(100)) {
		t.Errorf("RealizedPNL = %s, want $100.00", h.RealizedPNL)
	}
	if !h.TotalBought.Equal(USD(1000)) || !h.TotalSold.Equal(USD(1100)) {
		t.Errorf("lifetime totals = %s / %s, want $1,000.00 / $1,100.00", h.TotalBought, h.TotalSold)
	}
}

func TestComputeHoldings_CostMatchesLots(t *testing.T) {
	// TotalCost must stay consistent with the sum of the remaining lots.
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day(time.January, 1), "", "AAPL", Q(5), USD(10), USD(0)),
		NewBuy(day(time.January, 2), "", "AAPL", Q(5), USD(20), USD(0)),
		NewSell(day(time.January, 3), "", "AAPL", Q(7), USD(30), USD(0)),
		NewBuy(day(time.January, 4), "", "AAPL", Q(2), USD(40), USD(0)),
	)

	h := ComputeHoldings(ledger)["AAPL"]
	if !h.TotalCost.Equal(lots(h.Lots).totalCost()) {
		t.Errorf("TotalCost = %s, lots sum = %s", h.TotalCost, lots(h.Lots).totalCost())
	}
	if !h.Quantity.Equal(lots(h.Lots).totalQuantity()) {
		t.Errorf("Quantity = %s, lots sum = %s", h.Quantity, lots(h.Lots).totalQuantity())
	}
}

func TestComputeHoldings_UnorderedInput(t *testing.T) {
	// The ledger sorts, so appending out of order changes nothing.
	ledger := NewLedger()
	ledger.Append(NewSell(day(time.January, 20), "", "AAPL", Q(4), USD(150), USD(0)))
	ledger.Append(NewBuy(day(time.January, 10), "", "AAPL", Q(10), USD(100), USD(0)))

	h := ComputeHoldings(ledger)["AAPL"]
	if !h.RealizedPNL.Equal(USD(200)) {
		t.Errorf("RealizedPNL = %s, want $200.00", h.RealizedPNL)
	}
}
