package folioperf

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeLedger_RoundTrip(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day(time.January, 10), "opening position", "AAPL", Q(10), USD(100), USD(5)),
		NewSell(day(time.June, 15), "", "AAPL", Q(4), USD(150), USD(0)),
	)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatal(err)
	}

	decoded, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Len() != ledger.Len() {
		t.Fatalf("decoded %d transactions, want %d", decoded.Len(), ledger.Len())
	}

	want := make([]Transaction, 0, ledger.Len())
	for tx := range ledger.Transactions() {
		want = append(want, tx)
	}
	i := 0
	for tx := range decoded.Transactions() {
		if !tx.Equal(want[i]) {
			t.Errorf("transaction #%d = %+v, want %+v", i, tx, want[i])
		}
		i++
	}
}

func TestEncodeDecodeDividend(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeTransaction(&buf, NewDividend(day(time.March, 1), "", "AAPL", USD(42.50))); err != nil {
		t.Fatal(err)
	}
	if err := EncodeTransaction(&buf, NewDividendPerShare(day(time.June, 1), "", "AAPL", Q(10), USD(0.25))); err != nil {
		t.Fatal(err)
	}

	decoded, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	var values []Money
	for tx := range decoded.Transactions() {
		div, ok := tx.(Dividend)
		if !ok {
			t.Fatalf("decoded %T, want Dividend", tx)
		}
		values = append(values, div.Value())
	}
	if !values[0].Equal(USD(42.50)) {
		t.Errorf("total-amount dividend = %s, want $42.50", values[0])
	}
	if !values[1].Equal(USD(2.50)) {
		t.Errorf("per-share dividend = %s, want $2.50", values[1])
	}
}

func TestEncodeTransaction_FieldOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeTransaction(&buf, NewBuy(day(time.January, 10), "note", "AAPL", Q(10), USD(100), USD(0))); err != nil {
		t.Fatal(err)
	}
	want := `{"command":"buy","date":"2025-01-10","memo":"note","security":"AAPL","quantity":10,"price":100,"currency":"USD"}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("encoded line:\n got %s\nwant %s", got, want)
	}
}

func TestDecodeLedger_SkipsEmptyLines(t *testing.T) {
	input := `{"command":"buy","date":"2025-01-10","security":"AAPL","quantity":10,"price":100,"currency":"USD"}

{"command":"sell","date":"2025-02-10","security":"AAPL","quantity":5,"price":110,"currency":"USD"}
`
	ledger, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Len() != 2 {
		t.Errorf("Len = %d, want 2", ledger.Len())
	}
}

func TestDecodeLedger_UnknownCommand(t *testing.T) {
	_, err := DecodeLedger(strings.NewReader(`{"command":"split","date":"2025-01-10"}`))
	if err == nil {
		t.Error("unknown command must fail")
	}
}

func TestDecodeLedger_MalformedDecimalBecomesZero(t *testing.T) {
	// A corrupt numeric field is logged and read as zero rather than aborting
	// the whole ledger.
	input := `{"command":"buy","date":"2025-01-10","security":"AAPL","quantity":10,"price":"garbage","currency":"USD"}`
	ledger, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	for tx := range ledger.Transactions() {
		buy := tx.(Buy)
		if !buy.Price.IsZero() {
			t.Errorf("price = %s, want zero substitute", buy.Price)
		}
	}
}
