package folioperf

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// priceRecord is one line of the JSONL price store.
type priceRecord struct {
	Ticker string         `json:"ticker"`
	Date   Date           `json:"date"`
	Close  lenientDecimal `json:"close"`
}

// DecodePrices reads a JSONL stream of price records into a MemoryPrices.
// A later record for the same ticker and day overwrites the earlier one.
func DecodePrices(r io.Reader) (*MemoryPrices, error) {
	prices := NewMemoryPrices()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var rec priceRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("could not read price record %q: %w", string(lineBytes), err)
		}
		if rec.Ticker == "" || rec.Date.IsZero() {
			return nil, fmt.Errorf("price record %q misses a ticker or a date", string(lineBytes))
		}
		prices.Add(rec.Ticker, rec.Date, rec.Close.Decimal)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading prices: %w", err)
	}
	return prices, nil
}

// EncodePrices writes the price database in canonical JSONL form: tickers in
// lexical order, each series in chronological order.
func EncodePrices(w io.Writer, m *MemoryPrices) error {
	tickers := make([]string, 0, len(m.histories))
	for ticker := range m.histories {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		for on, close := range m.histories[ticker].Values() {
			var jw jsonObjectWriter
			jw.Append("ticker", ticker)
			jw.Append("date", on)
			jw.Append("close", close)
			data, err := jw.MarshalJSON()
			if err != nil {
				return fmt.Errorf("could not marshal price of %s on %s: %w", ticker, on, err)
			}
			if _, err := w.Write(append(data, '\n')); err != nil {
				return err
			}
		}
	}
	return nil
}
