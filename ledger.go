package folioperf

import (
	"fmt"
	"iter"
	"sort"
)

// Ledger represents a list of transactions.
//
// In a Ledger transactions are always in non-decreasing date order. The sort
// is stable: same-day transactions keep their insertion order, and callers
// must not rely on any other tie-break.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append adds transactions to the ledger and restores chronological order.
func (l *Ledger) Append(txs ...Transaction) *Ledger {
	l.transactions = append(l.transactions, txs...)
	l.sort()
	return l
}

func (l *Ledger) sort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator over all transactions in chronological order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// TransactionsBefore returns an iterator over transactions strictly before 'day'.
func (l *Ledger) TransactionsBefore(day Date) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !tx.When().Before(day) {
				break
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// TransactionsOn returns an iterator over transactions dated exactly 'day'.
func (l *Ledger) TransactionsOn(day Date) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if tx.When().After(day) {
				break
			}
			if tx.When() != day {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// Securities returns an iterator over all distinct tickers, in order of first
// appearance in the ledger.
func (l *Ledger) Securities() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for _, tx := range l.transactions {
			ticker := tx.Ticker()
			if _, exists := seen[ticker]; exists {
				continue
			}
			seen[ticker] = struct{}{}
			if !yield(ticker) {
				return
			}
		}
	}
}

// Earliest returns the date of the first transaction, or the zero Date for an
// empty ledger.
func (l *Ledger) Earliest() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// Validate checks every transaction in the ledger.
func (l *Ledger) Validate() error {
	for i, tx := range l.transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("invalid %s transaction #%d on %s: %w", tx.What(), i, tx.When(), err)
		}
	}
	return nil
}
