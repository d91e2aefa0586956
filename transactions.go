package folioperf

import (
	"errors"
	"fmt"
)

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdBuy      CommandType = "buy"
	CmdSell     CommandType = "sell"
	CmdDividend CommandType = "dividend"
)

// Transaction defines the common interface for all types of financial
// transactions that can be recorded in the ledger.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "buy", "sell").
	When() Date        // When returns the date on which the transaction occurred.
	Ticker() string    // Ticker returns the security the transaction refers to.
	Validate() error
	Equal(Transaction) bool
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of transaction (e.g., "buy", "sell").
	Date    Date        `json:"date"`           // Date is the date when the transaction took place.
	ID      string      `json:"id,omitempty"`   // ID is an optional unique identifier assigned when recording.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional rationale or note for the transaction.
}

// What returns the command name for the transaction.
func (t baseCmd) What() CommandType { return t.Command }

// When returns the date of the transaction.
func (t baseCmd) When() Date { return t.Date }

// Rationale returns the memo associated with the transaction.
func (t baseCmd) Rationale() string { return t.Memo }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("id", t.ID)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// validate checks the base command fields.
func (t baseCmd) validate() error {
	if t.Date == (Date{}) {
		return errors.New("transaction date is missing")
	}
	return nil
}

// secCmd is a component for security-based transactions (buy, sell, dividend).
type secCmd struct {
	baseCmd
	Security string `json:"security"` // Security is the ticker symbol of the security involved in the transaction.
}

// Ticker returns the security ticker of the transaction.
func (t secCmd) Ticker() string { return t.Security }

// validate checks the security command fields.
func (t secCmd) validate() error {
	if err := t.baseCmd.validate(); err != nil {
		return err
	}
	if t.Security == "" {
		return errors.New("security ticker is missing")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for secCmd.
func (t secCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("security", t.Security)
	return w.MarshalJSON()
}

// Buy represents a transaction where a quantity of a security is purchased at
// a given price per share.
type Buy struct {
	secCmd
	Quantity Quantity // Quantity is the number of shares or units bought.
	Price    Money    // Price is the price paid per share.
	Fee      Money    // Fee is the commission paid, recorded but not part of the cost basis.
}

// NewBuy creates a new Buy transaction.
func NewBuy(day Date, memo, security string, quantity Quantity, price, fee Money) Buy {
	return Buy{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdBuy, Date: day, Memo: memo}, Security: security},
		Quantity: quantity,
		Price:    price,
		Fee:      fee,
	}
}

// Amount returns the notional value of the purchase (quantity times price,
// excluding fees).
func (t Buy) Amount() Money { return t.Price.Mul(t.Quantity) }

// Validate checks the Buy transaction for correctness.
func (t Buy) Validate() error {
	if err := t.secCmd.validate(); err != nil {
		return err
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("buy quantity must be positive, got %s", t.Quantity)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("buy price cannot be negative, got %s", t.Price)
	}
	return nil
}

// Equal reports whether two transactions are the same buy.
func (t Buy) Equal(o Transaction) bool {
	v, ok := o.(Buy)
	return ok && t.secCmd == v.secCmd && t.Quantity.Equal(v.Quantity) &&
		t.Price.Equal(v.Price) && t.Fee.Equal(v.Fee)
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Decimal())
	w.Optional("currency", t.Price.Currency())
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee.Decimal())
	}
	return w.MarshalJSON()
}

// Sell represents a transaction where a quantity of a security is sold at a
// given price per share.
type Sell struct {
	secCmd
	Quantity Quantity // Quantity is the number of shares or units sold.
	Price    Money    // Price is the price received per share.
	Fee      Money    // Fee is the commission paid, recorded but not part of the proceeds.
}

// NewSell creates a new Sell transaction.
func NewSell(day Date, memo, security string, quantity Quantity, price, fee Money) Sell {
	return Sell{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdSell, Date: day, Memo: memo}, Security: security},
		Quantity: quantity,
		Price:    price,
		Fee:      fee,
	}
}

// Amount returns the notional value of the sale (quantity times price,
// excluding fees).
func (t Sell) Amount() Money { return t.Price.Mul(t.Quantity) }

// Validate checks the Sell transaction for correctness.
//
// Selling more than the tracked position is deliberately NOT rejected here:
// the holdings processor tolerates it and stops consuming lots when the queue
// is exhausted. See ComputeHoldings.
func (t Sell) Validate() error {
	if err := t.secCmd.validate(); err != nil {
		return err
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("sell quantity must be positive, got %s", t.Quantity)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("sell price cannot be negative, got %s", t.Price)
	}
	return nil
}

// Equal reports whether two transactions are the same sell.
func (t Sell) Equal(o Transaction) bool {
	v, ok := o.(Sell)
	return ok && t.secCmd == v.secCmd && t.Quantity.Equal(v.Quantity) &&
		t.Price.Equal(v.Price) && t.Fee.Equal(v.Fee)
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Decimal())
	w.Optional("currency", t.Price.Currency())
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee.Decimal())
	}
	return w.MarshalJSON()
}

// Dividend represents a dividend payment received for a security.
//
// The total received is either the explicit Amount, or PerShare times
// Quantity when no total is given.
type Dividend struct {
	secCmd
	Quantity Quantity // Quantity is the number of shares the dividend applies to.
	PerShare Money    // PerShare is the dividend per share, possibly fractional.
	Amount   Money    // Amount is the stated total, taking precedence over PerShare*Quantity.
}

// NewDividend creates a new Dividend transaction with an explicit total amount.
func NewDividend(day Date, memo, security string, amount Money) Dividend {
	return Dividend{
		secCmd: secCmd{baseCmd: baseCmd{Command: CmdDividend, Date: day, Memo: memo}, Security: security},
		Amount: amount,
	}
}

// NewDividendPerShare creates a new Dividend transaction from a per-share rate.
func NewDividendPerShare(day Date, memo, security string, quantity Quantity, perShare Money) Dividend {
	return Dividend{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdDividend, Date: day, Memo: memo}, Security: security},
		Quantity: quantity,
		PerShare: perShare,
	}
}

// Value returns the total dividend received: the stated Amount when present,
// PerShare times Quantity otherwise.
func (t Dividend) Value() Money {
	if !t.Amount.IsZero() {
		return t.Amount
	}
	return t.PerShare.Mul(t.Quantity)
}

// Validate checks the Dividend transaction for correctness.
func (t Dividend) Validate() error {
	if err := t.secCmd.validate(); err != nil {
		return err
	}
	if t.Amount.IsZero() && (t.PerShare.IsZero() || t.Quantity.IsZero()) {
		return errors.New("dividend needs a total amount, or a per-share rate and a quantity")
	}
	return nil
}

// Equal reports whether two transactions are the same dividend.
func (t Dividend) Equal(o Transaction) bool {
	v, ok := o.(Dividend)
	return ok && t.secCmd == v.secCmd && t.Quantity.Equal(v.Quantity) &&
		t.PerShare.Equal(v.PerShare) && t.Amount.Equal(v.Amount)
}

// MarshalJSON implements the json.Marshaler interface for Dividend.
func (t Dividend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	if !t.Amount.IsZero() {
		w.Append("amount", t.Amount.Decimal())
	} else {
		w.Append("quantity", t.Quantity)
		w.Append("perShare", t.PerShare.Decimal())
	}
	w.Optional("currency", t.Value().Currency())
	return w.MarshalJSON()
}
