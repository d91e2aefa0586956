package folioperf

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// lenientDecimal decodes a JSON number or numeric string into a decimal.
// A malformed value is logged and replaced with zero so that one bad field
// does not abort decoding the whole ledger. This trades strict correctness
// for availability.
type lenientDecimal struct {
	decimal.Decimal
}

func (d *lenientDecimal) UnmarshalJSON(data []byte) error {
	if err := d.Decimal.UnmarshalJSON(data); err != nil {
		log.Printf("conversion error: unparseable decimal %s, substituting 0: %v", data, err)
		d.Decimal = decimal.Zero
	}
	return nil
}

// amountCmd is a specialized struct to read a per-share price and its
// currency from two separate fields.
type amountCmd struct {
	Price    lenientDecimal `json:"price"`
	Fee      lenientDecimal `json:"fee"`
	Currency string         `json:"currency"`
}

func (a amountCmd) PriceMoney() Money { return M(a.Price.Decimal, a.Currency) }
func (a amountCmd) FeeMoney() Money   { return M(a.Fee.Decimal, a.Currency) }

// DecodeLedger decodes transactions from a stream of JSONL data, decodes each
// line into the appropriate transaction struct, and returns a sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		var decodedTx Transaction

		switch identifier.Command {
		case CmdBuy:
			var temp struct {
				secCmd
				amountCmd
				Quantity Quantity `json:"quantity"`
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			decodedTx = Buy{
				secCmd:   temp.secCmd,
				Quantity: temp.Quantity,
				Price:    temp.PriceMoney(),
				Fee:      temp.FeeMoney(),
			}
		case CmdSell:
			var temp struct {
				secCmd
				amountCmd
				Quantity Quantity `json:"quantity"`
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			decodedTx = Sell{
				secCmd:   temp.secCmd,
				Quantity: temp.Quantity,
				Price:    temp.PriceMoney(),
				Fee:      temp.FeeMoney(),
			}
		case CmdDividend:
			var temp struct {
				secCmd
				Quantity Quantity       `json:"quantity"`
				PerShare lenientDecimal `json:"perShare"`
				Amount   lenientDecimal `json:"amount"`
				Currency string         `json:"currency"`
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			decodedTx = Dividend{
				secCmd:   temp.secCmd,
				Quantity: temp.Quantity,
				PerShare: M(temp.PerShare.Decimal, temp.Currency),
				Amount:   M(temp.Amount.Decimal, temp.Currency),
			}
		default:
			return nil, fmt.Errorf("unknown command %q in line %q", identifier.Command, string(lineBytes))
		}

		ledger.Append(decodedTx)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger: %w", err)
	}
	return ledger, nil
}

// EncodeTransaction writes a single transaction as one JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("could not marshal %s transaction: %w", tx.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// EncodeLedger writes the whole ledger in canonical JSONL form, in
// chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for tx := range l.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
