package folioperf

import (
	"time"

	"github.com/shopspring/decimal"
)

// USD is a helper for tests to create dollar money from a const.
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for tests to create a 2025 date.
func day(month time.Month, d int) Date { return NewDate(2025, month, d) }

// dec is a helper for tests to create a decimal from a float const.
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
