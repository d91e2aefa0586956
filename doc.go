// Package folioperf is a financial computation engine for multi-asset
// investment portfolios tracked through a transaction ledger (buys, sells,
// dividends).
//
// The core functionalities include:
//   - Holdings Accounting: FIFO lot-based positions with realized gain
//     tracking, dividends, and lifetime bought/sold totals per security.
//   - Money-Weighted Return: a Newton-Raphson XIRR solver over dated,
//     signed cash flows, with bounded retry over fallback guesses.
//   - Valuation Reconstruction: day-by-day portfolio value rebuilt from the
//     transaction history and a price series, with forward-filled prices.
//   - Benchmark Simulation: a cash-flow-matched index mirror answering
//     "what if I had bought the index instead?".
//
// The engine is pure and performs no I/O: transactions and prices arrive
// through the Ledger and the injected PriceLookup capability, and every
// function is safe to invoke concurrently for different inputs. Persistence
// is limited to a human-readable JSONL codec for the ledger itself.
//
// This package serves as the foundational logic for the `fpf` command-line
// tool.
package folioperf
