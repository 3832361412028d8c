// Package folio provides the types and computations for tracking a
// personal multi-currency investment portfolio. It is designed to be
// local-first and auditable: all state lives in human-readable JSON
// files, and every displayed figure is recomputed from that state.
//
// The core functionalities include:
//   - Records: investment positions, cash accounts and user settings,
//     with numeric coercion at the JSON boundary so that missing or
//     malformed values never abort a computation.
//   - Valuation: a pure pipeline deriving per-position value, cost and
//     profit, account balances (including balances mirrored from the
//     total invested value), and portfolio totals, all expressed in a
//     user-selected base currency.
//   - Rebalancing: per-position buy/sell suggestions against target
//     allocations, projected over one planned monthly contribution.
//   - Refresh: merging quotes from an external natural-language lookup
//     oracle into local state, one symbol at a time, tolerating
//     per-symbol failures.
//
// This package serves as the foundational logic for the `folio`
// command-line tool.
package folio
