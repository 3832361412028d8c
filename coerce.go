package folio

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// This file contains the numeric coercion applied at the JSON boundary.
// A record loaded from disk may carry missing, null or stringly-typed
// numbers; those are coerced to a default instead of surfacing an error,
// so a single bad field can never abort a valuation.

// coerceNumber reads a float out of a raw JSON value. Missing fields,
// nulls, booleans and unparseable strings all resolve to def.
func coerceNumber(raw json.RawMessage, def float64) float64 {
	if len(raw) == 0 {
		return def
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return finiteOr(n, def)
	case string:
		// sometimes a number comes quoted, or with thousand separators
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return def
		}
		return finiteOr(f, def)
	default:
		return def
	}
}

// finiteOr keeps v when it is a finite number, def otherwise.
func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
