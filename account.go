package folio

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Account is a cash or brokerage balance. A manual account carries its
// own balance; an auto-derived account mirrors the total invested value
// instead, modeling brokerage cash fully deployed into positions.
//
// When several accounts are auto-derived, each one mirrors the full
// invested total. The total is not split between them.
type Account struct {
	ID          string
	DisplayName string
	Currency    string
	FxToAnchor  float64  // Currency to anchor rate
	Balance     *float64 // manual balance in Currency, nil when AutoDerived
	AutoDerived bool
}

// AccountPatch is a whitelisted set of optional field overrides for an
// account. A nil field leaves the existing value untouched.
type AccountPatch struct {
	DisplayName *string
	Currency    *string
	FxToAnchor  *float64
	Balance     *float64
	AutoDerived *bool
}

// NewAccount creates a fresh account from a patch, with a new unique id
// and an exchange rate defaulting to 1.
func NewAccount(patch AccountPatch) Account {
	a := Account{ID: uuid.NewString(), FxToAnchor: 1}
	return patch.Apply(a)
}

// Apply returns a copy of a with the patch's non-nil overrides applied.
// Flipping an account to auto-derived drops its manual balance; a
// balance override is ignored while the account stays auto-derived.
func (patch AccountPatch) Apply(a Account) Account {
	if patch.DisplayName != nil {
		a.DisplayName = strings.TrimSpace(*patch.DisplayName)
	}
	if patch.Currency != nil {
		a.Currency = strings.ToUpper(strings.TrimSpace(*patch.Currency))
	}
	if patch.FxToAnchor != nil {
		a.FxToAnchor = finiteOr(*patch.FxToAnchor, 1)
	}
	if patch.AutoDerived != nil {
		a.AutoDerived = *patch.AutoDerived
		if a.AutoDerived {
			a.Balance = nil
		}
	}
	if patch.Balance != nil && !a.AutoDerived {
		balance := finiteOr(*patch.Balance, 0)
		a.Balance = &balance
	}
	return a
}

// ManualBalance returns the manually entered balance, treating an
// absent value as zero.
func (a Account) ManualBalance() float64 {
	if a.Balance == nil {
		return 0
	}
	return *a.Balance
}

// MarshalJSON persists the account with a stable field order.
func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Append("displayName", a.DisplayName)
	w.Append("currency", a.Currency)
	w.Append("fxToAnchor", a.FxToAnchor)
	if a.AutoDerived {
		w.Append("autoDerived", true)
	} else {
		w.Append("balance", a.ManualBalance())
	}
	return w.MarshalJSON()
}

// UnmarshalJSON reads a persisted account, coercing numeric fields.
func (a *Account) UnmarshalJSON(data []byte) error {
	type jaccount struct {
		ID          string          `json:"id"`
		DisplayName string          `json:"displayName"`
		Currency    string          `json:"currency"`
		FxToAnchor  json.RawMessage `json:"fxToAnchor"`
		Balance     json.RawMessage `json:"balance"`
		AutoDerived bool            `json:"autoDerived"`
	}
	var ja jaccount
	if err := json.Unmarshal(data, &ja); err != nil {
		return fmt.Errorf("invalid account record: %w", err)
	}
	a.ID = ja.ID
	a.DisplayName = ja.DisplayName
	a.Currency = strings.ToUpper(strings.TrimSpace(ja.Currency))
	a.FxToAnchor = coerceNumber(ja.FxToAnchor, 1)
	a.AutoDerived = ja.AutoDerived
	a.Balance = nil
	if !a.AutoDerived {
		balance := coerceNumber(ja.Balance, 0)
		a.Balance = &balance
	}
	return nil
}
