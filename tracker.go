package folio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"
)

// Tracker owns the portfolio state: the positions and accounts
// collections and the user settings. All mutations go through it, one
// writer at a time, and every mutation is persisted before returning.
//
// Derived figures are never stored: Snapshot recomputes them from the
// current records on every call.
type Tracker struct {
	mu         sync.Mutex
	store      *Store
	positions  []Position
	accounts   []Account
	settings   Settings
	refreshing bool
}

// NewTracker loads (or seeds) state from the store and returns the
// owning container.
func NewTracker(store *Store) *Tracker {
	return &Tracker{
		store:     store,
		positions: store.LoadPositions(),
		accounts:  store.LoadAccounts(),
		settings:  store.LoadSettings(),
	}
}

// Snapshot recomputes the full derived view from the current state.
func (t *Tracker) Snapshot() *Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Compute(t.positions, t.accounts, t.settings)
}

// Positions returns a copy of the positions collection.
func (t *Tracker) Positions() []Position {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.positions)
}

// Accounts returns a copy of the accounts collection.
func (t *Tracker) Accounts() []Account {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.accounts)
}

// Settings returns the current settings.
func (t *Tracker) Settings() Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

// AddPosition creates a position from the patch and persists the
// collection.
func (t *Tracker) AddPosition(patch PositionPatch) (Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := NewPosition(patch)
	if p.Symbol == "" {
		return Position{}, errors.New("a position requires a symbol")
	}
	t.positions = append(t.positions, p)
	return p, t.store.SavePositions(t.positions)
}

// UpdatePosition patches the position with the given id in place.
func (t *Tracker) UpdatePosition(id string, patch PositionPatch) (Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := slices.IndexFunc(t.positions, func(p Position) bool { return p.ID == id })
	if i < 0 {
		return Position{}, fmt.Errorf("no position with id %q", id)
	}
	t.positions[i] = patch.Apply(t.positions[i])
	return t.positions[i], t.store.SavePositions(t.positions)
}

// DeletePosition removes the position with the given id.
func (t *Tracker) DeletePosition(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := slices.DeleteFunc(slices.Clone(t.positions), func(p Position) bool { return p.ID == id })
	if len(kept) == len(t.positions) {
		return fmt.Errorf("no position with id %q", id)
	}
	t.positions = kept
	return t.store.SavePositions(t.positions)
}

// AddAccount creates an account from the patch and persists the
// collection.
func (t *Tracker) AddAccount(patch AccountPatch) (Account, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a := NewAccount(patch)
	if a.DisplayName == "" {
		return Account{}, errors.New("an account requires a name")
	}
	t.accounts = append(t.accounts, a)
	return a, t.store.SaveAccounts(t.accounts)
}

// UpdateAccount patches the account with the given id in place.
func (t *Tracker) UpdateAccount(id string, patch AccountPatch) (Account, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := slices.IndexFunc(t.accounts, func(a Account) bool { return a.ID == id })
	if i < 0 {
		return Account{}, fmt.Errorf("no account with id %q", id)
	}
	t.accounts[i] = patch.Apply(t.accounts[i])
	return t.accounts[i], t.store.SaveAccounts(t.accounts)
}

// DeleteAccount removes the account with the given id.
func (t *Tracker) DeleteAccount(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := slices.DeleteFunc(slices.Clone(t.accounts), func(a Account) bool { return a.ID == id })
	if len(kept) == len(t.accounts) {
		return fmt.Errorf("no account with id %q", id)
	}
	t.accounts = kept
	return t.store.SaveAccounts(t.accounts)
}

// SetBaseCurrency changes the display currency.
func (t *Tracker) SetBaseCurrency(cur string) error {
	if err := ValidateBaseCurrency(cur); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settings.BaseCurrency = cur
	return t.store.SaveSettings(t.settings)
}

// SetMonthlyContribution sets the planned contribution, in base
// currency.
func (t *Tracker) SetMonthlyContribution(amount float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settings.MonthlyContribution = finiteOr(amount, 0)
	return t.store.SaveSettings(t.settings)
}

// SetAnchorRate overrides the anchor to base exchange rate manually.
func (t *Tracker) SetAnchorRate(rate float64) error {
	if finiteOr(rate, 0) <= 0 {
		return fmt.Errorf("exchange rate must be positive, got %v", rate)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settings.AnchorToBaseRate = rate
	return t.store.SaveSettings(t.settings)
}

// ErrRefreshBusy reports that a refresh was already in flight; the
// second trigger is a no-op.
var ErrRefreshBusy = errors.New("a refresh is already in progress")

// Refreshing reports whether a refresh is currently in flight.
func (t *Tracker) Refreshing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refreshing
}

// RefreshAll fetches the anchor rate once, then one quote per position,
// sequentially, awaiting each lookup before starting the next.
//
// A failed rate lookup falls back to FallbackAnchorRate. A failed quote
// lookup leaves that position's price, name and currency unchanged and
// does not abort the remaining batch; all such failures are joined into
// the returned error. The per-position exchange rate is a
// user-maintained snapshot and is never touched by a refresh.
//
// At most one refresh runs at a time: a call while one is in flight
// returns ErrRefreshBusy without doing anything. A refresh runs to
// completion; ctx is only propagated to the oracle.
func (t *Tracker) RefreshAll(ctx context.Context, oracle Oracle) error {
	t.mu.Lock()
	if t.refreshing {
		t.mu.Unlock()
		return ErrRefreshBusy
	}
	t.refreshing = true
	ids := make([]string, 0, len(t.positions))
	symbols := make([]string, 0, len(t.positions))
	for _, p := range t.positions {
		ids = append(ids, p.ID)
		symbols = append(symbols, p.Symbol)
	}
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.refreshing = false
		t.mu.Unlock()
	}()

	var errs error

	rate, err := oracle.FetchAnchorRate(ctx)
	if err != nil || rate <= 0 {
		log.Printf("warning: anchor rate lookup failed (%v), using fallback %v", err, FallbackAnchorRate)
		rate = FallbackAnchorRate
		errs = errors.Join(errs, err)
	}
	t.mu.Lock()
	t.settings.AnchorToBaseRate = rate
	if err := t.store.SaveSettings(t.settings); err != nil {
		errs = errors.Join(errs, err)
	}
	t.mu.Unlock()

	for i, symbol := range symbols {
		quote, err := oracle.FetchPrice(ctx, symbol)
		if err != nil || quote == nil {
			// stale data is fine, keep the prior values
			log.Printf("warning: lookup failed for %q, keeping previous quote: %v", symbol, err)
			errs = errors.Join(errs, fmt.Errorf("refresh failed for %q: %w", symbol, err))
			continue
		}
		t.merge(ids[i], quote)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.store.SavePositions(t.positions); err != nil {
		errs = errors.Join(errs, err)
	}
	return errs
}

// merge applies a successful quote to the position with the given id.
// The position may have been edited or deleted while the lookup was in
// flight; a missing id is silently ignored.
func (t *Tracker) merge(id string, quote *Quote) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := slices.IndexFunc(t.positions, func(p Position) bool { return p.ID == id })
	if i < 0 {
		return
	}
	p := &t.positions[i]
	p.CurrentPrice = finiteOr(quote.Price, p.CurrentPrice)
	if quote.Name != "" {
		p.DisplayName = quote.Name
	}
	if quote.Currency != "" {
		p.QuoteCurrency = quote.Currency
	}
	if len(quote.SourceURLs) > 0 {
		p.PriceSourceLabel = quote.SourceURLs[0]
	}
	p.LastUpdatedAt = time.Now()
}
