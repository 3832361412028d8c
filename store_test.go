package folio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStoreMissingStateSeeds(t *testing.T) {
	store := OpenStore(filepath.Join(t.TempDir(), "never-created"))

	if got, want := store.LoadPositions(), SeedPositions(); len(got) != len(want) {
		t.Errorf("LoadPositions() = %d records, want the %d seed positions", len(got), len(want))
	}
	if got, want := store.LoadAccounts(), SeedAccounts(); len(got) != len(want) {
		t.Errorf("LoadAccounts() = %d records, want the %d seed accounts", len(got), len(want))
	}
	if got, want := store.LoadSettings(), DefaultSettings(); got != want {
		t.Errorf("LoadSettings() = %+v, want defaults %+v", got, want)
	}
}

func TestStoreCorruptStateFailsClosed(t *testing.T) {
	dir := t.TempDir()
	for _, filename := range []string{positionsFilename, accountsFilename, settingsFilename} {
		if err := os.WriteFile(filepath.Join(dir, filename), []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	store := OpenStore(dir)

	if got, want := store.LoadPositions(), SeedPositions(); len(got) != len(want) {
		t.Errorf("LoadPositions() = %d records, want the seed positions", len(got))
	}
	if got, want := store.LoadAccounts(), SeedAccounts(); len(got) != len(want) {
		t.Errorf("LoadAccounts() = %d records, want the seed accounts", len(got))
	}
	if got, want := store.LoadSettings(), DefaultSettings(); got != want {
		t.Errorf("LoadSettings() = %+v, want defaults", got)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := OpenStore(t.TempDir())

	updated := time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC)
	positions := []Position{
		{
			ID: "p1", Symbol: "VOO", DisplayName: "Vanguard S&P 500",
			QuoteCurrency: "USD", CurrentPrice: 512, FxToAnchor: 7.82,
			ShareCount: 10.5, CostBasisPrice: 480, TargetAllocationPct: 60,
			LastUpdatedAt: updated, PriceSourceLabel: "google",
		},
		{ID: "p2", Symbol: "2800", FxToAnchor: 1},
	}
	balance := 100000.0
	accounts := []Account{
		{ID: "a1", DisplayName: "Brokerage", Currency: "HKD", FxToAnchor: 1, AutoDerived: true},
		{ID: "a2", DisplayName: "Bank", Currency: "TWD", FxToAnchor: 0.241, Balance: &balance},
	}
	settings := Settings{BaseCurrency: "TWD", AnchorToBaseRate: 4.2, MonthlyContribution: 30000}

	if err := store.SavePositions(positions); err != nil {
		t.Fatalf("SavePositions() error = %v", err)
	}
	if err := store.SaveAccounts(accounts); err != nil {
		t.Fatalf("SaveAccounts() error = %v", err)
	}
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	gotPositions := store.LoadPositions()
	if len(gotPositions) != 2 {
		t.Fatalf("LoadPositions() = %d records, want 2", len(gotPositions))
	}
	if gotPositions[0] != positions[0] {
		t.Errorf("position round-trip:\n got %+v\nwant %+v", gotPositions[0], positions[0])
	}
	if !gotPositions[1].LastUpdatedAt.IsZero() {
		t.Errorf("never-fetched position got LastUpdatedAt %v", gotPositions[1].LastUpdatedAt)
	}

	gotAccounts := store.LoadAccounts()
	if len(gotAccounts) != 2 {
		t.Fatalf("LoadAccounts() = %d records, want 2", len(gotAccounts))
	}
	if !gotAccounts[0].AutoDerived || gotAccounts[0].Balance != nil {
		t.Errorf("auto-derived account round-trip: %+v", gotAccounts[0])
	}
	if gotAccounts[1].ManualBalance() != 100000 {
		t.Errorf("manual balance = %v, want 100000", gotAccounts[1].ManualBalance())
	}

	if got := store.LoadSettings(); got != settings {
		t.Errorf("LoadSettings() = %+v, want %+v", got, settings)
	}
}

func TestStoreFilesAreReadable(t *testing.T) {
	// Documents are pretty-printed with a trailing newline so the store
	// folder diffs cleanly under version control.
	store := OpenStore(t.TempDir())
	if err := store.SaveSettings(DefaultSettings()); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), settingsFilename))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		t.Error("saved document must end with a newline")
	}
	if got := string(data); !strings.Contains(got, "\n  \"") {
		t.Errorf("saved document is not indented:\n%s", got)
	}
}
