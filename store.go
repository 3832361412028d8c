package folio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// This file persists tracker state in a folder, in a way that is still
// human-readable and git-friendly: one pretty-printed JSON document per
// named key. Load happens once at startup, save on every state change.

const (
	positionsFilename = "positions.json"
	accountsFilename  = "accounts.json"
	settingsFilename  = "settings.json"
)

// Store is a key-value persistence layer for the tracker's records.
type Store struct {
	dir string
}

// OpenStore returns a store rooted at dir. The directory is created
// lazily on first save.
func OpenStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string { return s.dir }

// load reads one key into v. It returns fs.ErrNotExist when the key was
// never saved.
func (s *Store) load(filename string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("corrupt state in %q: %w", filename, err)
	}
	return nil
}

// save writes one key, pretty-printed with a trailing newline.
func (s *Store) save(filename string, v any) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("cannot create store directory %q: %w", s.dir, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", filename, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0644); err != nil {
		return fmt.Errorf("cannot write %q: %w", filename, err)
	}
	return nil
}

// LoadPositions reads the saved positions list. Missing state yields
// the seed positions; corrupt state fails closed to the seed positions
// rather than crashing.
func (s *Store) LoadPositions() []Position {
	var positions []Position
	err := s.load(positionsFilename, &positions)
	switch {
	case err == nil:
		return positions
	case errors.Is(err, fs.ErrNotExist):
		return SeedPositions()
	default:
		log.Printf("warning: %v, falling back to seed positions", err)
		return SeedPositions()
	}
}

// LoadAccounts reads the saved accounts list, with the same fallback
// behavior as LoadPositions.
func (s *Store) LoadAccounts() []Account {
	var accounts []Account
	err := s.load(accountsFilename, &accounts)
	switch {
	case err == nil:
		return accounts
	case errors.Is(err, fs.ErrNotExist):
		return SeedAccounts()
	default:
		log.Printf("warning: %v, falling back to seed accounts", err)
		return SeedAccounts()
	}
}

// LoadSettings reads the saved settings, defaulting on missing or
// corrupt state.
func (s *Store) LoadSettings() Settings {
	var settings Settings
	err := s.load(settingsFilename, &settings)
	switch {
	case err == nil:
		return settings
	case errors.Is(err, fs.ErrNotExist):
		return DefaultSettings()
	default:
		log.Printf("warning: %v, falling back to default settings", err)
		return DefaultSettings()
	}
}

func (s *Store) SavePositions(positions []Position) error {
	return s.save(positionsFilename, positions)
}

func (s *Store) SaveAccounts(accounts []Account) error {
	return s.save(accountsFilename, accounts)
}

func (s *Store) SaveSettings(settings Settings) error {
	return s.save(settingsFilename, settings)
}
