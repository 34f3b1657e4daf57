package mapping

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "cfg", FileName), nil)
}

func TestLoad_CreatesDefaultOverlay(t *testing.T) {
	s := newTestStore(t)

	m := s.Load()
	if m['é'] != "e" {
		t.Errorf("Load()['é'] = %q; want %q", m['é'], "e")
	}
	if len(m) != len(Defaults()) {
		t.Errorf("Load() has %d entries; want %d", len(m), len(Defaults()))
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("overlay not created: %v", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("overlay is not a JSON object of strings: %v", err)
	}
	if raw["ß"] != "ss" {
		t.Errorf("overlay[ß] = %q; want %q", raw["ß"], "ss")
	}
	if !strings.Contains(string(data), "\n  \"") {
		t.Errorf("overlay not written with two-space indentation:\n%s", data)
	}
}

func TestLoad_OverlayWins(t *testing.T) {
	s := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	overlay := `{"é": "E", "€": "EUR", "ab": "skipped"}`
	if err := os.WriteFile(s.Path(), []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}

	m := s.Load()

	tests := []struct {
		char rune
		want string
	}{
		{'é', "E"},
		{'€', "EUR"},
		{'ñ', "n"},
	}
	for _, tt := range tests {
		if got := m[tt.char]; got != tt.want {
			t.Errorf("Load()[%q] = %q; want %q", tt.char, got, tt.want)
		}
	}
	if _, ok := m['a']; ok {
		t.Errorf("multi-character key leaked into the map")
	}
}

func TestLoad_CorruptOverlayFallsBack(t *testing.T) {
	s := newTestStore(t)
	os.MkdirAll(filepath.Dir(s.Path()), 0o755)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := s.Load()
	if len(m) != len(Defaults()) || m['ü'] != "u" {
		t.Fatalf("corrupt overlay should yield defaults, got %d entries", len(m))
	}

	// The overlay is not consulted again this session.
	os.WriteFile(s.Path(), []byte(`{"ü": "UE"}`), 0o644)
	if got := s.Load()['ü']; got != "u" {
		t.Errorf("reloaded after failure: ['ü'] = %q; want %q", got, "u")
	}
}

func TestSet(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	if err := s.Set("é", "E"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("€", "EUR"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reloaded := NewStore(s.Path(), nil).Load()
	if reloaded['é'] != "E" || reloaded['€'] != "EUR" {
		t.Errorf("edits not persisted: é=%q €=%q", reloaded['é'], reloaded['€'])
	}
}

func TestSet_InvalidCharacter(t *testing.T) {
	s := newTestStore(t)
	before := s.Load()

	for _, char := range []string{"", "ab", "\xff"} {
		err := s.Set(char, "x")
		if !errors.Is(err, ErrInvalidCharacter) {
			t.Errorf("Set(%q) error = %v; want ErrInvalidCharacter", char, err)
		}
	}

	after := s.Mappings()
	if len(after) != len(before) {
		t.Errorf("map changed after rejected Set: %d -> %d entries", len(before), len(after))
	}
}

func TestDelete_DefaultStaysDeleted(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	if err := s.Delete("'"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := s.Mappings()['\'']; ok {
		t.Fatalf("apostrophe still mapped after Delete")
	}

	if _, ok := s.Load()['\'']; ok {
		t.Errorf("deleted default key came back after reload")
	}
	if _, ok := NewStore(s.Path(), nil).Load()['\'']; ok {
		t.Errorf("deleted default key came back in a new session")
	}
}

func TestDelete_AbsentIsNoop(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	if err := s.Delete("Ω"); err != nil {
		t.Errorf("Delete of absent key = %v; want nil", err)
	}
	if len(s.Mappings()) != len(Defaults()) {
		t.Errorf("map size changed deleting an absent key")
	}
}

func TestSave_FailureKeepsMemory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(filepath.Join(blocker, FileName), nil)

	if err := s.Set("€", "EUR"); err != nil {
		t.Fatalf("Set should absorb persistence errors, got %v", err)
	}
	if s.Mappings()['€'] != "EUR" {
		t.Errorf("in-memory map lost the edit after a failed save")
	}
}

func TestDefaultsAreCopies(t *testing.T) {
	d := Defaults()
	d['é'] = "changed"
	if Defaults()['é'] != "e" {
		t.Errorf("Defaults() exposes the compiled-in table")
	}
}
