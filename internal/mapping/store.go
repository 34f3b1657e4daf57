// Package mapping holds the effective character table: the compiled-in
// defaults overlaid with user edits persisted as JSON.
package mapping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nconklindev/diacritix/internal/fsutil"
	"github.com/nconklindev/diacritix/internal/types"

	"github.com/gofrs/flock"
)

// FileName is the overlay file name inside the config directory.
const FileName = "character-mappings.json"

// ErrInvalidCharacter is returned when a mapping key is not exactly one character.
var ErrInvalidCharacter = errors.New("invalid character")

// Store is not safe for concurrent use; callers serialize access.
type Store struct {
	path     string
	defaults types.CharacterMap
	current  types.CharacterMap
	logger   *slog.Logger

	// overlayBroken is set after a failed read; the overlay is then ignored
	// for the rest of the session and the in-memory map is authoritative.
	overlayBroken bool
}

func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:     path,
		defaults: Defaults(),
		current:  Defaults(),
		logger:   logger.With("component", "mapping"),
	}
}

func (s *Store) Path() string {
	return s.path
}

// Mappings returns a copy of the current effective map without reloading.
func (s *Store) Mappings() types.CharacterMap {
	return s.current.Clone()
}

// Load merges the persisted overlay over the defaults and returns the
// effective map. A missing overlay is created from the defaults. Read or
// parse failures fall back to the defaults.
func (s *Store) Load() types.CharacterMap {
	if s.overlayBroken {
		return s.current.Clone()
	}

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		s.current = s.defaults.Clone()
		if err := s.Save(s.current); err == nil {
			s.logger.Info("created default character mappings", "path", s.path)
		}
		return s.current.Clone()
	}

	overlay, deleted, err := s.readOverlay()
	if err != nil {
		s.logger.Error("failed to load character mappings, using defaults",
			"path", s.path, "error", err)
		s.current = s.defaults.Clone()
		s.overlayBroken = true
		return s.current.Clone()
	}

	merged := types.Merge(s.defaults, overlay)
	for _, r := range deleted {
		delete(merged, r)
	}
	s.current = merged
	s.logger.Debug("loaded character mappings", "path", s.path, "entries", len(merged))
	return s.current.Clone()
}

func (s *Store) readOverlay() (types.CharacterMap, []rune, error) {
	unlock := s.lock(true)
	data, err := os.ReadFile(s.path)
	unlock()
	if err != nil {
		return nil, nil, err
	}

	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	overlay := make(types.CharacterMap, len(raw))
	var deleted []rune
	for k, v := range raw {
		r, ok := types.SingleRune(k)
		if !ok {
			s.logger.Warn("skipping mapping key that is not a single character", "key", k)
			continue
		}
		if v == nil {
			deleted = append(deleted, r)
			continue
		}
		overlay[r] = *v
	}
	return overlay, deleted, nil
}

// Save persists m as the full overlay and makes it the current map. Default
// keys missing from m are written as null so they stay deleted on reload.
// Errors are logged and returned; the in-memory map is updated regardless.
func (s *Store) Save(m types.CharacterMap) error {
	s.current = m.Clone()

	data, err := encodeOverlay(s.current, s.defaults)
	if err != nil {
		s.logger.Error("failed to encode character mappings", "error", err)
		return err
	}

	unlock := s.lock(false)
	defer unlock()

	if err := fsutil.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Error("failed to save character mappings", "path", s.path, "error", err)
		return err
	}
	return nil
}

func encodeOverlay(m, defaults types.CharacterMap) ([]byte, error) {
	out := make(map[string]*string, len(m)+len(defaults))
	for r, v := range m {
		out[string(r)] = &v
	}
	for r := range defaults {
		if _, ok := m[r]; !ok {
			out[string(r)] = nil
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Set inserts or overwrites a mapping and persists the whole map.
// Persistence failures are logged, not returned.
func (s *Store) Set(char, replacement string) error {
	r, ok := types.SingleRune(char)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCharacter, char)
	}
	s.current[r] = replacement
	_ = s.Save(s.current)
	return nil
}

// Delete removes a mapping if present and persists the whole map.
func (s *Store) Delete(char string) error {
	r, ok := types.SingleRune(char)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCharacter, char)
	}
	delete(s.current, r)
	_ = s.Save(s.current)
	return nil
}

// EnsureFile writes the current map if no overlay exists yet.
func (s *Store) EnsureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return s.Save(s.current)
}

func (s *Store) lock(shared bool) func() {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.logger.Warn("could not create config directory", "path", s.path, "error", err)
		return func() {}
	}

	fl := flock.New(s.path + ".lock")
	var err error
	if shared {
		err = fl.RLock()
	} else {
		err = fl.Lock()
	}
	if err != nil {
		s.logger.Warn("could not lock character mappings", "lock", fl.Path(), "error", err)
		return func() {}
	}
	return func() { _ = fl.Unlock() }
}
