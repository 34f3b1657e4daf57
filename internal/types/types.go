package types

import (
	"encoding/json"
	"maps"
	"slices"
	"unicode/utf8"
)

// CharacterMap maps a single source character to its replacement.
// A missing key means the character passes through unchanged.
type CharacterMap map[rune]string

// Clone returns an independent copy of m.
func (m CharacterMap) Clone() CharacterMap {
	out := make(CharacterMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge returns a new map holding base overlaid with over.
func Merge(base, over CharacterMap) CharacterMap {
	out := base.Clone()
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Keys returns the mapped characters in code point order.
func (m CharacterMap) Keys() []rune {
	return slices.Sorted(maps.Keys(m))
}

// SingleRune reports the only code point in s, or false if s is not
// exactly one character.
func SingleRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return 0, false
	}
	if size != len(s) {
		return 0, false
	}
	return r, true
}

// MarshalJSON encodes m as an object keyed by the character itself.
// Overlay files are decoded by the mapping store, which also handles
// null entries and invalid keys.
func (m CharacterMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return json.Marshal(out)
}

type CellKind int

const (
	CellBlank CellKind = iota
	CellString
	CellNumber
	CellBool
	CellOther
)

func (k CellKind) String() string {
	switch k {
	case CellBlank:
		return "blank"
	case CellString:
		return "string"
	case CellNumber:
		return "number"
	case CellBool:
		return "bool"
	default:
		return "other"
	}
}

// Cell is one addressed cell of a sheet. For formula cells Value holds the
// cached result.
type Cell struct {
	Ref     string
	Kind    CellKind
	Value   string
	Formula string
}

type TransformResult struct {
	Success      bool
	Message      string
	InputFile    string
	OutputFile   string
	Sheets       int
	CellsScanned int
	CellsChanged int
}

type CharacterReport struct {
	Char        string `json:"char"`
	Count       int    `json:"count"`
	Code        int    `json:"code"`
	Hex         string `json:"hex"`
	Name        string `json:"name,omitempty"`
	Mapped      bool   `json:"mapped"`
	Replacement string `json:"replacement"`
}

type AnalysisResult struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Characters []CharacterReport `json:"characters,omitempty"`
}

// Result is the outcome of a mapping or configuration operation.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
