package app

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nconklindev/diacritix/internal/config"
	"github.com/nconklindev/diacritix/internal/mapping"
)

func newTestApp(t *testing.T) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Paths:     config.PathsConfig{ConfigDir: filepath.Join(dir, "config")},
		Transform: config.TransformConfig{OutputSuffix: "_fixed"},
		Logging:   config.LoggingConfig{Level: "info", Format: "text"},
	}
	store := mapping.NewStore(cfg.MappingsPath(), nil)
	return New(cfg, store, nil), dir
}

func writeCSV(t *testing.T, path string, records [][]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		t.Fatal(err)
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

func TestProcessFile(t *testing.T) {
	a, dir := newTestApp(t)
	input := filepath.Join(dir, "menu.csv")
	writeCSV(t, input, [][]string{{"café", "don't", "12"}})

	result := a.ProcessFile(input)
	if !result.Success {
		t.Fatalf("ProcessFile failed: %s", result.Message)
	}
	if result.Message != "File processed successfully!\nSaved as: menu_fixed.csv" {
		t.Errorf("Message = %q", result.Message)
	}

	got := readCSV(t, filepath.Join(dir, "menu_fixed.csv"))
	if got[0][0] != "cafe" || got[0][1] != "don t" || got[0][2] != "12" {
		t.Errorf("output = %v", got)
	}
}

func TestProcessFile_PicksUpExternalEdits(t *testing.T) {
	a, dir := newTestApp(t)
	input := filepath.Join(dir, "in.csv")
	writeCSV(t, input, [][]string{{"café"}})

	a.GetMappings()
	if err := os.WriteFile(a.MappingsPath(), []byte(`{"é": "E"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if result := a.ProcessFile(input); !result.Success {
		t.Fatalf("ProcessFile failed: %s", result.Message)
	}
	if got := readCSV(t, a.OutputPath(input))[0][0]; got != "cafE" {
		t.Errorf("output = %q; want %q", got, "cafE")
	}
}

func TestProcessFile_InputErrors(t *testing.T) {
	a, dir := newTestApp(t)
	xls := filepath.Join(dir, "old.xls")
	os.WriteFile(xls, []byte("legacy"), 0o644)

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing file", filepath.Join(dir, "missing.xlsx")},
		{"directory", dir},
		{"unsupported", xls},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.ProcessFile(tt.path)
			if result.Success {
				t.Fatalf("ProcessFile(%q) succeeded", tt.path)
			}
			if !strings.HasPrefix(result.Message, "Error processing file: ") {
				t.Errorf("Message = %q", result.Message)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "old_fixed.xls")); !os.IsNotExist(err) {
		t.Errorf("output written for rejected input")
	}
}

func TestUpdateMapping_RejectsEmptyCharacter(t *testing.T) {
	a, _ := newTestApp(t)
	before := a.GetMappings()

	result := a.UpdateMapping("", "x")
	if result.Success || result.Message != "Invalid character" {
		t.Errorf("UpdateMapping(\"\") = %+v; want input error", result)
	}

	after := a.GetMappings()
	if len(after) != len(before) {
		t.Errorf("table size changed: %d -> %d", len(before), len(after))
	}
	for k, v := range before {
		if after[k] != v {
			t.Errorf("entry %q changed: %q -> %q", k, v, after[k])
		}
	}
}

func TestUpdateAndDeleteMapping(t *testing.T) {
	a, dir := newTestApp(t)
	input := filepath.Join(dir, "in.csv")
	writeCSV(t, input, [][]string{{"5€ café"}})

	if r := a.UpdateMapping("€", "EUR"); !r.Success {
		t.Fatalf("UpdateMapping failed: %s", r.Message)
	}
	if r := a.DeleteMapping("é"); !r.Success {
		t.Fatalf("DeleteMapping failed: %s", r.Message)
	}
	if r := a.DeleteMapping("é"); !r.Success {
		t.Errorf("deleting an absent mapping should succeed: %s", r.Message)
	}

	m := a.GetMappings()
	if m['€'] != "EUR" {
		t.Errorf("€ -> %q; want EUR", m['€'])
	}
	if _, ok := m['é']; ok {
		t.Errorf("é still mapped after delete")
	}

	a.ProcessFile(input)
	if got := readCSV(t, a.OutputPath(input))[0][0]; got != "5EUR café" {
		t.Errorf("output = %q; want %q", got, "5EUR café")
	}
}

func TestAnalyzeFile(t *testing.T) {
	a, dir := newTestApp(t)
	input := filepath.Join(dir, "words.csv")
	writeCSV(t, input, [][]string{{"café", "naïve"}, {"café", "plain"}})

	result := a.AnalyzeFile(input)
	if !result.Success {
		t.Fatalf("AnalyzeFile failed: %s", result.Message)
	}
	if len(result.Characters) != 2 {
		t.Fatalf("Characters = %+v; want 2 entries", result.Characters)
	}
	if c := result.Characters[0]; c.Char != "é" || c.Count != 2 {
		t.Errorf("first = %+v; want é x2", c)
	}
	if c := result.Characters[1]; c.Char != "ï" || c.Count != 1 {
		t.Errorf("second = %+v; want ï x1", c)
	}

	if _, err := os.Stat(a.OutputPath(input)); !os.IsNotExist(err) {
		t.Errorf("analysis wrote an output file")
	}
}

func TestAnalyzeFile_Missing(t *testing.T) {
	a, dir := newTestApp(t)

	result := a.AnalyzeFile(filepath.Join(dir, "nope.csv"))
	if result.Success || !strings.HasPrefix(result.Message, "Error analyzing file: ") {
		t.Errorf("result = %+v", result)
	}
}

func TestOpenConfig(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses the true command")
	}
	a, _ := newTestApp(t)
	a.cfg.Editor.Command = "true"

	if r := a.OpenConfig(); !r.Success {
		t.Fatalf("OpenConfig failed: %s", r.Message)
	}
	if _, err := os.Stat(a.MappingsPath()); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}
