package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nconklindev/diacritix/internal/types"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(BuildInfo{Version: "test", Commit: "abc", Date: "today"})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setupDirs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DIACRITIX_CONFIG_DIR", filepath.Join(dir, "config"))
	t.Setenv("DIACRITIX_OUTPUT_SUFFIX", "")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func TestVersion(t *testing.T) {
	setupDirs(t)
	out, err := run(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "diacritix test\ncommit: abc\nbuilt: today\n" {
		t.Errorf("version output = %q", out)
	}
}

func TestFix(t *testing.T) {
	dir := setupDirs(t)
	input := filepath.Join(dir, "names.csv")
	os.WriteFile(input, []byte("José,Zoë\n"), 0o644)

	out, err := run(t, "fix", input, "--suffix", "_ascii")
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if !strings.Contains(out, "names_ascii.csv") || !strings.Contains(out, "Cells changed: 2") {
		t.Errorf("output = %q", out)
	}

	got, err := os.ReadFile(filepath.Join(dir, "names_ascii.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Jose,Zoe\n" {
		t.Errorf("file = %q", got)
	}
}

func TestFix_MissingFile(t *testing.T) {
	dir := setupDirs(t)
	if _, err := run(t, "fix", filepath.Join(dir, "nope.xlsx")); err == nil {
		t.Fatal("fix of a missing file succeeded")
	}
}

func TestAnalyzeJSON(t *testing.T) {
	dir := setupDirs(t)
	input := filepath.Join(dir, "in.csv")
	os.WriteFile(input, []byte("café,Ω\n"), 0o644)

	if _, err := run(t, "map", "delete", "Ω"); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "analyze", input, "--json")
	if err != nil {
		t.Fatal(err)
	}

	var reports []types.CharacterReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(reports) != 2 {
		t.Fatalf("reports = %+v", reports)
	}
	for _, r := range reports {
		switch r.Char {
		case "é":
			if !r.Mapped || r.Replacement != "e" {
				t.Errorf("é report = %+v", r)
			}
		case "Ω":
			if r.Mapped {
				t.Errorf("Ω reported as mapped: %+v", r)
			}
		default:
			t.Errorf("unexpected character %q", r.Char)
		}
	}
}

func TestMapSetListDelete(t *testing.T) {
	setupDirs(t)

	if _, err := run(t, "map", "set", "€", "EUR"); err != nil {
		t.Fatalf("set: %v", err)
	}

	out, err := run(t, "map", "list", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m["€"] != "EUR" {
		t.Errorf("€ -> %q; want EUR", m["€"])
	}

	if _, err := run(t, "map", "delete", "€"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	out, _ = run(t, "map", "list")
	if strings.Contains(out, "EUR") {
		t.Errorf("€ still listed after delete")
	}
}

func TestMapSet_Invalid(t *testing.T) {
	setupDirs(t)
	_, err := run(t, "map", "set", "ab", "x")
	if err == nil || err.Error() != "Invalid character" {
		t.Errorf("err = %v; want Invalid character", err)
	}
}

func TestConfigPath(t *testing.T) {
	dir := setupDirs(t)
	out, err := run(t, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "config", "character-mappings.json")
	if strings.TrimSpace(out) != want {
		t.Errorf("config path = %q; want %q", out, want)
	}
}
