// Package app exposes the operations the shells call: process a file,
// analyze a file, and read or edit the character table. Every operation
// returns a result record instead of an error so callers can show the
// message as is.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nconklindev/diacritix/internal/config"
	"github.com/nconklindev/diacritix/internal/converter"
	"github.com/nconklindev/diacritix/internal/logging"
	"github.com/nconklindev/diacritix/internal/mapping"
	"github.com/nconklindev/diacritix/internal/types"
)

// App is not safe for concurrent use. Shells run one operation at a time.
type App struct {
	cfg    *config.Config
	store  *mapping.Store
	opts   converter.Options
	logger *slog.Logger
}

func New(cfg *config.Config, store *mapping.Store, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		cfg:   cfg,
		store: store,
		opts: converter.Options{
			Compose:    cfg.Transform.Compose,
			StripMarks: cfg.Transform.StripMarks,
		},
		logger: logger,
	}
}

// MappingsPath is the overlay file location.
func (a *App) MappingsPath() string {
	return a.store.Path()
}

// OutputPath is where ProcessFile writes the result for input.
func (a *App) OutputPath(input string) string {
	return converter.OutputPath(input, a.cfg.Transform.OutputSuffix)
}

// ProcessFile transliterates the workbook at path into OutputPath(path).
func (a *App) ProcessFile(path string) *types.TransformResult {
	return a.ProcessFileWithProgress(path, nil)
}

// ProcessFileWithProgress is ProcessFile reporting progress in [0,1] on
// progressChan without blocking.
func (a *App) ProcessFileWithProgress(path string, progressChan chan<- float64) *types.TransformResult {
	logger := logging.WithFields(a.logger, "op", "process", "file", path)

	if err := checkInput(path); err != nil {
		logger.Warn("rejected input", "error", err)
		return &types.TransformResult{
			InputFile: path,
			Message:   fmt.Sprintf("Error processing file: %v", err),
		}
	}

	// The table is reloaded for every file so edits made in the editor
	// since the last operation apply.
	tr := converter.NewTransliterator(a.store.Load(), a.opts)
	output := a.OutputPath(path)

	result, err := converter.TransformFile(path, output, tr, progressChan)
	if err != nil {
		logger.Error("processing failed", "error", err)
		return &types.TransformResult{
			InputFile: path,
			Message:   fmt.Sprintf("Error processing file: %v", err),
		}
	}

	result.Message = fmt.Sprintf("File processed successfully!\nSaved as: %s", filepath.Base(output))
	logger.Info("file processed",
		"output", output,
		"sheets", result.Sheets,
		"cells_scanned", result.CellsScanned,
		"cells_changed", result.CellsChanged,
	)
	return result
}

// AnalyzeFile reports the non-ASCII characters found in path and how the
// current table maps them. The file is not modified.
func (a *App) AnalyzeFile(path string) *types.AnalysisResult {
	logger := logging.WithFields(a.logger, "op", "analyze", "file", path)

	if err := checkInput(path); err != nil {
		logger.Warn("rejected input", "error", err)
		return &types.AnalysisResult{Message: fmt.Sprintf("Error analyzing file: %v", err)}
	}

	reports, err := converter.AnalyzeFile(path, a.store.Load())
	if err != nil {
		logger.Error("analysis failed", "error", err)
		return &types.AnalysisResult{Message: fmt.Sprintf("Error analyzing file: %v", err)}
	}

	unmapped := 0
	for _, r := range reports {
		if !r.Mapped {
			unmapped++
		}
	}
	logger.Info("file analyzed", "distinct", len(reports), "unmapped", unmapped)

	return &types.AnalysisResult{Success: true, Characters: reports}
}

// GetMappings returns the effective table, reloaded from disk.
func (a *App) GetMappings() types.CharacterMap {
	return a.store.Load()
}

// UpdateMapping sets char to map to replacement and persists the table.
func (a *App) UpdateMapping(char, replacement string) types.Result {
	a.store.Load()
	if err := a.store.Set(char, replacement); err != nil {
		return mappingFailure("updating", err)
	}
	a.logger.Info("mapping updated", "char", char, "replacement", replacement)
	return types.Result{Success: true}
}

// DeleteMapping removes char from the table. Deleting an unmapped
// character succeeds.
func (a *App) DeleteMapping(char string) types.Result {
	a.store.Load()
	if err := a.store.Delete(char); err != nil {
		return mappingFailure("deleting", err)
	}
	a.logger.Info("mapping deleted", "char", char)
	return types.Result{Success: true}
}

func mappingFailure(verb string, err error) types.Result {
	if errors.Is(err, mapping.ErrInvalidCharacter) {
		return types.Result{Message: "Invalid character"}
	}
	return types.Result{Message: fmt.Sprintf("Error %s mapping: %v", verb, err)}
}

func checkInput(path string) error {
	if path == "" {
		return errors.New("no file selected")
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if !converter.IsSupported(path) {
		return fmt.Errorf("%w: %q", converter.ErrUnsupportedFormat, filepath.Ext(path))
	}
	return nil
}
