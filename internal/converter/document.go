package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nconklindev/diacritix/internal/types"
)

// DefaultSuffix is inserted between the base name and extension of output files.
const DefaultSuffix = "_fixed"

var (
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrEmptyDocument     = errors.New("empty file")
)

// SupportedExtensions lists the file types Open accepts.
var SupportedExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".csv"}

// Document is a workbook opened for a single transform or analysis.
type Document interface {
	Sheets() []string
	// Cells returns the non-blank cells of a sheet in row-major order.
	// Blank cells that carry a formula are included.
	Cells(sheet string) ([]types.Cell, error)
	// Rewrite applies fn to the text of a string cell in place and reports
	// whether anything changed. Formulas, styles and non-string cells are
	// left alone.
	Rewrite(sheet string, cell types.Cell, fn func(string) string) (bool, error)
	// Save writes the document to path, replacing any existing file.
	Save(path string) error
	Close() error
}

// CellError locates a failure inside a document.
type CellError struct {
	Sheet string
	Cell  string
	Err   error
}

func (e *CellError) Error() string {
	if e.Cell == "" {
		return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
	}
	return fmt.Sprintf("sheet %q cell %s: %v", e.Sheet, e.Cell, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// Open picks a backend from the file extension.
func Open(path string) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		doc, err := openXLSX(path)
		if err != nil {
			return nil, err
		}
		return doc, nil
	case ".csv":
		doc, err := openCSV(path)
		if err != nil {
			return nil, err
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// IsSupported reports whether Open accepts path's extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// OutputPath returns <dir>/<base><suffix><ext> for input.
func OutputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(filepath.Dir(input), base+suffix+ext)
}
