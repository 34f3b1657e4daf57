package converter

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nconklindev/diacritix/internal/fsutil"
	"github.com/nconklindev/diacritix/internal/types"

	"github.com/xuri/excelize/v2"
)

// csvDocument is a single-sheet document named after the file.
type csvDocument struct {
	name    string
	records [][]string
}

func openCSV(path string) (*csvDocument, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrEmptyDocument
	}

	ext := filepath.Ext(path)
	return &csvDocument{
		name:    strings.TrimSuffix(filepath.Base(path), ext),
		records: records,
	}, nil
}

func (d *csvDocument) Sheets() []string {
	return []string{d.name}
}

func (d *csvDocument) Cells(sheet string) ([]types.Cell, error) {
	var cells []types.Cell
	for rowIdx, record := range d.records {
		for colIdx, val := range record {
			if val == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, &CellError{Sheet: sheet, Err: err}
			}
			kind := types.CellString
			if _, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
				kind = types.CellNumber
			}
			cells = append(cells, types.Cell{Ref: ref, Kind: kind, Value: val})
		}
	}
	return cells, nil
}

func (d *csvDocument) Rewrite(sheet string, cell types.Cell, fn func(string) string) (bool, error) {
	if cell.Kind != types.CellString {
		return false, nil
	}
	col, row, err := excelize.CellNameToCoordinates(cell.Ref)
	if err != nil {
		return false, err
	}
	if row > len(d.records) || col > len(d.records[row-1]) {
		return false, nil
	}

	out := fn(cell.Value)
	if out == cell.Value {
		return false, nil
	}
	d.records[row-1][col-1] = out
	return true, nil
}

func (d *csvDocument) Save(path string) error {
	return fsutil.Write(path, 0o644, func(w io.Writer) error {
		writer := csv.NewWriter(w)
		if err := writer.WriteAll(d.records); err != nil {
			return err
		}
		return writer.Error()
	})
}

func (d *csvDocument) Close() error {
	return nil
}
