package converter

import (
	"bytes"

	"github.com/nconklindev/diacritix/internal/fsutil"
	"github.com/nconklindev/diacritix/internal/types"

	"github.com/xuri/excelize/v2"
)

type xlsxDocument struct {
	f *excelize.File

	// cached holds new cached results for formula cells, keyed by sheet then
	// cell. They are written into the saved package by patchCachedValues.
	cached map[string]map[string]string
}

func openXLSX(path string) (*xlsxDocument, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &xlsxDocument{
		f:      f,
		cached: make(map[string]map[string]string),
	}, nil
}

func (d *xlsxDocument) Sheets() []string {
	return d.f.GetSheetList()
}

func (d *xlsxDocument) Cells(sheet string) ([]types.Cell, error) {
	rows, err := d.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	var cells []types.Cell
	for rowIdx := 1; rowIdx <= len(rows); rowIdx++ {
		row := rows[rowIdx-1]
		for colIdx := 1; colIdx <= maxCol; colIdx++ {
			ref, _ := excelize.CoordinatesToCellName(colIdx, rowIdx)

			raw := ""
			if colIdx <= len(row) {
				raw = row[colIdx-1]
			}

			formula, err := d.f.GetCellFormula(sheet, ref)
			if err != nil {
				return nil, &CellError{Sheet: sheet, Cell: ref, Err: err}
			}
			if raw == "" && formula == "" {
				continue
			}

			cellType, err := d.f.GetCellType(sheet, ref)
			if err != nil {
				return nil, &CellError{Sheet: sheet, Cell: ref, Err: err}
			}

			cell := types.Cell{
				Ref:     ref,
				Kind:    cellKind(cellType, raw),
				Value:   raw,
				Formula: formula,
			}
			cells = append(cells, cell)
		}
	}

	return cells, nil
}

func cellKind(t excelize.CellType, raw string) types.CellKind {
	switch t {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		// CellTypeFormula is the "str" type: a formula with a string result.
		return types.CellString
	case excelize.CellTypeNumber, excelize.CellTypeDate:
		return types.CellNumber
	case excelize.CellTypeBool:
		return types.CellBool
	case excelize.CellTypeError:
		return types.CellOther
	}
	if raw == "" {
		return types.CellBlank
	}
	return types.CellNumber
}

func (d *xlsxDocument) Rewrite(sheet string, cell types.Cell, fn func(string) string) (bool, error) {
	if cell.Kind != types.CellString {
		return false, nil
	}

	// Every excelize setter drops the formula, so formula cells are left
	// alone here and only their "str" cached result is replaced on save.
	if cell.Formula != "" {
		cellType, err := d.f.GetCellType(sheet, cell.Ref)
		if err != nil || cellType != excelize.CellTypeFormula {
			return false, err
		}
		out := fn(cell.Value)
		if out == cell.Value {
			return false, nil
		}
		if d.cached[sheet] == nil {
			d.cached[sheet] = make(map[string]string)
		}
		d.cached[sheet][cell.Ref] = out
		return true, nil
	}

	runs, err := d.f.GetCellRichText(sheet, cell.Ref)
	if err == nil && len(runs) > 1 {
		changed := false
		for i := range runs {
			if out := fn(runs[i].Text); out != runs[i].Text {
				runs[i].Text = out
				changed = true
			}
		}
		if !changed {
			return false, nil
		}
		return true, d.f.SetCellRichText(sheet, cell.Ref, runs)
	}

	out := fn(cell.Value)
	if out == cell.Value {
		return false, nil
	}
	return true, d.f.SetCellStr(sheet, cell.Ref, out)
}

func (d *xlsxDocument) Save(path string) error {
	var buf bytes.Buffer
	if _, err := d.f.WriteTo(&buf); err != nil {
		return err
	}

	data := buf.Bytes()
	if len(d.cached) > 0 {
		var err error
		if data, err = patchCachedValues(data, d.cached); err != nil {
			return err
		}
	}
	return fsutil.WriteFile(path, data, 0o644)
}

func (d *xlsxDocument) Close() error {
	return d.f.Close()
}
