package converter

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/nconklindev/diacritix/internal/types"

	"golang.org/x/text/unicode/runenames"
)

// progressEvery limits how often TransformDocument reports progress.
const progressEvery = 64

type Stats struct {
	Sheets       int
	CellsScanned int
	CellsChanged int
}

// TransformDocument transliterates every string cell of doc in place.
// Formula text is never modified; a formula's cached string result is.
// Progress in [0,1] is sent on progressChan without blocking.
func TransformDocument(doc Document, tr *Transliterator, progressChan chan<- float64) (Stats, error) {
	var stats Stats
	sheets := doc.Sheets()

	reportProgress := func(sheetIdx, cellIdx, total int) {
		if progressChan == nil || len(sheets) == 0 {
			return
		}
		p := float64(sheetIdx)
		if total > 0 {
			p += float64(cellIdx) / float64(total)
		}
		select {
		case progressChan <- p / float64(len(sheets)):
		default:
		}
	}

	for i, sheet := range sheets {
		cells, err := doc.Cells(sheet)
		if err != nil {
			return stats, &CellError{Sheet: sheet, Err: err}
		}

		for j, cell := range cells {
			stats.CellsScanned++

			changed, err := doc.Rewrite(sheet, cell, tr.Transliterate)
			if err != nil {
				return stats, &CellError{Sheet: sheet, Cell: cell.Ref, Err: err}
			}
			if changed {
				stats.CellsChanged++
			}

			if (j+1)%progressEvery == 0 {
				reportProgress(i, j+1, len(cells))
			}
		}

		stats.Sheets++
		reportProgress(i+1, 0, 0)
	}

	return stats, nil
}

// TransformFile transliterates inputFile and writes the result to
// outputFile. Nothing is written unless the whole document succeeds.
func TransformFile(inputFile, outputFile string, tr *Transliterator, progressChan chan<- float64) (*types.TransformResult, error) {
	doc, err := Open(inputFile)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	stats, err := TransformDocument(doc, tr, progressChan)
	if err != nil {
		return nil, err
	}

	if err := doc.Save(outputFile); err != nil {
		return nil, fmt.Errorf("write %s: %w", outputFile, err)
	}

	return &types.TransformResult{
		Success:      true,
		InputFile:    inputFile,
		OutputFile:   outputFile,
		Sheets:       stats.Sheets,
		CellsScanned: stats.CellsScanned,
		CellsChanged: stats.CellsChanged,
	}, nil
}

// Analyze counts every character at or above U+0080 in the string cells
// of doc. Results are ordered by descending count, ties by first
// appearance. doc is not modified.
func Analyze(doc Document, m types.CharacterMap) ([]types.CharacterReport, error) {
	counts := make(map[rune]int)
	var order []rune

	for _, sheet := range doc.Sheets() {
		cells, err := doc.Cells(sheet)
		if err != nil {
			return nil, &CellError{Sheet: sheet, Err: err}
		}
		for _, cell := range cells {
			if cell.Kind != types.CellString {
				continue
			}
			for i := 0; i < len(cell.Value); {
				r, size := utf8.DecodeRuneInString(cell.Value[i:])
				i += size
				// Invalid bytes are left alone by Transliterate, so they are
				// not reported either.
				if r < utf8.RuneSelf || (r == utf8.RuneError && size == 1) {
					continue
				}
				if counts[r] == 0 {
					order = append(order, r)
				}
				counts[r]++
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	reports := make([]types.CharacterReport, 0, len(order))
	for _, r := range order {
		rep, mapped := m[r]
		reports = append(reports, types.CharacterReport{
			Char:        string(r),
			Count:       counts[r],
			Code:        int(r),
			Hex:         fmt.Sprintf("0x%X", r),
			Name:        runenames.Name(r),
			Mapped:      mapped,
			Replacement: rep,
		})
	}
	return reports, nil
}

// AnalyzeFile opens path read-only and runs Analyze on it.
func AnalyzeFile(path string, m types.CharacterMap) ([]types.CharacterReport, error) {
	doc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return Analyze(doc, m)
}
