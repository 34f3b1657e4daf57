package converter

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
)

const relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"

type xmlRelationships struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xmlWorkbook struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sheets>sheet"`
}

var (
	cellStartTag = regexp.MustCompile(`<c\s[^>]*>`)
	cellRefAttr  = regexp.MustCompile(`\sr="([^"]+)"`)
)

// patchCachedValues sets the <v> text of formula cells in a saved
// workbook package. values is keyed by sheet name then cell reference.
// Only cells stored with t="str" are touched; the formula is left as is.
func patchCachedValues(pkg []byte, values map[string]map[string]string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		return nil, err
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	sheetParts, err := worksheetParts(parts)
	if err != nil {
		return nil, err
	}

	patched := make(map[string][]byte)
	for sheet, cells := range values {
		name, ok := sheetParts[sheet]
		if !ok {
			return nil, fmt.Errorf("worksheet part for %q not found", sheet)
		}
		data, err := readPart(parts, name)
		if err != nil {
			return nil, err
		}
		patched[name] = patchSheetXML(data, cells)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range zr.File {
		data, ok := patched[f.Name]
		if !ok {
			if err := zw.Copy(f); err != nil {
				return nil, err
			}
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// worksheetParts maps sheet names to their part names, following the
// package and workbook relationships.
func worksheetParts(parts map[string]*zip.File) (map[string]string, error) {
	var rootRels xmlRelationships
	if err := decodePart(parts, "_rels/.rels", &rootRels); err != nil {
		return nil, err
	}

	workbookPath := "xl/workbook.xml"
	for _, rel := range rootRels.Relationships {
		if rel.Type == relTypeOfficeDocument {
			workbookPath = strings.TrimPrefix(rel.Target, "/")
			break
		}
	}

	var wb xmlWorkbook
	if err := decodePart(parts, workbookPath, &wb); err != nil {
		return nil, err
	}

	dir := path.Dir(workbookPath)
	var wbRels xmlRelationships
	if err := decodePart(parts, path.Join(dir, "_rels", path.Base(workbookPath)+".rels"), &wbRels); err != nil {
		return nil, err
	}

	targets := make(map[string]string, len(wbRels.Relationships))
	for _, rel := range wbRels.Relationships {
		if strings.HasPrefix(rel.Target, "/") {
			targets[rel.ID] = strings.TrimPrefix(rel.Target, "/")
		} else {
			targets[rel.ID] = path.Join(dir, rel.Target)
		}
	}

	out := make(map[string]string, len(wb.Sheets))
	for _, s := range wb.Sheets {
		if target, ok := targets[s.RID]; ok {
			out[s.Name] = target
		}
	}
	return out, nil
}

// patchSheetXML replaces the <v> content of the listed t="str" cells.
func patchSheetXML(data []byte, values map[string]string) []byte {
	var out bytes.Buffer
	out.Grow(len(data))
	last := 0

	for _, loc := range cellStartTag.FindAllIndex(data, -1) {
		tag := data[loc[0]:loc[1]]
		if bytes.HasSuffix(tag, []byte("/>")) || !bytes.Contains(tag, []byte(`t="str"`)) {
			continue
		}
		m := cellRefAttr.FindSubmatch(tag)
		if m == nil {
			continue
		}
		value, ok := values[string(m[1])]
		if !ok {
			continue
		}

		end := bytes.Index(data[loc[1]:], []byte("</c>"))
		if end < 0 {
			continue
		}
		body := data[loc[1] : loc[1]+end]
		vStart := bytes.Index(body, []byte("<v>"))
		vEnd := bytes.Index(body, []byte("</v>"))
		if vStart < 0 || vEnd < vStart {
			continue
		}

		out.Write(data[last : loc[1]+vStart+len("<v>")])
		xml.EscapeText(&out, []byte(value))
		last = loc[1] + vEnd
	}

	out.Write(data[last:])
	return out.Bytes()
}

func readPart(parts map[string]*zip.File, name string) ([]byte, error) {
	f, ok := parts[name]
	if !ok {
		return nil, fmt.Errorf("package part %s not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func decodePart(parts map[string]*zip.File, name string, v any) error {
	data, err := readPart(parts, name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
