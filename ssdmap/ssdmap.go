// Package ssdmap parses externally supplied SSD specification files into the
// folderOID→formOIDs reference mapping the diff engine consumes. Supported
// sources: a JSON object keyed by folder, a JSON row list, CSV, and XLSX.
// Form OIDs are uppercased, deduplicated and sorted on the way in.
package ssdmap

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row-based sources resolve columns case-insensitively in this order. SSD
// exports often label the form column just "OID".
var (
	folderCols = []string{"folderoid", "folder oid"}
	formCols   = []string{"oid", "formoid", "form oid"}
)

// Parse decodes an SSD upload by file extension.
func Parse(content []byte, filename string) (map[string][]string, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".json"):
		return parseJSON(content)
	case strings.HasSuffix(name, ".csv"):
		return parseCSV(content)
	case strings.HasSuffix(name, ".xlsx"), strings.HasSuffix(name, ".xls"):
		return parseXLSX(content)
	}
	return nil, fmt.Errorf("unsupported SSD file format %q; use JSON, CSV, or XLSX", filename)
}

func parseJSON(content []byte) (map[string][]string, error) {
	var raw any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	switch v := raw.(type) {
	case map[string]any:
		out := make(map[string][]string)
		for folder, value := range v {
			list, ok := value.([]any)
			if !ok {
				continue
			}
			set := make(map[string]struct{})
			for _, item := range list {
				if form := strings.ToUpper(strings.TrimSpace(fmt.Sprint(item))); form != "" {
					set[form] = struct{}{}
				}
			}
			out[folder] = sortedKeys(set)
		}
		return out, nil
	case []any:
		return fromRecords(v)
	}
	return nil, fmt.Errorf("unsupported JSON structure for SSD")
}

// fromRecords handles a JSON list of row objects.
func fromRecords(records []any) (map[string][]string, error) {
	seen := make(map[string]map[string]struct{})
	for _, r := range records {
		record, ok := r.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid JSON rows: expected objects, got %T", r)
		}
		folder := pickField(record, folderCols)
		form := pickField(record, formCols)
		addPair(seen, folder, form)
	}
	return collapse(seen), nil
}

func parseCSV(content []byte) (map[string][]string, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(records) == 0 {
		return map[string][]string{}, nil
	}
	return fromRows(records[0], records[1:]), nil
}

func parseXLSX(content []byte) (map[string][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("invalid Excel file: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return map[string][]string{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	// Tolerate decorative blank rows above the header.
	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return map[string][]string{}, nil
	}
	return fromRows(rows[0], rows[1:]), nil
}

// fromRows builds the mapping from a header row plus data rows. Missing
// folder or form columns yield an empty mapping, matching the tolerant
// metadata handling of the extraction engine.
func fromRows(headers []string, rows [][]string) map[string][]string {
	folderIdx := findColumn(headers, folderCols)
	formIdx := findColumn(headers, formCols)
	if folderIdx < 0 || formIdx < 0 {
		return map[string][]string{}
	}
	seen := make(map[string]map[string]struct{})
	for _, row := range rows {
		addPair(seen, cellAt(row, folderIdx), cellAt(row, formIdx))
	}
	return collapse(seen)
}

func addPair(seen map[string]map[string]struct{}, folder, form string) {
	folder = strings.ToUpper(strings.TrimSpace(folder))
	form = strings.ToUpper(strings.TrimSpace(form))
	if folder == "" || form == "" {
		return
	}
	if seen[folder] == nil {
		seen[folder] = make(map[string]struct{})
	}
	seen[folder][form] = struct{}{}
}

func collapse(seen map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(seen))
	for folder, forms := range seen {
		out[folder] = sortedKeys(forms)
	}
	return out
}

func pickField(record map[string]any, candidates []string) string {
	for _, c := range candidates {
		for key, value := range record {
			if strings.ToLower(strings.TrimSpace(key)) == c {
				return fmt.Sprint(value)
			}
		}
	}
	return ""
}

// findColumn resolves a header index by candidate priority, first candidate
// that matches wins.
func findColumn(headers, candidates []string) int {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}
	for _, c := range candidates {
		for i, h := range lowered {
			if h == c {
				return i
			}
		}
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
