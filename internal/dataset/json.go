package dataset

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// splitDoc is the column-oriented layout: {"columns": [...], "data": [[...], ...]}.
type splitDoc struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

// LoadJSON reads a JSON dataset. Two layouts are accepted: a split document
// ({"columns": [...], "data": [[...]]}) which keeps column order, and an
// array of flat objects whose columns are ordered by name.
func LoadJSON(path string, opt Options) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	return ParseJSON(b, opt)
}

// ParseJSON decodes a JSON dataset held in memory.
func ParseJSON(b []byte, opt Options) (*Table, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return New()
	}
	if trimmed[0] == '{' {
		var doc splitDoc
		if err := gojson.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		rows := make([][]string, 0, len(doc.Data))
		for i, raw := range doc.Data {
			if len(raw) > len(doc.Columns) {
				return nil, fmt.Errorf("row %d has %d cells, want at most %d", i+1, len(raw), len(doc.Columns))
			}
			rows = append(rows, cellsToText(raw))
		}
		return FromRecords(doc.Columns, limitRows(rows, opt.MaxRows), opt)
	}

	var recs []map[string]any
	if err := gojson.Unmarshal(trimmed, &recs); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	seen := map[string]struct{}{}
	var header []string
	for _, r := range recs {
		for k := range r {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				header = append(header, k)
			}
		}
	}
	sort.Strings(header)
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		row := make([]any, len(header))
		for j, h := range header {
			row[j] = r[h]
		}
		rows = append(rows, cellsToText(row))
	}
	return FromRecords(header, limitRows(rows, opt.MaxRows), opt)
}

func cellsToText(raw []any) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		switch x := v.(type) {
		case nil:
			out[i] = ""
		case string:
			out[i] = x
		case float64:
			out[i] = strconv.FormatFloat(x, 'g', -1, 64)
		case bool:
			out[i] = strconv.FormatBool(x)
		default:
			out[i] = fmt.Sprint(x)
		}
	}
	return out
}

func limitRows(rows [][]string, max int) [][]string {
	if max > 0 && len(rows) > max {
		return rows[:max]
	}
	return rows
}
