// Package dataset loads the locally cached JSON record collections and
// normalizes them into a uniform tabular shape: one designated nested object
// per record is flattened into prefixed columns, a canonical "date" column is
// derived from a configurable source field, and scalar-or-list fields are
// rewritten into plain string slices. Datasets are immutable once built, so
// they can be read concurrently without locking.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Row is a single normalized record. Values are plain decoded JSON values,
// except for the derived "date" entry which holds a time.Time, and
// multi-value fields which hold []string.
type Row map[string]any

// Options controls how a raw record collection is normalized.
type Options struct {
	// DateField names the source field the canonical "date" column is parsed
	// from. Absent or unparseable values leave the row without a date; they
	// are never an error.
	DateField string
	// NestedField, if set, names an object-valued field whose keys are
	// expanded into sibling columns prefixed with "<NestedField>_". The
	// container field itself is dropped.
	NestedField string
	// MultiValueFields names fields that may hold either a bare scalar or a
	// list. They are rewritten to []string at load time so filter sites never
	// have to branch on the underlying shape.
	MultiValueFields []string
}

// Dataset is a read-only table of normalized rows. Row order matches the
// source collection; there is no sorting and no deduplication.
type Dataset struct {
	rows []Row
}

// Load reads a JSON file containing an ordered array of record objects and
// normalizes it. A missing file or malformed JSON is returned as an error;
// callers treat both as fatal since no query can be served without its data.
func Load(path string, opts Options) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var records []Row
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	return FromRecords(records, opts), nil
}

// FromRecords normalizes an already-decoded record collection. The input
// slice is not retained; every row is copied before being reshaped.
func FromRecords(records []Row, opts Options) *Dataset {
	rows := make([]Row, len(records))
	for i, rec := range records {
		row := make(Row, len(rec)+4)
		for k, v := range rec {
			row[k] = v
		}

		if opts.NestedField != "" {
			if nested, ok := row[opts.NestedField].(map[string]any); ok {
				for k, v := range nested {
					row[opts.NestedField+"_"+k] = v
				}
			}
			// The container is dropped even when it was not an object; rows
			// without it simply lack the expanded keys, which reads as null.
			delete(row, opts.NestedField)
		}

		for _, field := range opts.MultiValueFields {
			if v, ok := row[field]; ok && v != nil {
				row[field] = toStrings(v)
			}
		}

		if t, ok := parseTime(row[opts.DateField]); ok {
			row["date"] = t
		} else {
			delete(row, "date")
		}

		rows[i] = row
	}
	return &Dataset{rows: rows}
}

// Len returns the number of rows, including rows without a valid date.
func (d *Dataset) Len() int { return len(d.rows) }

// Row returns the i-th row. The returned map is shared with the dataset and
// must not be mutated.
func (d *Dataset) Row(i int) Row { return d.rows[i] }

// Date returns the derived date of the i-th row, if one could be parsed.
func (d *Dataset) Date(i int) (time.Time, bool) {
	t, ok := d.rows[i]["date"].(time.Time)
	return t, ok
}

// Str returns a string-valued cell.
func (d *Dataset) Str(i int, col string) (string, bool) {
	s, ok := d.rows[i][col].(string)
	return s, ok
}

// Num returns a numeric cell. JSON numbers decode to float64.
func (d *Dataset) Num(i int, col string) (float64, bool) {
	switch v := d.rows[i][col].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// Strings returns a multi-value cell. Fields not named in
// Options.MultiValueFields are still wrapped on the fly, so callers get a
// uniform set-like sequence either way. Absent fields yield nil.
func (d *Dataset) Strings(i int, col string) []string {
	v, ok := d.rows[i][col]
	if !ok || v == nil {
		return nil
	}
	if s, ok := v.([]string); ok {
		return s
	}
	return toStrings(v)
}

// Columns returns the sorted union of column names across all rows.
func (d *Dataset) Columns() []string {
	seen := make(map[string]bool)
	for _, row := range d.rows {
		for k := range row {
			seen[k] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

func toStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	case string:
		return []string{vv}
	default:
		return []string{fmt.Sprint(vv)}
	}
}

// dateLayouts are tried in order. The upstream collections mix full RFC3339
// timestamps with bare dates, so parsing stays permissive.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
