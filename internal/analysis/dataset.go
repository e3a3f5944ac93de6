package analysis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyDataset is returned when a record set has no rows.
var ErrEmptyDataset = errors.New("record set contains no rows")

// MissingColumnError signals that an aggregation needed a column the
// dataset does not carry. Upstream validation should make this
// unreachable, but the extractors stay defensive.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing aggregation input: column %q", e.Column)
}

// Dataset is a column-oriented view over one business's monthly records
// for a single reporting year. Upstream file parsing (CSV/XLSX) is out
// of scope; the engine receives already-decoded rows.
type Dataset struct {
	n       int
	order   []string
	columns map[string][]any
}

// NewDataset builds a Dataset from row-major decoded records. Columns
// are the union of keys across rows; a key absent from a row holds nil
// for that row.
func NewDataset(rows []map[string]any) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	d := &Dataset{
		n:       len(rows),
		columns: make(map[string][]any),
	}
	for i, row := range rows {
		for key, value := range row {
			col, ok := d.columns[key]
			if !ok {
				col = make([]any, len(rows))
				d.columns[key] = col
				d.order = append(d.order, key)
			}
			col[i] = value
		}
	}
	return d, nil
}

// Len returns the number of records in the set.
func (d *Dataset) Len() int { return d.n }

// HasColumn reports whether the named column is present.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.columns[name]
	return ok
}

// Columns returns the column names in first-seen order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Sum aggregates a numeric column across the whole record set.
func (d *Dataset) Sum(name string) (float64, error) {
	col, ok := d.columns[name]
	if !ok {
		return 0, &MissingColumnError{Column: name}
	}
	var total float64
	for i, v := range col {
		f, err := toFloat(v)
		if err != nil {
			return 0, fmt.Errorf("column %q row %d: %w", name, i, err)
		}
		total += f
	}
	return total, nil
}

// Mean returns the arithmetic mean of a numeric column.
func (d *Dataset) Mean(name string) (float64, error) {
	total, err := d.Sum(name)
	if err != nil {
		return 0, err
	}
	return total / float64(d.n), nil
}

// Mode returns the most frequent value of a categorical column. Ties
// are broken by first appearance in record order, so identical inputs
// always produce identical output.
func (d *Dataset) Mode(name string) (string, error) {
	col, ok := d.columns[name]
	if !ok {
		return "", &MissingColumnError{Column: name}
	}

	counts := make(map[string]int)
	var first []string
	for _, v := range col {
		s := toString(v)
		if counts[s] == 0 {
			first = append(first, s)
		}
		counts[s]++
	}

	best := first[0]
	for _, s := range first[1:] {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best, nil
}

// FirstInt returns the first row's value of a numeric column as an int.
// Used to derive the reporting year from a record set.
func (d *Dataset) FirstInt(name string) (int, error) {
	col, ok := d.columns[name]
	if !ok {
		return 0, &MissingColumnError{Column: name}
	}
	f, err := toFloat(col[0])
	if err != nil {
		return 0, fmt.Errorf("column %q row 0: %w", name, err)
	}
	return int(f), nil
}

// DistinctInts returns the distinct values of a numeric column in first
// appearance order. Used to detect record sets spanning multiple years.
func (d *Dataset) DistinctInts(name string) ([]int, error) {
	col, ok := d.columns[name]
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}
	seen := make(map[int]bool)
	var out []int
	for i, v := range col {
		f, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
		}
		n := int(f)
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("not numeric: %q", x)
		}
		return f, nil
	case nil:
		return 0, errors.New("not numeric: empty cell")
	default:
		return 0, fmt.Errorf("not numeric: %T", v)
	}
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}
