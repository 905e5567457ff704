package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/yndnr/kvcli/internal/core/domain"
)

// Records is a record listing in the order the service returned it.
type Records []domain.Record

// Table lays the records out with a 1-based position column.
func (r Records) Table() *Table {
	t := &Table{Headers: []string{"#", "KEY", "VALUE"}}
	for i, rec := range r {
		t.AddRow(strconv.Itoa(i+1), rec.Key, strconv.Itoa(rec.Value))
	}
	return t
}

// Record is a single record.
type Record domain.Record

// Table lays the record out as one row.
func (r Record) Table() *Table {
	t := &Table{Headers: []string{"KEY", "VALUE"}}
	t.AddRow(r.Key, strconv.Itoa(r.Value))
	return t
}

// WriteNumbered prints the interactive listing: one "N. [Key: k, Value: v]"
// line per record, numbered from 1.
func WriteNumbered(w io.Writer, records []domain.Record) {
	for i, rec := range records {
		fmt.Fprintf(w, "%d. %s\n", i+1, rec)
	}
}

// Settings is a flat key/value view, such as the effective configuration.
type Settings map[string]any

// Table lays the settings out sorted by key.
func (s Settings) Table() *Table {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Table{Headers: []string{"KEY", "VALUE"}}
	for _, k := range keys {
		t.AddRow(k, fmt.Sprint(s[k]))
	}
	return t
}
