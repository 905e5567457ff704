package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yndnr/kvcli/internal/core/domain"
)

func TestTableFormatter_Table(t *testing.T) {
	table := &Table{
		Headers: []string{"NAME", "VALUE"},
		Rows: [][]string{
			{"key1", "value1"},
			{"key2", "value2"},
		},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.HasPrefix(lines[1], "key1") {
		t.Errorf("output = %q", buf.String())
	}

	// Columns are aligned.
	if strings.Index(lines[0], "VALUE") != strings.Index(lines[1], "value1") {
		t.Errorf("columns not aligned:\n%s", buf.String())
	}
}

func TestTableFormatter_NoHeaders(t *testing.T) {
	table := Table{Headers: []string{"NAME"}, Rows: [][]string{{"key1"}}}

	var buf bytes.Buffer
	if err := (&TableFormatter{NoHeaders: true}).Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(buf.String(), "NAME") {
		t.Error("headers should be omitted")
	}
	if !strings.Contains(buf.String(), "key1") {
		t.Error("row missing")
	}
}

func TestTableFormatter_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, 42); err == nil {
		t.Error("expected error for non-tabular data")
	}
	if err := (&TableFormatter{}).Format(&buf, nil); err != nil {
		t.Errorf("Format(nil) error = %v", err)
	}
}

func TestRecords_Table(t *testing.T) {
	recs := Records{{Key: "zeta", Value: 1}, {Key: "alpha", Value: 22}}

	var buf bytes.Buffer
	if err := Write(&buf, FormatTable, recs); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if fields := strings.Fields(lines[1]); strings.Join(fields, " ") != "1 zeta 1" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if fields := strings.Fields(lines[2]); strings.Join(fields, " ") != "2 alpha 22" {
		t.Errorf("row 2 = %q, order must be preserved", lines[2])
	}
}

func TestRecord_Table(t *testing.T) {
	table := Record{Key: "score", Value: 123}.Table()
	if len(table.Rows) != 1 || table.Rows[0][0] != "score" || table.Rows[0][1] != "123" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestWriteNumbered(t *testing.T) {
	var buf bytes.Buffer
	WriteNumbered(&buf, []domain.Record{{Key: "b", Value: 2}, {Key: "a", Value: 1}})

	want := "1. [Key: b, Value: 2]\n2. [Key: a, Value: 1]\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestTable_AddRowAndHeaders(t *testing.T) {
	table := &Table{}
	table.SetHeaders("A", "B")
	table.AddRow("1", "2")

	if len(table.Headers) != 2 || len(table.Rows) != 1 {
		t.Errorf("table = %+v", table)
	}
}

func TestSettings_Table(t *testing.T) {
	table := Settings{"server": "http://x", "http.timeout": "10s", "records.max_key_length": 13}.Table()

	if len(table.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(table.Rows))
	}
	if table.Rows[0][0] != "http.timeout" || table.Rows[2][0] != "server" {
		t.Errorf("rows not sorted: %v", table.Rows)
	}
	if table.Rows[1][1] != "13" {
		t.Errorf("value = %q, want 13", table.Rows[1][1])
	}
}
