// Package listing renders records as the ordered title/value views used by
// the API and by CSV export.
package listing

import (
	"encoding/csv"
	"fmt"
	"io"
)

// NoDataNotice is shown in place of an empty table.
const NoDataNotice = "No data to show"

// View kinds.
const (
	KindEmpty  = "empty"
	KindRecord = "record"
	KindTable  = "table"
)

// Field is one titled value of a record. A nil Value renders as null.
type Field struct {
	Title string  `json:"title"`
	Value *string `json:"value"`
}

// Text builds a Field from a plain string.
func Text(title, value string) Field {
	return Field{Title: title, Value: &value}
}

// Optional builds a Field from a nullable column.
func Optional(title string, value *string) Field {
	return Field{Title: title, Value: value}
}

// Number builds a Field from an integer column.
func Number(title string, value int) Field {
	return Text(title, fmt.Sprintf("%d", value))
}

// Fielder is implemented by every record type.
type Fielder interface {
	Fields() []Field
}

// View is the presentation of zero, one or many records.
type View struct {
	Kind    string      `json:"kind"`
	Notice  string      `json:"notice,omitempty"`
	Fields  []Field     `json:"fields,omitempty"`
	Columns []string    `json:"columns,omitempty"`
	Rows    [][]*string `json:"rows,omitempty"`
}

// Render picks the view for rows: a notice when empty, a label/value listing
// for one record and a table otherwise.
func Render(rows [][]Field) View {
	switch len(rows) {
	case 0:
		return View{Kind: KindEmpty, Notice: NoDataNotice}
	case 1:
		return View{Kind: KindRecord, Fields: rows[0]}
	}

	return table(rows)
}

// RenderTable is Render for listings that stay tabular even with one row.
func RenderTable(rows [][]Field) View {
	if len(rows) == 0 {
		return View{Kind: KindEmpty, Notice: NoDataNotice}
	}
	return table(rows)
}

func table(rows [][]Field) View {
	view := View{Kind: KindTable, Columns: titles(rows[0])}
	for _, row := range rows {
		values := make([]*string, len(row))
		for i, f := range row {
			values[i] = f.Value
		}
		view.Rows = append(view.Rows, values)
	}
	return view
}

// Collect turns records into field rows.
func Collect[T Fielder](records []T) [][]Field {
	rows := make([][]Field, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Fields())
	}
	return rows
}

// WriteCSV writes rows with the field titles as header. Nothing but the
// header is written when header is given and rows is empty.
func WriteCSV(w io.Writer, header []Field, rows [][]Field) error {
	cw := csv.NewWriter(w)

	if len(rows) > 0 {
		header = rows[0]
	}
	if len(header) > 0 {
		if err := cw.Write(titles(header)); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
	}

	for _, row := range rows {
		record := make([]string, len(row))
		for i, f := range row {
			if f.Value != nil {
				record[i] = *f.Value
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func titles(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Title
	}
	return out
}
