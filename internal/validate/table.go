package validate

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Kind tags the scalar type of a table cell.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
)

// Value is a single table cell: a tagged union over string, int,
// float and null/missing.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
}

// Row holds the cells of one record in column order.
type Row []Value

// Table is an in-memory tabular record set: ordered column names plus
// row-major typed values. Column lookup goes through an index map built
// once when the table is created.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

func Null() Value           { return Value{Kind: KindNull} }
func String(s string) Value { return Value{Kind: KindString, Str: s} }
func Int(i int64) Value     { return Value{Kind: KindInt, Int: i} }
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// Render returns the cell as it would appear in the source file.
func (v Value) Render() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return v.Str
	}
}

// AsFloat converts numeric cells to float64. Strings are not coerced.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// ParseCell types a raw cell the way the readers do: empty means null,
// then integer, then float, then plain string.
func ParseCell(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f)
	}
	return String(s)
}

// NewTable builds an empty table with the given header.
func NewTable(columns []string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		name := strings.TrimSpace(col)
		if name == "" {
			return nil, fmt.Errorf("empty column name at position %d", i+1)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column name: %s", name)
		}
		index[name] = i
	}
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = strings.TrimSpace(c)
	}
	return &Table{columns: cols, index: index}, nil
}

// AppendRow adds one record. Short rows are padded with nulls so every
// row shares the header's column set.
func (t *Table) AppendRow(cells []string) {
	row := make(Row, len(t.columns))
	for i := range t.columns {
		if i < len(cells) {
			row[i] = ParseCell(cells[i])
		} else {
			row[i] = Null()
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) Columns() []string { return t.columns }
func (t *Table) NumRows() int      { return len(t.rows) }

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Value returns the cell at (rowIdx, column). Unknown columns read as null.
func (t *Table) Value(rowIdx int, column string) Value {
	i, ok := t.index[column]
	if !ok {
		return Null()
	}
	return t.rows[rowIdx][i]
}

// MissingColumns reports which of the required columns are absent,
// preserving the required order.
func (t *Table) MissingColumns(required []string) []string {
	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// ReadCSV loads a delimited-text file into a table. The first record is
// the header.
func ReadCSV(filePath string) (*Table, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return tableFromRecords(records)
}

// ReadXLSX loads the first sheet of a spreadsheet file into a table.
func ReadXLSX(filePath string) (*Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no sheets in spreadsheet")
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return tableFromRecords(records)
}

// ReadTable picks the reader from the file extension.
func ReadTable(filePath string) (*Table, error) {
	if strings.EqualFold(fileExt(filePath), ".xlsx") {
		return ReadXLSX(filePath)
	}
	return ReadCSV(filePath)
}

func tableFromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	t, err := NewTable(records[0])
	if err != nil {
		return nil, err
	}
	for _, rec := range records[1:] {
		t.AppendRow(rec)
	}
	return t, nil
}
