package validate

import (
	"database/sql"
	"fmt"
	"time"
)

// TableFromSQL loads the result set of a query into a Record Table.
// Labs that keep phenotype or assessment data in SQL Server can validate
// straight from a query instead of exporting to CSV first.
func TableFromSQL(db *sql.DB, query string) (*Table, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	table, err := NewTable(cols)
	if err != nil {
		return nil, err
	}

	for rows.Next() {
		values := make([]interface{}, len(cols))
		pointers := make([]interface{}, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, val := range values {
			row[i] = sqlValue(val)
		}
		table.rows = append(table.rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// sqlValue maps a scanned driver value onto the cell union. Byte slices
// and strings go through the same cell typing as file input so a SQL
// export validates identically to its CSV counterpart.
func sqlValue(val interface{}) Value {
	switch v := val.(type) {
	case nil:
		return Null()
	case int64:
		return Int(v)
	case float64:
		return Float(v)
	case bool:
		if v {
			return Int(1)
		}
		return Int(0)
	case time.Time:
		return String(v.Format(dateLayout))
	case []byte:
		return ParseCell(string(v))
	case string:
		return ParseCell(v)
	default:
		return ParseCell(fmt.Sprintf("%v", v))
	}
}
