package extract

// Table is an in-memory delimited dataset: ordered columns and rows of
// trimmed string cells. It is the shape handed verbatim to the bronze
// layer; no typing or business rules are applied yet.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of a column, or -1 when absent.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value of a named column in a row, or "" when the column
// does not exist.
func (t Table) Cell(row int, column string) string {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][idx]
}

// Concat merges tables into one, keeping the first table's column order and
// appending columns the later files introduce. Rows from files that lack a
// column get an empty cell for it.
func Concat(tables ...Table) Table {
	var merged Table
	seen := make(map[string]int)

	for _, t := range tables {
		for _, c := range t.Columns {
			if _, ok := seen[c]; !ok {
				seen[c] = len(merged.Columns)
				merged.Columns = append(merged.Columns, c)
			}
		}
	}

	for _, t := range tables {
		for _, row := range t.Rows {
			out := make([]string, len(merged.Columns))
			for i, c := range t.Columns {
				out[seen[c]] = row[i]
			}
			merged.Rows = append(merged.Rows, out)
		}
	}

	return merged
}
