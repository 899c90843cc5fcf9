package models

// Table is the content of one worksheet: a header row and the data rows below it.
type Table struct {
	Sheet   string     // Sheet is the worksheet name.
	Columns []string   // Columns holds the header cells in sheet order.
	Rows    [][]string // Rows holds data rows; a row may be shorter than Columns.
}

// ColumnIndex returns the position of the named column or -1.
// Lookup is exact: detection is where case is ignored.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}

	return -1
}

// Cell returns the value of column col in row, treating cells past the end of
// a ragged row as empty.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}

	return row[col]
}
