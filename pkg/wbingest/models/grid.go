package models

// Grid is the raw, header-less content of one sheet. Every row has the same
// width; cells beyond the used range of a row are empty.
type Grid struct {
	// Sheet is the name of the sheet the grid was read from.
	Sheet string `json:"sheet"`
	// Rows holds the cells, top to bottom.
	Rows [][]Value `json:"rows"`
}

// NewGrid builds a rectangular grid, padding short rows with empty cells.
func NewGrid(sheet string, rows [][]Value) Grid {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		if len(row) < width {
			padded := make([]Value, width)
			copy(padded, row)
			rows[i] = padded
		}
	}
	return Grid{Sheet: sheet, Rows: rows}
}

// Len returns the number of rows.
func (g Grid) Len() int { return len(g.Rows) }

// Width returns the number of columns.
func (g Grid) Width() int {
	if len(g.Rows) == 0 {
		return 0
	}
	return len(g.Rows[0])
}

// Cell returns the value at row r, column c, or an empty value when out of range.
func (g Grid) Cell(r, c int) Value {
	if r < 0 || r >= len(g.Rows) || c < 0 || c >= len(g.Rows[r]) {
		return Value{}
	}
	return g.Rows[r][c]
}

// RowBlank reports whether every cell of row r is blank.
func (g Grid) RowBlank(r int) bool {
	if r < 0 || r >= len(g.Rows) {
		return true
	}
	for _, v := range g.Rows[r] {
		if !v.IsBlank() {
			return false
		}
	}
	return true
}

// Head returns a grid holding at most the first n rows.
func (g Grid) Head(n int) Grid {
	if n >= len(g.Rows) {
		return g
	}
	return Grid{Sheet: g.Sheet, Rows: g.Rows[:n]}
}
