package parser

import (
	"fmt"

	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
	"github.com/xuri/excelize/v2"
)

// SheetStats describes the populated area of a sheet.
type SheetStats struct {
	// Range is the A1-style range of non-blank cells (e.g., "A1:D10"), empty for a blank sheet.
	Range string `json:"range,omitempty"`
	// NonEmptyCells is the number of non-blank cells.
	NonEmptyCells int `json:"non_empty_cells"`
	// Density is NonEmptyCells divided by the area of Range.
	Density float64 `json:"density"`
}

// DescribeGrid computes the populated area of a grid.
func DescribeGrid(g models.Grid) SheetStats {
	minRow, maxRow, minCol, maxCol := findDataBounds(g)
	if minRow < 0 {
		return SheetStats{}
	}

	nonEmpty := countNonEmptyCells(g, minRow, maxRow, minCol, maxCol)
	total := (maxRow - minRow + 1) * (maxCol - minCol + 1)

	// Convert to Excel range notation
	startCell, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)

	return SheetStats{
		Range:         fmt.Sprintf("%s:%s", startCell, endCell),
		NonEmptyCells: nonEmpty,
		Density:       float64(nonEmpty) / float64(total),
	}
}

// findDataBounds finds the bounding box of non-blank cells.
func findDataBounds(g models.Grid) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range g.Rows {
		for colIdx, cell := range row {
			if cell.IsBlank() {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// countNonEmptyCells counts non-blank cells within bounds.
func countNonEmptyCells(g models.Grid, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for r := minRow; r <= maxRow && r < g.Len(); r++ {
		for c := minCol; c <= maxCol; c++ {
			if !g.Cell(r, c).IsBlank() {
				count++
			}
		}
	}
	return count
}

// usedWidth returns the number of leading columns that hold a non-blank cell
// in headerRow or in rows [from, to).
func usedWidth(g models.Grid, headerRow, from, to int) int {
	width := lastNonBlank(g, headerRow) + 1
	for r := from; r < to && r < g.Len(); r++ {
		if w := lastNonBlank(g, r) + 1; w > width {
			width = w
		}
	}
	return width
}

func lastNonBlank(g models.Grid, r int) int {
	if r < 0 || r >= g.Len() {
		return -1
	}
	row := g.Rows[r]
	for c := len(row) - 1; c >= 0; c-- {
		if !row[c].IsBlank() {
			return c
		}
	}
	return -1
}
