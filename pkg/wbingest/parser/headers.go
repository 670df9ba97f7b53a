package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
)

// unnamedPrefix names header cells that are blank.
const unnamedPrefix = "Unnamed: "

// HeaderTable reads a plain sheet: the first non-blank row is the header and
// every following non-blank row is data. Blank header cells are named
// "Unnamed: <column>".
func HeaderTable(g models.Grid) *models.Table {
	headerRow := -1
	for r := 0; r < g.Len(); r++ {
		if !g.RowBlank(r) {
			headerRow = r
			break
		}
	}
	if headerRow < 0 {
		return models.NewTable(nil)
	}

	width := usedWidth(g, headerRow, headerRow+1, g.Len())
	headers := make([]string, width)
	for c := 0; c < width; c++ {
		v := g.Cell(headerRow, c)
		if v.IsBlank() {
			headers[c] = unnamedPrefix + strconv.Itoa(c)
			continue
		}
		headers[c] = strings.TrimSpace(v.Text())
	}

	t := models.NewTable(headers)
	for r := headerRow + 1; r < g.Len(); r++ {
		if g.RowBlank(r) {
			continue
		}
		row := make([]models.Value, width)
		for c := 0; c < width; c++ {
			row[c] = g.Cell(r, c)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// IndexedHeaderTable reads a plain sheet like HeaderTable and promotes the
// first column to the row index, parsing its labels as timestamps where
// possible. Labels that do not parse are kept as they are.
func IndexedHeaderTable(g models.Grid) *models.Table {
	t := HeaderTable(g)
	if len(t.Columns) == 0 {
		t.Index = []models.Value{}
		return t
	}

	if name := t.Columns[0]; !strings.HasPrefix(name, unnamedPrefix) {
		t.IndexName = name
	}
	t.Index = make([]models.Value, len(t.Rows))
	for i, row := range t.Rows {
		label := row[0]
		if ts, ok := ParseTime(label); ok {
			label = models.TimeValue(ts)
		}
		t.Index[i] = label
		t.Rows[i] = row[1:]
	}
	t.Columns = t.Columns[1:]
	return t
}

// NormalizeColumnName lowercases a header and replaces spaces with underscores.
func NormalizeColumnName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// NormalizeColumns returns a copy of t with every column name normalized.
func NormalizeColumns(t *models.Table) *models.Table {
	out := t.Clone()
	for i, name := range out.Columns {
		out.Columns[i] = NormalizeColumnName(name)
	}
	return out
}
