package parser

import "github.com/ukaji3/wbingest-go/pkg/wbingest/models"

// BlankBreak is a blank first-column cell inside a marker table with more
// rows after it before the next marker. ExtractTable without an end marker
// stops at such a cell and never reads those rows.
type BlankBreak struct {
	// Marker is the name of the table the break is in.
	Marker string `json:"marker"`
	// Row is the 0-based row of the blank cell.
	Row int `json:"row"`
	// Dropped is the number of non-blank rows after the break.
	Dropped int `json:"dropped"`
}

// BlankBreaks lists the blank breaks of every marker table in g.
func BlankBreaks(g models.Grid) []BlankBreak {
	var breaks []BlankBreak
	markers := FindMarkers(g)
	for i, m := range markers {
		next := nextMarkerRow(g, markers, i)
		dataStart := m.Row + 2
		if dataStart >= next {
			continue
		}
		end := findDataEnd(g, dataStart, "")
		if end >= next {
			continue
		}
		dropped := 0
		for r := end; r < next; r++ {
			if !g.RowBlank(r) {
				dropped++
			}
		}
		if dropped > 0 {
			breaks = append(breaks, BlankBreak{Marker: m.Name, Row: end, Dropped: dropped})
		}
	}
	return breaks
}
