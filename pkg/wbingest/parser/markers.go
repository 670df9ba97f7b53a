package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
)

// MarkerPrefix starts every marker cell.
const MarkerPrefix = "~"

// ErrMarkerNotFound indicates no first-column cell matches the start marker.
var ErrMarkerNotFound = errors.New("marker not found")

// ErrNoHeaderRow indicates a marker is the last row of its sheet.
var ErrNoHeaderRow = errors.New("no header row after marker")

// Marker is a marker cell found in the first column of a sheet.
type Marker struct {
	// Name is the marker text without the prefix.
	Name string `json:"name"`
	// Row is the 0-based row index of the marker cell.
	Row int `json:"row"`
}

// markerText returns the trimmed text of the first cell of row r when it is a text cell.
func markerText(g models.Grid, r int) (string, bool) {
	v := g.Cell(r, 0)
	if v.Kind() != models.KindString {
		return "", false
	}
	return strings.TrimSpace(v.Text()), true
}

// ExtractTable locates one table by its start marker. The row after the
// marker is the header and data runs until the end marker (when given and
// found after the first data row), otherwise until the first row whose first
// cell is blank, or the end of the sheet.
//
// Without an end marker a blank first cell always ends the table, so
// templates must not use blank first-column cells as spacers inside a table.
func ExtractTable(g models.Grid, startMarker, endMarker string) (*models.Table, error) {
	start := strings.TrimSpace(startMarker)
	markerRow := -1
	for r := 0; r < g.Len(); r++ {
		if text, ok := markerText(g, r); ok && text == start {
			markerRow = r
			break
		}
	}
	if markerRow < 0 {
		return nil, fmt.Errorf("%w: %q in sheet %q", ErrMarkerNotFound, startMarker, g.Sheet)
	}

	headerRow := markerRow + 1
	if headerRow >= g.Len() {
		return nil, fmt.Errorf("%w: %q in sheet %q", ErrNoHeaderRow, startMarker, g.Sheet)
	}
	dataStart := headerRow + 1
	dataEnd := findDataEnd(g, dataStart, strings.TrimSpace(endMarker))

	return buildTable(g, headerRow, dataStart, dataEnd), nil
}

func findDataEnd(g models.Grid, dataStart int, endMarker string) int {
	if endMarker != "" {
		for r := dataStart + 1; r < g.Len(); r++ {
			if text, ok := markerText(g, r); ok && text == endMarker {
				return r
			}
		}
		return g.Len()
	}
	for r := dataStart; r < g.Len(); r++ {
		if g.Cell(r, 0).IsBlank() {
			return r
		}
	}
	return g.Len()
}

// FindMarkers returns every first-column cell starting with the marker prefix, top to bottom.
func FindMarkers(g models.Grid) []Marker {
	var markers []Marker
	for r := 0; r < g.Len(); r++ {
		if text, ok := markerText(g, r); ok && strings.HasPrefix(text, MarkerPrefix) {
			markers = append(markers, Marker{Name: strings.TrimPrefix(text, MarkerPrefix), Row: r})
		}
	}
	return markers
}

// ExtractAllTables splits a sheet into the tables opened by its markers, in
// order of discovery. Each table's header is the row after its marker and
// its data runs up to the next marker or the end of the sheet, blank rows
// included. A marker with no name, or with no header row before the next
// marker or the end of the sheet, yields no table. A sheet without markers
// yields an empty set.
func ExtractAllTables(g models.Grid) *models.TableSet {
	tables := models.NewTableSet()
	markers := FindMarkers(g)
	for i, m := range markers {
		next := nextMarkerRow(g, markers, i)
		if m.Name == "" || m.Row+1 >= next {
			continue
		}
		headerRow := m.Row + 1
		tables.Set(m.Name, buildTable(g, headerRow, headerRow+1, next))
	}
	return tables
}

// SkippedMarkers returns the markers that ExtractAllTables yields no table for.
func SkippedMarkers(g models.Grid) []Marker {
	var skipped []Marker
	markers := FindMarkers(g)
	for i, m := range markers {
		if m.Name == "" || m.Row+1 >= nextMarkerRow(g, markers, i) {
			skipped = append(skipped, m)
		}
	}
	return skipped
}

func nextMarkerRow(g models.Grid, markers []Marker, i int) int {
	if i+1 < len(markers) {
		return markers[i+1].Row
	}
	return g.Len()
}

// buildTable copies rows [dataStart, dataEnd) under the header taken from
// headerRow. Trailing columns with a blank header and no data are trimmed.
func buildTable(g models.Grid, headerRow, dataStart, dataEnd int) *models.Table {
	width := usedWidth(g, headerRow, dataStart, dataEnd)
	headers := make([]string, width)
	for c := 0; c < width; c++ {
		headers[c] = g.Cell(headerRow, c).Text()
	}
	t := models.NewTable(headers)
	for r := dataStart; r < dataEnd; r++ {
		row := make([]models.Value, width)
		for c := 0; c < width; c++ {
			row[c] = g.Cell(r, c)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
