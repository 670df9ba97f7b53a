package parser

import (
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
)

// xlsCharset is used for sheets that do not declare their own code page.
const xlsCharset = "utf-8"

// xlsWorkbook reads legacy BIFF workbooks. The library renders every cell as
// text, so values are typed with parseValue.
type xlsWorkbook struct {
	wb     *xls.WorkBook
	name   string
	sheets []string
}

func openXLS(rs io.ReadSeeker, name string) (w *xlsWorkbook, err error) {
	// the BIFF decoder panics on some truncated streams
	defer func() {
		if r := recover(); r != nil {
			w, err = nil, fmt.Errorf("%w: %v", ErrInvalidFormat, r)
		}
	}()
	wb, err := xls.OpenReader(rs, xlsCharset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	w = &xlsWorkbook{wb: wb, name: name}
	for i := 0; i < wb.NumSheets(); i++ {
		if s := wb.GetSheet(i); s != nil {
			w.sheets = append(w.sheets, s.Name)
		}
	}
	return w, nil
}

func (w *xlsWorkbook) Name() string { return w.name }

func (w *xlsWorkbook) SheetNames() []string { return append([]string{}, w.sheets...) }

func (w *xlsWorkbook) HasSheet(sheet string) bool { return containsSheet(w.sheets, sheet) }

func (w *xlsWorkbook) ReadGrid(sheet string) (models.Grid, error) {
	return w.readRows(sheet, -1)
}

func (w *xlsWorkbook) PeekGrid(sheet string, n int) (models.Grid, error) {
	return w.readRows(sheet, n)
}

func (w *xlsWorkbook) readRows(sheet string, limit int) (models.Grid, error) {
	ws := w.sheet(sheet)
	if ws == nil {
		return models.Grid{}, sheetNotFound(sheet)
	}
	last := int(ws.MaxRow)
	if limit >= 0 && limit-1 < last {
		last = limit - 1
	}
	var out [][]models.Value
	for r := 0; r <= last; r++ {
		row := xlsRow(ws, r)
		if row == nil {
			out = append(out, nil)
			continue
		}
		values := make([]models.Value, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			values[c] = parseValue(row.Col(c))
		}
		out = append(out, values)
	}
	return models.NewGrid(sheet, trimTrailingBlankRows(out)), nil
}

// xlsRow returns row r, or nil when the sheet has no record for it. The
// library dereferences the missing row instead of returning nil.
func xlsRow(ws *xls.WorkSheet, r int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(r)
}

func (w *xlsWorkbook) sheet(name string) *xls.WorkSheet {
	for i := 0; i < w.wb.NumSheets(); i++ {
		if s := w.wb.GetSheet(i); s != nil && s.Name == name {
			return s
		}
	}
	return nil
}

// Close is a no-op: the whole stream is held in memory.
func (w *xlsWorkbook) Close() error { return nil }
