package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
	"github.com/xuri/excelize/v2"
)

// builtinDateFormats are the built-in number format ids that render dates or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

type xlsxWorkbook struct {
	f    *excelize.File
	name string
	// dateStyles caches whether a style id formats its cell as a date.
	dateStyles map[int]bool
}

func openXLSXFile(path, name string) (*xlsxWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return newXLSXWorkbook(f, name), nil
}

func openXLSXReader(r io.Reader, name string) (*xlsxWorkbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return newXLSXWorkbook(f, name), nil
}

func newXLSXWorkbook(f *excelize.File, name string) *xlsxWorkbook {
	return &xlsxWorkbook{f: f, name: name, dateStyles: make(map[int]bool)}
}

func (w *xlsxWorkbook) Name() string { return w.name }

func (w *xlsxWorkbook) SheetNames() []string { return w.f.GetSheetList() }

func (w *xlsxWorkbook) HasSheet(sheet string) bool {
	return containsSheet(w.f.GetSheetList(), sheet)
}

func (w *xlsxWorkbook) ReadGrid(sheet string) (models.Grid, error) {
	if !w.HasSheet(sheet) {
		return models.Grid{}, sheetNotFound(sheet)
	}
	rows, err := w.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Grid{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	out := make([][]models.Value, len(rows))
	for r, row := range rows {
		out[r] = w.typedRow(sheet, r, row)
	}
	return models.NewGrid(sheet, out), nil
}

func (w *xlsxWorkbook) PeekGrid(sheet string, n int) (models.Grid, error) {
	if !w.HasSheet(sheet) {
		return models.Grid{}, sheetNotFound(sheet)
	}
	rows, err := w.f.Rows(sheet)
	if err != nil {
		return models.Grid{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	var out [][]models.Value
	for r := 0; r < n && rows.Next(); r++ {
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return models.Grid{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		out = append(out, w.typedRow(sheet, r, cols))
	}
	return models.NewGrid(sheet, out), nil
}

func (w *xlsxWorkbook) Close() error { return w.f.Close() }

func (w *xlsxWorkbook) typedRow(sheet string, r int, row []string) []models.Value {
	values := make([]models.Value, len(row))
	for c, raw := range row {
		if raw == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(c+1, r+1)
		if err != nil {
			values[c] = parseValue(raw)
			continue
		}
		values[c] = w.typedValue(sheet, cell, raw)
	}
	return values
}

// typedValue turns the raw text of a cell into a typed value using the cell
// type and, for numbers, the number format of its style.
func (w *xlsxWorkbook) typedValue(sheet, cell, raw string) models.Value {
	typ, err := w.f.GetCellType(sheet, cell)
	if err != nil {
		return parseValue(raw)
	}
	switch typ {
	case excelize.CellTypeBool:
		return models.BoolValue(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeDate:
		if t, ok := parseDateTimeText(raw); ok {
			return models.TimeValue(t)
		}
		return models.TextValue(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return models.TextValue(raw)
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.TextValue(raw)
	}
	if w.isDateStyled(sheet, cell) {
		if t, err := excelize.ExcelDateToTime(n, false); err == nil {
			return models.TimeValue(t.Round(time.Second))
		}
	}
	return models.NumberValue(n)
}

func (w *xlsxWorkbook) isDateStyled(sheet, cell string) bool {
	id, err := w.f.GetCellStyle(sheet, cell)
	if err != nil || id == 0 {
		return false
	}
	if isDate, ok := w.dateStyles[id]; ok {
		return isDate
	}
	isDate := false
	if style, err := w.f.GetStyle(id); err == nil && style != nil {
		isDate = builtinDateFormats[style.NumFmt]
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	w.dateStyles[id] = isDate
	return isDate
}

// isDateFormatCode reports whether a custom number format renders a date or
// time. Quoted literals, escaped characters and bracketed sections such as
// colors and locales are ignored.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
			}
			// elapsed time sections such as [h] or [mm]
			if ch == 'h' || ch == 'H' || ch == 's' || ch == 'S' {
				b.WriteByte('h')
			}
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		default:
			b.WriteByte(ch)
		}
	}
	stripped := strings.ToLower(b.String())
	if stripped == "general" {
		return false
	}
	return strings.ContainsAny(stripped, "ydhs")
}
