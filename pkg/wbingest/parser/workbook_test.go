package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
	"github.com/xuri/excelize/v2"
)

func TestOpenWorkbookReadGrid(t *testing.T) {
	day := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	path := saveWorkbook(t,
		testSheet{"main", [][]any{
			{"~Settings Table"},
			{"Setting", "Value"},
			{"Start_Year", 2019},
			{"Ratio", 0.5},
			{"Enabled", true},
			{"Stamp", day},
		}},
		testSheet{"Other", [][]any{{"x"}}},
	)

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, "test.xlsx", wb.Name())
	assert.Equal(t, []string{"main", "Other"}, wb.SheetNames())
	assert.True(t, wb.HasSheet("Other"))
	assert.False(t, wb.HasSheet("other"))

	g, err := wb.ReadGrid("main")
	require.NoError(t, err)
	require.Equal(t, 6, g.Len())
	assert.Equal(t, models.KindString, g.Cell(0, 0).Kind())
	assert.True(t, g.Cell(2, 1).Equal(models.NumberValue(2019)))
	assert.True(t, g.Cell(3, 1).Equal(models.NumberValue(0.5)))
	assert.True(t, g.Cell(4, 1).Equal(models.BoolValue(true)))
	got, ok := g.Cell(5, 1).Time()
	require.True(t, ok, "date styled cells are read as times, got %s", g.Cell(5, 1).Kind())
	assert.True(t, got.Equal(day))
	assert.True(t, g.Cell(0, 1).IsEmpty())
}

func TestPeekGrid(t *testing.T) {
	rows := [][]any{{"h"}}
	for i := 0; i < 20; i++ {
		rows = append(rows, []any{i})
	}
	wb, err := OpenWorkbook(saveWorkbook(t, testSheet{"Custom", rows}))
	require.NoError(t, err)
	defer wb.Close()

	g, err := wb.PeekGrid("Custom", 6)
	require.NoError(t, err)
	assert.Equal(t, 6, g.Len())
	assert.Equal(t, "h", g.Cell(0, 0).Text())

	_, err = wb.PeekGrid("Missing", 6)
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestReadGridMissingSheet(t *testing.T) {
	wb, err := OpenWorkbook(saveWorkbook(t, testSheet{"main", [][]any{{"x"}}}))
	require.NoError(t, err)
	defer wb.Close()

	_, err = wb.ReadGrid("Economic_Indicators")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestOpenWorkbookErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenWorkbook(filepath.Join(dir, "missing.xlsx"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	bad := filepath.Join(dir, "bad.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("not a workbook"), 0644))
	_, err = OpenWorkbook(bad)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	badXLS := filepath.Join(dir, "bad.xls")
	require.NoError(t, os.WriteFile(badXLS, []byte("not a workbook"), 0644))
	_, err = OpenWorkbook(badXLS)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestOpenWorkbookReader(t *testing.T) {
	data, err := os.ReadFile(saveWorkbook(t, testSheet{"main", [][]any{{"a", 1}}}))
	require.NoError(t, err)

	wb, err := OpenWorkbookReader(bytes.NewReader(data), "upload.xlsx")
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, "upload.xlsx", wb.Name())
	g, err := wb.ReadGrid("main")
	require.NoError(t, err)
	assert.True(t, g.Cell(0, 1).Equal(models.NumberValue(1)))
}

func TestOpenXLSWorkbook(t *testing.T) {
	wb, err := OpenWorkbook(filepath.Join("testdata", "demand.xls"))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, "demand.xls", wb.Name())
	assert.Equal(t, []string{"main", "Residential", "Commercial"}, wb.SheetNames())
	assert.True(t, wb.HasSheet("Commercial"))

	g, err := wb.ReadGrid("main")
	require.NoError(t, err)
	require.Equal(t, 10, g.Len())
	assert.Equal(t, 2, g.Width())
	assert.Equal(t, "~Settings Table", g.Cell(0, 0).Text())
	assert.True(t, g.Cell(2, 1).Equal(models.NumberValue(2019)), "numeric cells are typed")
	assert.Equal(t, models.KindString, g.Cell(4, 1).Kind())
	assert.True(t, g.RowBlank(5), "a row without records reads as blank")
	assert.Equal(t, "Commercial", g.Cell(9, 0).Text())

	res, err := wb.ReadGrid("Residential")
	require.NoError(t, err)
	assert.True(t, res.Cell(1, 1).Equal(models.NumberValue(100.5)))

	head, err := wb.PeekGrid("main", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, head.Len())
	assert.Equal(t, "Start_Year", head.Cell(2, 0).Text())

	_, err = wb.ReadGrid("Industrial")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestOpenXLSWorkbookReader(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "demand.xls"))
	require.NoError(t, err)

	wb, err := OpenWorkbookReader(bytes.NewReader(data), "upload.xls")
	require.NoError(t, err)
	defer wb.Close()

	g, err := wb.ReadGrid("Commercial")
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())
	assert.True(t, g.Cell(1, 1).Equal(models.NumberValue(50)))
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"yyyy-mm-dd", true},
		{"hh:mm", true},
		{"[h]:mm", true},
		{"m/d/yy h:mm", true},
		{"0.00", false},
		{"#,##0", false},
		{"General", false},
		{`0.0 "days"`, false},
		{"[Red]0.00", false},
		{`0\d`, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, isDateFormatCode(tt.code))
		})
	}
}

func TestCustomDateFormatCell(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	custom := "dd/mm/yyyy"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &custom})
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Sheet1", "A1", 44927))
	require.NoError(t, f.SetCellStyle("Sheet1", "A1", "A1", style))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", 44927))

	path := filepath.Join(t.TempDir(), "dates.xlsx")
	require.NoError(t, f.SaveAs(path))

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()

	g, err := wb.ReadGrid("Sheet1")
	require.NoError(t, err)
	got, ok := g.Cell(0, 0).Time()
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, g.Cell(0, 1).Equal(models.NumberValue(44927)), "unstyled numbers stay numbers")
}
