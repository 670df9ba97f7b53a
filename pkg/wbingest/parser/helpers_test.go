package parser

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
	"github.com/xuri/excelize/v2"
)

// valueComparer lets cmp compare models.Value, which has unexported fields.
var valueComparer = cmp.Comparer(func(a, b models.Value) bool { return a.Equal(b) })

// toValue converts a literal test cell to a Value.
func toValue(x any) models.Value {
	switch v := x.(type) {
	case nil:
		return models.Empty()
	case models.Value:
		return v
	case string:
		if v == "" {
			return models.Empty()
		}
		return models.TextValue(v)
	case int:
		return models.NumberValue(float64(v))
	case float64:
		return models.NumberValue(v)
	case bool:
		return models.BoolValue(v)
	case time.Time:
		return models.TimeValue(v)
	default:
		panic(fmt.Sprintf("unsupported test cell %T", x))
	}
}

func values(xs ...any) []models.Value {
	out := make([]models.Value, len(xs))
	for i, x := range xs {
		out[i] = toValue(x)
	}
	return out
}

func gridOf(sheet string, rows ...[]any) models.Grid {
	out := make([][]models.Value, len(rows))
	for i, row := range rows {
		out[i] = values(row...)
	}
	return models.NewGrid(sheet, out)
}

type testSheet struct {
	name string
	rows [][]any
}

// saveWorkbook writes sheets to an xlsx file in a temp dir and returns its path.
func saveWorkbook(t *testing.T, sheets ...testSheet) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				t.Fatalf("Failed to rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			t.Fatalf("Failed to add sheet: %v", err)
		}
		for r, row := range s.rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				if err := f.SetCellValue(s.name, cell, v); err != nil {
					t.Fatalf("Failed to set %s: %v", cell, err)
				}
			}
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}
