package wbingest

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
	"github.com/xuri/excelize/v2"
)

type testSheet struct {
	name string
	rows [][]any
}

// writeWorkbook saves sheets, in order, to an xlsx file in a temp dir.
// nil cells are left unset.
func writeWorkbook(t *testing.T, name string, sheets ...testSheet) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(s.name, cell, v))
			}
		}
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func testIngestor() *Ingestor {
	return New(DefaultOptions())
}

// requireFailure asserts err is a *ParseFailure with the given reason.
func requireFailure(t *testing.T, err error, reason ReasonCode) *ParseFailure {
	t.Helper()
	require.Error(t, err)
	var pf *ParseFailure
	require.True(t, errors.As(err, &pf), "expected *ParseFailure, got %T: %v", err, err)
	require.Equal(t, reason, pf.Reason, "failure: %v", err)
	return pf
}

// hasWarning reports whether any warning has the code and mentions sheet.
func hasWarning(warnings []models.Warning, code models.ReasonCode, sheet string) bool {
	for _, w := range warnings {
		if w.Code == code && w.Sheet == sheet {
			return true
		}
	}
	return false
}

func num(f float64) models.Value { return models.NumberValue(f) }
