// Package parser reads workbook sheets into grids and extracts tables from them.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is neither a valid xlsx nor xls workbook.
var ErrInvalidFormat = errors.New("invalid workbook format")

// ErrSheetNotFound indicates the requested sheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// oleSignature starts every OLE2 compound document, which is the container of legacy .xls files.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Workbook gives read access to the sheets of one workbook.
type Workbook interface {
	// Name returns the workbook file name (no path).
	Name() string
	// SheetNames returns the sheet names in workbook order.
	SheetNames() []string
	// HasSheet reports whether a sheet with this exact name exists.
	HasSheet(sheet string) bool
	// ReadGrid loads a whole sheet as a header-less grid.
	ReadGrid(sheet string) (models.Grid, error)
	// PeekGrid loads at most the first n rows of a sheet.
	PeekGrid(sheet string, n int) (models.Grid, error)
	// Close releases the workbook.
	Close() error
}

// OpenWorkbook opens the workbook at path. Files ending in .xls are read as
// legacy BIFF workbooks, everything else as Office Open XML.
func OpenWorkbook(path string) (Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return openXLS(bytes.NewReader(data), name)
	}
	return openXLSXFile(path, name)
}

// OpenWorkbookReader reads a workbook from r, such as an uploaded byte
// stream. The format is detected from the content.
func OpenWorkbookReader(r io.Reader, name string) (Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, oleSignature) {
		return openXLS(bytes.NewReader(data), name)
	}
	return openXLSXReader(bytes.NewReader(data), name)
}

func containsSheet(names []string, sheet string) bool {
	for _, name := range names {
		if name == sheet {
			return true
		}
	}
	return false
}

func sheetNotFound(sheet string) error {
	return fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
}
