package wbingest

import (
	"errors"
	"fmt"

	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/parser"
)

// ReasonCode classifies a parse problem. See the models package for the values.
type ReasonCode = models.ReasonCode

// ParseFailure is returned when a workbook cannot be parsed. No partial
// result accompanies it.
type ParseFailure struct {
	Reason    ReasonCode
	Assembler string // "demand", "load_curve", "capacity_template"
	Sheet     string
	Detail    string
	Err       error
}

func (e *ParseFailure) Error() string {
	msg := fmt.Sprintf("%s parse failed (%s)", e.Assembler, e.Reason)
	if e.Sheet != "" {
		msg += fmt.Sprintf(" in sheet %q", e.Sheet)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseFailure) Unwrap() error {
	return e.Err
}

// ReasonOf returns the reason code carried by err, or "" when err is not a ParseFailure.
func ReasonOf(err error) ReasonCode {
	var pf *ParseFailure
	if errors.As(err, &pf) {
		return pf.Reason
	}
	return ""
}

func fail(reason ReasonCode, sheet, detail string, err error) *ParseFailure {
	return &ParseFailure{Reason: reason, Sheet: sheet, Detail: detail, Err: err}
}

// openFailure maps a workbook open error to a failure. Every open problem is
// FileOrSheetMissing: a missing file, an unreadable one, or a wrong format.
func openFailure(err error) *ParseFailure {
	detail := "workbook could not be opened"
	switch {
	case errors.Is(err, parser.ErrFileNotFound):
		detail = "workbook not found"
	case errors.Is(err, parser.ErrInvalidFormat):
		detail = "workbook is not a readable xlsx or xls file"
	}
	return fail(models.ReasonFileOrSheetMissing, "", detail, err)
}

// Workbook level errors, re-exported for callers matching with errors.Is.
var (
	ErrFileNotFound  = parser.ErrFileNotFound
	ErrInvalidFormat = parser.ErrInvalidFormat
	ErrSheetNotFound = parser.ErrSheetNotFound
)
