package wbingest

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/parser"
)

// Assembler names used in failures and log records.
const (
	AssemblerDemand           = "demand"
	AssemblerLoadCurve        = "load_curve"
	AssemblerCapacityTemplate = "capacity_template"
)

// Ingestor parses workbooks. It holds no state between calls and is safe
// for concurrent use.
type Ingestor struct {
	cfg *Config
	log *slog.Logger
}

// New creates an Ingestor.
func New(opts Options) *Ingestor {
	return &Ingestor{cfg: opts.config(), log: opts.logger()}
}

// ParseDemand parses a demand input workbook.
func (in *Ingestor) ParseDemand(path string) (*models.DemandResult, error) {
	return run(in, AssemblerDemand, openPath(path), in.assembleDemand)
}

// ParseDemandReader parses a demand input workbook read from r.
func (in *Ingestor) ParseDemandReader(r io.Reader, name string) (*models.DemandResult, error) {
	return run(in, AssemblerDemand, openReader(r, name), in.assembleDemand)
}

// ParseLoadCurve parses a load curve template workbook.
func (in *Ingestor) ParseLoadCurve(path string) (*models.LoadCurveResult, error) {
	return run(in, AssemblerLoadCurve, openPath(path), in.assembleLoadCurve)
}

// ParseLoadCurveReader parses a load curve template workbook read from r.
func (in *Ingestor) ParseLoadCurveReader(r io.Reader, name string) (*models.LoadCurveResult, error) {
	return run(in, AssemblerLoadCurve, openReader(r, name), in.assembleLoadCurve)
}

// ParseCapacityTemplate parses a capacity planning template workbook.
func (in *Ingestor) ParseCapacityTemplate(path string) (*models.CapacityTemplateResult, error) {
	return run(in, AssemblerCapacityTemplate, openPath(path), in.assembleCapacityTemplate)
}

// ParseCapacityTemplateReader parses a capacity planning template workbook read from r.
func (in *Ingestor) ParseCapacityTemplateReader(r io.Reader, name string) (*models.CapacityTemplateResult, error) {
	return run(in, AssemblerCapacityTemplate, openReader(r, name), in.assembleCapacityTemplate)
}

type opener func() (parser.Workbook, error)

func openPath(path string) opener {
	return func() (parser.Workbook, error) { return parser.OpenWorkbook(path) }
}

func openReader(r io.Reader, name string) opener {
	return func() (parser.Workbook, error) { return parser.OpenWorkbookReader(r, name) }
}

// run opens the workbook, assembles it and closes it before returning.
// assemble records non-fatal problems in the diagnostics and returns a
// *ParseFailure for fatal ones. Panics raised while reading are turned into
// a FileOrSheetMissing failure.
func run[T any](in *Ingestor, assembler string, open opener, assemble func(parser.Workbook, *diagnostics) (*T, error)) (res *T, err error) {
	log := in.log.With("assembler", assembler)

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fail(models.ReasonFileOrSheetMissing, "", "workbook unreadable", fmt.Errorf("%v", r))
		}
		if err != nil {
			if pf, ok := err.(*ParseFailure); ok {
				pf.Assembler = assembler
			}
			log.Error("parse failed", "reason", ReasonOf(err), "error", err)
		}
	}()

	wb, err := open()
	if err != nil {
		return nil, openFailure(err)
	}
	defer wb.Close()

	log = log.With("workbook", wb.Name())
	d := &diagnostics{log: log}
	res, err = assemble(wb, d)
	if err != nil {
		return nil, err
	}
	log.Debug("parse completed", "warnings", len(d.warnings))
	return res, nil
}

func newRunID() string {
	return uuid.NewString()
}

// diagnostics accumulates the warnings of one parse.
type diagnostics struct {
	log      *slog.Logger
	warnings []models.Warning
}

func (d *diagnostics) warn(code models.ReasonCode, sheet, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	d.warnings = append(d.warnings, models.Warning{Code: code, Sheet: sheet, Message: msg})
	d.log.Warn(msg, "code", code, "sheet", sheet)
}
