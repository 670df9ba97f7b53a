package wbingest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/parser"
)

const (
	columnDate              = "date"
	columnTime              = "time"
	columnDemand            = "demand"
	columnFinancialYear     = "financial_year"
	columnAnnualTotalDemand = "annual_total_demand"
	columnLoadFactor        = "load_factor"
)

// financialMonths are the normalized month columns of the max demand sheet,
// in financial year order.
var financialMonths = []string{
	"apr", "may", "jun", "jul", "aug", "sep",
	"oct", "nov", "dec", "jan", "feb", "mar",
}

func (in *Ingestor) assembleLoadCurve(wb parser.Workbook, d *diagnostics) (*models.LoadCurveResult, error) {
	cfg := in.cfg.LoadCurve

	hourly, err := readHourlyDemand(wb, cfg.HourlySheet, cfg.FillHourlyGaps, d)
	if err != nil {
		return nil, err
	}

	years := parser.NewAliasResolver(columnFinancialYear, cfg.YearAliases...)
	demand := parser.NewAliasResolver(columnAnnualTotalDemand, cfg.DemandAliases...)
	total, err := readTotalDemand(wb, cfg.TotalDemandSheet, years, demand, d)
	if err != nil {
		return nil, err
	}

	loadFactors := parser.NewAliasResolver(columnLoadFactor, cfg.LoadFactorAliases...)
	return &models.LoadCurveResult{
		RunID:                   newRunID(),
		Workbook:                wb.Name(),
		PastHourlyDemand:        hourly,
		TotalAnnualDemand:       total,
		MonthlyPeakTargets:      readMonthlyPeaks(wb, cfg.MaxDemandSheet, years, d),
		AnnualLoadFactorTargets: readLoadFactors(wb, cfg.LoadFactorSheet, years, loadFactors, d),
		Warnings:                d.warnings,
	}, nil
}

// reading is one demand observation at a point in time.
type reading struct {
	at    time.Time
	value float64
}

func readHourlyDemand(wb parser.Workbook, sheet string, fillGaps bool, d *diagnostics) (models.HourlySeries, error) {
	g, err := wb.ReadGrid(sheet)
	if err != nil {
		return nil, fail(models.ReasonFileOrSheetMissing, sheet, "required sheet could not be read", err)
	}
	t := parser.NormalizeColumns(parser.HeaderTable(g))
	for _, col := range []string{columnDate, columnTime, columnDemand} {
		if !t.HasColumn(col) {
			return nil, fail(models.ReasonRequiredMarkerOrColumnMissing, sheet, fmt.Sprintf("column %q is missing", col), nil)
		}
	}

	dc, tc, vc := t.ColumnIndex(columnDate), t.ColumnIndex(columnTime), t.ColumnIndex(columnDemand)
	var readings []reading
	stamped, unstamped, nonNumeric := 0, 0, 0
	for _, row := range t.Rows {
		at, ok := parser.CombineDateTime(row[dc], row[tc])
		if !ok {
			unstamped++
			continue
		}
		stamped++
		v, ok := row[vc].Float()
		if !ok {
			nonNumeric++
			continue
		}
		readings = append(readings, reading{at: at, value: v})
	}
	if stamped == 0 {
		return nil, fail(models.ReasonTypeCoercionFailure, sheet, "no row has a valid date and time", nil)
	}
	if unstamped > 0 {
		d.warn(models.ReasonPerItemSkipped, sheet, "%d rows with an unreadable date or time dropped", unstamped)
	}
	if nonNumeric > 0 {
		d.warn(models.ReasonPerItemSkipped, sheet, "%d rows with non-numeric demand dropped", nonNumeric)
	}

	series := resampleHourly(readings, fillGaps)
	if len(series) == 0 {
		d.warn(models.ReasonOptionalSectionAbsent, sheet, "no numeric demand readings, hourly series is empty")
	}
	return series, nil
}

// resampleHourly sums readings into the hour they start in. With fillGaps
// every hour between the first and last reading is present, zero when it
// had no readings.
func resampleHourly(readings []reading, fillGaps bool) models.HourlySeries {
	if len(readings) == 0 {
		return models.HourlySeries{}
	}
	sums := make(map[time.Time]float64)
	first := readings[0].at.Truncate(time.Hour)
	last := first
	for _, r := range readings {
		h := r.at.Truncate(time.Hour)
		sums[h] += r.value
		if h.Before(first) {
			first = h
		}
		if h.After(last) {
			last = h
		}
	}

	if !fillGaps {
		out := make(models.HourlySeries, 0, len(sums))
		for h, v := range sums {
			out = append(out, models.HourlyPoint{Time: h, Value: v})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
		return out
	}

	out := make(models.HourlySeries, 0, int(last.Sub(first)/time.Hour)+1)
	for h := first; !h.After(last); h = h.Add(time.Hour) {
		out = append(out, models.HourlyPoint{Time: h, Value: sums[h]})
	}
	return out
}

func readTotalDemand(wb parser.Workbook, sheet string, years, demand parser.AliasResolver, d *diagnostics) (*models.Table, error) {
	g, err := wb.ReadGrid(sheet)
	if err != nil {
		return nil, fail(models.ReasonFileOrSheetMissing, sheet, "required sheet could not be read", err)
	}
	t := parser.NormalizeColumns(parser.HeaderTable(g))

	yearCol, ok := years.Resolve(t.Columns)
	if !ok {
		return nil, fail(models.ReasonRequiredMarkerOrColumnMissing, sheet, "no year column, tried "+strings.Join(years.Candidates(), ", "), nil)
	}
	demandCol, ok := demand.Resolve(t.Columns)
	if !ok {
		return nil, fail(models.ReasonRequiredMarkerOrColumnMissing, sheet, "no demand column, tried "+strings.Join(demand.Candidates(), ", "), nil)
	}

	out := models.NewTable([]string{years.Canonical(), demand.Canonical()})
	dropped := 0
	for i := range t.Rows {
		v, ok := t.Value(i, demandCol).Float()
		if !ok {
			dropped++
			continue
		}
		out.AppendRow(t.Value(i, yearCol), models.NumberValue(v))
	}
	if dropped > 0 {
		d.warn(models.ReasonPerItemSkipped, sheet, "%d rows with non-numeric demand dropped", dropped)
	}
	return out, nil
}

// readOptional reads an optional sheet with normalized headers. It returns
// false, after recording why, when the sheet is absent or has no rows.
func readOptional(wb parser.Workbook, sheet string, d *diagnostics) (*models.Table, bool) {
	g, err := wb.ReadGrid(sheet)
	if err != nil {
		d.warn(models.ReasonOptionalSectionAbsent, sheet, "optional sheet not read: %v", err)
		return nil, false
	}
	t := parser.NormalizeColumns(parser.HeaderTable(g))
	if t.Empty() {
		d.warn(models.ReasonOptionalSectionAbsent, sheet, "optional sheet has no rows")
		return nil, false
	}
	return t, true
}

func readMonthlyPeaks(wb parser.Workbook, sheet string, years parser.AliasResolver, d *diagnostics) *models.Table {
	placeholder := models.NewTable(append([]string{years.Canonical()}, financialMonths...))
	t, ok := readOptional(wb, sheet, d)
	if !ok {
		return placeholder
	}
	yearCol, ok := years.Resolve(t.Columns)
	if !ok {
		d.warn(models.ReasonOptionalSectionAbsent, sheet, "no year column, monthly peak targets left empty")
		return placeholder
	}
	var months []string
	for _, m := range financialMonths {
		if t.HasColumn(m) {
			months = append(months, m)
		}
	}
	if len(months) == 0 {
		d.warn(models.ReasonOptionalSectionAbsent, sheet, "no month columns, monthly peak targets left empty")
		return placeholder
	}

	out := models.NewTable(append([]string{years.Canonical()}, months...))
	for i := range t.Rows {
		row := []models.Value{t.Value(i, yearCol)}
		for _, m := range months {
			row = append(row, t.Value(i, m))
		}
		out.AppendRow(row...)
	}
	return out
}

func readLoadFactors(wb parser.Workbook, sheet string, years, factors parser.AliasResolver, d *diagnostics) *models.Table {
	placeholder := models.NewTable([]string{years.Canonical(), factors.Canonical()})
	t, ok := readOptional(wb, sheet, d)
	if !ok {
		return placeholder
	}
	yearCol, okYear := years.Resolve(t.Columns)
	factorCol, okFactor := factors.Resolve(t.Columns)
	if !okYear || !okFactor {
		d.warn(models.ReasonOptionalSectionAbsent, sheet, "year or load factor column missing, load factor targets left empty")
		return placeholder
	}

	out := models.NewTable([]string{years.Canonical(), factors.Canonical()})
	dropped := 0
	for i := range t.Rows {
		f, ok := loadFactorValue(t.Value(i, factorCol))
		if !ok {
			dropped++
			continue
		}
		out.AppendRow(t.Value(i, yearCol), models.NumberValue(f))
	}
	if dropped > 0 {
		d.warn(models.ReasonPerItemSkipped, sheet, "%d rows with non-numeric load factor dropped", dropped)
	}
	return out
}

// loadFactorValue reads a load factor given as a fraction or as a
// percentage string such as "66%".
func loadFactorValue(v models.Value) (float64, bool) {
	if v.Kind() == models.KindString && strings.Contains(v.Text(), "%") {
		f, ok := models.TextValue(strings.TrimRight(strings.TrimSpace(v.Text()), "%")).Float()
		if !ok {
			return 0, false
		}
		return f / 100, true
	}
	return v.Float()
}
