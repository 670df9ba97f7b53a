package wbingest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/parser"
)

const (
	settingStartYear   = "Start_Year"
	settingEndYear     = "End_Year"
	settingEconometric = "Econometric_Parameters"

	columnSectorName       = "Sector_Name"
	columnYear             = "Year"
	columnElectricity      = "Electricity"
	columnTotalElectricity = "Total_Electricity"
	electricitySuffix      = "_Electricity"
)

func (in *Ingestor) assembleDemand(wb parser.Workbook, d *diagnostics) (*models.DemandResult, error) {
	cfg := in.cfg.Demand

	main, err := wb.ReadGrid(cfg.MainSheet)
	if err != nil {
		return nil, fail(models.ReasonFileOrSheetMissing, cfg.MainSheet, "required sheet could not be read", err)
	}

	settings, err := readDemandSettings(main, cfg.SettingsMarker)
	if err != nil {
		return nil, err
	}

	sectors, err := readSectors(main, cfg.SectorsMarker, d)
	if err != nil {
		return nil, err
	}

	res := &models.DemandResult{
		RunID:                 newRunID(),
		Workbook:              wb.Name(),
		Settings:              settings,
		Sectors:               sectors,
		EconometricMap:        models.EconometricMap{},
		EconomicIndicatorsRaw: models.NewTable(nil),
		SectorData:            models.NewTableSet(),
	}

	var indicators *indicatorSource
	if settings.EconometricEnabled() {
		res.EconometricMap = readEconometricMap(main, cfg.EconometricMarker, sectors, d)
		res.EconomicIndicatorsRaw = readIndicators(wb, cfg.IndicatorsSheet, d)
		indicators = newIndicatorSource(res.EconomicIndicatorsRaw, cfg.IndicatorsSheet, d)
	}

	var series []sectorSeries
	for _, sector := range sectors {
		t, s, ok := readSector(wb, sector, d)
		if !ok {
			continue
		}
		if indicators != nil {
			indicators.join(t, sector, res.EconometricMap[sector])
		}
		res.SectorData.Set(sector, t)
		series = append(series, s)
	}

	res.AggregatedElectricity = aggregateElectricity(series)
	res.Warnings = d.warnings
	return res, nil
}

// readDemandSettings builds the settings map from the two-column settings
// table and coerces the keys the demand assembler interprets.
func readDemandSettings(main models.Grid, marker string) (models.DemandSettings, error) {
	t, err := parser.ExtractTable(main, marker, "")
	if err != nil {
		return models.DemandSettings{}, fail(models.ReasonRequiredMarkerOrColumnMissing, main.Sheet, "settings table not found", err)
	}
	if t.Empty() {
		return models.DemandSettings{}, fail(models.ReasonRequiredMarkerOrColumnMissing, main.Sheet, marker+" has no rows", nil)
	}

	values := make(map[string]string, t.Len())
	for _, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		key := strings.TrimSpace(row[0].Text())
		value := ""
		if len(row) > 1 {
			value = strings.TrimSpace(row[1].Text())
			if b, ok := row[1].Bool(); ok && key == settingEconometric {
				value = yesNo(b)
			}
		}
		values[key] = value
	}

	start, err := yearSetting(values, settingStartYear, main.Sheet)
	if err != nil {
		return models.DemandSettings{}, err
	}
	end, err := yearSetting(values, settingEndYear, main.Sheet)
	if err != nil {
		return models.DemandSettings{}, err
	}

	flag := "No"
	if raw := values[settingEconometric]; raw != "" {
		flag = capitalize(raw)
	}
	values[settingEconometric] = flag

	return models.DemandSettings{
		Values:                values,
		StartYear:             start,
		EndYear:               end,
		EconometricParameters: flag,
	}, nil
}

func yearSetting(values map[string]string, key, sheet string) (int, error) {
	raw, ok := values[key]
	if !ok {
		return 0, fail(models.ReasonRequiredMarkerOrColumnMissing, sheet, fmt.Sprintf("setting %s is missing", key), nil)
	}
	year, ok := models.TextValue(raw).Int()
	if !ok {
		return 0, fail(models.ReasonTypeCoercionFailure, sheet, fmt.Sprintf("setting %s=%q is not an integer", key, raw), nil)
	}
	values[key] = strconv.Itoa(year)
	return year, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r := []rune(strings.ToLower(s))
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func readSectors(main models.Grid, marker string, d *diagnostics) ([]string, error) {
	t, err := parser.ExtractTable(main, marker, "")
	if err != nil {
		return nil, fail(models.ReasonRequiredMarkerOrColumnMissing, main.Sheet, "sectors table not found", err)
	}
	if t.Empty() {
		return nil, fail(models.ReasonRequiredMarkerOrColumnMissing, main.Sheet, marker+" has no rows", nil)
	}
	if !t.HasColumn(columnSectorName) {
		return nil, fail(models.ReasonRequiredMarkerOrColumnMissing, main.Sheet, marker+" has no "+columnSectorName+" column", nil)
	}

	var sectors []string
	seen := make(map[string]bool)
	for _, v := range t.Column(columnSectorName) {
		if v.IsBlank() {
			continue
		}
		name := strings.TrimSpace(v.Text())
		if seen[name] {
			d.warn(models.ReasonPerItemSkipped, main.Sheet, "duplicate sector %q ignored", name)
			continue
		}
		seen[name] = true
		sectors = append(sectors, name)
	}
	if len(sectors) == 0 {
		return nil, fail(models.ReasonRequiredMarkerOrColumnMissing, main.Sheet, marker+" lists no sector names", nil)
	}
	return sectors, nil
}

// readEconometricMap collects, per known sector, the non-blank indicator
// names of its row. The table is optional.
func readEconometricMap(main models.Grid, marker string, sectors []string, d *diagnostics) models.EconometricMap {
	m := models.EconometricMap{}
	t, err := parser.ExtractTable(main, marker, "")
	if err != nil {
		d.warn(models.ReasonOptionalSectionAbsent, main.Sheet, "econometric parameters enabled but %s not found", marker)
		return m
	}
	if t.Empty() {
		d.warn(models.ReasonOptionalSectionAbsent, main.Sheet, "%s has no rows", marker)
		return m
	}
	sc := t.ColumnIndex(columnSectorName)
	if sc < 0 {
		d.warn(models.ReasonOptionalSectionAbsent, main.Sheet, "%s has no %s column", marker, columnSectorName)
		return m
	}

	known := make(map[string]bool, len(sectors))
	for _, s := range sectors {
		known[s] = true
	}
	for _, row := range t.Rows {
		sector := strings.TrimSpace(row[sc].Text())
		if !known[sector] {
			d.log.Debug("econometric row for unknown sector ignored", "sector", sector)
			continue
		}
		var names []string
		for c, v := range row {
			if t.Columns[c] == columnSectorName || v.IsBlank() {
				continue
			}
			names = append(names, strings.TrimSpace(v.Text()))
		}
		if len(names) > 0 {
			m[sector] = names
		}
	}
	return m
}

func readIndicators(wb parser.Workbook, sheet string, d *diagnostics) *models.Table {
	g, err := wb.ReadGrid(sheet)
	if err != nil {
		d.warn(models.ReasonOptionalSectionAbsent, sheet, "economic indicators could not be read: %v", err)
		return models.NewTable(nil)
	}
	t := parser.HeaderTable(g)
	switch {
	case t.Empty():
		d.warn(models.ReasonOptionalSectionAbsent, sheet, "economic indicators sheet is empty")
	case !t.HasColumn(columnYear):
		d.warn(models.ReasonOptionalSectionAbsent, sheet, "no %s column, first row values are applied as constants", columnYear)
	}
	return t
}

// indicatorSource joins economic indicator columns onto sector tables,
// by year when the indicators have a Year column, otherwise by
// broadcasting their first row.
type indicatorSource struct {
	table  *models.Table
	sheet  string
	keyed  bool
	byYear map[int]int
	d      *diagnostics
}

func newIndicatorSource(t *models.Table, sheet string, d *diagnostics) *indicatorSource {
	s := &indicatorSource{table: t, sheet: sheet, d: d}
	if t.Empty() || !t.HasColumn(columnYear) {
		return s
	}
	s.keyed = true
	s.byYear = make(map[int]int, t.Len())
	bad := 0
	for i, v := range t.Column(columnYear) {
		year, ok := v.Int()
		if !ok {
			bad++
			continue
		}
		if _, dup := s.byYear[year]; !dup {
			s.byYear[year] = i
		}
	}
	if bad > 0 {
		d.warn(models.ReasonPerItemSkipped, sheet, "%d indicator rows without an integer %s ignored", bad, columnYear)
	}
	return s
}

// join left-joins the requested indicators that exist onto t. Requested
// names missing from the indicator sheet are dropped.
func (s *indicatorSource) join(t *models.Table, sector string, requested []string) {
	if len(requested) == 0 || s.table.Empty() {
		return
	}
	var relevant []string
	seen := make(map[string]bool)
	for _, name := range requested {
		if name == columnYear || seen[name] || !s.table.HasColumn(name) {
			continue
		}
		seen[name] = true
		relevant = append(relevant, name)
	}
	if len(relevant) == 0 {
		s.d.warn(models.ReasonOptionalSectionAbsent, s.sheet, "none of the indicators %v requested for sector %q exist", requested, sector)
		return
	}

	if !s.keyed {
		for _, name := range relevant {
			constant := s.table.Value(0, name)
			t.AddColumn(name, func(int) models.Value { return constant })
		}
		return
	}

	years := t.Column(columnYear)
	for _, name := range relevant {
		src := s.table.ColumnIndex(name)
		t.AddColumn(name, func(row int) models.Value {
			year, _ := years[row].Int()
			if i, ok := s.byYear[year]; ok {
				return s.table.Rows[i][src]
			}
			return models.Empty()
		})
	}
}

// sectorSeries is one sector's electricity by year, ready for aggregation.
type sectorSeries struct {
	column string
	byYear map[int]models.Value
}

// readSector reads a sector sheet and coerces its Year column. Any problem
// skips the sector only.
func readSector(wb parser.Workbook, sector string, d *diagnostics) (*models.Table, sectorSeries, bool) {
	g, err := wb.ReadGrid(sector)
	if err != nil {
		d.warn(models.ReasonPerItemSkipped, sector, "sector skipped, sheet could not be read: %v", err)
		return nil, sectorSeries{}, false
	}
	t := parser.HeaderTable(g)
	if !t.HasColumn(columnYear) || !t.HasColumn(columnElectricity) {
		d.warn(models.ReasonPerItemSkipped, sector, "sector skipped, sheet needs %s and %s columns", columnYear, columnElectricity)
		return nil, sectorSeries{}, false
	}

	yc := t.ColumnIndex(columnYear)
	for i, row := range t.Rows {
		year, ok := row[yc].Int()
		if !ok {
			d.warn(models.ReasonPerItemSkipped, sector, "sector skipped, %s %q in data row %d is not an integer", columnYear, row[yc].Text(), i+1)
			return nil, sectorSeries{}, false
		}
		t.Set(i, columnYear, models.NumberValue(float64(year)))
	}

	s := sectorSeries{
		column: strings.ReplaceAll(sector, " ", "_") + electricitySuffix,
		byYear: make(map[int]models.Value, t.Len()),
	}
	nonNumeric, duplicates := 0, 0
	for i := range t.Rows {
		year, _ := t.Rows[i][yc].Int()
		if _, dup := s.byYear[year]; dup {
			duplicates++
			continue
		}
		v := t.Value(i, columnElectricity)
		f, ok := v.Float()
		switch {
		case ok:
			s.byYear[year] = models.NumberValue(f)
		case !v.IsBlank():
			nonNumeric++
			s.byYear[year] = models.Empty()
		default:
			s.byYear[year] = models.Empty()
		}
	}
	if nonNumeric > 0 {
		d.warn(models.ReasonPerItemSkipped, sector, "%d non-numeric %s values treated as missing", nonNumeric, columnElectricity)
	}
	if duplicates > 0 {
		d.warn(models.ReasonPerItemSkipped, sector, "%d repeated years ignored in aggregation, first occurrence kept", duplicates)
	}
	return t, s, true
}

// aggregateElectricity outer-joins every sector series on Year. A sector
// without a value for a year keeps an empty cell; the total counts it as
// zero.
func aggregateElectricity(series []sectorSeries) *models.Table {
	columns := []string{columnYear}
	for _, s := range series {
		columns = append(columns, s.column)
	}
	columns = append(columns, columnTotalElectricity)
	t := models.NewTable(columns)

	yearSet := make(map[int]bool)
	for _, s := range series {
		for year := range s.byYear {
			yearSet[year] = true
		}
	}
	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Ints(years)

	for _, year := range years {
		row := []models.Value{models.NumberValue(float64(year))}
		total := 0.0
		for _, s := range series {
			v, ok := s.byYear[year]
			if !ok {
				row = append(row, models.Empty())
				continue
			}
			if f, ok := v.Float(); ok {
				total += f
			}
			row = append(row, v)
		}
		row = append(row, models.NumberValue(total))
		t.AppendRow(row...)
	}
	return t
}
