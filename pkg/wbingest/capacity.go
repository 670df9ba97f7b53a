package wbingest

import (
	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/parser"
)

func (in *Ingestor) assembleCapacityTemplate(wb parser.Workbook, d *diagnostics) (*models.CapacityTemplateResult, error) {
	cfg := in.cfg.Capacity
	res := &models.CapacityTemplateResult{
		RunID:         newRunID(),
		Workbook:      wb.Name(),
		SettingsSheet: cfg.SettingsSheet,
		Settings:      readSettingsSection(wb, cfg.SettingsSheet, d),
		Sheets:        models.NewTableSet(),
		Categories:    make(map[string]models.SheetCategory),
	}

	known := map[string]bool{cfg.SettingsSheet: true}
	readCatalogue := func(names []string, category models.SheetCategory, read func(models.Grid) *models.Table) {
		for _, name := range names {
			if known[name] {
				continue
			}
			known[name] = true
			res.Categories[name] = category
			if !wb.HasSheet(name) {
				d.log.Debug("catalogue sheet absent", "sheet", name)
				res.Sheets.Set(name, models.NewTable(nil))
				continue
			}
			g, err := wb.ReadGrid(name)
			if err != nil {
				d.warn(models.ReasonPerItemSkipped, name, "sheet could not be read, stored empty: %v", err)
				res.Sheets.Set(name, models.NewTable(nil))
				continue
			}
			res.Sheets.Set(name, read(g))
		}
	}
	readCatalogue(cfg.ComponentSheets, models.CategoryComponent, parser.HeaderTable)
	readCatalogue(cfg.TimeSeriesSheets, models.CategoryTimeSeries, parser.IndexedHeaderTable)
	readCatalogue(cfg.CostSheets, models.CategoryCost, parser.HeaderTable)

	classifier := parser.NewSheetClassifier(cfg.PeekRows)
	for _, name := range wb.SheetNames() {
		if known[name] {
			continue
		}
		known[name] = true
		res.Categories[name] = models.CategoryCustom
		res.Sheets.Set(name, readCustomSheet(wb, name, classifier, d))
	}

	res.Warnings = d.warnings
	return res, nil
}

// readSettingsSection splits the settings sheet into its marker tables. It
// returns nil when the sheet is absent or unreadable.
func readSettingsSection(wb parser.Workbook, sheet string, d *diagnostics) *models.TableSet {
	if !wb.HasSheet(sheet) {
		d.warn(models.ReasonOptionalSectionAbsent, sheet, "settings sheet not found")
		return nil
	}
	g, err := wb.ReadGrid(sheet)
	if err != nil {
		d.warn(models.ReasonOptionalSectionAbsent, sheet, "settings sheet could not be read: %v", err)
		return nil
	}

	tables := parser.ExtractAllTables(g)
	for _, m := range parser.SkippedMarkers(g) {
		if m.Name == "" {
			d.warn(models.ReasonPerItemSkipped, sheet, "unnamed marker at row %d ignored", m.Row+1)
			continue
		}
		d.warn(models.ReasonPerItemSkipped, sheet, "marker %q at row %d has no header row", m.Name, m.Row+1)
	}
	if tables.Len() == 0 {
		d.warn(models.ReasonOptionalSectionAbsent, sheet, "no %s markers found", parser.MarkerPrefix)
	}
	return tables
}

// readCustomSheet reads a sheet outside the catalogue: peek, classify, then
// read the whole sheet in the chosen mode. The sheet is always stored, empty
// when it cannot be read.
func readCustomSheet(wb parser.Workbook, name string, c parser.SheetClassifier, d *diagnostics) *models.Table {
	peek, err := wb.PeekGrid(name, c.PeekSize())
	if err != nil {
		d.warn(models.ReasonPerItemSkipped, name, "custom sheet could not be read, stored empty: %v", err)
		return models.NewTable(nil)
	}
	mode := c.Classify(peek)
	g, err := wb.ReadGrid(name)
	if err != nil {
		d.warn(models.ReasonPerItemSkipped, name, "custom sheet could not be read, stored empty: %v", err)
		return models.NewTable(nil)
	}
	d.log.Debug("custom sheet classified", "sheet", name, "mode", mode.String())
	return parser.Read(g, mode)
}
