package models

import (
	"bytes"
	"encoding/json"
)

// SheetCategory tells how a capacity template sheet was recognized.
type SheetCategory string

const (
	CategoryComponent  SheetCategory = "component"
	CategoryTimeSeries SheetCategory = "time_series"
	CategoryCost       SheetCategory = "cost"
	CategoryCustom     SheetCategory = "custom"
)

// CapacityTemplateResult is the parsed content of a capacity planning template.
type CapacityTemplateResult struct {
	// RunID identifies this parse invocation.
	RunID string
	// Workbook is the workbook file name (no path).
	Workbook string
	// SettingsSheet is the name the Settings section is stored under.
	SettingsSheet string
	// Settings holds the marker tables of the Settings sheet. It is nil when
	// the sheet is absent or unreadable.
	Settings *TableSet
	// Sheets holds every other sheet: catalogue sheets first, then custom
	// sheets in workbook order. Absent catalogue sheets hold empty tables.
	Sheets *TableSet
	// Categories records how each sheet in Sheets was handled.
	Categories map[string]SheetCategory
	// Warnings lists the non-fatal problems met while parsing.
	Warnings []Warning
}

// Sheet returns the table stored for a non-settings sheet.
func (r *CapacityTemplateResult) Sheet(name string) (*Table, bool) {
	return r.Sheets.Get(name)
}

// MarshalJSON flattens Settings and the other sheets into one "sheets" object.
func (r *CapacityTemplateResult) MarshalJSON() ([]byte, error) {
	var sheets bytes.Buffer
	sheets.WriteByte('{')
	key, err := json.Marshal(r.SettingsSheet)
	if err != nil {
		return nil, err
	}
	sheets.Write(key)
	sheets.WriteByte(':')
	if r.Settings == nil {
		sheets.WriteString("null")
	} else {
		val, err := json.Marshal(r.Settings)
		if err != nil {
			return nil, err
		}
		sheets.Write(val)
	}
	if r.Sheets.Len() > 0 {
		rest, err := json.Marshal(r.Sheets)
		if err != nil {
			return nil, err
		}
		sheets.WriteByte(',')
		sheets.Write(rest[1 : len(rest)-1])
	}
	sheets.WriteByte('}')

	return json.Marshal(struct {
		RunID      string                   `json:"run_id"`
		Workbook   string                   `json:"workbook"`
		Sheets     json.RawMessage          `json:"sheets"`
		Categories map[string]SheetCategory `json:"categories"`
		Warnings   []Warning                `json:"warnings,omitempty"`
	}{r.RunID, r.Workbook, sheets.Bytes(), r.Categories, r.Warnings})
}
