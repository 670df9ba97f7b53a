package models

// DemandSettings holds the key/value pairs of the demand settings table with
// the keys the demand assembler interprets already coerced.
type DemandSettings struct {
	// Values holds every setting as text, keyed by setting name.
	Values map[string]string `json:"values"`
	// StartYear is the coerced Start_Year setting.
	StartYear int `json:"start_year"`
	// EndYear is the coerced End_Year setting.
	EndYear int `json:"end_year"`
	// EconometricParameters is the capitalized Econometric_Parameters flag ("Yes" / "No").
	EconometricParameters string `json:"econometric_parameters"`
}

// EconometricEnabled reports whether indicator merging was requested.
func (s DemandSettings) EconometricEnabled() bool { return s.EconometricParameters == "Yes" }

// EconometricMap maps a sector name to the ordered indicator columns requested for it.
type EconometricMap map[string][]string

// DemandResult is the parsed content of a demand input workbook.
type DemandResult struct {
	// RunID identifies this parse invocation.
	RunID string `json:"run_id"`
	// Workbook is the workbook file name (no path).
	Workbook string `json:"workbook"`
	// Settings holds the settings table.
	Settings DemandSettings `json:"settings"`
	// Sectors lists the consumption sectors in table order.
	Sectors []string `json:"sectors_list"`
	// EconometricMap is empty when econometric parameters are disabled.
	EconometricMap EconometricMap `json:"econometric_map"`
	// EconomicIndicatorsRaw is the economic indicators sheet, empty when disabled or absent.
	EconomicIndicatorsRaw *Table `json:"economic_indicators_raw"`
	// SectorData maps each successfully read sector to its table.
	SectorData *TableSet `json:"sector_data"`
	// AggregatedElectricity has a Year column, one <Sector>_Electricity
	// column per sector and Total_Electricity.
	AggregatedElectricity *Table `json:"aggregated_electricity"`
	// Warnings lists the non-fatal problems met while parsing.
	Warnings []Warning `json:"warnings,omitempty"`
}
