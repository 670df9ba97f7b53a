package models

import "time"

// DemandSummary is a compact description of a DemandResult.
type DemandSummary struct {
	Sectors       []string `json:"sectors"`
	ParsedSectors int      `json:"parsed_sectors"`
	FirstYear     int      `json:"first_year,omitempty"`
	LastYear      int      `json:"last_year,omitempty"`
	Econometric   bool     `json:"econometric"`
	Warnings      int      `json:"warnings"`
}

// Summary describes the result for display by a caller.
func (r *DemandResult) Summary() DemandSummary {
	s := DemandSummary{
		Sectors:       r.Sectors,
		ParsedSectors: r.SectorData.Len(),
		Econometric:   r.Settings.EconometricEnabled(),
		Warnings:      len(r.Warnings),
	}
	years := r.AggregatedElectricity.Column("Year")
	if len(years) > 0 {
		s.FirstYear, _ = years[0].Int()
		s.LastYear, _ = years[len(years)-1].Int()
	}
	return s
}

// LoadCurveSummary is a compact description of a LoadCurveResult.
type LoadCurveSummary struct {
	HourlyPoints    int       `json:"hourly_points"`
	FirstHour       time.Time `json:"first_hour,omitempty"`
	LastHour        time.Time `json:"last_hour,omitempty"`
	AnnualTargets   int       `json:"annual_targets"`
	MonthlyPeakRows int       `json:"monthly_peak_rows"`
	LoadFactorRows  int       `json:"load_factor_rows"`
	Warnings        int       `json:"warnings"`
}

// Summary describes the result for display by a caller.
func (r *LoadCurveResult) Summary() LoadCurveSummary {
	s := LoadCurveSummary{
		HourlyPoints:    len(r.PastHourlyDemand),
		AnnualTargets:   r.TotalAnnualDemand.Len(),
		MonthlyPeakRows: r.MonthlyPeakTargets.Len(),
		LoadFactorRows:  r.AnnualLoadFactorTargets.Len(),
		Warnings:        len(r.Warnings),
	}
	if n := len(r.PastHourlyDemand); n > 0 {
		s.FirstHour = r.PastHourlyDemand[0].Time
		s.LastHour = r.PastHourlyDemand[n-1].Time
	}
	return s
}

// CapacityTemplateSummary is a compact description of a CapacityTemplateResult.
type CapacityTemplateSummary struct {
	SettingsTables []string       `json:"settings_tables"`
	SheetRows      map[string]int `json:"sheet_rows"`
	CustomSheets   []string       `json:"custom_sheets"`
	Warnings       int            `json:"warnings"`
}

// Summary describes the result for display by a caller.
func (r *CapacityTemplateResult) Summary() CapacityTemplateSummary {
	s := CapacityTemplateSummary{
		SheetRows: make(map[string]int),
		Warnings:  len(r.Warnings),
	}
	if r.Settings != nil {
		s.SettingsTables = r.Settings.Names()
	}
	for _, name := range r.Sheets.Names() {
		t, _ := r.Sheets.Get(name)
		s.SheetRows[name] = t.Len()
		if r.Categories[name] == CategoryCustom {
			s.CustomSheets = append(s.CustomSheets, name)
		}
	}
	return s
}
