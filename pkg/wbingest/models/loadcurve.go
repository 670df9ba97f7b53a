package models

import "time"

// HourlyPoint is one hour of a resampled series.
type HourlyPoint struct {
	// Time is the start of the hour.
	Time time.Time `json:"timestamp"`
	// Value is the sum of every reading that fell inside the hour.
	Value float64 `json:"value"`
}

// HourlySeries is a strictly increasing, hour-aligned series.
type HourlySeries []HourlyPoint

// Total returns the sum of all points.
func (s HourlySeries) Total() float64 {
	total := 0.0
	for _, p := range s {
		total += p.Value
	}
	return total
}

// At returns the value for the hour starting at t.
func (s HourlySeries) At(t time.Time) (float64, bool) {
	for _, p := range s {
		if p.Time.Equal(t) {
			return p.Value, true
		}
	}
	return 0, false
}

// LoadCurveResult is the parsed content of a load curve template workbook.
type LoadCurveResult struct {
	// RunID identifies this parse invocation.
	RunID string `json:"run_id"`
	// Workbook is the workbook file name (no path).
	Workbook string `json:"workbook"`
	// PastHourlyDemand is the historical demand resampled to hours.
	PastHourlyDemand HourlySeries `json:"past_hourly_demand"`
	// TotalAnnualDemand has columns financial_year and annual_total_demand.
	TotalAnnualDemand *Table `json:"total_annual_demand"`
	// MonthlyPeakTargets has financial_year plus month columns; may be empty.
	MonthlyPeakTargets *Table `json:"monthly_peak_targets"`
	// AnnualLoadFactorTargets has financial_year and load_factor; may be empty.
	AnnualLoadFactorTargets *Table `json:"annual_load_factor_targets"`
	// Warnings lists the non-fatal problems met while parsing.
	Warnings []Warning `json:"warnings,omitempty"`
}
