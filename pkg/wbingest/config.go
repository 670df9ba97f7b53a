package wbingest

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// ConfigEnv names the environment variable holding a config file path.
const ConfigEnv = "WBINGEST_CONFIG"

// Config holds the sheet names, markers and column aliases the assemblers look for.
type Config struct {
	Demand    DemandConfig    `toml:"demand"`
	LoadCurve LoadCurveConfig `toml:"load_curve"`
	Capacity  CapacityConfig  `toml:"capacity"`
}

// DemandConfig configures the demand assembler.
type DemandConfig struct {
	MainSheet         string `toml:"main_sheet" validate:"required"`
	IndicatorsSheet   string `toml:"indicators_sheet" validate:"required"`
	SettingsMarker    string `toml:"settings_marker" validate:"required,startswith=~"`
	SectorsMarker     string `toml:"sectors_marker" validate:"required,startswith=~"`
	EconometricMarker string `toml:"econometric_marker" validate:"required,startswith=~"`
}

// LoadCurveConfig configures the load curve assembler. Alias lists are in
// priority order.
type LoadCurveConfig struct {
	HourlySheet       string   `toml:"hourly_sheet" validate:"required"`
	TotalDemandSheet  string   `toml:"total_demand_sheet" validate:"required"`
	MaxDemandSheet    string   `toml:"max_demand_sheet" validate:"required"`
	LoadFactorSheet   string   `toml:"load_factor_sheet" validate:"required"`
	YearAliases       []string `toml:"year_aliases" validate:"required,min=1,dive,required"`
	DemandAliases     []string `toml:"demand_aliases" validate:"required,min=1,dive,required"`
	LoadFactorAliases []string `toml:"load_factor_aliases" validate:"required,min=1,dive,required"`
	// FillHourlyGaps emits zero-valued hours between the first and last reading.
	FillHourlyGaps bool `toml:"fill_hourly_gaps"`
}

// CapacityConfig configures the capacity template assembler.
type CapacityConfig struct {
	SettingsSheet    string   `toml:"settings_sheet" validate:"required"`
	ComponentSheets  []string `toml:"component_sheets" validate:"dive,required"`
	TimeSeriesSheets []string `toml:"time_series_sheets" validate:"dive,required"`
	CostSheets       []string `toml:"cost_sheets" validate:"dive,required"`
	// PeekRows is the number of data rows inspected to classify a custom sheet.
	PeekRows int `toml:"peek_rows" validate:"min=1"`
}

// DefaultConfig returns the built-in template layout.
func DefaultConfig() *Config {
	return &Config{
		Demand: DemandConfig{
			MainSheet:         "main",
			IndicatorsSheet:   "Economic_Indicators",
			SettingsMarker:    "~Settings Table",
			SectorsMarker:     "~Consumption_Sectors Table",
			EconometricMarker: "~Econometric_Parameters Table",
		},
		LoadCurve: LoadCurveConfig{
			HourlySheet:       "Past_Hourly_Demand",
			TotalDemandSheet:  "Total Demand",
			MaxDemandSheet:    "max_demand",
			LoadFactorSheet:   "load_factors",
			YearAliases:       []string{"financial_year", "year", "fy"},
			DemandAliases:     []string{"total_demand", "annual_demand", "total_demand_gwh", "total_demand_mu"},
			LoadFactorAliases: []string{"load_factor", "annual_load_factor", "lf"},
			FillHourlyGaps:    true,
		},
		Capacity: CapacityConfig{
			SettingsSheet: "Settings",
			ComponentSheets: []string{
				"Buses", "Generators", "New_Generators", "New_Storage", "Links",
				"Lines", "Transformers", "Stores", "StorageUnits",
			},
			TimeSeriesSheets: []string{
				"Demand", "P_max_pu", "P_min_pu", "Inflow", "Hydro_Max_Energy_Monthly", "Load",
			},
			CostSheets: []string{
				"Lifetime", "FOM", "VOM", "Fuel_cost", "Startupcost", "CO2_emission_factors",
				"Capital_cost", "WACC", "Pipe_Line_Generators_p_max", "Pipe_Line_Generators_p_min",
				"Pipe_Line_Storage_p_min",
			},
			PeekRows: 5,
		},
	}
}

// LoadConfig reads a TOML config file over the defaults. An empty path falls
// back to $WBINGEST_CONFIG; when neither names a file, or the file does not
// exist, the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every required name is set.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Marshal renders the config as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
