// Package config loads plan parameters from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hyowon/smartsched/pkg/sim"
)

// PlanConfig mirrors sim.Params in file form. Omitted fields keep the
// reference defaults; a pointer distinguishes "absent" from an explicit 0.
type PlanConfig struct {
	Targets struct {
		LVPack  *float64 `yaml:"lv_pack"`
		CPellet *float64 `yaml:"c_pellet"`
		FPellet *float64 `yaml:"f_pellet"`
		GPellet *float64 `yaml:"g_pellet"`
		HPellet *float64 `yaml:"h_pellet"`
		LLVPack *float64 `yaml:"llv_pack"`
	} `yaml:"targets"`

	DailyLimits struct {
		FPellet *float64 `yaml:"f_pellet"`
		GPellet *float64 `yaml:"g_pellet"`
		HPellet *float64 `yaml:"h_pellet"`
	} `yaml:"daily_limits"`

	Capacities struct {
		Line3        *float64 `yaml:"line3"`
		Line2        *float64 `yaml:"line2"`
		FLine        *float64 `yaml:"f_line"`
		CLine        *float64 `yaml:"c_line"`
		GranuleLine  *float64 `yaml:"granule_line"`
		S2DailyInput *float64 `yaml:"s2_daily_input"`
		S2Emergency  *float64 `yaml:"s2_emergency_input"`
		CombinedPack *float64 `yaml:"combined_pack"`
		S1HVMax      *float64 `yaml:"s1_hv_max"`
	} `yaml:"capacities"`

	InitialStocks struct {
		S1HV  *float64 `yaml:"s1_hv"`
		S2LV  *float64 `yaml:"s2_lv"`
		S3LV  *float64 `yaml:"s3_lv"`
		S3LLV *float64 `yaml:"s3_llv"`
		S3NP3 *float64 `yaml:"s3_np3"`
	} `yaml:"initial_stocks"`

	EmergencyMode *bool  `yaml:"emergency_mode"`
	StartDate     string `yaml:"start_date"` // YYYY-MM-DD
	HorizonDays   *int   `yaml:"horizon_days"`
}

// LoadPlanParams reads a YAML file and merges it over the reference
// defaults.
func LoadPlanParams(path string) (sim.Params, error) {
	params := sim.DefaultParams()

	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg PlanConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return params, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg.apply(params)
}

func (c PlanConfig) apply(params sim.Params) (sim.Params, error) {
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}

	setF(&params.LVPackTarget, c.Targets.LVPack)
	setF(&params.CPelletTarget, c.Targets.CPellet)
	setF(&params.FPelletTarget, c.Targets.FPellet)
	setF(&params.GPelletTarget, c.Targets.GPellet)
	setF(&params.HPelletTarget, c.Targets.HPellet)
	setF(&params.LLVPackTarget, c.Targets.LLVPack)

	setF(&params.FPelletDailyLimit, c.DailyLimits.FPellet)
	setF(&params.GPelletDailyLimit, c.DailyLimits.GPellet)
	setF(&params.HPelletDailyLimit, c.DailyLimits.HPellet)

	setF(&params.Line3Capacity, c.Capacities.Line3)
	setF(&params.Line2Capacity, c.Capacities.Line2)
	setF(&params.FLineCapacity, c.Capacities.FLine)
	setF(&params.CLineCapacity, c.Capacities.CLine)
	setF(&params.GranuleLineCapacity, c.Capacities.GranuleLine)
	setF(&params.S2DailyInput, c.Capacities.S2DailyInput)
	setF(&params.S2EmergencyInput, c.Capacities.S2Emergency)
	setF(&params.CombinedPackCapacity, c.Capacities.CombinedPack)
	setF(&params.S1HVMaxCapacity, c.Capacities.S1HVMax)

	setF(&params.InitialS1HV, c.InitialStocks.S1HV)
	setF(&params.InitialS2LV, c.InitialStocks.S2LV)
	setF(&params.InitialS3LV, c.InitialStocks.S3LV)
	setF(&params.InitialS3LLV, c.InitialStocks.S3LLV)
	setF(&params.InitialS3NP3, c.InitialStocks.S3NP3)

	if c.EmergencyMode != nil {
		params.EmergencyMode = *c.EmergencyMode
	}
	if c.HorizonDays != nil {
		params.HorizonDays = *c.HorizonDays
	}
	if c.StartDate != "" {
		start, err := time.Parse("2006-01-02", c.StartDate)
		if err != nil {
			return params, fmt.Errorf("invalid start_date %q: %w", c.StartDate, err)
		}
		params.StartDate = start
	}

	return params, nil
}
