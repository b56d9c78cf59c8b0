package sim

import (
	"fmt"
	"time"
)

// Fixed plant characteristics. These mirror the reference configuration and
// are not tunable per run.
const (
	// InventoryCap is the default stock ceiling for every silo.
	InventoryCap = 500.0
	// Silo2Cap is the distinct ceiling of the Site-2 LV pool.
	Silo2Cap = 300.0
	// NP3MaxInventory is the distinct ceiling of the Site-3 NP3 pool.
	NP3MaxInventory = 350.0

	// NP3MinStockBeforeCampaign is the stock level below which an NP3
	// campaign becomes eligible.
	NP3MinStockBeforeCampaign = 50.0
	// NP3BatchSize is the minimum campaign batch target.
	NP3BatchSize = 320.0
	// NP3ConversionRate converts LV consumed into NP3 produced.
	NP3ConversionRate = 0.5

	// ReservationBufferDays is how many days of planned consumption the
	// replenishment planner keeps in reserve.
	ReservationBufferDays = 3
	// S2LVMinStockTrigger is the minimum target level for the Site-2 LV pool.
	S2LVMinStockTrigger = 30.0
	// LLVSafetyStockForC is the LLV stock the C pellet may never draw below.
	LLVSafetyStockForC = 50.0

	// DefaultCombinedPackCapacity applies when the shared S1+S2 pool has no
	// configured ceiling at all.
	DefaultCombinedPackCapacity = 100.0

	// DefaultHorizonDays is the planning horizon of the reference
	// configuration.
	DefaultHorizonDays = 30

	// Epsilon absorbs floating-point residue in "fully satisfied" checks.
	Epsilon = 0.001
)

// Params carries every caller-supplied knob for one run. Zero capacity or
// daily-limit values mean "unbounded for that specific limit", except
// CombinedPackCapacity which falls back to DefaultCombinedPackCapacity.
type Params struct {
	// Per-product target quantities.
	LVPackTarget  float64
	CPelletTarget float64
	FPelletTarget float64
	GPelletTarget float64
	HPelletTarget float64
	LLVPackTarget float64

	// Optional per-product daily throughput limits.
	FPelletDailyLimit float64
	GPelletDailyLimit float64
	HPelletDailyLimit float64

	// Production-line and pool capacities.
	Line3Capacity        float64 // S3 LV production line
	Line2Capacity        float64 // S3 LLV production line
	FLineCapacity        float64 // S3 F-pellet line
	CLineCapacity        float64 // S3 C-pellet line
	GranuleLineCapacity  float64 // S3 granule packing pool
	S2DailyInput         float64 // Site-2 LV input per day
	S2EmergencyInput     float64 // extra Site-2 LV input in emergency mode
	CombinedPackCapacity float64 // shared S1+S2 packing pool
	S1HVMaxCapacity      float64 // S1 HV line capacity and direct-pack maximum

	// EmergencyMode adds the emergency allowance to the Site-2 LV input.
	EmergencyMode bool

	// Initial stock levels.
	InitialS1HV  float64
	InitialS2LV  float64
	InitialS3LV  float64
	InitialS3LLV float64
	InitialS3NP3 float64

	StartDate   time.Time // zero value means "today"
	HorizonDays int
}

// DefaultParams returns the reference configuration.
func DefaultParams() Params {
	return Params{
		LVPackTarget:  800,
		CPelletTarget: 1080,
		FPelletTarget: 960,
		GPelletTarget: 0,
		HPelletTarget: 1200,
		LLVPackTarget: 800,

		FPelletDailyLimit: 32.4,
		GPelletDailyLimit: 20.0,
		HPelletDailyLimit: 40.0,

		Line3Capacity:        180,
		Line2Capacity:        64.1,
		FLineCapacity:        32.4,
		CLineCapacity:        36.0,
		GranuleLineCapacity:  91.6,
		S2DailyInput:         89,
		S2EmergencyInput:     150,
		CombinedPackCapacity: 100,
		S1HVMaxCapacity:      400,

		InitialS1HV:  100,
		InitialS2LV:  100,
		InitialS3LV:  100,
		InitialS3LLV: 180,
		InitialS3NP3: 120,

		HorizonDays: DefaultHorizonDays,
	}
}

// Validate checks the structural preconditions of a run. Violations are
// caller errors surfaced before the loop starts; nothing inside the loop
// fails.
func (p Params) Validate() error {
	if p.HorizonDays <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", p.HorizonDays)
	}
	nonNegative := map[string]float64{
		"LV pack target":         p.LVPackTarget,
		"C pellet target":        p.CPelletTarget,
		"F pellet target":        p.FPelletTarget,
		"G pellet target":        p.GPelletTarget,
		"H pellet target":        p.HPelletTarget,
		"LLV pack target":        p.LLVPackTarget,
		"F daily limit":          p.FPelletDailyLimit,
		"G daily limit":          p.GPelletDailyLimit,
		"H daily limit":          p.HPelletDailyLimit,
		"line 3 capacity":        p.Line3Capacity,
		"line 2 capacity":        p.Line2Capacity,
		"F line capacity":        p.FLineCapacity,
		"C line capacity":        p.CLineCapacity,
		"granule line capacity":  p.GranuleLineCapacity,
		"S2 daily input":         p.S2DailyInput,
		"S2 emergency input":     p.S2EmergencyInput,
		"combined pack capacity": p.CombinedPackCapacity,
		"S1 HV max capacity":     p.S1HVMaxCapacity,
		"initial S1 HV stock":    p.InitialS1HV,
		"initial S2 LV stock":    p.InitialS2LV,
		"initial S3 LV stock":    p.InitialS3LV,
		"initial S3 LLV stock":   p.InitialS3LLV,
		"initial S3 NP3 stock":   p.InitialS3NP3,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, v)
		}
	}
	return nil
}

// combinedPool resolves the shared-pool ceiling, applying the literal
// default when no ceiling is configured.
func (p Params) combinedPool() float64 {
	if p.CombinedPackCapacity <= 0 {
		return DefaultCombinedPackCapacity
	}
	return p.CombinedPackCapacity
}

// s2InputCapacity is the Site-2 LV input line capacity for the day. A zero
// daily input is unbounded; the silo ceiling bounds any deposit, so it
// serves as the stand-in.
func (p Params) s2InputCapacity() float64 {
	capacity := limitOr(p.S2DailyInput, Silo2Cap)
	if p.EmergencyMode {
		capacity += p.S2EmergencyInput
	}
	return capacity
}

func (p Params) initialStocks() map[MaterialRef]float64 {
	return map[MaterialRef]float64{
		RefS1HV:  p.InitialS1HV,
		RefS2LV:  p.InitialS2LV,
		RefS3LV:  p.InitialS3LV,
		RefS3LLV: p.InitialS3LLV,
		RefS3NP3: p.InitialS3NP3,
	}
}

func (p Params) startDate() time.Time {
	if p.StartDate.IsZero() {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return p.StartDate
}

// limitOr returns limit when it is configured, otherwise fallback.
func limitOr(limit, fallback float64) float64 {
	if limit <= 0 {
		return fallback
	}
	return limit
}
