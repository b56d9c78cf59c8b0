package sim

import (
	"fmt"
	"strings"
	"time"
)

// Site identifies one of the three production locations.
type Site int

const (
	SiteS1 Site = iota + 1
	SiteS2
	SiteS3
)

func (s Site) String() string {
	switch s {
	case SiteS1:
		return "S1"
	case SiteS2:
		return "S2"
	case SiteS3:
		return "S3"
	default:
		return "Unknown"
	}
}

// Material identifies a raw-material kind.
type Material string

const (
	MaterialHV  Material = "HV"
	MaterialLV  Material = "LV"
	MaterialLLV Material = "LLV"
	MaterialNP3 Material = "NP3"
)

// MaterialRef addresses one material stock at one site.
type MaterialRef struct {
	Site     Site
	Material Material
}

func (r MaterialRef) String() string {
	return r.Site.String() + "/" + string(r.Material)
}

// MarshalText lets refs key JSON maps in day records.
func (r MaterialRef) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses the "site/material" form produced by MarshalText.
func (r *MaterialRef) UnmarshalText(text []byte) error {
	parts := strings.SplitN(string(text), "/", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid material ref %q", text)
	}
	switch parts[0] {
	case "S1":
		r.Site = SiteS1
	case "S2":
		r.Site = SiteS2
	case "S3":
		r.Site = SiteS3
	default:
		return fmt.Errorf("invalid site %q", parts[0])
	}
	r.Material = Material(parts[1])
	return nil
}

// The stocks the simulation actually consumes and replenishes.
var (
	RefS1HV  = MaterialRef{SiteS1, MaterialHV}
	RefS2LV  = MaterialRef{SiteS2, MaterialLV}
	RefS3LV  = MaterialRef{SiteS3, MaterialLV}
	RefS3LLV = MaterialRef{SiteS3, MaterialLLV}
	RefS3NP3 = MaterialRef{SiteS3, MaterialNP3}
)

// ProductID is a stable product key.
type ProductID string

const (
	ProductCPellet ProductID = "C_PELLET"
	ProductFPellet ProductID = "F_PELLET"
	ProductHPellet ProductID = "H_PELLET"
	ProductGPellet ProductID = "G_PELLET"
	ProductLVPack  ProductID = "LV_PACK"
	ProductLLVPack ProductID = "LLV_PACK"
	ProductHVPack  ProductID = "HV_PACK"
)

// Pool identifies a shared daily capacity ceiling consumed by one or more
// products in a fixed order within a day.
type Pool int

const (
	// PoolCombined is the shared S1+S2 packing pool split across the H and
	// G pellets and the direct HV pack.
	PoolCombined Pool = iota
	// PoolGranule is the S3 granule line split across the LV and LLV packs.
	PoolGranule
	// PoolCLine is the dedicated S3 C-pellet line.
	PoolCLine
	// PoolFLine is the dedicated S3 F-pellet line.
	PoolFLine
)

func (p Pool) String() string {
	switch p {
	case PoolCombined:
		return "Combined"
	case PoolGranule:
		return "Granule"
	case PoolCLine:
		return "CLine"
	case PoolFLine:
		return "FLine"
	default:
		return "Unknown"
	}
}

// RecipeLine is one ingredient of a product recipe. ReserveFloor is a stock
// level the product may never draw the ingredient below.
type RecipeLine struct {
	Ref          MaterialRef
	QtyPerUnit   float64
	ReserveFloor float64
}

// Product is one row of the fixed product table. Products differ only in
// data; adding a product means adding a row, not a type.
type Product struct {
	ID         ProductID
	Name       string
	Pool       Pool
	Recipe     []RecipeLine
	Target     float64
	DailyLimit float64 // 0 = unbounded
	HasTarget  bool    // false for pure pass-through packing
}

// ProductStatus is per-product mutable state for one run.
// Invariant: Left = max(0, TargetOrig - PackedSum), never negative.
type ProductStatus struct {
	Name        string
	TargetOrig  float64
	Left        float64
	PackedToday float64
	PackedSum   float64
}

// DayRecord is an immutable per-day snapshot, appended once per simulated
// day and never mutated afterwards.
type DayRecord struct {
	Date       time.Time
	Packed     map[ProductID]float64
	Stocks     map[MaterialRef]float64
	Production map[MaterialRef]float64
	Switches   int // running mode-switch count up to and including this day
}

// Achievement is the tri-state per-product outcome.
type Achievement int

const (
	AchievementNotApplicable Achievement = iota // target was 0
	AchievementMet
	AchievementNotMet
)

func (a Achievement) String() string {
	switch a {
	case AchievementNotApplicable:
		return "NotApplicable"
	case AchievementMet:
		return "Met"
	case AchievementNotMet:
		return "NotMet"
	default:
		return "Unknown"
	}
}

// Completion is the tri-state overall run outcome.
type Completion int

const (
	CompletionNotApplicable Completion = iota // no positive targets
	CompletionFull
	CompletionPartial
)

func (c Completion) String() string {
	switch c {
	case CompletionNotApplicable:
		return "NotApplicable"
	case CompletionFull:
		return "Full"
	case CompletionPartial:
		return "Partial"
	default:
		return "Unknown"
	}
}

// ProductSummary is the per-product slice of the run summary.
type ProductSummary struct {
	ID          ProductID
	Name        string
	Target      float64
	Produced    float64
	Remaining   float64 // floored at 0
	Achievement Achievement
}

// RunSummary is derived once after the loop ends from the final product
// statuses; it is not part of the mutable simulation state.
type RunSummary struct {
	Products        []ProductSummary
	Switches        int
	AchievementRate float64 // percent of total target
	Completion      Completion
}

// RunResult is the complete output of one simulated run.
type RunResult struct {
	Days    []DayRecord
	Summary RunSummary
}
