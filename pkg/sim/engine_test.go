package sim

import (
	"context"
	"testing"
	"time"
)

func TestEngine_Run_DefaultScenario(t *testing.T) {
	engine := NewEngine()
	params := DefaultParams()
	params.StartDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	result, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Days) == 0 || len(result.Days) > params.HorizonDays {
		t.Fatalf("Expected 1..%d days, got %d", params.HorizonDays, len(result.Days))
	}

	first := result.Days[0]
	if !first.Date.Equal(params.StartDate) {
		t.Errorf("Expected first day %v, got %v", params.StartDate, first.Date)
	}

	// Day one allocations under the reference configuration.
	expected := map[ProductID]float64{
		ProductHPellet: 40,
		ProductGPellet: 0,
		ProductHVPack:  60,
		ProductFPellet: 32.4,
		ProductCPellet: 36,
		ProductLVPack:  91.6,
		ProductLLVPack: 0,
	}
	for id, want := range expected {
		if !almostEqual(first.Packed[id], want) {
			t.Errorf("Day 1 %s: expected %v, got %v", id, want, first.Packed[id])
		}
	}
}

func TestEngine_Run_ZeroCapacitiesAreUnbounded(t *testing.T) {
	engine := NewEngine()
	params := DefaultParams()
	params.Line3Capacity = 0
	params.S1HVMaxCapacity = 0

	result, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	first := result.Days[0]

	// Line 3 without a limit covers the whole LV deficit plus the campaign
	// conversion on day one.
	if !almostEqual(first.Production[RefS3LV], 400) {
		t.Errorf("Day 1: expected S3 LV production 400, got %v", first.Production[RefS3LV])
	}
	if !almostEqual(first.Packed[ProductLVPack], 91.6) {
		t.Errorf("Day 1: expected LV pack 91.6, got %v", first.Packed[ProductLVPack])
	}

	// The unset per-site cap never shuts off the direct HV pack.
	if !almostEqual(first.Packed[ProductHVPack], 60) {
		t.Errorf("Day 1: expected HV pack 60, got %v", first.Packed[ProductHVPack])
	}
}

func TestEngine_Run_TightSharedPoolDrainsEvenly(t *testing.T) {
	engine := NewEngine()
	params := DefaultParams()
	params.HPelletTarget = 1250
	params.HPelletDailyLimit = 0
	params.GPelletTarget = 0
	params.CPelletTarget = 0
	params.FPelletTarget = 0
	params.LVPackTarget = 0
	params.LLVPackTarget = 0

	result, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 1250 against a 100/day pool: twelve full days and a 50 remainder.
	if len(result.Days) != 13 {
		t.Fatalf("Expected 13 days, got %d", len(result.Days))
	}
	for i, day := range result.Days[:12] {
		if !almostEqual(day.Packed[ProductHPellet], 100) {
			t.Errorf("Day %d: expected H pellet 100, got %v", i+1, day.Packed[ProductHPellet])
		}
		if day.Packed[ProductHVPack] != 0 {
			t.Errorf("Day %d: expected nothing left for HV pack, got %v", i+1, day.Packed[ProductHVPack])
		}
	}
	last := result.Days[12]
	if !almostEqual(last.Packed[ProductHPellet], 50) {
		t.Errorf("Final day: expected H pellet 50, got %v", last.Packed[ProductHPellet])
	}
	if result.Summary.Completion != CompletionFull {
		t.Errorf("Expected full completion, got %s", result.Summary.Completion)
	}
}

func TestEngine_Run_InvariantsHoldEveryDay(t *testing.T) {
	engine := NewEngine()
	params := DefaultParams()

	result, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	ledger := NewMaterialLedger(nil) // ceilings only
	prevSwitches := 0
	cumulative := make(map[ProductID]float64)

	for i, day := range result.Days {
		for ref, stock := range day.Stocks {
			if stock < 0 {
				t.Errorf("Day %d %s: negative stock %v", i+1, ref, stock)
			}
			if stock > ledger.Ceiling(ref)+Epsilon {
				t.Errorf("Day %d %s: stock %v above ceiling %v", i+1, ref, stock, ledger.Ceiling(ref))
			}
		}
		for id, qty := range day.Packed {
			if qty < 0 {
				t.Errorf("Day %d %s: negative allocation %v", i+1, id, qty)
			}
			cumulative[id] += qty
		}
		if day.Switches < prevSwitches {
			t.Errorf("Day %d: switch count decreased from %d to %d", i+1, prevSwitches, day.Switches)
		}
		prevSwitches = day.Switches
	}

	// The summary restates the per-day records exactly.
	for _, p := range result.Summary.Products {
		if !almostEqual(cumulative[p.ID], p.Produced) {
			t.Errorf("%s: day records sum to %v, summary says %v", p.ID, cumulative[p.ID], p.Produced)
		}
		if p.Target > 0 && p.Produced > p.Target+Epsilon {
			t.Errorf("%s: produced %v beyond target %v", p.ID, p.Produced, p.Target)
		}
	}
	if result.Summary.Switches != prevSwitches {
		t.Errorf("Expected summary switches %d, got %d", prevSwitches, result.Summary.Switches)
	}
}

func TestEngine_Run_StopsEarlyOnceTargetsMet(t *testing.T) {
	engine := NewEngine()
	params := DefaultParams()
	params.HPelletTarget = 20
	params.CPelletTarget = 0
	params.FPelletTarget = 0
	params.LVPackTarget = 0
	params.LLVPackTarget = 0

	result, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Days) != 1 {
		t.Fatalf("Expected early stop after 1 day, got %d", len(result.Days))
	}
	if result.Summary.Completion != CompletionFull {
		t.Errorf("Expected full completion, got %s", result.Summary.Completion)
	}
	if !almostEqual(result.Summary.AchievementRate, 100) {
		t.Errorf("Expected achievement rate 100, got %v", result.Summary.AchievementRate)
	}
}

func TestEngine_Run_ZeroTargets(t *testing.T) {
	engine := NewEngine()
	params := DefaultParams()
	params.LVPackTarget = 0
	params.CPelletTarget = 0
	params.FPelletTarget = 0
	params.GPelletTarget = 0
	params.HPelletTarget = 0
	params.LLVPackTarget = 0

	result, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Nothing to chase: the run settles after a single day.
	if len(result.Days) != 1 {
		t.Fatalf("Expected 1 day, got %d", len(result.Days))
	}
	if result.Summary.Completion != CompletionNotApplicable {
		t.Errorf("Expected completion NotApplicable, got %s", result.Summary.Completion)
	}

	// The untargeted HV pack still drains the shared pool, so the run
	// counts as productive.
	if !almostEqual(result.Days[0].Packed[ProductHVPack], 100) {
		t.Errorf("Expected HV pack 100, got %v", result.Days[0].Packed[ProductHVPack])
	}
	if !almostEqual(result.Summary.AchievementRate, 100) {
		t.Errorf("Expected achievement rate 100, got %v", result.Summary.AchievementRate)
	}
}

func TestEngine_Run_TargetMonotonicity(t *testing.T) {
	engine := NewEngine()
	params := DefaultParams()
	params.HorizonDays = 10

	result, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	running := make(map[ProductID]float64)
	for i, day := range result.Days {
		for id, qty := range day.Packed {
			prev := running[id]
			running[id] += qty
			if running[id] < prev {
				t.Errorf("Day %d %s: cumulative production decreased", i+1, id)
			}
		}
	}
}

func TestEngine_Run_RejectsInvalidParams(t *testing.T) {
	engine := NewEngine()

	params := DefaultParams()
	params.HorizonDays = 0
	if _, err := engine.Run(context.Background(), params); err == nil {
		t.Error("Expected error for zero horizon")
	}

	params = DefaultParams()
	params.HPelletTarget = -5
	if _, err := engine.Run(context.Background(), params); err == nil {
		t.Error("Expected error for negative target")
	}
}

func TestEngine_Run_HonorsContextCancellation(t *testing.T) {
	engine := NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Run(ctx, DefaultParams()); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

type countingObserver struct {
	started   int
	days      int
	campaigns int
	completed int
}

func (o *countingObserver) RunStarted(Params)                       { o.started++ }
func (o *countingObserver) DayCompleted(DayRecord)                  { o.days++ }
func (o *countingObserver) CampaignTriggered(int, float64, float64) { o.campaigns++ }
func (o *countingObserver) RunCompleted(RunSummary)                 { o.completed++ }

func TestEngine_Run_NotifiesObserver(t *testing.T) {
	obs := &countingObserver{}
	engine := NewEngine(WithObserver(obs))

	params := DefaultParams()
	params.HorizonDays = 5

	result, err := engine.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if obs.started != 1 || obs.completed != 1 {
		t.Errorf("Expected one start and one completion, got %d/%d", obs.started, obs.completed)
	}
	if obs.days != len(result.Days) {
		t.Errorf("Expected %d day notifications, got %d", len(result.Days), obs.days)
	}
}
