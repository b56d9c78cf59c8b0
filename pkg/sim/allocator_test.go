package sim

import (
	"testing"
)

func newTestAllocation(params Params, stocks map[MaterialRef]float64) (map[ProductID]*Product, map[ProductID]*ProductStatus, *MaterialLedger) {
	products, _ := buildProducts(params)
	statuses := newStatuses(products)
	ledger := NewMaterialLedger(stocks)
	return products, statuses, ledger
}

func TestAllocateDay_FixedPriorityOrder(t *testing.T) {
	params := DefaultParams()
	products, statuses, ledger := newTestAllocation(params, map[MaterialRef]float64{
		RefS1HV:  100,
		RefS2LV:  100,
		RefS3LV:  280,
		RefS3LLV: 244.1,
		RefS3NP3: 120,
	})

	switches := 0
	packed := allocateDay(params, products, statuses, ledger, &switches)

	expected := map[ProductID]float64{
		ProductHPellet: 40,   // daily limit within the shared pool
		ProductGPellet: 0,    // no target
		ProductHVPack:  60,   // remainder of the shared pool
		ProductFPellet: 32.4, // F line capacity
		ProductCPellet: 36,   // C line capacity
		ProductLVPack:  91.6, // whole granule pool
		ProductLLVPack: 0,    // granule pool exhausted by LV
	}
	for id, want := range expected {
		if !almostEqual(packed[id], want) {
			t.Errorf("%s: expected %v, got %v", id, want, packed[id])
		}
	}

	// Five products allocated a non-zero amount.
	if switches != 5 {
		t.Errorf("Expected 5 mode switches, got %d", switches)
	}
}

func TestAllocateDay_SharedPoolConservation(t *testing.T) {
	params := DefaultParams()
	params.HPelletDailyLimit = 0
	params.GPelletTarget = 500
	params.GPelletDailyLimit = 0
	products, statuses, ledger := newTestAllocation(params, map[MaterialRef]float64{
		RefS1HV: 500,
		RefS2LV: 300,
	})

	switches := 0
	packed := allocateDay(params, products, statuses, ledger, &switches)

	total := packed[ProductHPellet] + packed[ProductGPellet] + packed[ProductHVPack]
	if total > params.combinedPool()+Epsilon {
		t.Errorf("Shared pool overdrawn: %v > %v", total, params.combinedPool())
	}

	// Without a daily limit the H pellet claims the entire pool.
	if !almostEqual(packed[ProductHPellet], params.combinedPool()) {
		t.Errorf("Expected H pellet to take the full pool, got %v", packed[ProductHPellet])
	}
	if packed[ProductGPellet] != 0 || packed[ProductHVPack] != 0 {
		t.Errorf("Expected nothing left for G (%v) and HV pack (%v)",
			packed[ProductGPellet], packed[ProductHVPack])
	}
}

func TestAllocateDay_BottleneckIngredientScalesRecipe(t *testing.T) {
	params := DefaultParams()
	params.HPelletDailyLimit = 0
	products, statuses, ledger := newTestAllocation(params, map[MaterialRef]float64{
		RefS1HV: 500,
		RefS2LV: 10, // bottleneck: supports 20 units at 0.5 per unit
	})

	switches := 0
	packed := allocateDay(params, products, statuses, ledger, &switches)

	if !almostEqual(packed[ProductHPellet], 20) {
		t.Errorf("Expected H pellet capped at 20 by LV stock, got %v", packed[ProductHPellet])
	}
	if ledger.Stock(RefS2LV) != 0 {
		t.Errorf("Expected S2 LV drained, got %v", ledger.Stock(RefS2LV))
	}
	if !almostEqual(ledger.Stock(RefS1HV), 490) {
		t.Errorf("Expected matching 10 HV withdrawn, got stock %v", ledger.Stock(RefS1HV))
	}
}

func TestAllocateDay_CPelletRespectsSafetyFloor(t *testing.T) {
	params := DefaultParams()
	products, statuses, ledger := newTestAllocation(params, map[MaterialRef]float64{
		RefS3LLV: LLVSafetyStockForC + 10,
	})

	switches := 0
	packed := allocateDay(params, products, statuses, ledger, &switches)

	// Only the 10 above the floor is available to the C pellet; the LLV
	// pack carries no floor and may then drain the rest.
	if !almostEqual(packed[ProductCPellet], 10) {
		t.Errorf("Expected C pellet 10, got %v", packed[ProductCPellet])
	}
	if !almostEqual(packed[ProductLLVPack], LLVSafetyStockForC) {
		t.Errorf("Expected LLV pack %v, got %v", LLVSafetyStockForC, packed[ProductLLVPack])
	}

	atFloor := statuses[ProductCPellet]
	if atFloor.Left <= 0 {
		t.Errorf("Expected open C pellet target, got left %v", atFloor.Left)
	}
}

func TestAllocateDay_StarvedIngredientAllocatesZero(t *testing.T) {
	params := DefaultParams()
	products, statuses, ledger := newTestAllocation(params, nil)

	switches := 0
	packed := allocateDay(params, products, statuses, ledger, &switches)

	for id, qty := range packed {
		if qty != 0 {
			t.Errorf("%s: expected 0 with empty stocks, got %v", id, qty)
		}
	}
	if switches != 0 {
		t.Errorf("Expected no mode switches, got %d", switches)
	}
}

func TestAllocateDay_MetTargetFreesCapacity(t *testing.T) {
	params := DefaultParams()
	params.LVPackTarget = 0
	products, statuses, ledger := newTestAllocation(params, map[MaterialRef]float64{
		RefS3LV:  200,
		RefS3LLV: 200,
	})

	switches := 0
	packed := allocateDay(params, products, statuses, ledger, &switches)

	// With the LV pack satisfied the LLV pack sees the whole granule pool.
	if packed[ProductLVPack] != 0 {
		t.Errorf("Expected no LV pack, got %v", packed[ProductLVPack])
	}
	if !almostEqual(packed[ProductLLVPack], params.GranuleLineCapacity) {
		t.Errorf("Expected LLV pack %v, got %v", params.GranuleLineCapacity, packed[ProductLLVPack])
	}
}

func TestAllocateDay_ZeroHVPackCapIsUnbounded(t *testing.T) {
	params := DefaultParams()
	params.S1HVMaxCapacity = 0
	params.HPelletTarget = 0
	params.GPelletTarget = 0
	products, statuses, ledger := newTestAllocation(params, map[MaterialRef]float64{
		RefS1HV: 250,
	})

	switches := 0
	packed := allocateDay(params, products, statuses, ledger, &switches)

	// With the per-site cap unset the whole shared pool flows to the
	// direct HV pack.
	if !almostEqual(packed[ProductHVPack], params.combinedPool()) {
		t.Errorf("Expected HV pack %v, got %v", params.combinedPool(), packed[ProductHVPack])
	}
	if !almostEqual(ledger.Stock(RefS1HV), 150) {
		t.Errorf("Expected S1 HV stock 150, got %v", ledger.Stock(RefS1HV))
	}
}

func TestAllocateDay_AllocationsNeverExceedRemainingTarget(t *testing.T) {
	params := DefaultParams()
	params.HPelletTarget = 15 // below the 40 daily limit
	products, statuses, ledger := newTestAllocation(params, map[MaterialRef]float64{
		RefS1HV: 100,
		RefS2LV: 100,
	})

	switches := 0
	packed := allocateDay(params, products, statuses, ledger, &switches)

	if !almostEqual(packed[ProductHPellet], 15) {
		t.Errorf("Expected H pellet capped at remaining target 15, got %v", packed[ProductHPellet])
	}
	if statuses[ProductHPellet].Left != 0 {
		t.Errorf("Expected target closed, got left %v", statuses[ProductHPellet].Left)
	}
}
