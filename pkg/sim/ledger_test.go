package sim

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMaterialLedger_DepositTruncatesAtCeiling(t *testing.T) {
	ledger := NewMaterialLedger(map[MaterialRef]float64{
		RefS2LV: 250,
	})

	applied := ledger.Deposit(RefS2LV, 100)
	if !almostEqual(applied, 50) {
		t.Errorf("Expected applied 50, got %v", applied)
	}
	if !almostEqual(ledger.Stock(RefS2LV), Silo2Cap) {
		t.Errorf("Expected stock at ceiling %v, got %v", Silo2Cap, ledger.Stock(RefS2LV))
	}

	// A full silo absorbs nothing.
	applied = ledger.Deposit(RefS2LV, 10)
	if applied != 0 {
		t.Errorf("Expected applied 0 at ceiling, got %v", applied)
	}
}

func TestMaterialLedger_WithdrawTruncatesAtZero(t *testing.T) {
	ledger := NewMaterialLedger(map[MaterialRef]float64{
		RefS1HV: 30,
	})

	applied := ledger.Withdraw(RefS1HV, 100)
	if !almostEqual(applied, 30) {
		t.Errorf("Expected applied 30, got %v", applied)
	}
	if ledger.Stock(RefS1HV) != 0 {
		t.Errorf("Expected empty stock, got %v", ledger.Stock(RefS1HV))
	}

	applied = ledger.Withdraw(RefS1HV, 5)
	if applied != 0 {
		t.Errorf("Expected applied 0 when empty, got %v", applied)
	}
}

func TestMaterialLedger_IgnoresNonPositiveAmounts(t *testing.T) {
	ledger := NewMaterialLedger(map[MaterialRef]float64{
		RefS3LV: 100,
	})

	if applied := ledger.Deposit(RefS3LV, -10); applied != 0 {
		t.Errorf("Expected negative deposit ignored, got %v", applied)
	}
	if applied := ledger.Withdraw(RefS3LV, -10); applied != 0 {
		t.Errorf("Expected negative withdrawal ignored, got %v", applied)
	}
	if !almostEqual(ledger.Stock(RefS3LV), 100) {
		t.Errorf("Expected stock unchanged at 100, got %v", ledger.Stock(RefS3LV))
	}
}

func TestMaterialLedger_InitialStocksClampedToCeiling(t *testing.T) {
	ledger := NewMaterialLedger(map[MaterialRef]float64{
		RefS3NP3: 9000,
		RefS1HV:  -20,
	})

	if !almostEqual(ledger.Stock(RefS3NP3), NP3MaxInventory) {
		t.Errorf("Expected NP3 stock clamped to %v, got %v", NP3MaxInventory, ledger.Stock(RefS3NP3))
	}
	if ledger.Stock(RefS1HV) != 0 {
		t.Errorf("Expected negative initial stock clamped to 0, got %v", ledger.Stock(RefS1HV))
	}
}

func TestMaterialLedger_CeilingsPerSite(t *testing.T) {
	ledger := NewMaterialLedger(nil)

	tests := []struct {
		ref     MaterialRef
		ceiling float64
	}{
		{RefS1HV, InventoryCap},
		{RefS2LV, Silo2Cap},
		{RefS3LV, InventoryCap},
		{RefS3LLV, InventoryCap},
		{RefS3NP3, NP3MaxInventory},
	}
	for _, tt := range tests {
		if c := ledger.Ceiling(tt.ref); !almostEqual(c, tt.ceiling) {
			t.Errorf("Ceiling(%s): expected %v, got %v", tt.ref, tt.ceiling, c)
		}
	}
}

func TestMaterialLedger_HeadroomAndSnapshot(t *testing.T) {
	ledger := NewMaterialLedger(map[MaterialRef]float64{
		RefS3LV: 120,
	})

	if h := ledger.Headroom(RefS3LV); !almostEqual(h, InventoryCap-120) {
		t.Errorf("Expected headroom %v, got %v", InventoryCap-120, h)
	}

	snap := ledger.Snapshot()
	if !almostEqual(snap[RefS3LV], 120) {
		t.Errorf("Expected snapshot stock 120, got %v", snap[RefS3LV])
	}

	// Snapshots are copies, not views.
	snap[RefS3LV] = 999
	if !almostEqual(ledger.Stock(RefS3LV), 120) {
		t.Errorf("Expected ledger unaffected by snapshot mutation, got %v", ledger.Stock(RefS3LV))
	}
}
