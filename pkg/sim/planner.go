package sim

// replenishPlan is the outcome of one day's replenishment pass.
type replenishPlan struct {
	// production records the amount produced per (site, material) today.
	// LV produced for the NP3 campaign is tallied under Site-3 LV even
	// though it is converted, not deposited.
	production map[MaterialRef]float64
	// campaignNP3 is the NP3 quantity produced by today's campaign, zero
	// when no campaign ran.
	campaignNP3 float64
	// campaignLV is the LV consumed by today's campaign.
	campaignLV float64
}

// planner computes daily raw-material replenishment. It runs before the
// allocation pass so same-day production can satisfy same-day packing
// demand; its demand figures are conservative upper-bound projections taken
// from remaining targets, not realized allocations.
type planner struct {
	params   Params
	products map[ProductID]*Product
}

func newPlanner(params Params, products map[ProductID]*Product) *planner {
	return &planner{params: params, products: products}
}

// plannedConsumption estimates today's demand per material: each product's
// remaining target capped by its pool/line capacity, scaled through its
// recipe.
func (pl *planner) plannedConsumption(statuses map[ProductID]*ProductStatus) map[MaterialRef]float64 {
	demand := make(map[MaterialRef]float64)
	for id, prod := range pl.products {
		if !prod.HasTarget {
			continue
		}
		st := statuses[id]
		if st.Left <= 0 {
			continue
		}
		est := min2(st.Left, plannedLineCapacity(pl.params, prod))
		for _, line := range prod.Recipe {
			demand[line.Ref] += line.QtyPerUnit * est
		}
	}
	return demand
}

// targetLevel applies the reservation buffer to a planned daily consumption.
func targetLevel(need float64) float64 {
	return need * (1 + ReservationBufferDays)
}

// PlanDay computes and deposits today's raw-material production.
func (pl *planner) PlanDay(ledger *MaterialLedger, statuses map[ProductID]*ProductStatus) replenishPlan {
	p := pl.params
	demand := pl.plannedConsumption(statuses)
	plan := replenishPlan{production: make(map[MaterialRef]float64)}

	// Zero line capacities are unbounded. InventoryCap stands in: no
	// deposit can exceed a cell's ceiling headroom, and every ceiling is
	// at most InventoryCap.
	lvLine := limitOr(p.Line3Capacity, InventoryCap)

	// Site-3 LV, ordinary replenishment first; the campaign reuses what is
	// left of the line afterwards.
	lvProduced := pl.replenish(ledger, RefS3LV, targetLevel(demand[RefS3LV]), lvLine)
	plan.production[RefS3LV] = lvProduced

	// Site-3 LLV. The reserved C-pellet safety floor is added into the
	// target level so replenishment keeps stock above it; the allocator
	// enforces the floor independently on withdrawal.
	llvTarget := targetLevel(demand[RefS3LLV]) + LLVSafetyStockForC
	plan.production[RefS3LLV] = pl.replenish(ledger, RefS3LLV, llvTarget, limitOr(p.Line2Capacity, InventoryCap))

	// Site-3 NP3 campaign: produced only as a byproduct of extra LV
	// production at the fixed conversion rate.
	np3Target := targetLevel(demand[RefS3NP3])
	if statuses[ProductFPellet] != nil && statuses[ProductFPellet].Left > Epsilon {
		np3Target = max2(np3Target, max2(NP3MinStockBeforeCampaign, NP3BatchSize))
	}
	np3Deficit := np3Target - ledger.Stock(RefS3NP3)
	if np3Deficit > 0 {
		lvLineLeft := lvLine - lvProduced
		lvAvailable := min2(lvLineLeft, ledger.Headroom(RefS3LV))
		if lvAvailable < 0 {
			lvAvailable = 0
		}
		np3 := min2(np3Deficit, ledger.Headroom(RefS3NP3))
		np3 = min2(np3, lvAvailable*NP3ConversionRate)
		if np3 > 0 {
			np3 = ledger.Deposit(RefS3NP3, np3)
			lvConsumed := np3 / NP3ConversionRate
			plan.production[RefS3NP3] = np3
			plan.production[RefS3LV] += lvConsumed
			plan.campaignNP3 = np3
			plan.campaignLV = lvConsumed
		}
	}

	// Site-1 HV.
	plan.production[RefS1HV] = pl.replenish(ledger, RefS1HV, targetLevel(demand[RefS1HV]), limitOr(p.S1HVMaxCapacity, InventoryCap))

	// Site-2 LV input: target is the larger of today's requirement and the
	// minimum trigger stock, capped at the silo ceiling by the ledger.
	s2Target := max2(targetLevel(demand[RefS2LV]), S2LVMinStockTrigger)
	plan.production[RefS2LV] = pl.replenish(ledger, RefS2LV, s2Target, p.s2InputCapacity())

	return plan
}

// replenish deposits the minimum of the stock deficit, the line capacity and
// the ceiling headroom, and returns the amount actually applied.
func (pl *planner) replenish(ledger *MaterialLedger, ref MaterialRef, target, lineCapacity float64) float64 {
	deficit := target - ledger.Stock(ref)
	if deficit <= 0 {
		return 0
	}
	produce := min2(deficit, lineCapacity)
	produce = min2(produce, ledger.Headroom(ref))
	if produce <= 0 {
		return 0
	}
	return ledger.Deposit(ref, produce)
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
