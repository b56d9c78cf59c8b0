package sim

// dayAllocator runs the fixed seven-step allocation pass for one day. Pool
// remainders are explicit accumulators threaded from step to step; they are
// never recomputed from product state.
type dayAllocator struct {
	params   Params
	products map[ProductID]*Product
	statuses map[ProductID]*ProductStatus
	ledger   *MaterialLedger
	switches *int
	packed   map[ProductID]float64
}

// allocateDay performs the day's allocation in the fixed priority order:
// H and G pellets and the direct HV pack against the shared combined pool,
// then the F and C pellets on their own lines, then the LV and LLV packs
// against the granule pool.
func allocateDay(
	params Params,
	products map[ProductID]*Product,
	statuses map[ProductID]*ProductStatus,
	ledger *MaterialLedger,
	switches *int,
) map[ProductID]float64 {
	a := &dayAllocator{
		params:   params,
		products: products,
		statuses: statuses,
		ledger:   ledger,
		switches: switches,
		packed:   make(map[ProductID]float64, len(products)),
	}

	unbounded := maxCapacity(statuses)

	combinedLeft := params.combinedPool()
	combinedLeft -= a.step(ProductHPellet, min2(combinedLeft, limitOr(products[ProductHPellet].DailyLimit, combinedLeft)))
	combinedLeft -= a.step(ProductGPellet, min2(combinedLeft, limitOr(products[ProductGPellet].DailyLimit, combinedLeft)))
	a.step(ProductHVPack, min2(combinedLeft, limitOr(params.S1HVMaxCapacity, combinedLeft)))

	a.step(ProductFPellet, min2(
		limitOr(params.FLineCapacity, unbounded),
		limitOr(products[ProductFPellet].DailyLimit, unbounded),
	))
	a.step(ProductCPellet, limitOr(params.CLineCapacity, unbounded))

	granuleLeft := limitOr(params.GranuleLineCapacity, unbounded)
	granuleLeft -= a.step(ProductLVPack, granuleLeft)
	a.step(ProductLLVPack, granuleLeft)

	return a.packed
}

// step allocates one product against the capacity available to it at this
// point of the pass and returns the amount drawn.
func (a *dayAllocator) step(id ProductID, capacity float64) float64 {
	prod := a.products[id]
	st := a.statuses[id]

	amount := capacity
	if prod.HasTarget {
		if st.Left <= 0 {
			a.packed[id] = 0
			return 0
		}
		amount = min2(amount, st.Left)
	}

	// The recipe is produced as a whole unit: the bottleneck ingredient
	// caps the ratio-scaled amount for every ingredient.
	for _, line := range prod.Recipe {
		available := a.ledger.Stock(line.Ref) - line.ReserveFloor
		if available < 0 {
			available = 0
		}
		amount = min2(amount, available/line.QtyPerUnit)
	}

	if amount <= 0 {
		a.packed[id] = 0
		return 0
	}

	for _, line := range prod.Recipe {
		a.ledger.Withdraw(line.Ref, line.QtyPerUnit*amount)
	}

	st.PackedToday = amount
	st.PackedSum += amount
	if prod.HasTarget {
		st.Left = st.TargetOrig - st.PackedSum
		if st.Left < 0 {
			st.Left = 0
		}
	}
	*a.switches++

	a.packed[id] = amount
	return amount
}

// maxCapacity is a stand-in bound for "unbounded" line limits: no product
// can pack more than its remaining target in a day, so the sum of remaining
// targets dominates any single allocation.
func maxCapacity(statuses map[ProductID]*ProductStatus) float64 {
	var total float64
	for _, st := range statuses {
		total += st.Left
	}
	if total <= 0 {
		return 0
	}
	return total
}
