package sim

// buildProducts materializes the fixed seven-product table from run
// parameters. The returned order is the reporting order; the allocation
// order is fixed separately in allocateDay.
func buildProducts(p Params) (map[ProductID]*Product, []ProductID) {
	table := []*Product{
		{
			ID:        ProductCPellet,
			Name:      "C Pellet",
			Pool:      PoolCLine,
			Recipe:    []RecipeLine{{Ref: RefS3LLV, QtyPerUnit: 1.0, ReserveFloor: LLVSafetyStockForC}},
			Target:    p.CPelletTarget,
			HasTarget: true,
		},
		{
			ID:         ProductFPellet,
			Name:       "F Pellet",
			Pool:       PoolFLine,
			Recipe:     []RecipeLine{{Ref: RefS3NP3, QtyPerUnit: 1.0}},
			Target:     p.FPelletTarget,
			DailyLimit: p.FPelletDailyLimit,
			HasTarget:  true,
		},
		{
			ID:   ProductHPellet,
			Name: "H Pellet",
			Pool: PoolCombined,
			Recipe: []RecipeLine{
				{Ref: RefS1HV, QtyPerUnit: 0.5},
				{Ref: RefS2LV, QtyPerUnit: 0.5},
			},
			Target:     p.HPelletTarget,
			DailyLimit: p.HPelletDailyLimit,
			HasTarget:  true,
		},
		{
			ID:         ProductGPellet,
			Name:       "G Pellet",
			Pool:       PoolCombined,
			Recipe:     []RecipeLine{{Ref: RefS1HV, QtyPerUnit: 1.0}},
			Target:     p.GPelletTarget,
			DailyLimit: p.GPelletDailyLimit,
			HasTarget:  true,
		},
		{
			ID:        ProductLVPack,
			Name:      "LV Pack",
			Pool:      PoolGranule,
			Recipe:    []RecipeLine{{Ref: RefS3LV, QtyPerUnit: 1.0}},
			Target:    p.LVPackTarget,
			HasTarget: true,
		},
		{
			ID:        ProductLLVPack,
			Name:      "LLV Pack",
			Pool:      PoolGranule,
			Recipe:    []RecipeLine{{Ref: RefS3LLV, QtyPerUnit: 1.0}},
			Target:    p.LLVPackTarget,
			HasTarget: true,
		},
		{
			// Pure pass-through packing: no target, consumes whatever
			// remains of the shared pool and HV stock.
			ID:        ProductHVPack,
			Name:      "HV Pack",
			Pool:      PoolCombined,
			Recipe:    []RecipeLine{{Ref: RefS1HV, QtyPerUnit: 1.0}},
			HasTarget: false,
		},
	}

	products := make(map[ProductID]*Product, len(table))
	order := make([]ProductID, 0, len(table))
	for _, prod := range table {
		products[prod.ID] = prod
		order = append(order, prod.ID)
	}
	return products, order
}

// newStatuses builds the mutable per-product run state from the product
// table.
func newStatuses(products map[ProductID]*Product) map[ProductID]*ProductStatus {
	statuses := make(map[ProductID]*ProductStatus, len(products))
	for id, prod := range products {
		statuses[id] = &ProductStatus{
			Name:       prod.Name,
			TargetOrig: prod.Target,
			Left:       prod.Target,
		}
	}
	return statuses
}

// plannedLineCapacity is the static per-day capacity available to a product
// for planning purposes, before any same-day pool contention.
func plannedLineCapacity(p Params, prod *Product) float64 {
	switch prod.Pool {
	case PoolCombined:
		return min2(p.combinedPool(), limitOr(prod.DailyLimit, p.combinedPool()))
	case PoolGranule:
		return limitOr(p.GranuleLineCapacity, prod.Target)
	case PoolCLine:
		return limitOr(p.CLineCapacity, prod.Target)
	case PoolFLine:
		return min2(limitOr(p.FLineCapacity, prod.Target), limitOr(prod.DailyLimit, prod.Target))
	default:
		return 0
	}
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
