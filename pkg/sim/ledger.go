package sim

// MaterialLedger holds per-site raw material stock levels. All operations
// saturate: stock never drops below zero and never exceeds the site's
// ceiling, and no operation can fail.
type MaterialLedger struct {
	stock    map[MaterialRef]float64
	ceilings map[MaterialRef]float64
}

// trackedRefs are every (site, material) cell the ledger snapshots,
// including the placeholder cells that stay at zero.
var trackedRefs = []MaterialRef{
	{SiteS1, MaterialHV},
	{SiteS1, MaterialLV},
	{SiteS1, MaterialLLV},
	{SiteS2, MaterialHV},
	{SiteS2, MaterialLV},
	{SiteS2, MaterialLLV},
	{SiteS3, MaterialHV},
	{SiteS3, MaterialLV},
	{SiteS3, MaterialLLV},
	{SiteS3, MaterialNP3},
}

// NewMaterialLedger creates a ledger seeded with the given initial stocks.
// Cells not present in initial start at zero.
func NewMaterialLedger(initial map[MaterialRef]float64) *MaterialLedger {
	l := &MaterialLedger{
		stock:    make(map[MaterialRef]float64, len(trackedRefs)),
		ceilings: make(map[MaterialRef]float64, len(trackedRefs)),
	}
	for _, ref := range trackedRefs {
		l.stock[ref] = 0
		switch ref {
		case RefS2LV:
			l.ceilings[ref] = Silo2Cap
		case RefS3NP3:
			l.ceilings[ref] = NP3MaxInventory
		default:
			l.ceilings[ref] = InventoryCap
		}
	}
	for ref, qty := range initial {
		l.stock[ref] = clamp(qty, 0, l.ceilings[ref])
	}
	return l
}

// Stock returns the current level of one cell.
func (l *MaterialLedger) Stock(ref MaterialRef) float64 {
	return l.stock[ref]
}

// Ceiling returns the capacity ceiling of one cell.
func (l *MaterialLedger) Ceiling(ref MaterialRef) float64 {
	return l.ceilings[ref]
}

// Headroom returns the remaining capacity under the cell's ceiling.
func (l *MaterialLedger) Headroom(ref MaterialRef) float64 {
	h := l.ceilings[ref] - l.stock[ref]
	if h < 0 {
		return 0
	}
	return h
}

// Deposit adds qty to the cell, truncating at the ceiling, and returns the
// amount actually applied. Callers must record the applied amount, not the
// requested one.
func (l *MaterialLedger) Deposit(ref MaterialRef, qty float64) float64 {
	if qty <= 0 {
		return 0
	}
	applied := qty
	if h := l.Headroom(ref); applied > h {
		applied = h
	}
	l.stock[ref] += applied
	return applied
}

// Withdraw removes qty from the cell, truncating at zero, and returns the
// amount actually withdrawn. Callers pre-check availability; the truncation
// is a soft floor, not an error.
func (l *MaterialLedger) Withdraw(ref MaterialRef, qty float64) float64 {
	if qty <= 0 {
		return 0
	}
	applied := qty
	if s := l.stock[ref]; applied > s {
		applied = s
	}
	l.stock[ref] -= applied
	return applied
}

// Snapshot copies every tracked cell.
func (l *MaterialLedger) Snapshot() map[MaterialRef]float64 {
	snap := make(map[MaterialRef]float64, len(l.stock))
	for ref, qty := range l.stock {
		snap[ref] = qty
	}
	return snap
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
