package sim

// summarize derives the read-only run summary from the final product
// statuses.
func summarize(order []ProductID, statuses map[ProductID]*ProductStatus, switches int) RunSummary {
	var (
		products    = make([]ProductSummary, 0, len(order))
		totalTarget float64
		produced    float64 // toward positive targets only
		anyProduced bool
		allMet      = true
	)

	for _, id := range order {
		st := statuses[id]
		remaining := st.Left
		if remaining < 0 {
			remaining = 0
		}

		achievement := AchievementNotApplicable
		if st.TargetOrig > 0 {
			totalTarget += st.TargetOrig
			produced += st.PackedSum
			if remaining <= Epsilon {
				achievement = AchievementMet
			} else {
				achievement = AchievementNotMet
				allMet = false
			}
		}
		if st.PackedSum > 0 {
			anyProduced = true
		}

		products = append(products, ProductSummary{
			ID:          id,
			Name:        st.Name,
			Target:      st.TargetOrig,
			Produced:    st.PackedSum,
			Remaining:   remaining,
			Achievement: achievement,
		})
	}

	var rate float64
	switch {
	case totalTarget > 0:
		rate = produced / totalTarget * 100
	case anyProduced:
		rate = 100
	default:
		rate = 0
	}

	completion := CompletionPartial
	switch {
	case totalTarget == 0:
		completion = CompletionNotApplicable
	case allMet:
		completion = CompletionFull
	}

	return RunSummary{
		Products:        products,
		Switches:        switches,
		AchievementRate: rate,
		Completion:      completion,
	}
}
