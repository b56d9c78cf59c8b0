package commands

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hyowon/smartsched/pkg/sim"
)

// quantityInput returns a huh.Input for a numeric quantity field. The field
// is pre-populated from the current parameter value and free-form: parsing
// is deferred to applyFormValues so a typo degrades to zero instead of
// blocking the form.
func quantityInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value)
}

// planFormValues holds the raw string state of the interactive plan form.
type planFormValues struct {
	LVPackTarget  string
	CPelletTarget string
	FPelletTarget string
	GPelletTarget string
	HPelletTarget string
	LLVPackTarget string

	FPelletDailyLimit string
	GPelletDailyLimit string
	HPelletDailyLimit string

	Line3Capacity        string
	Line2Capacity        string
	FLineCapacity        string
	CLineCapacity        string
	GranuleLineCapacity  string
	S2DailyInput         string
	S2EmergencyInput     string
	CombinedPackCapacity string
	S1HVMaxCapacity      string

	HorizonDays   string
	EmergencyMode bool
}

func formatQty(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func newPlanFormValues(p sim.Params) planFormValues {
	return planFormValues{
		LVPackTarget:  formatQty(p.LVPackTarget),
		CPelletTarget: formatQty(p.CPelletTarget),
		FPelletTarget: formatQty(p.FPelletTarget),
		GPelletTarget: formatQty(p.GPelletTarget),
		HPelletTarget: formatQty(p.HPelletTarget),
		LLVPackTarget: formatQty(p.LLVPackTarget),

		FPelletDailyLimit: formatQty(p.FPelletDailyLimit),
		GPelletDailyLimit: formatQty(p.GPelletDailyLimit),
		HPelletDailyLimit: formatQty(p.HPelletDailyLimit),

		Line3Capacity:        formatQty(p.Line3Capacity),
		Line2Capacity:        formatQty(p.Line2Capacity),
		FLineCapacity:        formatQty(p.FLineCapacity),
		CLineCapacity:        formatQty(p.CLineCapacity),
		GranuleLineCapacity:  formatQty(p.GranuleLineCapacity),
		S2DailyInput:         formatQty(p.S2DailyInput),
		S2EmergencyInput:     formatQty(p.S2EmergencyInput),
		CombinedPackCapacity: formatQty(p.CombinedPackCapacity),
		S1HVMaxCapacity:      formatQty(p.S1HVMaxCapacity),

		HorizonDays:   strconv.Itoa(p.HorizonDays),
		EmergencyMode: p.EmergencyMode,
	}
}

// planForm builds the interactive parameter form, grouped the way the
// operators think about the plant: targets, limits, then line capacities.
func planForm(v *planFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			quantityInput("LV pack target", &v.LVPackTarget),
			quantityInput("C pellet target", &v.CPelletTarget),
			quantityInput("F pellet target", &v.FPelletTarget),
			quantityInput("G pellet target", &v.GPelletTarget),
			quantityInput("H pellet target", &v.HPelletTarget),
			quantityInput("LLV pack target", &v.LLVPackTarget),
		).Title("Production targets"),
		huh.NewGroup(
			quantityInput("F pellet daily limit", &v.FPelletDailyLimit),
			quantityInput("G pellet daily limit", &v.GPelletDailyLimit),
			quantityInput("H pellet daily limit", &v.HPelletDailyLimit),
		).Title("Daily limits"),
		huh.NewGroup(
			quantityInput("Line 3 capacity (S3 LV)", &v.Line3Capacity),
			quantityInput("Line 2 capacity (S3 LLV)", &v.Line2Capacity),
			quantityInput("F line capacity", &v.FLineCapacity),
			quantityInput("C line capacity", &v.CLineCapacity),
			quantityInput("Granule line capacity", &v.GranuleLineCapacity),
			quantityInput("S2 daily input", &v.S2DailyInput),
			quantityInput("S2 emergency input", &v.S2EmergencyInput),
			quantityInput("Combined pack capacity", &v.CombinedPackCapacity),
			quantityInput("S1 HV max capacity", &v.S1HVMaxCapacity),
		).Title("Line capacities"),
		huh.NewGroup(
			quantityInput("Horizon days", &v.HorizonDays),
			huh.NewConfirm().
				Title("Emergency S2 input mode").
				Value(&v.EmergencyMode),
		).Title("Run options"),
	).WithShowHelp(false)
}

// parseQtyField parses a form quantity. Blank or malformed input degrades
// to zero with a warning rather than aborting the run.
func parseQtyField(logger *zap.Logger, name, raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		logger.Warn("invalid quantity, using 0",
			zap.String("field", name),
			zap.String("value", raw))
		return 0
	}
	return v
}

// applyFormValues parses the collected form state onto the parameters.
func applyFormValues(logger *zap.Logger, v planFormValues, p sim.Params) sim.Params {
	p.LVPackTarget = parseQtyField(logger, "lv_pack_target", v.LVPackTarget)
	p.CPelletTarget = parseQtyField(logger, "c_pellet_target", v.CPelletTarget)
	p.FPelletTarget = parseQtyField(logger, "f_pellet_target", v.FPelletTarget)
	p.GPelletTarget = parseQtyField(logger, "g_pellet_target", v.GPelletTarget)
	p.HPelletTarget = parseQtyField(logger, "h_pellet_target", v.HPelletTarget)
	p.LLVPackTarget = parseQtyField(logger, "llv_pack_target", v.LLVPackTarget)

	p.FPelletDailyLimit = parseQtyField(logger, "f_pellet_daily_limit", v.FPelletDailyLimit)
	p.GPelletDailyLimit = parseQtyField(logger, "g_pellet_daily_limit", v.GPelletDailyLimit)
	p.HPelletDailyLimit = parseQtyField(logger, "h_pellet_daily_limit", v.HPelletDailyLimit)

	p.Line3Capacity = parseQtyField(logger, "line3_capacity", v.Line3Capacity)
	p.Line2Capacity = parseQtyField(logger, "line2_capacity", v.Line2Capacity)
	p.FLineCapacity = parseQtyField(logger, "f_line_capacity", v.FLineCapacity)
	p.CLineCapacity = parseQtyField(logger, "c_line_capacity", v.CLineCapacity)
	p.GranuleLineCapacity = parseQtyField(logger, "granule_line_capacity", v.GranuleLineCapacity)
	p.S2DailyInput = parseQtyField(logger, "s2_daily_input", v.S2DailyInput)
	p.S2EmergencyInput = parseQtyField(logger, "s2_emergency_input", v.S2EmergencyInput)
	p.CombinedPackCapacity = parseQtyField(logger, "combined_pack_capacity", v.CombinedPackCapacity)
	p.S1HVMaxCapacity = parseQtyField(logger, "s1_hv_max_capacity", v.S1HVMaxCapacity)

	if horizon, err := strconv.Atoi(strings.TrimSpace(v.HorizonDays)); err == nil && horizon > 0 {
		p.HorizonDays = horizon
	} else {
		logger.Warn("invalid horizon, keeping default",
			zap.String("value", v.HorizonDays),
			zap.Int("default", p.HorizonDays))
	}
	p.EmergencyMode = v.EmergencyMode

	return p
}
