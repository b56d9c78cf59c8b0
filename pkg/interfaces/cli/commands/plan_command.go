package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyowon/smartsched/pkg/infrastructure/config"
	"github.com/hyowon/smartsched/pkg/infrastructure/events"
	"github.com/hyowon/smartsched/pkg/interfaces/cli/output"
	"github.com/hyowon/smartsched/pkg/sim"
)

func newPlanCmd(app *App) *cobra.Command {
	defaults := sim.DefaultParams()

	var (
		configPath  string
		interactive bool
		format      string
		outputDir   string
		verbose     bool

		lvTarget  = defaults.LVPackTarget
		cTarget   = defaults.CPelletTarget
		fTarget   = defaults.FPelletTarget
		gTarget   = defaults.GPelletTarget
		hTarget   = defaults.HPelletTarget
		llvTarget = defaults.LLVPackTarget

		fLimit = defaults.FPelletDailyLimit
		gLimit = defaults.GPelletDailyLimit
		hLimit = defaults.HPelletDailyLimit

		line3Cap    = defaults.Line3Capacity
		line2Cap    = defaults.Line2Capacity
		fLineCap    = defaults.FLineCapacity
		cLineCap    = defaults.CLineCapacity
		granuleCap  = defaults.GranuleLineCapacity
		s2Input     = defaults.S2DailyInput
		s2Emergency = defaults.S2EmergencyInput
		combinedCap = defaults.CombinedPackCapacity
		s1HVMax     = defaults.S1HVMaxCapacity

		emergency = defaults.EmergencyMode
		startDate string
		horizon   = defaults.HorizonDays
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Simulate a production run and report the daily plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := defaults

			if configPath != "" {
				loaded, err := config.LoadPlanParams(configPath)
				if err != nil {
					return err
				}
				params = loaded
			}

			// Flags set on the command line win over the config file.
			flagOverrides := map[string]func(){
				"lv-target":      func() { params.LVPackTarget = lvTarget },
				"c-target":       func() { params.CPelletTarget = cTarget },
				"f-target":       func() { params.FPelletTarget = fTarget },
				"g-target":       func() { params.GPelletTarget = gTarget },
				"h-target":       func() { params.HPelletTarget = hTarget },
				"llv-target":     func() { params.LLVPackTarget = llvTarget },
				"f-daily-limit":  func() { params.FPelletDailyLimit = fLimit },
				"g-daily-limit":  func() { params.GPelletDailyLimit = gLimit },
				"h-daily-limit":  func() { params.HPelletDailyLimit = hLimit },
				"line3-capacity": func() { params.Line3Capacity = line3Cap },
				"line2-capacity": func() { params.Line2Capacity = line2Cap },
				"f-line-capacity": func() {
					params.FLineCapacity = fLineCap
				},
				"c-line-capacity": func() {
					params.CLineCapacity = cLineCap
				},
				"granule-capacity":  func() { params.GranuleLineCapacity = granuleCap },
				"s2-daily-input":    func() { params.S2DailyInput = s2Input },
				"s2-emergency-input": func() {
					params.S2EmergencyInput = s2Emergency
				},
				"combined-capacity": func() { params.CombinedPackCapacity = combinedCap },
				"s1-hv-max":         func() { params.S1HVMaxCapacity = s1HVMax },
				"emergency":         func() { params.EmergencyMode = emergency },
				"horizon":           func() { params.HorizonDays = horizon },
			}
			for name, apply := range flagOverrides {
				if cmd.Flags().Changed(name) {
					apply()
				}
			}
			if cmd.Flags().Changed("start-date") {
				start, err := time.Parse("2006-01-02", startDate)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", startDate, err)
				}
				params.StartDate = start
			}

			logger := app.Logger
			if verbose {
				dev, err := zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("building logger: %w", err)
				}
				defer dev.Sync()
				logger = dev
			}

			if interactive {
				values := newPlanFormValues(params)
				if err := planForm(&values).Run(); err != nil {
					return fmt.Errorf("running parameter form: %w", err)
				}
				params = applyFormValues(logger, values, params)
			}

			store := events.NewInMemoryEventStore()
			if verbose {
				if err := store.Subscribe(events.RunEventTypes(), events.NewLoggingHandler(logger)); err != nil {
					return fmt.Errorf("subscribing event logger: %w", err)
				}
			}
			engine := sim.NewEngine(
				sim.WithLogger(logger),
				sim.WithObserver(events.NewRecorder(store)),
			)

			start := time.Now()
			result, err := engine.Run(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("running simulation: %w", err)
			}
			elapsed := time.Since(start)

			return output.Generate(result, output.Config{
				Format:    format,
				OutputDir: outputDir,
				Verbose:   verbose,
				Elapsed:   elapsed,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML parameter file")
	flags.BoolVarP(&interactive, "interactive", "i", false, "edit parameters in an interactive form")
	flags.StringVarP(&format, "format", "f", "text", "output format: text, json, csv")
	flags.StringVarP(&outputDir, "output", "o", "", "directory to write result files to")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	flags.Float64Var(&lvTarget, "lv-target", lvTarget, "LV pack target quantity")
	flags.Float64Var(&cTarget, "c-target", cTarget, "C pellet target quantity")
	flags.Float64Var(&fTarget, "f-target", fTarget, "F pellet target quantity")
	flags.Float64Var(&gTarget, "g-target", gTarget, "G pellet target quantity")
	flags.Float64Var(&hTarget, "h-target", hTarget, "H pellet target quantity")
	flags.Float64Var(&llvTarget, "llv-target", llvTarget, "LLV pack target quantity")

	flags.Float64Var(&fLimit, "f-daily-limit", fLimit, "F pellet daily limit (0 = unbounded)")
	flags.Float64Var(&gLimit, "g-daily-limit", gLimit, "G pellet daily limit (0 = unbounded)")
	flags.Float64Var(&hLimit, "h-daily-limit", hLimit, "H pellet daily limit (0 = unbounded)")

	flags.Float64Var(&line3Cap, "line3-capacity", line3Cap, "S3 LV production line capacity")
	flags.Float64Var(&line2Cap, "line2-capacity", line2Cap, "S3 LLV production line capacity")
	flags.Float64Var(&fLineCap, "f-line-capacity", fLineCap, "F pellet line capacity")
	flags.Float64Var(&cLineCap, "c-line-capacity", cLineCap, "C pellet line capacity")
	flags.Float64Var(&granuleCap, "granule-capacity", granuleCap, "granule packing pool capacity")
	flags.Float64Var(&s2Input, "s2-daily-input", s2Input, "Site-2 LV daily input capacity")
	flags.Float64Var(&s2Emergency, "s2-emergency-input", s2Emergency, "extra Site-2 LV input while emergency mode is on")
	flags.Float64Var(&combinedCap, "combined-capacity", combinedCap, "shared S1+S2 packing pool capacity")
	flags.Float64Var(&s1HVMax, "s1-hv-max", s1HVMax, "S1 HV line capacity and direct-pack maximum")

	flags.BoolVar(&emergency, "emergency", emergency, "enable the S2 emergency input allowance")
	flags.StringVar(&startDate, "start-date", "", "plan start date (YYYY-MM-DD, default today)")
	flags.IntVar(&horizon, "horizon", horizon, "planning horizon in days")

	return cmd
}
