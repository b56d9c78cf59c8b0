package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hyowon/smartsched/pkg/sim"
)

// fmtQty rounds a quantity to one decimal place for display.
func fmtQty(v float64) string {
	return decimal.NewFromFloat(v).Round(1).String()
}

// SiteTable describes one per-site daily table of the plan report.
type SiteTable struct {
	Site    sim.Site
	Headers []string
	Rows    [][]string
}

// BuildSiteTables lays the day records out as one table per site, with a
// production, stock and packed column for every cell that belongs there.
func BuildSiteTables(result *sim.RunResult) []SiteTable {
	s1 := SiteTable{
		Site:    sim.SiteS1,
		Headers: []string{"Date", "HV In", "HV Stock", "HV Pack", "H Pellet", "G Pellet"},
	}
	s2 := SiteTable{
		Site:    sim.SiteS2,
		Headers: []string{"Date", "LV In", "LV Stock"},
	}
	s3 := SiteTable{
		Site: sim.SiteS3,
		Headers: []string{
			"Date", "LV In", "LV Stock", "LLV In", "LLV Stock",
			"NP3 In", "NP3 Stock", "C Pellet", "F Pellet", "LV Pack", "LLV Pack",
		},
	}

	for _, day := range result.Days {
		date := day.Date.Format("2006-01-02")

		s1.Rows = append(s1.Rows, []string{
			date,
			fmtQty(day.Production[sim.RefS1HV]),
			fmtQty(day.Stocks[sim.RefS1HV]),
			fmtQty(day.Packed[sim.ProductHVPack]),
			fmtQty(day.Packed[sim.ProductHPellet]),
			fmtQty(day.Packed[sim.ProductGPellet]),
		})
		s2.Rows = append(s2.Rows, []string{
			date,
			fmtQty(day.Production[sim.RefS2LV]),
			fmtQty(day.Stocks[sim.RefS2LV]),
		})
		s3.Rows = append(s3.Rows, []string{
			date,
			fmtQty(day.Production[sim.RefS3LV]),
			fmtQty(day.Stocks[sim.RefS3LV]),
			fmtQty(day.Production[sim.RefS3LLV]),
			fmtQty(day.Stocks[sim.RefS3LLV]),
			fmtQty(day.Production[sim.RefS3NP3]),
			fmtQty(day.Stocks[sim.RefS3NP3]),
			fmtQty(day.Packed[sim.ProductCPellet]),
			fmtQty(day.Packed[sim.ProductFPellet]),
			fmtQty(day.Packed[sim.ProductLVPack]),
			fmtQty(day.Packed[sim.ProductLLVPack]),
		})
	}

	return []SiteTable{s1, s2, s3}
}

// RenderSummary renders the end-of-run summary block.
func RenderSummary(summary sim.RunSummary, days int) string {
	var b strings.Builder

	b.WriteString(Header("Run Summary"))
	b.WriteString("\n\n")

	headers := []string{"Product", "Target", "Produced", "Remaining", "Status"}
	rows := make([][]string, 0, len(summary.Products))
	for _, p := range summary.Products {
		rows = append(rows, []string{
			p.Name,
			fmtQty(p.Target),
			fmtQty(p.Produced),
			fmtQty(p.Remaining),
			AchievementIndicator(p.Achievement),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")

	var unmet []string
	for _, p := range summary.Products {
		if p.Achievement == sim.AchievementNotMet {
			unmet = append(unmet, fmt.Sprintf("%s %s short", p.Name, fmtQty(p.Remaining)))
		}
	}
	if len(unmet) > 0 {
		b.WriteString(StyleRed.Render("Shortfall: " + strings.Join(unmet, ", ")))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Days simulated:   %d\n", days)
	fmt.Fprintf(&b, "Mode switches:    %d\n", summary.Switches)
	fmt.Fprintf(&b, "Achievement rate: %s%%\n", fmtQty(summary.AchievementRate))
	fmt.Fprintf(&b, "Completion:       %s\n", CompletionIndicator(summary.Completion))

	return b.String()
}

// RenderReport renders the full plan report: the summary followed by one
// daily table per site.
func RenderReport(result *sim.RunResult) string {
	var b strings.Builder

	b.WriteString(RenderSummary(result.Summary, len(result.Days)))
	b.WriteString("\n")

	for _, table := range BuildSiteTables(result) {
		b.WriteString(Header(fmt.Sprintf("Site %s Daily Plan", table.Site)))
		b.WriteString("\n\n")
		b.WriteString(RenderTable(table.Headers, table.Rows))
		b.WriteString("\n")
	}

	return b.String()
}
