// Package output renders plan results as text, JSON or CSV.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyowon/smartsched/pkg/sim"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Elapsed   time.Duration
}

// Generate creates output in the specified format
func Generate(result *sim.RunResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *sim.RunResult, config Config) error {
	report := RenderReport(result)
	fmt.Print(report)
	if config.Verbose {
		fmt.Printf("\nPlan computed in %v\n", config.Elapsed)
	}

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		filename := filepath.Join(config.OutputDir, "plan_report.txt")
		if err := os.WriteFile(filename, []byte(report), 0644); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
		if config.Verbose {
			fmt.Printf("Report saved to: %s\n", filename)
		}
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *sim.RunResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "plan_result.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("JSON results saved to: %s\n", filename)
	}

	return nil
}

// generateCSVOutput creates one CSV file per site plan plus a summary file
func generateCSVOutput(result *sim.RunResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, table := range BuildSiteTables(result) {
		filename := filepath.Join(config.OutputDir,
			fmt.Sprintf("plan_%s.csv", strings.ToLower(table.Site.String())))
		if err := writeCSV(filename, table.Headers, table.Rows); err != nil {
			return fmt.Errorf("failed to write %s plan CSV: %w", table.Site, err)
		}
		written = append(written, filename)
	}

	summaryFile := filepath.Join(config.OutputDir, "summary.csv")
	if err := writeSummaryCSV(result.Summary, summaryFile); err != nil {
		return fmt.Errorf("failed to write summary CSV: %w", err)
	}
	written = append(written, summaryFile)

	if config.Verbose {
		fmt.Printf("CSV results saved to:\n")
		for _, f := range written {
			fmt.Printf("  %s\n", f)
		}
	}

	return nil
}

func writeCSV(filename string, headers []string, rows [][]string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeSummaryCSV(summary sim.RunSummary, filename string) error {
	rows := make([][]string, 0, len(summary.Products))
	for _, p := range summary.Products {
		rows = append(rows, []string{
			p.Name,
			fmtQty(p.Target),
			fmtQty(p.Produced),
			fmtQty(p.Remaining),
			p.Achievement.String(),
		})
	}
	return writeCSV(filename, []string{"Product", "Target", "Produced", "Remaining", "Achievement"}, rows)
}
