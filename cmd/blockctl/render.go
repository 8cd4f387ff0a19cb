package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/blocksolve/blocksolve/internal/optimizer"
)

func renderSingleBlock(result *optimizer.SingleBlockResult, quiet bool, out string) {
	if out != "" {
		writeJSON(out, result)
	}
	if quiet {
		return
	}

	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)

	titleColor.Println("\n=== Single-Block Result ===")
	renderCombinationTable(result.Combination, result.AverageEfficiencyByType)
	successColor.Printf("\nTotal income: %d   Total size: %d   Total storage: %.0f\n",
		result.TotalIncome, result.TotalSize, result.TotalStorage)
	if result.DebugInfo != nil {
		fmt.Printf("Debug: %d size levels tracked, %dms elapsed\n", len(result.DebugInfo.DPStateCounts), result.DebugInfo.DurationMs)
	}
}

func renderMultiBlock(result *optimizer.MultiBlockResult, quiet bool, out string) {
	if out != "" {
		writeJSON(out, result)
	}
	if quiet {
		return
	}

	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)

	for _, block := range result.Blocks {
		titleColor.Printf("\n=== Block %d ===\n", block.BlockNumber)
		renderCombinationTable(block.Combination, block.AverageEfficiencyByType)
		fmt.Printf("Block income: %d   Block size: %d\n", block.TotalIncome, block.TotalSize)
	}
	successColor.Printf("\nAggregate income: %d\n", result.AggregateTotalIncome)
}

func renderCombinationTable(items []optimizer.CombinationItem, efficiency map[string]string) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Name", "Level", "Count", "Size", "Income/unit", "Total income", "Worker type", "Efficiency"}),
	)
	for _, item := range items {
		eff := efficiency[item.Name]
		if eff == "" {
			eff = "N/A"
		}
		row := []string{
			item.Name,
			fmt.Sprintf("%d", item.Level),
			fmt.Sprintf("%d", item.Count),
			fmt.Sprintf("%d", item.Size),
			fmt.Sprintf("%.1f", item.IncomePerBuilding),
			fmt.Sprintf("%.1f", item.TotalIncome),
			item.WorkerType,
			eff,
		}
		_ = table.Append(row)
	}
	_ = table.Render()
}

func writeJSON(path string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("failed to encode result: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fatalf("failed to write %q: %v", path, err)
	}
}
