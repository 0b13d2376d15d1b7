package services

import (
	"fmt"
	"io"
	"math"
	"sort"

	"backend/models"

	"github.com/xuri/excelize/v2"
)

const resultsSheet = "Results"
const summarySheet = "Summary"

func round2(x float64) float64 { return math.Round(x*100) / 100.0 }

// WriteRunWorkbook serializes a run result into an xlsx workbook: a
// Results sheet with one row per assigned instance and a Summary sheet
// with the run aggregates.
func WriteRunWorkbook(w io.Writer, records []models.ItemRecord, run models.RunResult) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), resultsSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	header := []interface{}{
		"Form", "FormType", "Cutoff", "ItemName", "Instance",
		"Width_mm", "Length_mm", "Unfolded_Width_mm", "Unfolded_Length_mm", "Area_m2",
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	index := make(map[string]models.ItemRecord, len(records))
	for _, rec := range records {
		index[rec.ItemID] = rec
	}

	rowNum := 1
	gi := 0
	for _, form := range run.Assignments {
		for _, it := range form.Items {
			rowNum++
			rec := index[it.ItemID]

			var geo models.GeometryResult
			if gi < len(run.Geometry) {
				geo = run.Geometry[gi]
				gi++
			}

			row := []interface{}{
				form.FormIndex, form.FormTypeID, form.IsCutoff, it.ItemID, it.InstanceIndex + 1,
				rec.WidthMM, rec.HeightMM,
				round2(geo.UnfoldedWidthMM), round2(geo.UnfoldedHeightMM), round2(geo.AreaM2),
			}
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
				return fmt.Errorf("write row %d: %w", rowNum, err)
			}
		}
	}

	summary := [][]interface{}{
		{"Records", len(records)},
		{"Total items", run.TotalItems},
		{"Total forms", run.TotalForms},
		{"Cutoff forms", run.CutoffForms},
		{"Total area, m2", round2(run.TotalAreaM2)},
	}
	for _, ft := range sortedTypeIDs(run.FormsByType) {
		summary = append(summary, []interface{}{
			fmt.Sprintf("Forms of %s", ft), run.FormsByType[ft],
		})
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func sortedTypeIDs(byType map[string]int) []string {
	ids := make([]string, 0, len(byType))
	for id := range byType {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
