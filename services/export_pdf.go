package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"backend/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WriteRunSummaryPDF renders a printable summary of a stored run: the
// aggregates, a per-form table and a QR code that shop-floor scanners use
// to pull the run back up.
func WriteRunSummaryPDF(w io.Writer, runMeta models.CalculationRun, run models.RunResult) error {
	titleCaser := cases.Title(language.Und)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetMargins(10, 10, 10)

	// --- Header ---
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(190, 10, "CALCULATION SUMMARY")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(95, 6, fmt.Sprintf("Source file: %s", runMeta.OriginalFilename))
	pdf.Cell(95, 6, fmt.Sprintf("Run: %s", runMeta.UUID))
	pdf.Ln(6)
	pdf.Cell(95, 6, fmt.Sprintf("Processed: %s", runMeta.CreatedAt.Format("02-Jan-2006 15:04")))
	pdf.Ln(10)

	// --- Aggregates ---
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(95, 8, "Metric", "1", 0, "L", true, 0, "")
	pdf.CellFormat(95, 8, "Value", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	aggregates := []struct {
		label string
		value string
	}{
		{"Records", fmt.Sprintf("%d", runMeta.RecordCount)},
		{"Items distributed", fmt.Sprintf("%d", run.TotalItems)},
		{"Forms opened", fmt.Sprintf("%d", run.TotalForms)},
		{"Cutoff forms", fmt.Sprintf("%d", run.CutoffForms)},
		{"Total area", fmt.Sprintf("%.2f m2", run.TotalAreaM2)},
	}
	for _, a := range aggregates {
		pdf.CellFormat(95, 8, a.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(95, 8, a.value, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// --- Per-form table ---
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(20, 8, "Form", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 8, "Form Type", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Items", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 8, "Capacity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 8, "Area (m2)", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	gi := 0
	for _, form := range run.Assignments {
		formArea := 0.0
		for range form.Items {
			if gi < len(run.Geometry) {
				formArea += run.Geometry[gi].AreaM2
				gi++
			}
		}

		status := "full"
		if form.IsCutoff {
			status = "cutoff"
		}
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", form.FormIndex), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 8, form.FormTypeID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", len(form.Items)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", form.Capacity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, titleCaser.String(status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", formArea), "1", 1, "R", false, 0, "")
	}

	// --- QR code ---
	if err := embedRunQR(pdf, runMeta, run); err != nil {
		return err
	}

	// --- Footer ---
	pdf.SetY(-20)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(190, 6, "This is a computer-generated summary. No signature required.")
	pdf.Ln(5)
	pdf.Cell(190, 6, "Generated on: "+time.Now().Format("2006-01-02 15:04:05"))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func embedRunQR(pdf *gofpdf.Fpdf, runMeta models.CalculationRun, run models.RunResult) error {
	payload, err := json.Marshal(struct {
		ID         uint   `json:"id"`
		UUID       string `json:"uuid"`
		Filename   string `json:"filename"`
		TotalForms int    `json:"total_forms"`
	}{runMeta.ID, runMeta.UUID, runMeta.Filename, run.TotalForms})
	if err != nil {
		return fmt.Errorf("marshal qr payload: %w", err)
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("run-qr", opts, bytes.NewReader(png))
	pdf.Ln(6)
	pdf.ImageOptions("run-qr", 10, pdf.GetY(), 30, 30, false, opts, 0, "")
	return nil
}
