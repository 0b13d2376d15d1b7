package services

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"backend/models"

	"github.com/xuri/excelize/v2"
)

// Item tokens in TXT files follow name_WxLxP_F: width, length and
// projection in millimeters, then the form type digit.
var itemNamePattern = regexp.MustCompile(`^(\w+)_(\d+)x(\d+)x(\d+)_(\d+)$`)

// Required header columns of an XLSX calculation sheet. Metric columns are
// in meters and are converted to millimeters on parse.
var requiredColumns = []string{"ItemName", "Quantity", "Width_m", "Length_m", "Projection_m", "FormType"}

// ParseItemName splits one item token into a single-instance record. The
// record id keeps the name and footprint so identical products collapse
// into one record with an aggregated quantity.
func ParseItemName(token string) (models.ItemRecord, error) {
	m := itemNamePattern.FindStringSubmatch(token)
	if m == nil {
		return models.ItemRecord{}, fmt.Errorf("malformed item name %q, expected name_WxLxP_F", token)
	}

	width, _ := strconv.Atoi(m[2])
	length, _ := strconv.Atoi(m[3])
	projection, _ := strconv.Atoi(m[4])
	if width <= 0 || length <= 0 {
		return models.ItemRecord{}, fmt.Errorf("item %q has non-positive dimensions", token)
	}

	return models.ItemRecord{
		ItemID:       fmt.Sprintf("%s_%dx%d", m[1], width, length),
		WidthMM:      float64(width),
		HeightMM:     float64(length),
		ProjectionMM: float64(projection),
		Quantity:     1,
		Type:         m[5],
	}, nil
}

// ParseTXT reads whitespace-separated item tokens. Repeated tokens collapse
// into one record whose quantity is the occurrence count; first occurrence
// fixes the record order.
func ParseTXT(content string) ([]models.ItemRecord, error) {
	tokens := strings.Fields(content)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("file contains no item tokens")
	}

	var records []models.ItemRecord
	index := make(map[string]int)

	for _, token := range tokens {
		rec, err := ParseItemName(token)
		if err != nil {
			return nil, err
		}
		if i, ok := index[rec.ItemID]; ok {
			records[i].Quantity++
			continue
		}
		index[rec.ItemID] = len(records)
		records = append(records, rec)
	}

	log.Printf("[parser] loaded %d records from TXT", len(records))
	return records, nil
}

// ParseXLSX reads the first sheet of a calculation workbook. The header row
// must carry the required columns; extra columns are ignored.
func ParseXLSX(r io.Reader) ([]models.ItemRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	cell := func(row []string, name string) string {
		i := columns[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []models.ItemRecord
	for n, row := range rows[1:] {
		rowNum := n + 2
		if len(row) == 0 || cell(row, "ItemName") == "" {
			continue
		}

		quantity, err := strconv.Atoi(cell(row, "Quantity"))
		if err != nil || quantity < 1 {
			return nil, fmt.Errorf("row %d: invalid quantity %q", rowNum, cell(row, "Quantity"))
		}
		widthM, err := strconv.ParseFloat(cell(row, "Width_m"), 64)
		if err != nil || widthM <= 0 {
			return nil, fmt.Errorf("row %d: invalid width %q", rowNum, cell(row, "Width_m"))
		}
		lengthM, err := strconv.ParseFloat(cell(row, "Length_m"), 64)
		if err != nil || lengthM <= 0 {
			return nil, fmt.Errorf("row %d: invalid length %q", rowNum, cell(row, "Length_m"))
		}
		projectionM := 0.0
		if raw := cell(row, "Projection_m"); raw != "" {
			projectionM, err = strconv.ParseFloat(raw, 64)
			if err != nil || projectionM < 0 {
				return nil, fmt.Errorf("row %d: invalid projection %q", rowNum, raw)
			}
		}

		records = append(records, models.ItemRecord{
			ItemID:       cell(row, "ItemName"),
			WidthMM:      widthM * 1000,
			HeightMM:     lengthM * 1000,
			ProjectionMM: projectionM * 1000,
			Quantity:     quantity,
			Type:         cell(row, "FormType"),
		})
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %q has no usable rows", sheet)
	}

	log.Printf("[parser] loaded %d records from XLSX", len(records))
	return records, nil
}

// ParseFile dispatches on the file extension. Only .txt and .xlsx are
// supported.
func ParseFile(filename string, data []byte) ([]models.ItemRecord, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".txt"):
		return ParseTXT(string(data))
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		return ParseXLSX(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported file extension, only .txt and .xlsx are accepted")
	}
}
