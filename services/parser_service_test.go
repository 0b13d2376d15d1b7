package services

import (
	"bytes"
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseItemName(t *testing.T) {
	rec, err := ParseItemName("PK25_1200x3000x150_2")
	require.NoError(t, err)

	assert.Equal(t, "PK25_1200x3000", rec.ItemID)
	assert.Equal(t, 1200.0, rec.WidthMM)
	assert.Equal(t, 3000.0, rec.HeightMM)
	assert.Equal(t, 150.0, rec.ProjectionMM)
	assert.Equal(t, 1, rec.Quantity)
	assert.Equal(t, "2", rec.Type)
}

func TestParseItemNameRejectsMalformedTokens(t *testing.T) {
	bad := []string{
		"",
		"PK25",
		"PK25_1200x3000_2",      // missing projection
		"PK25_1200x3000x150",    // missing form digit
		"PK25_0x3000x150_2",     // zero width
		"PK25_1200x3000x150_2x", // trailing junk
	}
	for _, token := range bad {
		_, err := ParseItemName(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestParseTXTAggregatesAndKeepsOrder(t *testing.T) {
	content := "B_500x900x0_1\nA_1000x2000x100_1 B_500x900x0_1\nB_500x900x0_1"

	records, err := ParseTXT(content)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// first occurrence fixes the order
	assert.Equal(t, "B_500x900", records[0].ItemID)
	assert.Equal(t, 3, records[0].Quantity)
	assert.Equal(t, "A_1000x2000", records[1].ItemID)
	assert.Equal(t, 1, records[1].Quantity)
}

func TestParseTXTEmptyFile(t *testing.T) {
	_, err := ParseTXT("   \n\t  ")
	assert.Error(t, err)
}

func buildWorkbook(t *testing.T, header []interface{}, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	header := []interface{}{"ItemName", "Quantity", "Width_m", "Length_m", "Projection_m", "FormType"}
	data := buildWorkbook(t, header, [][]interface{}{
		{"PK25_1200x3000", 13, 1.2, 3.0, 0.15, "2"},
		{"PB10_500x900", 2, 0.5, 0.9, "", ""},
	})

	records, err := ParseXLSX(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, models.ItemRecord{
		ItemID:       "PK25_1200x3000",
		WidthMM:      1200,
		HeightMM:     3000,
		ProjectionMM: 150,
		Quantity:     13,
		Type:         "2",
	}, records[0])
	assert.Equal(t, 2, records[1].Quantity)
	assert.Zero(t, records[1].ProjectionMM)
}

func TestParseXLSXMissingColumn(t *testing.T) {
	header := []interface{}{"ItemName", "Quantity", "Width_m", "Length_m"}
	data := buildWorkbook(t, header, [][]interface{}{
		{"PK25_1200x3000", 1, 1.2, 3.0},
	})

	_, err := ParseXLSX(bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Projection_m")
}

func TestParseXLSXBadQuantity(t *testing.T) {
	header := []interface{}{"ItemName", "Quantity", "Width_m", "Length_m", "Projection_m", "FormType"}
	data := buildWorkbook(t, header, [][]interface{}{
		{"PK25_1200x3000", 0, 1.2, 3.0, 0, ""},
	})

	_, err := ParseXLSX(bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseFileDispatch(t *testing.T) {
	records, err := ParseFile("input.TXT", []byte("A_100x200x0_1"))
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = ParseFile("input.csv", []byte("whatever"))
	assert.Error(t, err)
}
