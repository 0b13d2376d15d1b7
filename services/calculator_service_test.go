package services

import (
	"bytes"
	"log"
	"os"
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestProcessRecordsWarnsOnIdentityFallback(t *testing.T) {
	buf := captureLog(t)

	svc := NewCalculatorService(models.FormCatalog{Types: []models.FormType{
		{TypeID: "TYPE_1", Capacity: 4, CutoffTypeID: "CUTOFF_1"},
	}}, models.UnfoldingRules{ByType: map[string]models.UnfoldingRule{
		"2": {WidthAllowanceMM: 40},
	}})

	run, err := svc.ProcessRecords([]models.ItemRecord{
		{ItemID: "A_100x200", WidthMM: 100, HeightMM: 200, Quantity: 1, Type: "7"},
		{ItemID: "B_100x200", WidthMM: 100, HeightMM: 200, Quantity: 1, Type: "2"},
		{ItemID: "C_100x200", WidthMM: 100, HeightMM: 200, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, run.TotalItems)

	// only the typed record without a rule counts: untyped records take the
	// identity rule by definition, ruled ones do not fall back
	assert.Contains(t, buf.String(), "1 typed record(s) without an unfolding rule")
}

func TestProcessRecordsNoWarningWhenRulesCover(t *testing.T) {
	buf := captureLog(t)

	svc := NewCalculatorService(models.FormCatalog{Types: []models.FormType{
		{TypeID: "TYPE_1", Capacity: 4, CutoffTypeID: "CUTOFF_1"},
	}}, models.UnfoldingRules{ByType: map[string]models.UnfoldingRule{
		"2": {WidthAllowanceMM: 40},
	}})

	_, err := svc.ProcessRecords([]models.ItemRecord{
		{ItemID: "B_100x200", WidthMM: 100, HeightMM: 200, Quantity: 1, Type: "2"},
		{ItemID: "C_100x200", WidthMM: 100, HeightMM: 200, Quantity: 1},
	})
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "without an unfolding rule")
}
