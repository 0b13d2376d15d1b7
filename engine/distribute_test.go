package engine

import (
	"errors"
	"reflect"
	"testing"

	"backend/models"
)

func testCatalog() models.FormCatalog {
	return models.FormCatalog{Types: []models.FormType{
		{TypeID: "TYPE_1", Capacity: 4, CutoffTypeID: "CUTOFF_1"},
		{TypeID: "TYPE_2", Capacity: 5, CutoffTypeID: "CUTOFF_2"},
		{TypeID: "TYPE_3", Capacity: 6, CutoffTypeID: "CUTOFF_3"},
	}}
}

type wantForm struct {
	formTypeID string
	capacity   int
	items      int
	isCutoff   bool
}

func TestDistribute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		quantity int
		want     []wantForm
	}{
		{
			// 13 = 6 + 6 + 1: two full largest forms, remainder into the
			// smallest capacity >= 1, flagged cutoff.
			name:     "TwoFullFormsPlusCutoffRemainder",
			quantity: 13,
			want: []wantForm{
				{"TYPE_3", 6, 6, false},
				{"TYPE_3", 6, 6, false},
				{"CUTOFF_1", 4, 1, true},
			},
		},
		{
			// quantity matches a capacity exactly: one full form, no cutoff.
			name:     "ExactCapacityMatch",
			quantity: 4,
			want: []wantForm{
				{"TYPE_1", 4, 4, false},
			},
		},
		{
			name:     "QuantityBelowEveryCapacity",
			quantity: 2,
			want: []wantForm{
				{"CUTOFF_1", 4, 2, true},
			},
		},
		{
			name:     "ExactLargestCapacity",
			quantity: 6,
			want: []wantForm{
				{"TYPE_3", 6, 6, false},
			},
		},
		{
			// remainder 5 skips TYPE_1 and fills TYPE_2 exactly.
			name:     "RemainderFillsMiddleTrackExactly",
			quantity: 11,
			want: []wantForm{
				{"TYPE_3", 6, 6, false},
				{"TYPE_2", 5, 5, false},
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			records := []models.ItemRecord{{ItemID: "panel_1200x3000", WidthMM: 1200, HeightMM: 3000, Quantity: tc.quantity}}

			got, err := Distribute(records, testCatalog())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d forms, got %d: %+v", len(tc.want), len(got), got)
			}
			for i, w := range tc.want {
				f := got[i]
				if f.FormIndex != i+1 {
					t.Errorf("form %d: index = %d, want %d", i, f.FormIndex, i+1)
				}
				if f.FormTypeID != w.formTypeID {
					t.Errorf("form %d: type = %s, want %s", i, f.FormTypeID, w.formTypeID)
				}
				if f.Capacity != w.capacity {
					t.Errorf("form %d: capacity = %d, want %d", i, f.Capacity, w.capacity)
				}
				if len(f.Items) != w.items {
					t.Errorf("form %d: items = %d, want %d", i, len(f.Items), w.items)
				}
				if f.IsCutoff != w.isCutoff {
					t.Errorf("form %d: cutoff = %v, want %v", i, f.IsCutoff, w.isCutoff)
				}
			}
		})
	}
}

func TestDistribute_RecordsPackIndependently(t *testing.T) {
	t.Parallel()

	records := []models.ItemRecord{
		{ItemID: "a", WidthMM: 100, HeightMM: 200, Quantity: 3},
		{ItemID: "b", WidthMM: 100, HeightMM: 200, Quantity: 3},
	}

	got, err := Distribute(records, testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two records of 3 never share one 6-capacity form: each gets its own
	// cutoff form.
	if len(got) != 2 {
		t.Fatalf("expected 2 forms, got %d", len(got))
	}
	for i, f := range got {
		if !f.IsCutoff {
			t.Errorf("form %d: expected cutoff", i)
		}
		for _, it := range f.Items {
			want := records[i].ItemID
			if it.ItemID != want {
				t.Errorf("form %d contains %s, want only %s", i, it.ItemID, want)
			}
		}
	}
}

func TestDistribute_Conservation(t *testing.T) {
	t.Parallel()

	records := []models.ItemRecord{
		{ItemID: "a", WidthMM: 100, HeightMM: 200, Quantity: 13},
		{ItemID: "b", WidthMM: 300, HeightMM: 400, Quantity: 1},
		{ItemID: "c", WidthMM: 500, HeightMM: 600, Quantity: 24},
	}

	got, err := Distribute(records, testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantTotal := 0
	for _, r := range records {
		wantTotal += r.Quantity
	}
	gotTotal := 0
	cutoffsPerRecord := make(map[string]int)
	for _, f := range got {
		if len(f.Items) > f.Capacity {
			t.Errorf("form %d holds %d items over capacity %d", f.FormIndex, len(f.Items), f.Capacity)
		}
		gotTotal += len(f.Items)
		if f.IsCutoff {
			cutoffsPerRecord[f.Items[0].ItemID]++
		}
	}
	if gotTotal != wantTotal {
		t.Fatalf("instances assigned = %d, want %d", gotTotal, wantTotal)
	}
	for id, n := range cutoffsPerRecord {
		if n > 1 {
			t.Errorf("record %s has %d cutoff forms, want at most 1", id, n)
		}
	}

	// Every instance appears exactly once.
	seen := make(map[models.ItemInstance]bool)
	for _, f := range got {
		for _, it := range f.Items {
			if seen[it] {
				t.Errorf("instance %+v assigned twice", it)
			}
			seen[it] = true
		}
	}
}

func TestDistribute_CutoffIsLastFormOfRecord(t *testing.T) {
	t.Parallel()

	records := []models.ItemRecord{
		{ItemID: "a", WidthMM: 100, HeightMM: 200, Quantity: 14},
		{ItemID: "b", WidthMM: 100, HeightMM: 200, Quantity: 7},
	}

	got, err := Distribute(records, testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lastFormOfRecord := make(map[string]int)
	for i, f := range got {
		lastFormOfRecord[f.Items[0].ItemID] = i
	}
	for i, f := range got {
		if f.IsCutoff && lastFormOfRecord[f.Items[0].ItemID] != i {
			t.Errorf("cutoff form %d is not the last form of record %s", f.FormIndex, f.Items[0].ItemID)
		}
	}
}

func TestDistribute_Deterministic(t *testing.T) {
	t.Parallel()

	records := []models.ItemRecord{
		{ItemID: "a", WidthMM: 100, HeightMM: 200, Quantity: 13},
		{ItemID: "b", WidthMM: 300, HeightMM: 400, Quantity: 9},
	}

	first, err := Distribute(records, testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Distribute(records, testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two runs over identical input differ:\n%+v\n%+v", first, second)
	}
}

func TestDistribute_CapacityTieBreaksByDeclarationOrder(t *testing.T) {
	t.Parallel()

	catalog := models.FormCatalog{Types: []models.FormType{
		{TypeID: "TYPE_A", Capacity: 4, CutoffTypeID: "CUTOFF_A"},
		{TypeID: "TYPE_B", Capacity: 4, CutoffTypeID: "CUTOFF_B"},
	}}
	records := []models.ItemRecord{{ItemID: "a", WidthMM: 100, HeightMM: 200, Quantity: 2}}

	got, err := Distribute(records, catalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].FormTypeID != "CUTOFF_A" {
		t.Fatalf("expected the first-declared track to win the tie, got %+v", got)
	}
}

func TestDistribute_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records []models.ItemRecord
	}{
		{name: "EmptyRecordList", records: nil},
		{name: "ZeroQuantity", records: []models.ItemRecord{{ItemID: "a", WidthMM: 1, HeightMM: 1, Quantity: 0}}},
		{name: "NegativeQuantity", records: []models.ItemRecord{{ItemID: "a", WidthMM: 1, HeightMM: 1, Quantity: -3}}},
		{name: "EmptyItemID", records: []models.ItemRecord{{ItemID: "  ", WidthMM: 1, HeightMM: 1, Quantity: 1}}},
		{
			name: "DuplicateItemID",
			records: []models.ItemRecord{
				{ItemID: "a", WidthMM: 1, HeightMM: 1, Quantity: 1},
				{ItemID: "a", WidthMM: 1, HeightMM: 1, Quantity: 2},
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := Distribute(tc.records, testCatalog())
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if got != nil {
				t.Fatalf("failed run must produce no output, got %+v", got)
			}
		})
	}
}

func TestDistribute_EmptyCatalogIsValidationError(t *testing.T) {
	t.Parallel()

	records := []models.ItemRecord{{ItemID: "a", WidthMM: 1, HeightMM: 1, Quantity: 1}}

	got, err := Distribute(records, models.FormCatalog{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got != nil {
		t.Fatalf("failed run must produce no output, got %+v", got)
	}
}

func TestDistribute_InvalidCatalogRejectedBeforeRecords(t *testing.T) {
	t.Parallel()

	catalog := models.FormCatalog{Types: []models.FormType{
		{TypeID: "TYPE_1", Capacity: 0, CutoffTypeID: "CUTOFF_1"},
	}}
	records := []models.ItemRecord{{ItemID: "a", WidthMM: 1, HeightMM: 1, Quantity: 1}}

	_, err := Distribute(records, catalog)
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func BenchmarkDistribute(b *testing.B) {
	records := make([]models.ItemRecord, 0, 200)
	for i := 0; i < 200; i++ {
		records = append(records, models.ItemRecord{
			ItemID:   "panel_" + string(rune('a'+i%26)) + "_" + string(rune('0'+i/26)),
			WidthMM:  1200,
			HeightMM: 3000,
			Quantity: 1 + i%40,
		})
	}
	catalog := testCatalog()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Distribute(records, catalog); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
