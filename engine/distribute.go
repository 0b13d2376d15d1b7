package engine

import (
	"strings"

	"backend/models"
)

// Distribute assigns every item instance to a production form. For each
// record the engine fills as many full forms as possible at the largest
// catalog capacity, then packs the remainder into one form of the smallest
// capacity that still holds it. A remainder form that stays under its
// capacity is relabeled with the track's cutoff type id. Forms are never
// shared across records, so each record's packing run stays traceable to
// one product.
//
// The walk is a single pass over records in input order and the output is
// fully determined by the input: identical records and catalog always
// produce identical assignments.
func Distribute(records []models.ItemRecord, catalog models.FormCatalog) ([]models.FormAssignment, error) {
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	byCapacity := typesByCapacity(catalog)
	largest := byCapacity[len(byCapacity)-1]

	var assignments []models.FormAssignment
	formIndex := 0

	for _, rec := range records {
		remaining := rec.Quantity
		instance := 0

		for remaining >= largest.Capacity {
			formIndex++
			assignments = append(assignments, openForm(formIndex, largest, rec.ItemID, &instance, largest.Capacity))
			remaining -= largest.Capacity
		}

		if remaining > 0 {
			track := smallestFitting(byCapacity, remaining)
			formIndex++
			form := openForm(formIndex, track, rec.ItemID, &instance, remaining)
			if remaining < track.Capacity {
				form.IsCutoff = true
				form.FormTypeID = track.CutoffTypeID
			}
			assignments = append(assignments, form)
		}
	}

	return assignments, nil
}

// validateRecords rejects the whole run before any form is opened, so a
// failed run never yields partial output.
func validateRecords(records []models.ItemRecord) error {
	if len(records) == 0 {
		return &ValidationError{Reason: "no records to distribute"}
	}
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.ItemID) == "" {
			return &ValidationError{Reason: "record has an empty item id"}
		}
		if _, dup := seen[rec.ItemID]; dup {
			return &ValidationError{ItemID: rec.ItemID, Reason: "duplicate item id in run"}
		}
		seen[rec.ItemID] = struct{}{}
		if rec.Quantity < 1 {
			return &ValidationError{ItemID: rec.ItemID, Reason: "quantity must be >= 1"}
		}
	}
	return nil
}

func openForm(index int, track models.FormType, itemID string, instance *int, count int) models.FormAssignment {
	items := make([]models.ItemInstance, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, models.ItemInstance{ItemID: itemID, InstanceIndex: *instance})
		*instance++
	}
	return models.FormAssignment{
		FormIndex:  index,
		FormTypeID: track.TypeID,
		Capacity:   track.Capacity,
		Items:      items,
	}
}
