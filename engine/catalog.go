package engine

import (
	"sort"
	"strings"

	"backend/models"
)

// ValidateCatalog checks a form catalog before any run uses it: at least
// one type, every capacity >= 1, unique type ids, and no cutoff id
// colliding with a primary type id. A missing catalog is an input problem,
// not a catalog-construction one, so it reports as ValidationError.
func ValidateCatalog(catalog models.FormCatalog) error {
	if len(catalog.Types) == 0 {
		return &ValidationError{Reason: "catalog must contain at least one form type"}
	}

	primary := make(map[string]struct{}, len(catalog.Types))
	for _, ft := range catalog.Types {
		if strings.TrimSpace(ft.TypeID) == "" {
			return &ConfigurationError{Reason: "form type id must not be empty"}
		}
		if ft.Capacity < 1 {
			return &ConfigurationError{TypeID: ft.TypeID, Reason: "capacity must be >= 1"}
		}
		if strings.TrimSpace(ft.CutoffTypeID) == "" {
			return &ConfigurationError{TypeID: ft.TypeID, Reason: "cutoff type id must not be empty"}
		}
		if _, dup := primary[ft.TypeID]; dup {
			return &ConfigurationError{TypeID: ft.TypeID, Reason: "duplicate form type id"}
		}
		primary[ft.TypeID] = struct{}{}
	}
	for _, ft := range catalog.Types {
		if _, clash := primary[ft.CutoffTypeID]; clash {
			return &ConfigurationError{TypeID: ft.TypeID, Reason: "cutoff type id collides with a primary type id"}
		}
	}
	return nil
}

// typesByCapacity returns the catalog entries sorted by ascending capacity.
// The sort is stable so declaration order breaks capacity ties.
func typesByCapacity(catalog models.FormCatalog) []models.FormType {
	sorted := make([]models.FormType, len(catalog.Types))
	copy(sorted, catalog.Types)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Capacity < sorted[j].Capacity
	})
	return sorted
}

// smallestFitting picks the smallest-capacity type able to hold count items
// in one form, falling back to the largest available capacity.
func smallestFitting(byCapacity []models.FormType, count int) models.FormType {
	for _, ft := range byCapacity {
		if ft.Capacity >= count {
			return ft
		}
	}
	return byCapacity[len(byCapacity)-1]
}
