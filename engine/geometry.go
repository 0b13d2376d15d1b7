package engine

import "backend/models"

const mm2PerM2 = 1_000_000.0

// ComputeGeometry derives the unfolded development dimensions and material
// area for every instance in assignment order. The rule for a record's type
// applies a per-axis multiplicative factor then an additive allowance; the
// identity rule applies when the type has no entry, unless strict mode is
// on and the type is non-empty.
func ComputeGeometry(assignments []models.FormAssignment, records map[string]models.ItemRecord, rules models.UnfoldingRules) ([]models.GeometryResult, error) {
	total := 0
	for _, form := range assignments {
		total += len(form.Items)
	}

	results := make([]models.GeometryResult, 0, total)
	for _, form := range assignments {
		for _, it := range form.Items {
			rec, ok := records[it.ItemID]
			if !ok {
				return nil, &ValidationError{ItemID: it.ItemID, Reason: "assignment references unknown record"}
			}

			rule, ok := rules.ByType[rec.Type]
			if !ok {
				if rules.Strict && rec.Type != "" {
					return nil, &MissingRuleError{ItemID: rec.ItemID, Type: rec.Type}
				}
				rule = models.UnfoldingRule{}
			}

			uw := rec.WidthMM*factor(rule.WidthFactor) + rule.WidthAllowanceMM
			uh := rec.HeightMM*factor(rule.HeightFactor) + rule.HeightAllowanceMM

			results = append(results, models.GeometryResult{
				ItemID:           it.ItemID,
				InstanceIndex:    it.InstanceIndex,
				UnfoldedWidthMM:  uw,
				UnfoldedHeightMM: uh,
				AreaM2:           uw * uh / mm2PerM2,
			})
		}
	}
	return results, nil
}

func factor(f float64) float64 {
	if f == 0 {
		return 1.0
	}
	return f
}

// BuildRunResult sums the run-level aggregates in assignment order.
// Geometry results must come from ComputeGeometry over the same
// assignments, so both walk the instances in the same order.
func BuildRunResult(assignments []models.FormAssignment, geometry []models.GeometryResult) models.RunResult {
	res := models.RunResult{
		Assignments: assignments,
		Geometry:    geometry,
		FormsByType: make(map[string]int),
		AreaByType:  make(map[string]float64),
	}

	gi := 0
	for _, form := range assignments {
		res.TotalForms++
		res.FormsByType[form.FormTypeID]++
		if form.IsCutoff {
			res.CutoffForms++
		}
		for range form.Items {
			res.TotalItems++
			if gi < len(geometry) {
				res.AreaByType[form.FormTypeID] += geometry[gi].AreaM2
				res.TotalAreaM2 += geometry[gi].AreaM2
				gi++
			}
		}
	}
	return res
}
