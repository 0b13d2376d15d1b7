package services

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"backend/engine"
	"backend/models"

	"github.com/google/uuid"
)

// CalculatorService runs the distribution engine over parsed records with
// the configured catalog and unfolding rules. The service itself holds only
// immutable configuration, so concurrent requests can share one instance.
type CalculatorService struct {
	Catalog models.FormCatalog
	Rules   models.UnfoldingRules
}

func NewCalculatorService(catalog models.FormCatalog, rules models.UnfoldingRules) *CalculatorService {
	return &CalculatorService{Catalog: catalog, Rules: rules}
}

// ProcessRecords distributes the records into forms and computes the
// geometry for every assigned instance.
func (s *CalculatorService) ProcessRecords(records []models.ItemRecord) (models.RunResult, error) {
	return s.processWith(records, s.Catalog, s.Rules)
}

// ProcessRecordsWith runs one calculation with per-call catalog/rule
// overrides, leaving the configured defaults untouched.
func (s *CalculatorService) ProcessRecordsWith(records []models.ItemRecord, catalog *models.FormCatalog, rules *models.UnfoldingRules) (models.RunResult, error) {
	effectiveCatalog := s.Catalog
	if catalog != nil {
		effectiveCatalog = *catalog
	}
	effectiveRules := s.Rules
	if rules != nil {
		effectiveRules = *rules
	}
	return s.processWith(records, effectiveCatalog, effectiveRules)
}

func (s *CalculatorService) processWith(records []models.ItemRecord, catalog models.FormCatalog, rules models.UnfoldingRules) (models.RunResult, error) {
	assignments, err := engine.Distribute(records, catalog)
	if err != nil {
		return models.RunResult{}, err
	}

	index := make(map[string]models.ItemRecord, len(records))
	for _, rec := range records {
		index[rec.ItemID] = rec
	}

	geometry, err := engine.ComputeGeometry(assignments, index, rules)
	if err != nil {
		return models.RunResult{}, err
	}

	if n := identityFallbacks(records, rules); n > 0 {
		log.Printf("[calculator] %d typed record(s) without an unfolding rule, identity applied", n)
	}

	run := engine.BuildRunResult(assignments, geometry)
	log.Printf("[calculator] run complete: %d records, %d items, %d forms (%d cutoff)",
		len(records), run.TotalItems, run.TotalForms, run.CutoffForms)
	return run, nil
}

// identityFallbacks counts typed records that have no unfolding rule and
// therefore unfolded with the identity rule. In strict mode the engine has
// already rejected the run before this is reached.
func identityFallbacks(records []models.ItemRecord, rules models.UnfoldingRules) int {
	if rules.Strict {
		return 0
	}
	n := 0
	for _, rec := range records {
		if rec.Type == "" {
			continue
		}
		if _, ok := rules.ByType[rec.Type]; !ok {
			n++
		}
	}
	return n
}

// ProcessFile parses an uploaded calculation file and runs it through the
// engine in one step.
func (s *CalculatorService) ProcessFile(filename string, data []byte) ([]models.ItemRecord, models.RunResult, error) {
	records, err := ParseFile(filename, data)
	if err != nil {
		return nil, models.RunResult{}, fmt.Errorf("parse %s: %w", filename, err)
	}
	run, err := s.ProcessRecords(records)
	if err != nil {
		return nil, models.RunResult{}, err
	}
	return records, run, nil
}

// ResultFilename builds the stored workbook name:
// <timestamp>_AutoCalc_<original-stem>_<short-uuid>.xlsx
func ResultFilename(originalFilename string) string {
	stem := strings.TrimSuffix(filepath.Base(originalFilename), filepath.Ext(originalFilename))
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	shortID := uuid.NewString()[:8]
	return fmt.Sprintf("%s_AutoCalc_%s_%s.xlsx", timestamp, stem, shortID)
}
