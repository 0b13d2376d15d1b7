package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"backend/engine"
	"backend/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort        = "9000"
	defaultStoragePath = "./storage"
	defaultMaxFileSize = 20 * 1024 * 1024 // 20 MB upload cap
)

// Config aggregates runtime configuration. Precedence: CATALOG_FILE YAML >
// environment variables > built-in defaults.
type Config struct {
	Port            string
	StoragePath     string
	MaxFileSize     int64
	StrictUnfolding bool
	Catalog         models.FormCatalog
	Rules           models.UnfoldingRules
}

// catalogFile is the YAML shape of an external catalog/rules file.
type catalogFile struct {
	Catalog models.FormCatalog    `yaml:"catalog"`
	Rules   models.UnfoldingRules `yaml:"rules"`
}

// Load resolves configuration from .env/environment and an optional YAML
// catalog file, and validates the catalog before the server starts.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using environment")
	}

	cfg := Config{
		Port:        defaultPort,
		StoragePath: defaultStoragePath,
		MaxFileSize: defaultMaxFileSize,
		Catalog:     DefaultCatalog(),
		Rules:       models.UnfoldingRules{ByType: map[string]models.UnfoldingRule{}},
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if path := os.Getenv("STORAGE_PATH"); path != "" {
		cfg.StoragePath = path
	}
	if raw := os.Getenv("MAX_FILE_SIZE"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			return Config{}, fmt.Errorf("invalid MAX_FILE_SIZE %q", raw)
		}
		cfg.MaxFileSize = size
	}
	if raw := os.Getenv("STRICT_UNFOLDING"); raw != "" {
		strict, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid STRICT_UNFOLDING %q", raw)
		}
		cfg.StrictUnfolding = strict
	}

	applyCapacityOverrides(&cfg.Catalog)

	if file := os.Getenv("CATALOG_FILE"); file != "" {
		if err := loadCatalogFile(&cfg, file); err != nil {
			return Config{}, err
		}
	}

	cfg.Rules.Strict = cfg.StrictUnfolding

	if err := engine.ValidateCatalog(cfg.Catalog); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultCatalog mirrors the plant's legacy form constants: capacities
// 15/20/10 with cutoff codes 8/9/10.
func DefaultCatalog() models.FormCatalog {
	return models.FormCatalog{Types: []models.FormType{
		{TypeID: "TYPE_1", Capacity: 15, CutoffTypeID: "CUTOFF_8"},
		{TypeID: "TYPE_2", Capacity: 20, CutoffTypeID: "CUTOFF_9"},
		{TypeID: "TYPE_3", Capacity: 10, CutoffTypeID: "CUTOFF_10"},
	}}
}

// applyCapacityOverrides honors FORM_CAPACITY_1..n env overrides for the
// default catalog entries.
func applyCapacityOverrides(catalog *models.FormCatalog) {
	for i := range catalog.Types {
		key := fmt.Sprintf("FORM_CAPACITY_%d", i+1)
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		capacity, err := strconv.Atoi(raw)
		if err != nil || capacity < 1 {
			log.Printf("[config] ignoring invalid %s=%q", key, raw)
			continue
		}
		catalog.Types[i].Capacity = capacity
	}
}

func loadCatalogFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse catalog file: %w", err)
	}

	if len(file.Catalog.Types) > 0 {
		cfg.Catalog = file.Catalog
	}
	if file.Rules.ByType != nil {
		cfg.Rules.ByType = file.Rules.ByType
	}
	if file.Rules.Strict {
		cfg.StrictUnfolding = true
	}
	return nil
}
