package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_PATH", "MAX_FILE_SIZE", "STRICT_UNFOLDING", "CATALOG_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "./storage", cfg.StoragePath)
	assert.False(t, cfg.StrictUnfolding)

	require.Len(t, cfg.Catalog.Types, 3)
	assert.Equal(t, 15, cfg.Catalog.Types[0].Capacity)
	assert.Equal(t, 20, cfg.Catalog.Types[1].Capacity)
	assert.Equal(t, 10, cfg.Catalog.Types[2].Capacity)
}

func TestLoadCapacityOverrides(t *testing.T) {
	t.Setenv("FORM_CAPACITY_2", "25")
	t.Setenv("FORM_CAPACITY_3", "garbage") // ignored, keeps default

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Catalog.Types[1].Capacity)
	assert.Equal(t, 10, cfg.Catalog.Types[2].Capacity)
}

func TestLoadRejectsBadMaxFileSize(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "-5")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	yaml := `
catalog:
  types:
    - type_id: TYPE_1
      capacity: 4
      cutoff_type_id: CUTOFF_1
    - type_id: TYPE_2
      capacity: 6
      cutoff_type_id: CUTOFF_2
rules:
  strict: true
  by_type:
    "2":
      width_allowance_mm: 40
      height_allowance_mm: 60
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("CATALOG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.Len(t, cfg.Catalog.Types, 2)
	assert.Equal(t, 4, cfg.Catalog.Types[0].Capacity)
	assert.True(t, cfg.Rules.Strict)
	assert.Equal(t, 40.0, cfg.Rules.ByType["2"].WidthAllowanceMM)
}

func TestLoadRejectsInvalidCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	yaml := `
catalog:
  types:
    - type_id: TYPE_1
      capacity: 0
      cutoff_type_id: CUTOFF_1
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("CATALOG_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}
