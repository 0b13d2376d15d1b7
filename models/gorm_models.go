package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONB stores raw JSON in a jsonb column.
type JSONB json.RawMessage

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONB", value)
	}
	return nil
}

func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSONB) UnmarshalJSON(data []byte) error {
	*j = append((*j)[0:0], data...)
	return nil
}

// MarshalJSONB encodes a value for storage in a jsonb column.
func MarshalJSONB(v interface{}) (JSONB, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return JSONB(b), nil
}

// CalculationRun is one processed calculation file: the stored result
// workbook plus the run aggregates and the full engine output snapshot.
type CalculationRun struct {
	ID               uint      `gorm:"primaryKey;column:id" json:"id"`
	UUID             string    `gorm:"column:uuid;type:uuid;uniqueIndex" json:"uuid"`
	OriginalFilename string    `gorm:"column:original_filename;not null" json:"original_filename"`
	Filename         string    `gorm:"column:filename;not null" json:"filename"`
	FilePath         string    `gorm:"column:file_path;not null" json:"-"`
	FileSize         int64     `gorm:"column:file_size;default:0" json:"file_size"`
	RecordCount      int       `gorm:"column:record_count;default:0" json:"record_count"`
	TotalItems       int       `gorm:"column:total_items;default:0" json:"total_items"`
	TotalForms       int       `gorm:"column:total_forms;default:0" json:"total_forms"`
	CutoffForms      int       `gorm:"column:cutoff_forms;default:0" json:"cutoff_forms"`
	TotalAreaM2      float64   `gorm:"column:total_area_m2;default:0" json:"total_area_m2"`
	FormsByType      JSONB     `gorm:"column:forms_by_type;type:jsonb" json:"forms_by_type"`
	Result           JSONB     `gorm:"column:result;type:jsonb" json:"result,omitempty"`
	CreatedAt        time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

// TableName specifies the table name for CalculationRun
func (CalculationRun) TableName() string {
	return "calculation_runs"
}
