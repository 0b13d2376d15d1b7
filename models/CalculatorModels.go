package models

// ---------- Input records ----------

// ItemRecord is one parsed line of a calculation file: a product with its
// nominal dimensions and the number of physical instances to produce.
// Records are immutable once parsed.
type ItemRecord struct {
	ItemID       string  `json:"item_id"`
	WidthMM      float64 `json:"width_mm"`
	HeightMM     float64 `json:"height_mm"`
	ProjectionMM float64 `json:"projection_mm,omitempty"`
	Quantity     int     `json:"quantity"`
	Type         string  `json:"type,omitempty"` // selects the unfolding rule
}

// ItemInstance identifies one physical unit among the Quantity copies
// declared by an item record.
type ItemInstance struct {
	ItemID        string `json:"item_id"`
	InstanceIndex int    `json:"instance_index"`
}

// ---------- Form catalog ----------

// FormType is one production form configuration entry. CutoffTypeID tags a
// form of this capacity track when it is not filled to capacity.
type FormType struct {
	TypeID       string `json:"type_id" yaml:"type_id"`
	Capacity     int    `json:"capacity" yaml:"capacity"`
	CutoffTypeID string `json:"cutoff_type_id" yaml:"cutoff_type_id"`
}

// FormCatalog is the ordered set of available form types. Declaration order
// is the tie-break when two types share a capacity.
type FormCatalog struct {
	Types []FormType `json:"types" yaml:"types"`
}

// ---------- Unfolding rules ----------

// UnfoldingRule describes how nominal dimensions expand to flat-pattern
// development dimensions for one item type. Zero factors mean 1.0.
type UnfoldingRule struct {
	WidthAllowanceMM  float64 `json:"width_allowance_mm" yaml:"width_allowance_mm"`
	HeightAllowanceMM float64 `json:"height_allowance_mm" yaml:"height_allowance_mm"`
	WidthFactor       float64 `json:"width_factor,omitempty" yaml:"width_factor"`
	HeightFactor      float64 `json:"height_factor,omitempty" yaml:"height_factor"`
}

// UnfoldingRules maps item types to their rules. In strict mode a record
// type without a rule is an error; otherwise the identity rule applies.
type UnfoldingRules struct {
	Strict bool                     `json:"strict" yaml:"strict"`
	ByType map[string]UnfoldingRule `json:"by_type" yaml:"by_type"`
}

// ---------- Engine output ----------

// FormAssignment is one produced form. Capacity is the capacity of the form
// type the form was opened as; FormTypeID carries the cutoff type id instead
// of the primary id when the form is under-filled.
type FormAssignment struct {
	FormIndex  int            `json:"form_index"`
	FormTypeID string         `json:"form_type_id"`
	Capacity   int            `json:"capacity"`
	Items      []ItemInstance `json:"items"`
	IsCutoff   bool           `json:"is_cutoff"`
}

// GeometryResult carries the unfolded development dimensions and material
// area of one assigned instance. AreaM2 is in square meters.
type GeometryResult struct {
	ItemID           string  `json:"item_id"`
	InstanceIndex    int     `json:"instance_index"`
	UnfoldedWidthMM  float64 `json:"unfolded_width_mm"`
	UnfoldedHeightMM float64 `json:"unfolded_height_mm"`
	AreaM2           float64 `json:"area_m2"`
}

// RunResult is the complete output of one calculation run. It is owned by
// the request that produced it and is never shared across requests.
type RunResult struct {
	Assignments []FormAssignment   `json:"assignments"`
	Geometry    []GeometryResult   `json:"geometry"`
	TotalItems  int                `json:"total_items"`
	TotalForms  int                `json:"total_forms"`
	CutoffForms int                `json:"cutoff_forms"`
	FormsByType map[string]int     `json:"forms_by_type"`
	AreaByType  map[string]float64 `json:"area_by_form_type"`
	TotalAreaM2 float64            `json:"total_area_m2"`
}

// ---------- HTTP request shapes ----------

// DistributeRequest is the JSON body of the pure-engine endpoint. Catalog
// and Rules override the configured defaults when present.
type DistributeRequest struct {
	Records []ItemRecord    `json:"records"`
	Catalog *FormCatalog    `json:"catalog,omitempty"`
	Rules   *UnfoldingRules `json:"rules,omitempty"`
}
