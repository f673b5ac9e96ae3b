package reportgrid

import (
	"github.com/yungbote/waltz-backend/internal/domain/entity"
)

// AdditionalColumnOptions controls roll-up direction for hierarchical columns.
type AdditionalColumnOptions string

const (
	OptionNone        AdditionalColumnOptions = "NONE"
	OptionPickHighest AdditionalColumnOptions = "PICK_HIGHEST"
	OptionPickLowest  AdditionalColumnOptions = "PICK_LOWEST"
)

// Normalize maps the empty value to NONE.
func (o AdditionalColumnOptions) Normalize() AdditionalColumnOptions {
	if o == "" {
		return OptionNone
	}
	return o
}

// ColumnDefinition is the row shared by fixed and derived columns. Its id is
// what cells reference.
type ColumnDefinition struct {
	ID                int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	GridID            int64   `gorm:"column:report_grid_id;not null;uniqueIndex:idx_rgcd_grid_position,priority:1" json:"report_grid_id"`
	Position          int     `gorm:"column:position;not null;uniqueIndex:idx_rgcd_grid_position,priority:2" json:"position"`
	DisplayName       *string `gorm:"column:display_name" json:"display_name,omitempty"`
	ExternalID        *string `gorm:"column:external_id" json:"external_id,omitempty"`
	ColumnDescription *string `gorm:"column:column_description" json:"column_description,omitempty"`
}

func (ColumnDefinition) TableName() string { return "report_grid_column_definition" }

type FixedColumnDefinition struct {
	GridColumnID            int64                   `gorm:"column:grid_column_id;primaryKey;autoIncrement:false" json:"grid_column_id"`
	ColumnEntityKind        entity.Kind             `gorm:"column:column_entity_kind;not null" json:"column_entity_kind"`
	ColumnEntityID          int64                   `gorm:"column:column_entity_id;not null" json:"column_entity_id"`
	ColumnQualifierKind     *entity.Kind            `gorm:"column:column_qualifier_kind" json:"column_qualifier_kind,omitempty"`
	ColumnQualifierID       *int64                  `gorm:"column:column_qualifier_id" json:"column_qualifier_id,omitempty"`
	AdditionalColumnOptions AdditionalColumnOptions `gorm:"column:additional_column_options;not null;default:'NONE'" json:"additional_column_options"`
	EntityFieldReferenceID  *int64                  `gorm:"column:entity_field_reference_id" json:"entity_field_reference_id,omitempty"`
}

func (FixedColumnDefinition) TableName() string { return "report_grid_fixed_column_definition" }

type DerivedColumnDefinition struct {
	GridColumnID     int64  `gorm:"column:grid_column_id;primaryKey;autoIncrement:false" json:"grid_column_id"`
	DerivationScript string `gorm:"column:derivation_script;not null" json:"derivation_script"`
}

func (DerivedColumnDefinition) TableName() string { return "report_grid_derived_column_definition" }

// EntityFieldReference names one attribute of a generic entity kind that a
// complex column projects.
type EntityFieldReference struct {
	ID          int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EntityKind  entity.Kind `gorm:"column:entity_kind;not null;uniqueIndex:idx_efr_kind_field" json:"entity_kind"`
	FieldName   string      `gorm:"column:field_name;not null;uniqueIndex:idx_efr_kind_field" json:"field_name"`
	DisplayName string      `gorm:"column:display_name;not null" json:"display_name"`
	Description string      `gorm:"column:description;not null;default:''" json:"description"`
}

func (EntityFieldReference) TableName() string { return "entity_field_reference" }

// FixedColumn is the assembled view of a fixed column.
type FixedColumn struct {
	GridColumnID            int64                   `json:"grid_column_id"`
	Position                int                     `json:"position"`
	DisplayName             *string                 `json:"display_name,omitempty"`
	ExternalID              *string                 `json:"external_id,omitempty"`
	ColumnDescription       *string                 `json:"column_description,omitempty"`
	ColumnName              string                  `json:"column_name,omitempty"`
	ColumnEntityKind        entity.Kind             `json:"column_entity_kind"`
	ColumnEntityID          int64                   `json:"column_entity_id"`
	ColumnQualifierKind     *entity.Kind            `json:"column_qualifier_kind,omitempty"`
	ColumnQualifierID       *int64                  `json:"column_qualifier_id,omitempty"`
	AdditionalColumnOptions AdditionalColumnOptions `json:"additional_column_options"`
	EntityFieldReference    *EntityFieldReference   `json:"entity_field_reference,omitempty"`
}

// Complex reports whether the column projects a named field instead of using
// the per-kind strategy.
func (c FixedColumn) Complex() bool { return c.EntityFieldReference != nil }

// QualifierID returns the qualifier id or 0.
func (c FixedColumn) QualifierID() int64 {
	if c.ColumnQualifierID == nil {
		return 0
	}
	return *c.ColumnQualifierID
}

type DerivedColumn struct {
	GridColumnID      int64   `json:"grid_column_id"`
	Position          int     `json:"position"`
	DisplayName       *string `json:"display_name,omitempty"`
	ExternalID        *string `json:"external_id,omitempty"`
	ColumnDescription *string `json:"column_description,omitempty"`
	DerivationScript  string  `json:"derivation_script"`
}

// Definition is a grid with its columns ordered by position.
type Definition struct {
	ReportGrid
	FixedColumns   []FixedColumn   `json:"fixed_column_definitions"`
	DerivedColumns []DerivedColumn `json:"derived_column_definitions"`
}
