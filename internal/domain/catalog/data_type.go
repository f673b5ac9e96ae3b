package catalog

import "github.com/yungbote/waltz-backend/internal/domain/entity"

type DataType struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code        string  `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Name        string  `gorm:"column:name;not null" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
	ParentID    *int64  `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
}

func (DataType) TableName() string { return "data_type" }

type DataTypeUsage struct {
	EntityKind  entity.Kind `gorm:"column:entity_kind;primaryKey;size:64" json:"entity_kind"`
	EntityID    int64       `gorm:"column:entity_id;primaryKey;autoIncrement:false" json:"entity_id"`
	DataTypeID  int64       `gorm:"column:data_type_id;primaryKey;autoIncrement:false" json:"data_type_id"`
	UsageKind   string      `gorm:"column:usage_kind;primaryKey;size:32" json:"usage_kind"`
	Description *string     `gorm:"column:description" json:"description,omitempty"`
	Provenance  string      `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
	IsSelected  bool        `gorm:"column:is_selected;not null" json:"is_selected"`
}

func (DataTypeUsage) TableName() string { return "data_type_usage" }
