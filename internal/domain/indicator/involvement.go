package indicator

import "github.com/yungbote/waltz-backend/internal/domain/entity"

type InvolvementKind struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"column:name;not null" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
	ExternalID  *string `gorm:"column:external_id;index" json:"external_id,omitempty"`
}

func (InvolvementKind) TableName() string { return "involvement_kind" }

// Involvement links a person (by employee id) to an entity in some role.
type Involvement struct {
	EntityKind entity.Kind `gorm:"column:entity_kind;primaryKey;size:64" json:"entity_kind"`
	EntityID   int64       `gorm:"column:entity_id;primaryKey;autoIncrement:false" json:"entity_id"`
	KindID     int64       `gorm:"column:kind_id;primaryKey;autoIncrement:false;index" json:"kind_id"`
	EmployeeID string      `gorm:"column:employee_id;primaryKey;size:128" json:"employee_id"`
	Provenance string      `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
	IsReadonly bool        `gorm:"column:is_readonly;not null;default:false" json:"is_readonly"`
}

func (Involvement) TableName() string { return "involvement" }
