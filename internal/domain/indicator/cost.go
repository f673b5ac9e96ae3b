package indicator

import (
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
)

type CostKind struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"column:name;not null" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
	IsDefault   bool    `gorm:"column:is_default;not null;default:false" json:"is_default"`
	ExternalID  *string `gorm:"column:external_id;index" json:"external_id,omitempty"`
}

func (CostKind) TableName() string { return "cost_kind" }

type Cost struct {
	ID            int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CostKindID    int64       `gorm:"column:cost_kind_id;not null;index" json:"cost_kind_id"`
	EntityKind    entity.Kind `gorm:"column:entity_kind;not null;index:idx_cost_entity" json:"entity_kind"`
	EntityID      int64       `gorm:"column:entity_id;not null;index:idx_cost_entity" json:"entity_id"`
	Year          int         `gorm:"column:year;not null" json:"year"`
	Amount        float64     `gorm:"column:amount;not null" json:"amount"`
	Provenance    string      `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
	LastUpdatedAt time.Time   `gorm:"column:last_updated_at;not null" json:"last_updated_at"`
	LastUpdatedBy string      `gorm:"column:last_updated_by;not null" json:"last_updated_by"`
}

func (Cost) TableName() string { return "cost" }

type ComplexityKind struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"column:name;not null" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
	ExternalID  *string `gorm:"column:external_id;index" json:"external_id,omitempty"`
}

func (ComplexityKind) TableName() string { return "complexity_kind" }

type Complexity struct {
	ID               int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ComplexityKindID int64       `gorm:"column:complexity_kind_id;not null;index" json:"complexity_kind_id"`
	EntityKind       entity.Kind `gorm:"column:entity_kind;not null;index:idx_complexity_entity" json:"entity_kind"`
	EntityID         int64       `gorm:"column:entity_id;not null;index:idx_complexity_entity" json:"entity_id"`
	Score            float64     `gorm:"column:score;not null" json:"score"`
	Provenance       string      `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
}

func (Complexity) TableName() string { return "complexity" }
