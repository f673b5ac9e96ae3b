package indicator

import (
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
)

type EntityStatisticDefinition struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"column:name;not null" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
	Type        string  `gorm:"column:type;not null;default:'NUMERIC'" json:"type"`
	Category    string  `gorm:"column:category;not null;default:'GOVERNANCE'" json:"category"`
	Active      bool    `gorm:"column:active;not null" json:"active"`
}

func (EntityStatisticDefinition) TableName() string { return "entity_statistic_definition" }

// EntityStatisticValue rows are append-only; Current marks the live value per
// (statistic, entity).
type EntityStatisticValue struct {
	ID          int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StatisticID int64       `gorm:"column:statistic_id;not null;index" json:"statistic_id"`
	EntityKind  entity.Kind `gorm:"column:entity_kind;not null;index:idx_esv_entity" json:"entity_kind"`
	EntityID    int64       `gorm:"column:entity_id;not null;index:idx_esv_entity" json:"entity_id"`
	Value       *string     `gorm:"column:value" json:"value,omitempty"`
	Outcome     string      `gorm:"column:outcome;not null" json:"outcome"`
	State       string      `gorm:"column:state;not null;default:'PROVIDED'" json:"state"`
	Reason      *string     `gorm:"column:reason" json:"reason,omitempty"`
	CreatedAt   time.Time   `gorm:"column:created_at;not null" json:"created_at"`
	Current     bool        `gorm:"column:current;not null" json:"current"`
	Provenance  string      `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
}

func (EntityStatisticValue) TableName() string { return "entity_statistic_value" }
