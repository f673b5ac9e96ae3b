package catalog

import (
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
)

// EntityHierarchy is one row of the ancestor closure: ID is a descendant of
// AncestorID. Every node also has a row pointing at itself. Rows are
// materialised elsewhere and only read here.
type EntityHierarchy struct {
	ID         int64       `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	AncestorID int64       `gorm:"column:ancestor_id;primaryKey;autoIncrement:false;index" json:"ancestor_id"`
	Kind       entity.Kind `gorm:"column:kind;primaryKey;size:64" json:"kind"`
	Level      int         `gorm:"column:level;not null;default:0" json:"level"`
}

func (EntityHierarchy) TableName() string { return "entity_hierarchy" }

type EntityRelationship struct {
	ID            int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	KindA         entity.Kind `gorm:"column:kind_a;not null;index:idx_er_a" json:"kind_a"`
	IDA           int64       `gorm:"column:id_a;not null;index:idx_er_a" json:"id_a"`
	KindB         entity.Kind `gorm:"column:kind_b;not null;index:idx_er_b" json:"kind_b"`
	IDB           int64       `gorm:"column:id_b;not null;index:idx_er_b" json:"id_b"`
	Relationship  string      `gorm:"column:relationship;not null" json:"relationship"`
	Provenance    string      `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
	LastUpdatedAt time.Time   `gorm:"column:last_updated_at;not null" json:"last_updated_at"`
	LastUpdatedBy string      `gorm:"column:last_updated_by;not null" json:"last_updated_by"`
}

func (EntityRelationship) TableName() string { return "entity_relationship" }

type EntityAlias struct {
	ID         int64       `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Kind       entity.Kind `gorm:"column:kind;primaryKey;size:64" json:"kind"`
	Alias      string      `gorm:"column:alias;primaryKey" json:"alias"`
	Provenance string      `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
}

func (EntityAlias) TableName() string { return "entity_alias" }

type Tag struct {
	ID         int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name       string      `gorm:"column:name;not null;uniqueIndex:idx_tag_name_kind" json:"name"`
	TargetKind entity.Kind `gorm:"column:target_kind;not null;uniqueIndex:idx_tag_name_kind" json:"target_kind"`
}

func (Tag) TableName() string { return "tag" }

type TagUsage struct {
	TagID      int64       `gorm:"column:tag_id;primaryKey;autoIncrement:false" json:"tag_id"`
	EntityID   int64       `gorm:"column:entity_id;primaryKey;autoIncrement:false" json:"entity_id"`
	EntityKind entity.Kind `gorm:"column:entity_kind;primaryKey;size:64" json:"entity_kind"`
	CreatedAt  time.Time   `gorm:"column:created_at;not null" json:"created_at"`
	CreatedBy  string      `gorm:"column:created_by;not null" json:"created_by"`
	Provenance string      `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
}

func (TagUsage) TableName() string { return "tag_usage" }
