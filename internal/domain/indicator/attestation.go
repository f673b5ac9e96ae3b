package indicator

import (
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
)

// AttestationRun issues attestations of one attested kind (and optionally one
// attested entity, e.g. a measurable category) over a set of parent entities.
type AttestationRun struct {
	ID                 int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name               string      `gorm:"column:name;not null" json:"name"`
	Description        *string     `gorm:"column:description" json:"description,omitempty"`
	TargetEntityKind   entity.Kind `gorm:"column:target_entity_kind;not null" json:"target_entity_kind"`
	AttestedEntityKind entity.Kind `gorm:"column:attested_entity_kind;not null;index" json:"attested_entity_kind"`
	AttestedEntityID   *int64      `gorm:"column:attested_entity_id" json:"attested_entity_id,omitempty"`
	IssuedBy           string      `gorm:"column:issued_by;not null" json:"issued_by"`
	IssuedOn           time.Time   `gorm:"column:issued_on;not null" json:"issued_on"`
	DueDate            *time.Time  `gorm:"column:due_date" json:"due_date,omitempty"`
}

func (AttestationRun) TableName() string { return "attestation_run" }

type AttestationInstance struct {
	ID               int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AttestationRunID int64       `gorm:"column:attestation_run_id;not null;index" json:"attestation_run_id"`
	ParentEntityKind entity.Kind `gorm:"column:parent_entity_kind;not null;index:idx_ai_parent" json:"parent_entity_kind"`
	ParentEntityID   int64       `gorm:"column:parent_entity_id;not null;index:idx_ai_parent" json:"parent_entity_id"`
	AttestedAt       *time.Time  `gorm:"column:attested_at" json:"attested_at,omitempty"`
	AttestedBy       *string     `gorm:"column:attested_by" json:"attested_by,omitempty"`
}

func (AttestationInstance) TableName() string { return "attestation_instance" }
