package indicator

import (
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
)

type AssessmentDefinition struct {
	ID             int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name           string      `gorm:"column:name;not null" json:"name"`
	Description    *string     `gorm:"column:description" json:"description,omitempty"`
	RatingSchemeID int64       `gorm:"column:rating_scheme_id;not null" json:"rating_scheme_id"`
	EntityKind     entity.Kind `gorm:"column:entity_kind;not null" json:"entity_kind"`
	ExternalID     *string     `gorm:"column:external_id;index" json:"external_id,omitempty"`
}

func (AssessmentDefinition) TableName() string { return "assessment_definition" }

type AssessmentRating struct {
	EntityKind             entity.Kind `gorm:"column:entity_kind;primaryKey;size:64" json:"entity_kind"`
	EntityID               int64       `gorm:"column:entity_id;primaryKey;autoIncrement:false" json:"entity_id"`
	AssessmentDefinitionID int64       `gorm:"column:assessment_definition_id;primaryKey;autoIncrement:false;index" json:"assessment_definition_id"`
	RatingID               int64       `gorm:"column:rating_id;not null" json:"rating_id"`
	Description            *string     `gorm:"column:description" json:"description,omitempty"`
	Provenance             string      `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
	LastUpdatedAt          time.Time   `gorm:"column:last_updated_at;not null" json:"last_updated_at"`
	LastUpdatedBy          string      `gorm:"column:last_updated_by;not null" json:"last_updated_by"`
}

func (AssessmentRating) TableName() string { return "assessment_rating" }
