package measurable

import (
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
)

type Category struct {
	ID             int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name           string  `gorm:"column:name;not null" json:"name"`
	Description    *string `gorm:"column:description" json:"description,omitempty"`
	ExternalID     *string `gorm:"column:external_id;index" json:"external_id,omitempty"`
	RatingSchemeID int64   `gorm:"column:rating_scheme_id;not null" json:"rating_scheme_id"`
	Editable       bool    `gorm:"column:editable;not null;default:false" json:"editable"`
}

func (Category) TableName() string { return "measurable_category" }

type Measurable struct {
	ID                    int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ParentID              *int64  `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	Name                  string  `gorm:"column:name;not null" json:"name"`
	CategoryID            int64   `gorm:"column:measurable_category_id;not null;index" json:"measurable_category_id"`
	ExternalID            *string `gorm:"column:external_id;index" json:"external_id,omitempty"`
	Description           *string `gorm:"column:description" json:"description,omitempty"`
	Concrete              bool    `gorm:"column:concrete;not null;default:false" json:"concrete"`
	EntityLifecycleStatus string  `gorm:"column:entity_lifecycle_status;not null;default:'ACTIVE'" json:"entity_lifecycle_status"`
}

func (Measurable) TableName() string { return "measurable" }

// Rating holds the rating code a subject entity gives a measurable.
type Rating struct {
	EntityKind    entity.Kind `gorm:"column:entity_kind;primaryKey;size:64" json:"entity_kind"`
	EntityID      int64       `gorm:"column:entity_id;primaryKey;autoIncrement:false" json:"entity_id"`
	MeasurableID  int64       `gorm:"column:measurable_id;primaryKey;autoIncrement:false;index" json:"measurable_id"`
	Rating        string      `gorm:"column:rating;not null;size:8" json:"rating"`
	Description   *string     `gorm:"column:description" json:"description,omitempty"`
	Provenance    string      `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
	LastUpdatedAt time.Time   `gorm:"column:last_updated_at;not null" json:"last_updated_at"`
	LastUpdatedBy string      `gorm:"column:last_updated_by;not null" json:"last_updated_by"`
}

func (Rating) TableName() string { return "measurable_rating" }

// RatingSchemeItem is one option of a rating scheme. Position orders items
// from best (lowest) to worst.
type RatingSchemeItem struct {
	ID             int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SchemeID       int64   `gorm:"column:scheme_id;not null;uniqueIndex:idx_rsi_scheme_code" json:"scheme_id"`
	Name           string  `gorm:"column:name;not null" json:"name"`
	Code           string  `gorm:"column:code;not null;size:8;uniqueIndex:idx_rsi_scheme_code" json:"code"`
	Color          string  `gorm:"column:color;not null;default:'#cccccc'" json:"color"`
	Position       int     `gorm:"column:position;not null;default:0" json:"position"`
	Description    *string `gorm:"column:description" json:"description,omitempty"`
	UserSelectable bool    `gorm:"column:user_selectable;not null" json:"user_selectable"`
}

func (RatingSchemeItem) TableName() string { return "rating_scheme_item" }
