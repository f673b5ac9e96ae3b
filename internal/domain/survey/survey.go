package survey

import (
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
)

const (
	StatusNotStarted = "NOT_STARTED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusApproved   = "APPROVED"
	StatusRejected   = "REJECTED"
	StatusWithdrawn  = "WITHDRAWN"
)

// Field types with display rules in report grids.
const (
	FieldTypePerson                = "PERSON"
	FieldTypeApplication           = "APPLICATION"
	FieldTypeMeasurableMultiSelect = "MEASURABLE_MULTI_SELECT"
)

type Template struct {
	ID               int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name             string      `gorm:"column:name;not null" json:"name"`
	Description      *string     `gorm:"column:description" json:"description,omitempty"`
	TargetEntityKind entity.Kind `gorm:"column:target_entity_kind;not null" json:"target_entity_kind"`
	OwnerID          *int64      `gorm:"column:owner_id" json:"owner_id,omitempty"`
	Status           string      `gorm:"column:status;not null;default:'ACTIVE'" json:"status"`
	ExternalID       *string     `gorm:"column:external_id;index" json:"external_id,omitempty"`
}

func (Template) TableName() string { return "survey_template" }

type Run struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TemplateID int64           `gorm:"column:survey_template_id;not null;index" json:"survey_template_id"`
	Name       string          `gorm:"column:name;not null" json:"name"`
	IssuedOn   *datatypes.Date `gorm:"column:issued_on" json:"issued_on,omitempty"`
	DueDate    *datatypes.Date `gorm:"column:due_date" json:"due_date,omitempty"`
	Status     string          `gorm:"column:status;not null;default:'ISSUED'" json:"status"`
}

func (Run) TableName() string { return "survey_run" }

// Instance is one entity's copy of a run. Instances with OriginalInstanceID
// set are historical snapshots of a reopened survey.
type Instance struct {
	ID                 int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RunID              int64           `gorm:"column:survey_run_id;not null;index" json:"survey_run_id"`
	EntityKind         entity.Kind     `gorm:"column:entity_kind;not null;index:idx_si_entity" json:"entity_kind"`
	EntityID           int64           `gorm:"column:entity_id;not null;index:idx_si_entity" json:"entity_id"`
	Name               *string         `gorm:"column:name" json:"name,omitempty"`
	Status             string          `gorm:"column:status;not null" json:"status"`
	DueDate            *datatypes.Date `gorm:"column:due_date" json:"due_date,omitempty"`
	ApprovalDueDate    *datatypes.Date `gorm:"column:approval_due_date" json:"approval_due_date,omitempty"`
	SubmittedAt        *time.Time      `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	SubmittedBy        *string         `gorm:"column:submitted_by" json:"submitted_by,omitempty"`
	ApprovedAt         *time.Time      `gorm:"column:approved_at" json:"approved_at,omitempty"`
	ApprovedBy         *string         `gorm:"column:approved_by" json:"approved_by,omitempty"`
	OriginalInstanceID *int64          `gorm:"column:original_instance_id;index" json:"original_instance_id,omitempty"`
}

func (Instance) TableName() string { return "survey_instance" }

type Question struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TemplateID   int64   `gorm:"column:survey_template_id;not null;index" json:"survey_template_id"`
	QuestionText string  `gorm:"column:question_text;not null" json:"question_text"`
	HelpText     *string `gorm:"column:help_text" json:"help_text,omitempty"`
	FieldType    string  `gorm:"column:field_type;not null" json:"field_type"`
	SectionName  *string `gorm:"column:section_name" json:"section_name,omitempty"`
	Position     int     `gorm:"column:position;not null;default:0" json:"position"`
	ExternalID   *string `gorm:"column:external_id;index" json:"external_id,omitempty"`
}

func (Question) TableName() string { return "survey_question" }

type QuestionResponse struct {
	InstanceID         int64        `gorm:"column:survey_instance_id;primaryKey;autoIncrement:false" json:"survey_instance_id"`
	QuestionID         int64        `gorm:"column:question_id;primaryKey;autoIncrement:false;index" json:"question_id"`
	StringResponse     *string      `gorm:"column:string_response" json:"string_response,omitempty"`
	NumberResponse     *float64     `gorm:"column:number_response" json:"number_response,omitempty"`
	BooleanResponse    *bool        `gorm:"column:boolean_response" json:"boolean_response,omitempty"`
	DateResponse       *time.Time   `gorm:"column:date_response" json:"date_response,omitempty"`
	EntityResponseKind *entity.Kind `gorm:"column:entity_response_kind" json:"entity_response_kind,omitempty"`
	EntityResponseID   *int64       `gorm:"column:entity_response_id" json:"entity_response_id,omitempty"`
	ListResponseConcat *string      `gorm:"column:list_response_concat" json:"list_response_concat,omitempty"`
	Comment            *string      `gorm:"column:comment" json:"comment,omitempty"`
	LastUpdatedAt      time.Time    `gorm:"column:last_updated_at;not null" json:"last_updated_at"`
}

func (QuestionResponse) TableName() string { return "survey_question_response" }

type QuestionListResponse struct {
	InstanceID int64  `gorm:"column:survey_instance_id;primaryKey;autoIncrement:false" json:"survey_instance_id"`
	QuestionID int64  `gorm:"column:question_id;primaryKey;autoIncrement:false" json:"question_id"`
	Response   string `gorm:"column:response;primaryKey" json:"response"`
	Position   int    `gorm:"column:position;not null;default:0" json:"position"`
}

func (QuestionListResponse) TableName() string { return "survey_question_list_response" }
