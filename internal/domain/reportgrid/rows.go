package reportgrid

import (
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/catalog"
	"github.com/yungbote/waltz-backend/internal/domain/entity"
)

// Rows returned by the cell source. Each row is already filtered to the
// selector's subjects and to the requested column entities.

type AssessmentRow struct {
	EntityID     int64
	DefinitionID int64
	RatingID     int64
	RatingName   string
	Description  *string
}

type StatisticRow struct {
	EntityID    int64
	StatisticID int64
	Outcome     string
	Reason      *string
}

type InvolvementRow struct {
	EntityID int64
	KindID   int64
	Email    string
}

type CostRow struct {
	EntityID   int64
	CostKindID int64
	Year       int
	Amount     float64
}

type ComplexityRow struct {
	EntityID int64
	KindID   int64
	Score    float64
}

type TagRow struct {
	EntityID int64
	Name     string
}

type AliasRow struct {
	EntityID int64
	Alias    string
}

// MeasurableRatingRow is a rating made directly against a column measurable.
type MeasurableRatingRow struct {
	EntityID     int64
	MeasurableID int64
	RatingItemID int64
	RatingName   string
	Description  *string
}

// RollupRatingRow is a rating against a descendant of a column measurable.
// AncestorID is the column measurable the rating rolls up to.
type RollupRatingRow struct {
	EntityID     int64
	AncestorID   int64
	MeasurableID int64
	RatingItemID int64
	RatingName   string
	Position     int
}

// RatedMeasurableRow is a measurable of a category rated by a subject.
type RatedMeasurableRow struct {
	EntityID     int64
	CategoryID   int64
	MeasurableID int64
	Name         string
}

type MeasurableNode struct {
	ID       int64
	ParentID *int64
	Name     string
}

// DataTypeUsageRow is one usage of a data type by a subject, keyed by the
// column data type it satisfies.
type DataTypeUsageRow struct {
	EntityID        int64
	ColumnTypeID    int64
	DataTypeID      int64
	DataTypeName    string
	DataTypeDisplay string
	UsageKind       string
}

type AppGroupMembershipRow struct {
	SubjectID int64
	GroupID   int64
	CreatedAt time.Time
}

type AttestationRow struct {
	ParentID     int64
	AttestedKind entity.Kind
	AttestedID   int64
	AttestedAt   time.Time
	AttestedBy   string
}

type SurveyResponseRow struct {
	EntityID           int64
	QuestionID         int64
	FieldType          string
	SubmittedAt        *time.Time
	InstanceID         int64
	StringResponse     *string
	NumberResponse     *float64
	BooleanResponse    *bool
	DateResponse       *time.Time
	EntityResponseKind *entity.Kind
	EntityResponseID   *int64
	ListResponseConcat *string
	ListResponses      []string `gorm:"-"`
	Comment            *string
}

type SurveyInstanceRow struct {
	EntityID        int64
	InstanceID      int64
	TemplateID      int64
	Status          string
	InstanceName    *string
	RunName         string
	IssuedOn        *time.Time
	DueDate         *time.Time
	ApprovalDueDate *time.Time
	SubmittedAt     *time.Time
	SubmittedBy     *string
	ApprovedAt      *time.Time
	ApprovedBy      *string
}

// HierarchyEdge is a closure row: DescendantID sits somewhere under AncestorID
// (or is AncestorID itself).
type HierarchyEdge struct {
	AncestorID   int64
	DescendantID int64
}

type ChangeInitiativeRow struct {
	catalog.ChangeInitiative
	ParentExternalID *string `gorm:"column:parent_external_id"`
}

type SubjectOrgUnitRow struct {
	SubjectID int64 `gorm:"column:subject_id"`
	catalog.OrgUnit
}
