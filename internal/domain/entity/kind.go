package entity

import "strings"

// Kind tags every entity type the catalogue knows about. Column definitions
// reuse it to say which source a column reads from.
type Kind string

const (
	Application          Kind = "APPLICATION"
	ChangeInitiative     Kind = "CHANGE_INITIATIVE"
	OrgUnit              Kind = "ORG_UNIT"
	Person               Kind = "PERSON"
	Measurable           Kind = "MEASURABLE"
	MeasurableCategory   Kind = "MEASURABLE_CATEGORY"
	MeasurableRating     Kind = "MEASURABLE_RATING"
	DataType             Kind = "DATA_TYPE"
	AppGroup             Kind = "APP_GROUP"
	AssessmentDefinition Kind = "ASSESSMENT_DEFINITION"
	InvolvementKind      Kind = "INVOLVEMENT_KIND"
	CostKind             Kind = "COST_KIND"
	ComplexityKind       Kind = "COMPLEXITY_KIND"
	SurveyQuestion       Kind = "SURVEY_QUESTION"
	SurveyTemplate       Kind = "SURVEY_TEMPLATE"
	SurveyInstance       Kind = "SURVEY_INSTANCE"
	Attestation          Kind = "ATTESTATION"
	Tag                  Kind = "TAG"
	EntityAlias          Kind = "ENTITY_ALIAS"
	EntityStatistic      Kind = "ENTITY_STATISTIC"
	LogicalDataFlow      Kind = "LOGICAL_DATA_FLOW"
	PhysicalFlow         Kind = "PHYSICAL_FLOW"
)

// ParseKind normalises user input ("application", " Org_Unit ") to a Kind.
// It does not reject unknown values; unknown column kinds are tolerated downstream.
func ParseKind(raw string) Kind {
	return Kind(strings.ToUpper(strings.TrimSpace(raw)))
}

func (k Kind) String() string { return string(k) }

// Ref is a (kind, id) pair with an optional display name.
type Ref struct {
	Kind Kind   `json:"kind"`
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

func MkRef(kind Kind, id int64) Ref { return Ref{Kind: kind, ID: id} }
