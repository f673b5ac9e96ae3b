package reportgrid

import (
	"context"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

// StrategyKey names a fetch strategy. Most keys are a column entity kind;
// measurable and data type columns are split further by their roll-up option
// and field columns by the referenced entity kind.
type StrategyKey string

const (
	KeyAssessment        StrategyKey = "ASSESSMENT_DEFINITION"
	KeyInvolvement       StrategyKey = "INVOLVEMENT_KIND"
	KeyCost              StrategyKey = "COST_KIND"
	KeyComplexity        StrategyKey = "COMPLEXITY_KIND"
	KeyMeasurableHighest StrategyKey = "MEASURABLE:PICK_HIGHEST"
	KeyMeasurableLowest  StrategyKey = "MEASURABLE:PICK_LOWEST"
	KeyMeasurableExact   StrategyKey = "MEASURABLE:NONE"
	KeySurveyQuestion    StrategyKey = "SURVEY_QUESTION"
	KeyAppGroup          StrategyKey = "APP_GROUP"
	KeyDataTypeExact     StrategyKey = "DATA_TYPE:NONE"
	KeyDataTypeRollup    StrategyKey = "DATA_TYPE:ROLLUP"
	KeyAttestation       StrategyKey = "ATTESTATION"
	KeyTag               StrategyKey = "TAG"
	KeyAlias             StrategyKey = "ENTITY_ALIAS"
	KeyMeasurableTree    StrategyKey = "MEASURABLE_CATEGORY"
	KeyStatistic         StrategyKey = "ENTITY_STATISTIC"
	KeyApplicationField  StrategyKey = "FIELD:APPLICATION"
	KeyInitiativeField   StrategyKey = "FIELD:CHANGE_INITIATIVE"
	KeyOrgUnitField      StrategyKey = "FIELD:ORG_UNIT"
	KeySurveyField       StrategyKey = "FIELD:SURVEY_INSTANCE"
)

// Strategy turns one group of columns into cells for the selector's
// subjects. It returns nil, nil for an empty column group without touching
// the source.
type Strategy func(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error)

// strategies is the dispatch table. Keys missing here are skipped by the
// resolver.
func (f *fetcher) strategies() map[StrategyKey]Strategy {
	return map[StrategyKey]Strategy{
		KeyAssessment:        f.assessments,
		KeyInvolvement:       f.involvements,
		KeyCost:              f.costs,
		KeyComplexity:        f.complexities,
		KeyMeasurableHighest: f.measurableSummary(true),
		KeyMeasurableLowest:  f.measurableSummary(false),
		KeyMeasurableExact:   f.measurableExact,
		KeySurveyQuestion:    f.surveyQuestions,
		KeyAppGroup:          f.appGroups,
		KeyDataTypeExact:     f.dataTypes(false),
		KeyDataTypeRollup:    f.dataTypes(true),
		KeyAttestation:       f.attestations,
		KeyTag:               f.tags,
		KeyAlias:             f.aliases,
		KeyMeasurableTree:    f.measurableHierarchy,
		KeyStatistic:         f.statistics,
		KeyApplicationField:  f.applicationFields,
		KeyInitiativeField:   f.initiativeFields,
		KeyOrgUnitField:      f.orgUnitFields,
		KeySurveyField:       f.surveyInstanceFields,
	}
}
