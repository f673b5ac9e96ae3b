package reportgrid

import (
	"context"

	"github.com/yungbote/waltz-backend/internal/domain/catalog"
	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

// Source is the read side the strategies reduce into cells. The gorm
// implementation lives in data/repos/gridsource.
type Source interface {
	AssessmentRatings(ctx context.Context, sel entity.Selector, definitionIDs []int64) ([]rg.AssessmentRow, error)
	StatisticValues(ctx context.Context, sel entity.Selector, statisticIDs []int64) ([]rg.StatisticRow, error)
	Involvements(ctx context.Context, sel entity.Selector, kindIDs []int64) ([]rg.InvolvementRow, error)
	Costs(ctx context.Context, sel entity.Selector, costKindIDs []int64) ([]rg.CostRow, error)
	Complexities(ctx context.Context, sel entity.Selector, kindIDs []int64) ([]rg.ComplexityRow, error)
	Tags(ctx context.Context, sel entity.Selector) ([]rg.TagRow, error)
	Aliases(ctx context.Context, sel entity.Selector) ([]rg.AliasRow, error)

	MeasurableRatings(ctx context.Context, sel entity.Selector, measurableIDs []int64) ([]rg.MeasurableRatingRow, error)
	RollupRatings(ctx context.Context, sel entity.Selector, measurableIDs []int64) ([]rg.RollupRatingRow, error)
	RatedMeasurables(ctx context.Context, sel entity.Selector, categoryIDs []int64) ([]rg.RatedMeasurableRow, error)
	MeasurableAncestry(ctx context.Context, measurableIDs []int64) ([]rg.MeasurableNode, error)
	HierarchyDescendants(ctx context.Context, kind entity.Kind, ancestorIDs []int64) ([]rg.HierarchyEdge, error)

	DataTypeUsages(ctx context.Context, sel entity.Selector, dataTypeIDs []int64, rollup bool) ([]rg.DataTypeUsageRow, error)
	AppGroupMemberships(ctx context.Context, sel entity.Selector, groupIDs []int64) ([]rg.AppGroupMembershipRow, error)
	Attestations(ctx context.Context, sel entity.Selector, attestedKinds []entity.Kind) ([]rg.AttestationRow, error)

	SurveyResponses(ctx context.Context, sel entity.Selector, questionIDs []int64) ([]rg.SurveyResponseRow, error)
	SurveyInstances(ctx context.Context, sel entity.Selector, templateIDs []int64) ([]rg.SurveyInstanceRow, error)

	Applications(ctx context.Context, ids []int64) ([]catalog.Application, error)
	ChangeInitiatives(ctx context.Context, ids []int64) ([]rg.ChangeInitiativeRow, error)
	SubjectOrgUnits(ctx context.Context, sel entity.Selector) ([]rg.SubjectOrgUnitRow, error)
}

// NameResolver maps entity ids to display names. Survey responses that point
// at people or applications render the referenced name.
type NameResolver interface {
	Names(ctx context.Context, kind entity.Kind, ids []int64) (map[int64]string, error)
}

// columnsByEntity indexes columns by their column entity id. A grid may carry
// more than one column for the same entity.
func columnsByEntity(cols []rg.FixedColumn) map[int64][]rg.FixedColumn {
	out := make(map[int64][]rg.FixedColumn, len(cols))
	for _, c := range cols {
		out[c.ColumnEntityID] = append(out[c.ColumnEntityID], c)
	}
	return out
}

// entityIDs returns the distinct column entity ids in column order.
func entityIDs(cols []rg.FixedColumn) []int64 {
	seen := make(map[int64]struct{}, len(cols))
	out := make([]int64, 0, len(cols))
	for _, c := range cols {
		if _, ok := seen[c.ColumnEntityID]; ok {
			continue
		}
		seen[c.ColumnEntityID] = struct{}{}
		out = append(out, c.ColumnEntityID)
	}
	return out
}
