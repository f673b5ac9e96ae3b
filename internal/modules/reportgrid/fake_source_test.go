package reportgrid

import (
	"context"
	"sync"
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/catalog"
	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

// fakeSource serves canned rows and counts calls.
type fakeSource struct {
	mu    sync.Mutex
	calls int
	err   error

	assessments    []rg.AssessmentRow
	statistics     []rg.StatisticRow
	involvements   []rg.InvolvementRow
	costs          []rg.CostRow
	complexities   []rg.ComplexityRow
	tags           []rg.TagRow
	aliases        []rg.AliasRow
	ratings        []rg.MeasurableRatingRow
	rollups        []rg.RollupRatingRow
	rated          []rg.RatedMeasurableRow
	ancestry       []rg.MeasurableNode
	descendants    []rg.HierarchyEdge
	usages         []rg.DataTypeUsageRow
	memberships    []rg.AppGroupMembershipRow
	attestations   []rg.AttestationRow
	responses      []rg.SurveyResponseRow
	instances      []rg.SurveyInstanceRow
	applications   []catalog.Application
	initiatives    []rg.ChangeInitiativeRow
	subjectOrgUnit []rg.SubjectOrgUnitRow
}

func (f *fakeSource) hit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeSource) AssessmentRatings(context.Context, entity.Selector, []int64) ([]rg.AssessmentRow, error) {
	return f.assessments, f.hit()
}

func (f *fakeSource) StatisticValues(context.Context, entity.Selector, []int64) ([]rg.StatisticRow, error) {
	return f.statistics, f.hit()
}

func (f *fakeSource) Involvements(context.Context, entity.Selector, []int64) ([]rg.InvolvementRow, error) {
	return f.involvements, f.hit()
}

func (f *fakeSource) Costs(context.Context, entity.Selector, []int64) ([]rg.CostRow, error) {
	return f.costs, f.hit()
}

func (f *fakeSource) Complexities(context.Context, entity.Selector, []int64) ([]rg.ComplexityRow, error) {
	return f.complexities, f.hit()
}

func (f *fakeSource) Tags(context.Context, entity.Selector) ([]rg.TagRow, error) {
	return f.tags, f.hit()
}

func (f *fakeSource) Aliases(context.Context, entity.Selector) ([]rg.AliasRow, error) {
	return f.aliases, f.hit()
}

func (f *fakeSource) MeasurableRatings(context.Context, entity.Selector, []int64) ([]rg.MeasurableRatingRow, error) {
	return f.ratings, f.hit()
}

func (f *fakeSource) RollupRatings(context.Context, entity.Selector, []int64) ([]rg.RollupRatingRow, error) {
	return f.rollups, f.hit()
}

func (f *fakeSource) RatedMeasurables(context.Context, entity.Selector, []int64) ([]rg.RatedMeasurableRow, error) {
	return f.rated, f.hit()
}

func (f *fakeSource) MeasurableAncestry(context.Context, []int64) ([]rg.MeasurableNode, error) {
	return f.ancestry, f.hit()
}

func (f *fakeSource) HierarchyDescendants(_ context.Context, _ entity.Kind, ancestorIDs []int64) ([]rg.HierarchyEdge, error) {
	want := map[int64]bool{}
	for _, id := range ancestorIDs {
		want[id] = true
	}
	var out []rg.HierarchyEdge
	for _, e := range f.descendants {
		if want[e.AncestorID] {
			out = append(out, e)
		}
	}
	return out, f.hit()
}

func (f *fakeSource) DataTypeUsages(context.Context, entity.Selector, []int64, bool) ([]rg.DataTypeUsageRow, error) {
	return f.usages, f.hit()
}

func (f *fakeSource) AppGroupMemberships(context.Context, entity.Selector, []int64) ([]rg.AppGroupMembershipRow, error) {
	return f.memberships, f.hit()
}

func (f *fakeSource) Attestations(context.Context, entity.Selector, []entity.Kind) ([]rg.AttestationRow, error) {
	return f.attestations, f.hit()
}

func (f *fakeSource) SurveyResponses(context.Context, entity.Selector, []int64) ([]rg.SurveyResponseRow, error) {
	return f.responses, f.hit()
}

func (f *fakeSource) SurveyInstances(context.Context, entity.Selector, []int64) ([]rg.SurveyInstanceRow, error) {
	return f.instances, f.hit()
}

func (f *fakeSource) Applications(context.Context, []int64) ([]catalog.Application, error) {
	return f.applications, f.hit()
}

func (f *fakeSource) ChangeInitiatives(context.Context, []int64) ([]rg.ChangeInitiativeRow, error) {
	return f.initiatives, f.hit()
}

func (f *fakeSource) SubjectOrgUnits(context.Context, entity.Selector) ([]rg.SubjectOrgUnitRow, error) {
	return f.subjectOrgUnit, f.hit()
}

type fakeNames map[entity.Kind]map[int64]string

func (n fakeNames) Names(_ context.Context, kind entity.Kind, ids []int64) (map[int64]string, error) {
	out := map[int64]string{}
	for _, id := range ids {
		if name, ok := n[kind][id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func newTestFetcher(src *fakeSource) *fetcher {
	return &fetcher{src: src, names: fakeNames{}, now: fixedNow, log: logger.NewNop()}
}

func fixedNow() time.Time {
	return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func col(id int64, kind entity.Kind, entityID int64) rg.FixedColumn {
	return rg.FixedColumn{GridColumnID: id, Position: int(id), ColumnEntityKind: kind, ColumnEntityID: entityID}
}

func ptr[T any](v T) *T { return &v }

func appSel(ids ...int64) entity.Selector { return entity.NewSelector(entity.Application, ids) }

func cellFor(cells []rg.Cell, subjectID, columnID int64) (rg.Cell, bool) {
	for _, c := range cells {
		if c.SubjectID == subjectID && c.ColumnDefinitionID == columnID {
			return c, true
		}
	}
	return rg.Cell{}, false
}
