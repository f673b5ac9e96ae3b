package gridsource

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/waltz-backend/internal/domain/catalog"
	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

// CellSourceRepo reads the raw rows the report grid strategies reduce into
// cells. Every method is a single read scoped to the selector's subjects.
type CellSourceRepo interface {
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

type cellSourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCellSourceRepo(db *gorm.DB, baseLog *logger.Logger) CellSourceRepo {
	return &cellSourceRepo{
		db:  db,
		log: baseLog.With("repo", "CellSourceRepo"),
	}
}

func (r *cellSourceRepo) q(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}
