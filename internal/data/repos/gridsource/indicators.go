package gridsource

import (
	"context"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

func (r *cellSourceRepo) AssessmentRatings(ctx context.Context, sel entity.Selector, definitionIDs []int64) ([]rg.AssessmentRow, error) {
	var out []rg.AssessmentRow
	if sel.Empty() || len(definitionIDs) == 0 {
		return out, nil
	}
	err := r.q(ctx).
		Table("assessment_rating AS ar").
		Select("ar.entity_id, ar.assessment_definition_id AS definition_id, ar.rating_id, rsi.name AS rating_name, ar.description").
		Joins("JOIN rating_scheme_item rsi ON rsi.id = ar.rating_id").
		Where("ar.assessment_definition_id IN ?", definitionIDs).
		Where("ar.entity_kind = ? AND ar.entity_id IN ?", sel.Kind, sel.IDs).
		Order("ar.entity_id, ar.assessment_definition_id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cellSourceRepo) StatisticValues(ctx context.Context, sel entity.Selector, statisticIDs []int64) ([]rg.StatisticRow, error) {
	var out []rg.StatisticRow
	if sel.Empty() || len(statisticIDs) == 0 {
		return out, nil
	}
	err := r.q(ctx).
		Table("entity_statistic_value AS esv").
		Select("esv.entity_id, esv.statistic_id, esv.outcome, esv.reason").
		Where("esv.statistic_id IN ?", statisticIDs).
		Where("esv.current = ?", true).
		Where("esv.entity_kind = ? AND esv.entity_id IN ?", sel.Kind, sel.IDs).
		Order("esv.entity_id, esv.statistic_id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cellSourceRepo) Involvements(ctx context.Context, sel entity.Selector, kindIDs []int64) ([]rg.InvolvementRow, error) {
	var out []rg.InvolvementRow
	if sel.Empty() || len(kindIDs) == 0 {
		return out, nil
	}
	err := r.q(ctx).
		Table("involvement AS inv").
		Select("inv.entity_id, inv.kind_id, p.email").
		Joins("JOIN person p ON p.employee_id = inv.employee_id").
		Where("inv.entity_kind = ? AND inv.entity_id IN ?", sel.Kind, sel.IDs).
		Where("inv.kind_id IN ?", kindIDs).
		Where("p.is_removed = ?", false).
		Order("inv.entity_id, inv.kind_id, p.email").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Costs returns every year on record; the latest-year reduction happens in
// the strategy.
func (r *cellSourceRepo) Costs(ctx context.Context, sel entity.Selector, costKindIDs []int64) ([]rg.CostRow, error) {
	var out []rg.CostRow
	if sel.Empty() || len(costKindIDs) == 0 {
		return out, nil
	}
	err := r.q(ctx).
		Table("cost AS c").
		Select("c.entity_id, c.cost_kind_id, c.year, c.amount").
		Where("c.cost_kind_id IN ?", costKindIDs).
		Where("c.entity_kind = ? AND c.entity_id IN ?", sel.Kind, sel.IDs).
		Order("c.entity_id, c.cost_kind_id, c.year").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cellSourceRepo) Complexities(ctx context.Context, sel entity.Selector, kindIDs []int64) ([]rg.ComplexityRow, error) {
	var out []rg.ComplexityRow
	if sel.Empty() || len(kindIDs) == 0 {
		return out, nil
	}
	err := r.q(ctx).
		Table("complexity AS cx").
		Select("cx.entity_id, cx.complexity_kind_id AS kind_id, cx.score").
		Where("cx.complexity_kind_id IN ?", kindIDs).
		Where("cx.entity_kind = ? AND cx.entity_id IN ?", sel.Kind, sel.IDs).
		Order("cx.entity_id, cx.complexity_kind_id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cellSourceRepo) Tags(ctx context.Context, sel entity.Selector) ([]rg.TagRow, error) {
	var out []rg.TagRow
	if sel.Empty() {
		return out, nil
	}
	err := r.q(ctx).
		Table("tag_usage AS tu").
		Select("tu.entity_id, t.name").
		Joins("JOIN tag t ON t.id = tu.tag_id AND t.target_kind = tu.entity_kind").
		Where("tu.entity_kind = ? AND tu.entity_id IN ?", sel.Kind, sel.IDs).
		Order("tu.entity_id, t.name").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cellSourceRepo) Aliases(ctx context.Context, sel entity.Selector) ([]rg.AliasRow, error) {
	var out []rg.AliasRow
	if sel.Empty() {
		return out, nil
	}
	err := r.q(ctx).
		Table("entity_alias AS ea").
		Select("ea.id AS entity_id, ea.alias").
		Where("ea.kind = ? AND ea.id IN ?", sel.Kind, sel.IDs).
		Order("ea.id, ea.alias").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
