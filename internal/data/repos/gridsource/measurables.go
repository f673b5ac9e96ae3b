package gridsource

import (
	"context"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

// MeasurableRatings returns ratings made directly against the given
// measurables, resolved to the scheme item of the measurable's category.
func (r *cellSourceRepo) MeasurableRatings(ctx context.Context, sel entity.Selector, measurableIDs []int64) ([]rg.MeasurableRatingRow, error) {
	var out []rg.MeasurableRatingRow
	if sel.Empty() || len(measurableIDs) == 0 {
		return out, nil
	}
	err := r.q(ctx).
		Table("measurable_rating AS mr").
		Select("mr.entity_id, mr.measurable_id, rsi.id AS rating_item_id, rsi.name AS rating_name, mr.description").
		Joins("JOIN measurable m ON m.id = mr.measurable_id").
		Joins("JOIN measurable_category mc ON mc.id = m.measurable_category_id").
		Joins("JOIN rating_scheme_item rsi ON rsi.code = mr.rating AND rsi.scheme_id = mc.rating_scheme_id").
		Where("mr.measurable_id IN ?", measurableIDs).
		Where("mr.entity_kind = ? AND mr.entity_id IN ?", sel.Kind, sel.IDs).
		Order("mr.entity_id, mr.measurable_id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RollupRatings returns every rating held on a measurable at or below one of
// the given measurables. AncestorID identifies the measurable rolled up to.
func (r *cellSourceRepo) RollupRatings(ctx context.Context, sel entity.Selector, measurableIDs []int64) ([]rg.RollupRatingRow, error) {
	var out []rg.RollupRatingRow
	if sel.Empty() || len(measurableIDs) == 0 {
		return out, nil
	}
	err := r.q(ctx).
		Table("measurable_rating AS mr").
		Select("mr.entity_id, m.id AS ancestor_id, mr.measurable_id, rsi.id AS rating_item_id, rsi.name AS rating_name, rsi.position").
		Joins("JOIN entity_hierarchy eh ON eh.id = mr.measurable_id AND eh.kind = ?", entity.Measurable).
		Joins("JOIN measurable m ON m.id = eh.ancestor_id").
		Joins("JOIN measurable_category mc ON mc.id = m.measurable_category_id").
		Joins("JOIN rating_scheme_item rsi ON rsi.scheme_id = mc.rating_scheme_id AND rsi.code = mr.rating").
		Where("m.id IN ?", measurableIDs).
		Where("mr.entity_kind = ? AND mr.entity_id IN ?", sel.Kind, sel.IDs).
		Order("mr.entity_id, m.id, rsi.position, rsi.name").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RatedMeasurables lists the measurables of each category the subjects hold
// a rating against.
func (r *cellSourceRepo) RatedMeasurables(ctx context.Context, sel entity.Selector, categoryIDs []int64) ([]rg.RatedMeasurableRow, error) {
	var out []rg.RatedMeasurableRow
	if sel.Empty() || len(categoryIDs) == 0 {
		return out, nil
	}
	err := r.q(ctx).
		Table("measurable_rating AS mr").
		Distinct("mr.entity_id, m.measurable_category_id AS category_id, m.id AS measurable_id, m.name").
		Joins("JOIN measurable m ON m.id = mr.measurable_id").
		Where("m.measurable_category_id IN ?", categoryIDs).
		Where("mr.entity_kind = ? AND mr.entity_id IN ?", sel.Kind, sel.IDs).
		Order("mr.entity_id, m.name, m.id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MeasurableAncestry returns the given measurables and all of their
// ancestors, each with its direct parent.
func (r *cellSourceRepo) MeasurableAncestry(ctx context.Context, measurableIDs []int64) ([]rg.MeasurableNode, error) {
	var out []rg.MeasurableNode
	if len(measurableIDs) == 0 {
		return out, nil
	}
	err := r.q(ctx).
		Table("entity_hierarchy AS eh").
		Distinct("m.id, m.parent_id, m.name").
		Joins("JOIN measurable m ON m.id = eh.ancestor_id").
		Where("eh.kind = ? AND eh.id IN ?", entity.Measurable, measurableIDs).
		Order("m.id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cellSourceRepo) HierarchyDescendants(ctx context.Context, kind entity.Kind, ancestorIDs []int64) ([]rg.HierarchyEdge, error) {
	var out []rg.HierarchyEdge
	if len(ancestorIDs) == 0 {
		return out, nil
	}
	err := r.q(ctx).
		Table("entity_hierarchy AS eh").
		Select("eh.ancestor_id, eh.id AS descendant_id").
		Where("eh.kind = ? AND eh.ancestor_id IN ?", kind, ancestorIDs).
		Order("eh.ancestor_id, eh.id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
