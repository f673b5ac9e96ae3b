package gridsource

import (
	"context"

	"github.com/yungbote/waltz-backend/internal/domain/catalog"
	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

func (r *cellSourceRepo) Applications(ctx context.Context, ids []int64) ([]catalog.Application, error) {
	var out []catalog.Application
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.q(ctx).
		Where("id IN ?", ids).
		Order("id").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cellSourceRepo) ChangeInitiatives(ctx context.Context, ids []int64) ([]rg.ChangeInitiativeRow, error) {
	var out []rg.ChangeInitiativeRow
	if len(ids) == 0 {
		return out, nil
	}
	err := r.q(ctx).
		Table("change_initiative AS ci").
		Select("ci.*, parent.external_id AS parent_external_id").
		Joins("LEFT JOIN change_initiative parent ON parent.id = ci.parent_id").
		Where("ci.id IN ?", ids).
		Order("ci.id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SubjectOrgUnits returns the owning org unit of each application or change
// initiative subject.
func (r *cellSourceRepo) SubjectOrgUnits(ctx context.Context, sel entity.Selector) ([]rg.SubjectOrgUnitRow, error) {
	var out []rg.SubjectOrgUnitRow
	if sel.Empty() {
		return out, nil
	}
	var subjectTable string
	switch sel.Kind {
	case entity.Application:
		subjectTable = "application"
	case entity.ChangeInitiative:
		subjectTable = "change_initiative"
	default:
		return out, nil
	}
	err := r.q(ctx).
		Table(subjectTable+" AS s").
		Select("s.id AS subject_id, ou.*").
		Joins("JOIN organisational_unit ou ON ou.id = s.organisational_unit_id").
		Where("s.id IN ?", sel.IDs).
		Order("s.id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
