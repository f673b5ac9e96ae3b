package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	"github.com/yungbote/waltz-backend/internal/domain/measurable"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

// SelectorRepo expands selection options into subject ids.
type SelectorRepo interface {
	// ExistingIDs filters ids down to those present for the subject kind.
	ExistingIDs(ctx context.Context, kind entity.Kind, ids []int64) ([]int64, error)
	// OrgUnitSubjects returns applications or change initiatives owned by any
	// org unit in the subtrees rooted at orgUnitIDs.
	OrgUnitSubjects(ctx context.Context, kind entity.Kind, orgUnitIDs []int64) ([]int64, error)
	// AppGroupApplications returns direct and org unit linked members.
	AppGroupApplications(ctx context.Context, groupIDs []int64) ([]int64, error)
	MeasurableCategories(ctx context.Context) ([]measurable.Category, error)
}

type selectorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSelectorRepo(db *gorm.DB, baseLog *logger.Logger) SelectorRepo {
	return &selectorRepo{
		db:  db,
		log: baseLog.With("repo", "SelectorRepo"),
	}
}

func subjectTable(kind entity.Kind) (string, bool) {
	switch kind {
	case entity.Application:
		return "application", true
	case entity.ChangeInitiative:
		return "change_initiative", true
	default:
		return "", false
	}
}

func (r *selectorRepo) ExistingIDs(ctx context.Context, kind entity.Kind, ids []int64) ([]int64, error) {
	var out []int64
	table, ok := subjectTable(kind)
	if !ok || len(ids) == 0 {
		return out, nil
	}
	if err := r.db.WithContext(ctx).
		Table(table).
		Where("id IN ?", ids).
		Order("id").
		Pluck("id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *selectorRepo) OrgUnitSubjects(ctx context.Context, kind entity.Kind, orgUnitIDs []int64) ([]int64, error) {
	var out []int64
	table, ok := subjectTable(kind)
	if !ok || len(orgUnitIDs) == 0 {
		return out, nil
	}
	if err := r.db.WithContext(ctx).
		Table(table+" AS s").
		Distinct("s.id").
		Joins("JOIN entity_hierarchy eh ON eh.id = s.organisational_unit_id AND eh.kind = ?", entity.OrgUnit).
		Where("eh.ancestor_id IN ?", orgUnitIDs).
		Order("s.id").
		Pluck("s.id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *selectorRepo) AppGroupApplications(ctx context.Context, groupIDs []int64) ([]int64, error) {
	var out []int64
	if len(groupIDs) == 0 {
		return out, nil
	}
	var direct []int64
	if err := r.db.WithContext(ctx).
		Table("application_group_entry").
		Where("group_id IN ?", groupIDs).
		Pluck("application_id", &direct).Error; err != nil {
		return nil, err
	}
	var indirect []int64
	if err := r.db.WithContext(ctx).
		Table("application_group_ou_entry AS agoe").
		Joins("JOIN entity_hierarchy eh ON eh.ancestor_id = agoe.org_unit_id AND eh.kind = ?", entity.OrgUnit).
		Joins("JOIN application a ON a.organisational_unit_id = eh.id").
		Where("agoe.group_id IN ?", groupIDs).
		Pluck("a.id", &indirect).Error; err != nil {
		return nil, err
	}
	return append(direct, indirect...), nil
}

func (r *selectorRepo) MeasurableCategories(ctx context.Context) ([]measurable.Category, error) {
	var out []measurable.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
