package gridsource

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	pkgerrors "github.com/yungbote/waltz-backend/internal/pkg/errors"
)

// DataTypeUsages returns application data type usages. With rollup the usage
// of any descendant type counts towards the ancestor column type.
func (r *cellSourceRepo) DataTypeUsages(ctx context.Context, sel entity.Selector, dataTypeIDs []int64, rollup bool) ([]rg.DataTypeUsageRow, error) {
	var out []rg.DataTypeUsageRow
	if sel.Empty() || len(dataTypeIDs) == 0 || sel.Kind != entity.Application {
		return out, nil
	}
	q := r.q(ctx).Table("data_type_usage AS dtu")
	if rollup {
		q = q.Select("dtu.entity_id, eh.ancestor_id AS column_type_id, dtu.data_type_id, dt.code AS data_type_name, dt.name AS data_type_display, dtu.usage_kind").
			Joins("JOIN entity_hierarchy eh ON eh.id = dtu.data_type_id AND eh.kind = ?", entity.DataType).
			Where("eh.ancestor_id IN ?", dataTypeIDs)
	} else {
		q = q.Select("dtu.entity_id, dtu.data_type_id AS column_type_id, dtu.data_type_id, dt.code AS data_type_name, dt.name AS data_type_display, dtu.usage_kind").
			Where("dtu.data_type_id IN ?", dataTypeIDs)
	}
	err := q.
		Joins("JOIN data_type dt ON dt.id = dtu.data_type_id").
		Where("dtu.entity_kind = ? AND dtu.entity_id IN ?", entity.Application, sel.IDs).
		Order("dtu.entity_id, dtu.data_type_id, dtu.usage_kind").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppGroupMemberships resolves group membership for application subjects
// (direct entries plus org unit subtrees) and change initiative subjects
// (entity relationships in either direction).
func (r *cellSourceRepo) AppGroupMemberships(ctx context.Context, sel entity.Selector, groupIDs []int64) ([]rg.AppGroupMembershipRow, error) {
	var out []rg.AppGroupMembershipRow
	switch sel.Kind {
	case entity.Application, entity.ChangeInitiative:
	default:
		return nil, fmt.Errorf("cannot return app group selector for kind: %s: %w", sel.Kind, pkgerrors.ErrUnsupported)
	}
	if sel.Empty() || len(groupIDs) == 0 {
		return out, nil
	}
	if sel.Kind == entity.Application {
		var direct []rg.AppGroupMembershipRow
		if err := r.q(ctx).
			Table("application_group_entry AS age").
			Select("age.application_id AS subject_id, age.group_id, age.created_at").
			Where("age.application_id IN ?", sel.IDs).
			Where("age.group_id IN ?", groupIDs).
			Scan(&direct).Error; err != nil {
			return nil, err
		}
		var indirect []rg.AppGroupMembershipRow
		if err := r.q(ctx).
			Table("application_group_ou_entry AS agoe").
			Select("a.id AS subject_id, agoe.group_id, agoe.created_at").
			Joins("JOIN entity_hierarchy eh ON eh.ancestor_id = agoe.org_unit_id AND eh.kind = ?", entity.OrgUnit).
			Joins("JOIN application a ON a.organisational_unit_id = eh.id").
			Where("a.id IN ?", sel.IDs).
			Where("agoe.group_id IN ?", groupIDs).
			Scan(&indirect).Error; err != nil {
			return nil, err
		}
		return append(direct, indirect...), nil
	}

	var groupA []rg.AppGroupMembershipRow
	if err := r.q(ctx).
		Table("entity_relationship AS er").
		Select("er.id_b AS subject_id, er.id_a AS group_id, er.last_updated_at AS created_at").
		Where("er.kind_a = ? AND er.kind_b = ?", entity.AppGroup, entity.ChangeInitiative).
		Where("er.id_b IN ?", sel.IDs).
		Where("er.id_a IN ?", groupIDs).
		Scan(&groupA).Error; err != nil {
		return nil, err
	}
	var groupB []rg.AppGroupMembershipRow
	if err := r.q(ctx).
		Table("entity_relationship AS er").
		Select("er.id_a AS subject_id, er.id_b AS group_id, er.last_updated_at AS created_at").
		Where("er.kind_a = ? AND er.kind_b = ?", entity.ChangeInitiative, entity.AppGroup).
		Where("er.id_a IN ?", sel.IDs).
		Where("er.id_b IN ?", groupIDs).
		Scan(&groupB).Error; err != nil {
		return nil, err
	}
	return append(groupA, groupB...), nil
}

// Attestations returns every completed attestation of the given attested
// kinds over the subjects. The latest-per-pair reduction happens in the
// strategy.
func (r *cellSourceRepo) Attestations(ctx context.Context, sel entity.Selector, attestedKinds []entity.Kind) ([]rg.AttestationRow, error) {
	var out []rg.AttestationRow
	if sel.Empty() || len(attestedKinds) == 0 {
		return out, nil
	}
	type row struct {
		ParentID     int64
		AttestedKind entity.Kind
		AttestedID   *int64
		AttestedAt   time.Time
		AttestedBy   *string
	}
	var rows []row
	err := r.q(ctx).
		Table("attestation_instance AS ai").
		Select("ai.parent_entity_id AS parent_id, ar.attested_entity_kind AS attested_kind, ar.attested_entity_id AS attested_id, ai.attested_at, ai.attested_by").
		Joins("JOIN attestation_run ar ON ar.id = ai.attestation_run_id").
		Where("ai.parent_entity_kind = ? AND ai.parent_entity_id IN ?", sel.Kind, sel.IDs).
		Where("ai.attested_at IS NOT NULL").
		Where("ar.attested_entity_kind IN ?", attestedKinds).
		Order("ai.parent_entity_id, ai.attested_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out = make([]rg.AttestationRow, 0, len(rows))
	for _, x := range rows {
		a := rg.AttestationRow{
			ParentID:     x.ParentID,
			AttestedKind: x.AttestedKind,
			AttestedAt:   x.AttestedAt,
		}
		if x.AttestedID != nil {
			a.AttestedID = *x.AttestedID
		}
		if x.AttestedBy != nil {
			a.AttestedBy = *x.AttestedBy
		}
		out = append(out, a)
	}
	return out, nil
}
