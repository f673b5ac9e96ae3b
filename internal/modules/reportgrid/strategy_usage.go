package reportgrid

import (
	"context"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

// dataTypes reports the derived usage of each column data type per
// application. With rollup, usages of descendant types count towards the
// column type.
func (f *fetcher) dataTypes(rollup bool) Strategy {
	return func(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
		if len(cols) == 0 || sel.Kind != entity.Application {
			return nil, nil
		}
		rows, err := f.src.DataTypeUsages(ctx, sel, entityIDs(cols), rollup)
		if err != nil {
			return nil, err
		}
		type key struct{ entityID, typeID int64 }
		var order []key
		kinds := map[key][]UsageKind{}
		for _, row := range rows {
			k := key{row.EntityID, row.ColumnTypeID}
			if _, ok := kinds[k]; !ok {
				order = append(order, k)
			}
			kinds[k] = append(kinds[k], UsageKind(row.UsageKind))
		}
		byType := columnsByEntity(cols)
		var out []rg.Cell
		for _, k := range order {
			usage, ok := DeriveUsage(kinds[k])
			if !ok {
				continue
			}
			for _, c := range byType[k.typeID] {
				out = append(out, rg.TextCell(k.entityID, c.GridColumnID, usage.DisplayName()).
					WithOption(string(usage), usage.DisplayName()))
			}
		}
		return out, nil
	}
}

// appGroups marks subjects belonging to the column group. A subject that is
// both a direct and an indirect member keeps its earliest membership.
func (f *fetcher) appGroups(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	rows, err := f.src.AppGroupMemberships(ctx, sel, entityIDs(cols))
	if err != nil {
		return nil, err
	}
	type key struct{ subjectID, groupID int64 }
	earliest := pickBy(rows,
		func(r rg.AppGroupMembershipRow) key { return key{r.SubjectID, r.GroupID} },
		func(a, b rg.AppGroupMembershipRow) bool { return a.CreatedAt.Before(b.CreatedAt) })
	byGroup := columnsByEntity(cols)
	var out []rg.Cell
	for _, row := range earliest {
		for _, c := range byGroup[row.GroupID] {
			out = append(out, rg.TextCell(row.SubjectID, c.GridColumnID, "Y").
				WithCommentText("Created at: "+row.CreatedAt.Format(dateLayout)))
		}
	}
	return out, nil
}

// attestations reports the latest attestation per subject for each column's
// qualifier. A column without a qualifier id matches any attested entity of
// the qualifier kind.
func (f *fetcher) attestations(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	var kinds []entity.Kind
	seen := map[entity.Kind]bool{}
	for _, c := range cols {
		if c.ColumnQualifierKind == nil || seen[*c.ColumnQualifierKind] {
			continue
		}
		seen[*c.ColumnQualifierKind] = true
		kinds = append(kinds, *c.ColumnQualifierKind)
	}
	if len(kinds) == 0 {
		if f.log != nil {
			f.log.Debug("attestation columns carry no qualifier kind", "columns", len(cols))
		}
		return nil, nil
	}
	rows, err := f.src.Attestations(ctx, sel, kinds)
	if err != nil {
		return nil, err
	}
	now := f.now()
	var out []rg.Cell
	for _, c := range cols {
		if c.ColumnQualifierKind == nil {
			continue
		}
		var matching []rg.AttestationRow
		for _, row := range rows {
			if row.AttestedKind != *c.ColumnQualifierKind {
				continue
			}
			if c.ColumnQualifierID != nil && row.AttestedID != *c.ColumnQualifierID {
				continue
			}
			matching = append(matching, row)
		}
		latest := pickBy(matching,
			func(r rg.AttestationRow) int64 { return r.ParentID },
			func(a, b rg.AttestationRow) bool { return a.AttestedAt.After(b.AttestedAt) })
		for _, row := range latest {
			code, text := AttestationBand(now, row.AttestedAt)
			out = append(out, rg.DateTimeCell(row.ParentID, c.GridColumnID, row.AttestedAt).
				WithCommentText("Attested by: "+row.AttestedBy).
				WithOption(code, text))
		}
	}
	return out, nil
}
