package reportgrid

import (
	"context"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	"github.com/yungbote/waltz-backend/internal/domain/survey"
)

func fieldName(c rg.FixedColumn) string {
	if c.EntityFieldReference == nil {
		return ""
	}
	return c.EntityFieldReference.FieldName
}

func projectFields(subjectID int64, cols []rg.FixedColumn, project func(field string) (string, bool)) []rg.Cell {
	var out []rg.Cell
	for _, c := range cols {
		if v, ok := project(fieldName(c)); ok {
			out = append(out, rg.TextCell(subjectID, c.GridColumnID, v))
		}
	}
	return out
}

func (f *fetcher) applicationFields(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 || sel.Kind != entity.Application || sel.Empty() {
		return nil, nil
	}
	apps, err := f.src.Applications(ctx, sel.IDs)
	if err != nil {
		return nil, err
	}
	var out []rg.Cell
	for _, a := range apps {
		a := a
		out = append(out, projectFields(a.ID, cols, func(field string) (string, bool) {
			return applicationField(a, field)
		})...)
	}
	return out, nil
}

func (f *fetcher) initiativeFields(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 || sel.Kind != entity.ChangeInitiative || sel.Empty() {
		return nil, nil
	}
	cis, err := f.src.ChangeInitiatives(ctx, sel.IDs)
	if err != nil {
		return nil, err
	}
	var out []rg.Cell
	for _, ci := range cis {
		ci := ci
		out = append(out, projectFields(ci.ID, cols, func(field string) (string, bool) {
			return changeInitiativeField(ci, field)
		})...)
	}
	return out, nil
}

// orgUnitFields projects the owning org unit of each subject.
func (f *fetcher) orgUnitFields(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 || sel.Empty() {
		return nil, nil
	}
	rows, err := f.src.SubjectOrgUnits(ctx, sel)
	if err != nil {
		return nil, err
	}
	var out []rg.Cell
	for _, row := range rows {
		ou := row.OrgUnit
		out = append(out, projectFields(row.SubjectID, cols, func(field string) (string, bool) {
			return orgUnitField(ou, field)
		})...)
	}
	return out, nil
}

// surveyInstanceFields projects fields of the latest approved or completed
// instance per (subject, template). The column entity is the template.
func (f *fetcher) surveyInstanceFields(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	rows, err := f.src.SurveyInstances(ctx, sel, entityIDs(cols))
	if err != nil {
		return nil, err
	}
	eligible := rows[:0:0]
	for _, r := range rows {
		if r.Status == survey.StatusApproved || r.Status == survey.StatusCompleted {
			eligible = append(eligible, r)
		}
	}
	type key struct{ entityID, templateID int64 }
	latest := pickBy(eligible,
		func(r rg.SurveyInstanceRow) key { return key{r.EntityID, r.TemplateID} },
		func(a, b rg.SurveyInstanceRow) bool {
			return newerSubmission(a.SubmittedAt, b.SubmittedAt, a.InstanceID, b.InstanceID)
		})
	byTemplate := columnsByEntity(cols)
	var out []rg.Cell
	for _, si := range latest {
		si := si
		out = append(out, projectFields(si.EntityID, byTemplate[si.TemplateID], func(field string) (string, bool) {
			return surveyInstanceField(si, field)
		})...)
	}
	return out, nil
}
