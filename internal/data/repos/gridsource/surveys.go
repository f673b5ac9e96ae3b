package gridsource

import (
	"context"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	"github.com/yungbote/waltz-backend/internal/domain/survey"
)

// SurveyResponses returns responses to the given questions from APPROVED or
// COMPLETED instances about the subjects, with list responses attached.
func (r *cellSourceRepo) SurveyResponses(ctx context.Context, sel entity.Selector, questionIDs []int64) ([]rg.SurveyResponseRow, error) {
	var out []rg.SurveyResponseRow
	if sel.Empty() || len(questionIDs) == 0 {
		return out, nil
	}
	err := r.q(ctx).
		Table("survey_question_response AS sqr").
		Select(`si.entity_id, sq.id AS question_id, sq.field_type, si.submitted_at, si.id AS instance_id,
			sqr.string_response, sqr.number_response, sqr.boolean_response, sqr.date_response,
			sqr.entity_response_kind, sqr.entity_response_id, sqr.list_response_concat, sqr.comment`).
		Joins("JOIN survey_instance si ON si.id = sqr.survey_instance_id").
		Joins("JOIN survey_question sq ON sq.id = sqr.question_id").
		Where("si.status IN ?", []string{survey.StatusApproved, survey.StatusCompleted}).
		Where("sq.id IN ?", questionIDs).
		Where("si.entity_kind = ? AND si.entity_id IN ?", sel.Kind, sel.IDs).
		Order("si.entity_id, sq.id, si.id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	type listRow struct {
		InstanceID int64
		QuestionID int64
		Response   string
	}
	var lists []listRow
	if err := r.q(ctx).
		Table("survey_question_list_response AS sqlr").
		Select("sqlr.survey_instance_id AS instance_id, sqlr.question_id, sqlr.response").
		Joins("JOIN survey_instance si ON si.id = sqlr.survey_instance_id").
		Where("sqlr.question_id IN ?", questionIDs).
		Where("si.entity_kind = ? AND si.entity_id IN ?", sel.Kind, sel.IDs).
		Order("sqlr.survey_instance_id, sqlr.question_id, sqlr.position, sqlr.response").
		Scan(&lists).Error; err != nil {
		return nil, err
	}
	type key struct{ instance, question int64 }
	byKey := make(map[key][]string, len(lists))
	for _, l := range lists {
		k := key{l.InstanceID, l.QuestionID}
		byKey[k] = append(byKey[k], l.Response)
	}
	for i := range out {
		out[i].ListResponses = byKey[key{out[i].InstanceID, out[i].QuestionID}]
	}
	return out, nil
}

// SurveyInstances returns the current (non-superseded) instances of the given
// templates about the subjects, whatever their status.
func (r *cellSourceRepo) SurveyInstances(ctx context.Context, sel entity.Selector, templateIDs []int64) ([]rg.SurveyInstanceRow, error) {
	var out []rg.SurveyInstanceRow
	if sel.Empty() || len(templateIDs) == 0 {
		return out, nil
	}
	err := r.q(ctx).
		Table("survey_instance AS si").
		Select(`si.entity_id, si.id AS instance_id, sr.survey_template_id AS template_id, si.status,
			si.name AS instance_name, sr.name AS run_name, sr.issued_on, si.due_date, si.approval_due_date,
			si.submitted_at, si.submitted_by, si.approved_at, si.approved_by`).
		Joins("JOIN survey_run sr ON sr.id = si.survey_run_id").
		Where("si.entity_kind = ? AND si.entity_id IN ?", sel.Kind, sel.IDs).
		Where("sr.survey_template_id IN ?", templateIDs).
		Where("si.original_instance_id IS NULL").
		Order("si.entity_id, sr.survey_template_id, si.id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
