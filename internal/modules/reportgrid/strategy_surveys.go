package reportgrid

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

const dateLayout = "2006-01-02"

// Survey field types whose entity response renders as the referenced name.
var namedResponseTypes = map[string]entity.Kind{
	"PERSON":      entity.Person,
	"APPLICATION": entity.Application,
}

const multiSelectFieldType = "MEASURABLE_MULTI_SELECT"

// newerSubmission orders by submitted_at descending with unsubmitted rows
// last, then by instance id descending.
func newerSubmission(a, b *time.Time, aID, bID int64) bool {
	switch {
	case a != nil && b == nil:
		return true
	case a == nil && b != nil:
		return false
	case a != nil && b != nil && !a.Equal(*b):
		return a.After(*b)
	default:
		return aID > bID
	}
}

func (f *fetcher) surveyQuestions(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	rows, err := f.src.SurveyResponses(ctx, sel, entityIDs(cols))
	if err != nil {
		return nil, err
	}
	type key struct{ entityID, questionID int64 }
	latest := pickBy(rows,
		func(r rg.SurveyResponseRow) key { return key{r.EntityID, r.QuestionID} },
		func(a, b rg.SurveyResponseRow) bool {
			return newerSubmission(a.SubmittedAt, b.SubmittedAt, a.InstanceID, b.InstanceID)
		})

	refIDs := map[entity.Kind][]int64{}
	for _, r := range latest {
		if kind, ok := namedResponseTypes[r.FieldType]; ok && r.EntityResponseID != nil {
			refIDs[kind] = append(refIDs[kind], *r.EntityResponseID)
		}
	}
	names := map[entity.Kind]map[int64]string{}
	for kind, ids := range refIDs {
		m, err := f.lookupNames(ctx, kind, ids)
		if err != nil {
			return nil, err
		}
		names[kind] = m
	}

	byQuestion := columnsByEntity(cols)
	var out []rg.Cell
	for _, r := range latest {
		value, ok := responseValue(r, names)
		if !ok {
			continue
		}
		for _, c := range byQuestion[r.QuestionID] {
			out = append(out, rg.TextCell(r.EntityID, c.GridColumnID, value).
				WithComment(r.Comment).
				WithOption(value, value))
		}
	}
	return out, nil
}

// responseValue renders the first populated response variant.
func responseValue(r rg.SurveyResponseRow, names map[entity.Kind]map[int64]string) (string, bool) {
	if kind, ok := namedResponseTypes[r.FieldType]; ok && r.EntityResponseID != nil {
		if name, ok := names[kind][*r.EntityResponseID]; ok {
			return name, true
		}
	}
	if r.FieldType == multiSelectFieldType && len(r.ListResponses) > 0 {
		return strings.Join(r.ListResponses, valueSeparator), true
	}
	switch {
	case r.StringResponse != nil:
		return *r.StringResponse, true
	case r.BooleanResponse != nil:
		return strconv.FormatBool(*r.BooleanResponse), true
	case r.NumberResponse != nil:
		return strconv.FormatFloat(*r.NumberResponse, 'f', -1, 64), true
	case r.DateResponse != nil:
		return r.DateResponse.Format(dateLayout), true
	case len(r.ListResponses) > 0:
		return strings.Join(r.ListResponses, valueSeparator), true
	case r.ListResponseConcat != nil:
		return *r.ListResponseConcat, true
	}
	return "", false
}
