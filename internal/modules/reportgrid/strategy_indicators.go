package reportgrid

import (
	"context"
	"strconv"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

func (f *fetcher) assessments(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	rows, err := f.src.AssessmentRatings(ctx, sel, entityIDs(cols))
	if err != nil {
		return nil, err
	}
	byDef := columnsByEntity(cols)
	var out []rg.Cell
	for _, row := range rows {
		for _, c := range byDef[row.DefinitionID] {
			out = append(out, rg.RatingCell(row.EntityID, c.GridColumnID, row.RatingID).
				WithComment(row.Description).
				WithOption(strconv.FormatInt(row.RatingID, 10), row.RatingName))
		}
	}
	return out, nil
}

func (f *fetcher) statistics(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	rows, err := f.src.StatisticValues(ctx, sel, entityIDs(cols))
	if err != nil {
		return nil, err
	}
	byStat := columnsByEntity(cols)
	var out []rg.Cell
	for _, row := range rows {
		for _, c := range byStat[row.StatisticID] {
			out = append(out, rg.TextCell(row.EntityID, c.GridColumnID, row.Outcome).
				WithComment(row.Reason).
				WithOption(row.Outcome, row.Outcome))
		}
	}
	return out, nil
}

// involvements emits one text cell per distinct email; the merge step joins
// them.
func (f *fetcher) involvements(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	rows, err := f.src.Involvements(ctx, sel, entityIDs(cols))
	if err != nil {
		return nil, err
	}
	type seenKey struct {
		key   rg.CellKey
		email string
	}
	seen := map[seenKey]bool{}
	byKind := columnsByEntity(cols)
	var out []rg.Cell
	for _, row := range rows {
		for _, c := range byKind[row.KindID] {
			sk := seenKey{rg.CellKey{SubjectID: row.EntityID, ColumnDefinitionID: c.GridColumnID}, row.Email}
			if seen[sk] {
				continue
			}
			seen[sk] = true
			out = append(out, rg.TextCell(row.EntityID, c.GridColumnID, row.Email))
		}
	}
	return out, nil
}

// costs reports the amount of the most recent year per (subject, cost kind).
func (f *fetcher) costs(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	rows, err := f.src.Costs(ctx, sel, entityIDs(cols))
	if err != nil {
		return nil, err
	}
	type key struct{ entityID, kindID int64 }
	latest := pickBy(rows,
		func(r rg.CostRow) key { return key{r.EntityID, r.CostKindID} },
		func(a, b rg.CostRow) bool { return a.Year > b.Year })
	byKind := columnsByEntity(cols)
	var out []rg.Cell
	for _, row := range latest {
		for _, c := range byKind[row.CostKindID] {
			out = append(out, rg.NumberCell(row.EntityID, c.GridColumnID, row.Amount))
		}
	}
	return out, nil
}

func (f *fetcher) complexities(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	rows, err := f.src.Complexities(ctx, sel, entityIDs(cols))
	if err != nil {
		return nil, err
	}
	byKind := columnsByEntity(cols)
	var out []rg.Cell
	for _, row := range rows {
		for _, c := range byKind[row.KindID] {
			out = append(out, rg.NumberCell(row.EntityID, c.GridColumnID, row.Score))
		}
	}
	return out, nil
}

// tags and aliases are not keyed by a column entity: only the first column
// of the group is populated.
func (f *fetcher) tags(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	rows, err := f.src.Tags(ctx, sel)
	if err != nil {
		return nil, err
	}
	colID := cols[0].GridColumnID
	values := make([]subjectValue, 0, len(rows))
	for _, row := range rows {
		values = append(values, subjectValue{row.EntityID, row.Name})
	}
	return distinctTextCells(colID, values), nil
}

func (f *fetcher) aliases(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	rows, err := f.src.Aliases(ctx, sel)
	if err != nil {
		return nil, err
	}
	colID := cols[0].GridColumnID
	values := make([]subjectValue, 0, len(rows))
	for _, row := range rows {
		values = append(values, subjectValue{row.EntityID, row.Alias})
	}
	return distinctTextCells(colID, values), nil
}

type subjectValue struct {
	subjectID int64
	value     string
}

func distinctTextCells(colID int64, values []subjectValue) []rg.Cell {
	seen := make(map[subjectValue]bool, len(values))
	var out []rg.Cell
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, rg.TextCell(v.subjectID, colID, v.value))
	}
	return out
}
