package reportgrid

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

// measurableExact reports ratings made directly against the column
// measurable.
func (f *fetcher) measurableExact(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	rows, err := f.src.MeasurableRatings(ctx, sel, entityIDs(cols))
	if err != nil {
		return nil, err
	}
	byMeasurable := columnsByEntity(cols)
	var out []rg.Cell
	for _, row := range rows {
		for _, c := range byMeasurable[row.MeasurableID] {
			out = append(out, rg.RatingCell(row.EntityID, c.GridColumnID, row.RatingItemID).
				WithComment(row.Description).
				WithOption(strconv.FormatInt(row.RatingItemID, 10), row.RatingName))
		}
	}
	return out, nil
}

// measurableSummary picks one rating per subject from everything rated under
// the column measurable. Highest means the lowest scheme position wins;
// ties go to the alphabetically first rating name.
func (f *fetcher) measurableSummary(pickHighest bool) Strategy {
	return func(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
		if len(cols) == 0 {
			return nil, nil
		}
		rows, err := f.src.RollupRatings(ctx, sel, entityIDs(cols))
		if err != nil {
			return nil, err
		}
		subtrees, err := f.descendantsOf(ctx, entity.Measurable, measurableQualifiers(cols))
		if err != nil {
			return nil, err
		}
		better := func(a, b rg.RollupRatingRow) bool {
			if a.Position != b.Position {
				if pickHighest {
					return a.Position < b.Position
				}
				return a.Position > b.Position
			}
			return a.RatingName < b.RatingName
		}
		byAncestor := groupBy(rows, func(r rg.RollupRatingRow) int64 { return r.AncestorID })

		var out []rg.Cell
		for _, c := range cols {
			candidates := filterBySubtree(byAncestor[c.ColumnEntityID], c, subtrees,
				func(r rg.RollupRatingRow) int64 { return r.MeasurableID })
			winners := pickBy(candidates, func(r rg.RollupRatingRow) int64 { return r.EntityID }, better)
			for _, w := range winners {
				out = append(out, rg.RatingCell(w.EntityID, c.GridColumnID, w.RatingItemID).
					WithOption(strconv.FormatInt(w.RatingItemID, 10), w.RatingName))
			}
		}
		return out, nil
	}
}

// measurableHierarchy lists the measurables of a category each subject is
// rated against, with the relevant part of the hierarchy as the comment.
func (f *fetcher) measurableHierarchy(ctx context.Context, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	rows, err := f.src.RatedMeasurables(ctx, sel, entityIDs(cols))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	subtrees, err := f.descendantsOf(ctx, entity.Measurable, measurableQualifiers(cols))
	if err != nil {
		return nil, err
	}

	byCategory := groupBy(rows, func(r rg.RatedMeasurableRow) int64 { return r.CategoryID })
	type perSubject struct {
		subjectID int64
		rated     []rg.RatedMeasurableRow
	}
	type colResult struct {
		col      rg.FixedColumn
		subjects []perSubject
	}
	var results []colResult
	allIDs := map[int64]bool{}
	for _, c := range cols {
		kept := filterBySubtree(byCategory[c.ColumnEntityID], c, subtrees,
			func(r rg.RatedMeasurableRow) int64 { return r.MeasurableID })
		grouped := groupBy(kept, func(r rg.RatedMeasurableRow) int64 { return r.EntityID })
		res := colResult{col: c}
		for subjectID, rated := range grouped {
			res.subjects = append(res.subjects, perSubject{subjectID, rated})
			for _, r := range rated {
				allIDs[r.MeasurableID] = true
			}
		}
		sort.Slice(res.subjects, func(i, j int) bool { return res.subjects[i].subjectID < res.subjects[j].subjectID })
		results = append(results, res)
	}
	if len(allIDs) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(allIDs))
	for id := range allIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	ancestry, err := f.src.MeasurableAncestry(ctx, ids)
	if err != nil {
		return nil, err
	}
	nodes := make(map[int64]rg.MeasurableNode, len(ancestry))
	for _, n := range ancestry {
		nodes[n.ID] = n
	}

	var out []rg.Cell
	for _, res := range results {
		for _, s := range res.subjects {
			names, leaves := distinctMeasurables(s.rated)
			cell := rg.TextCell(s.subjectID, res.col.GridColumnID, strings.Join(names, valueSeparator))
			if tree := RenderAncestry(nodes, leaves); tree != "" {
				cell = cell.WithCommentText(tree)
			}
			out = append(out, cell)
		}
	}
	return out, nil
}

// distinctMeasurables returns names in name order and the ids behind them.
func distinctMeasurables(rows []rg.RatedMeasurableRow) ([]string, []int64) {
	byID := map[int64]rg.RatedMeasurableRow{}
	for _, r := range rows {
		byID[r.MeasurableID] = r
	}
	uniq := make([]rg.RatedMeasurableRow, 0, len(byID))
	for _, r := range byID {
		uniq = append(uniq, r)
	}
	sort.Slice(uniq, func(i, j int) bool {
		if uniq[i].Name != uniq[j].Name {
			return uniq[i].Name < uniq[j].Name
		}
		return uniq[i].MeasurableID < uniq[j].MeasurableID
	})
	names := make([]string, len(uniq))
	ids := make([]int64, len(uniq))
	for i, r := range uniq {
		names[i] = r.Name
		ids[i] = r.MeasurableID
	}
	return names, ids
}

// measurableQualifiers returns the qualifier measurables restricting the
// columns to a subtree.
func measurableQualifiers(cols []rg.FixedColumn) []int64 {
	var out []int64
	seen := map[int64]bool{}
	for _, c := range cols {
		if c.ColumnQualifierKind == nil || *c.ColumnQualifierKind != entity.Measurable || c.ColumnQualifierID == nil {
			continue
		}
		if seen[*c.ColumnQualifierID] {
			continue
		}
		seen[*c.ColumnQualifierID] = true
		out = append(out, *c.ColumnQualifierID)
	}
	return out
}

func filterBySubtree[T any](rows []T, c rg.FixedColumn, subtrees map[int64]map[int64]bool, measurableOf func(T) int64) []T {
	if c.ColumnQualifierKind == nil || *c.ColumnQualifierKind != entity.Measurable || c.ColumnQualifierID == nil {
		return rows
	}
	allowed := subtrees[*c.ColumnQualifierID]
	var out []T
	for _, r := range rows {
		if allowed[measurableOf(r)] {
			out = append(out, r)
		}
	}
	return out
}
