package reportgrid

import (
	"sort"
	"strings"

	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

const valueSeparator = "; "

// Merge collapses cells sharing a (subject, column) key. The first cell of a
// key keeps its value variant, comment and option; text values of later cells
// are appended with "; ". Keys keep their first-encounter order.
func Merge(cells []rg.Cell) []rg.Cell {
	if len(cells) == 0 {
		return nil
	}
	index := make(map[rg.CellKey]int, len(cells))
	texts := make(map[rg.CellKey][]string)
	out := make([]rg.Cell, 0, len(cells))
	for _, c := range cells {
		k := c.Key()
		if _, ok := index[k]; !ok {
			index[k] = len(out)
			out = append(out, c)
		}
		if c.TextValue != nil {
			texts[k] = append(texts[k], *c.TextValue)
		}
	}
	for k, parts := range texts {
		if len(parts) < 2 {
			continue
		}
		joined := strings.Join(parts, valueSeparator)
		out[index[k]].TextValue = &joined
	}
	return out
}

// SortCells orders the matrix by subject id, then column id.
func SortCells(cells []rg.Cell) {
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].SubjectID != cells[j].SubjectID {
			return cells[i].SubjectID < cells[j].SubjectID
		}
		return cells[i].ColumnDefinitionID < cells[j].ColumnDefinitionID
	})
}
