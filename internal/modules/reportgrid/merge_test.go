package reportgrid

import (
	"sort"
	"strings"
	"testing"

	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

func tokens(s string) []string {
	parts := strings.Split(s, valueSeparator)
	sort.Strings(parts)
	return parts
}

func TestMergeJoinsTextAndKeepsFirstMetadata(t *testing.T) {
	cells := []rg.Cell{
		rg.TextCell(1, 10, "a@x.com").WithCommentText("first"),
		rg.TextCell(2, 10, "c@x.com"),
		rg.TextCell(1, 10, "b@x.com").WithCommentText("second"),
	}
	out := Merge(cells)
	if len(out) != 2 {
		t.Fatalf("Merge: got %d cells want 2", len(out))
	}
	c, _ := cellFor(out, 1, 10)
	if got := tokens(c.Text()); strings.Join(got, ",") != "a@x.com,b@x.com" {
		t.Fatalf("merged text tokens: %v", got)
	}
	if c.Comment == nil || *c.Comment != "first" {
		t.Fatalf("comment should come from the first cell: %v", c.Comment)
	}
	if out[0].SubjectID != 1 || out[1].SubjectID != 2 {
		t.Fatalf("first-encounter order lost: %+v", out)
	}
}

func TestMergeSingleCellUnchanged(t *testing.T) {
	out := Merge([]rg.Cell{rg.NumberCell(1, 2, 3.5)})
	if len(out) != 1 || out[0].NumberValue == nil || *out[0].NumberValue != 3.5 || out[0].TextValue != nil {
		t.Fatalf("single cell changed: %+v", out)
	}
	if Merge(nil) != nil {
		t.Fatalf("Merge(nil) should be nil")
	}
}

func TestSortCells(t *testing.T) {
	cells := []rg.Cell{rg.TextCell(2, 1, "x"), rg.TextCell(1, 5, "y"), rg.TextCell(1, 2, "z")}
	SortCells(cells)
	if cells[0].ColumnDefinitionID != 2 || cells[1].ColumnDefinitionID != 5 || cells[2].SubjectID != 2 {
		t.Fatalf("unexpected order: %+v", cells)
	}
}
