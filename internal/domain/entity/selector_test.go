package entity

import "testing"

func TestNewSelectorNormalisesIDs(t *testing.T) {
	sel := NewSelector(Application, []int64{102, 0, 101, 102, -4, 7})
	want := []int64{7, 101, 102}
	if len(sel.IDs) != len(want) {
		t.Fatalf("ids: got=%v want=%v", sel.IDs, want)
	}
	for i := range want {
		if sel.IDs[i] != want[i] {
			t.Fatalf("ids: got=%v want=%v", sel.IDs, want)
		}
	}
	if !sel.Contains(101) || sel.Contains(5) {
		t.Fatalf("Contains mismatch for %v", sel.IDs)
	}
	if NewSelector(Application, nil).Empty() != true {
		t.Fatalf("expected empty selector")
	}
}

func TestParseKind(t *testing.T) {
	if got := ParseKind(" change_initiative "); got != ChangeInitiative {
		t.Fatalf("ParseKind: got=%q", got)
	}
}
