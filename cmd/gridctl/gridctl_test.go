package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	pkgerrors "github.com/yungbote/waltz-backend/internal/pkg/errors"
)

const sampleGrid = `
name: Application costs
external_id: APP-COSTS
subject_kind: application
fixed_columns:
  - position: 0
    entity_kind: COST_KIND
    entity_id: 3
    display_name: Infra cost
  - position: 1
    entity_kind: MEASURABLE
    entity_id: 12
    options: pick_highest
  - position: 2
    entity_kind: SURVEY_TEMPLATE
    entity_id: 5
    field_ref: SURVEY_INSTANCE.status
derived_columns:
  - position: 3
    script: "cell('x')"
`

func TestParseGridFile(t *testing.T) {
	gf, err := parseGridFile(strings.NewReader(sampleGrid))
	if err != nil {
		t.Fatalf("parseGridFile: %v", err)
	}
	cc := gf.createCommand()
	if cc.SubjectKind != entity.Application || cc.ExternalID == nil || *cc.ExternalID != "APP-COSTS" {
		t.Fatalf("createCommand: %+v", cc)
	}

	refs := []*rg.EntityFieldReference{{ID: 8, EntityKind: entity.SurveyInstance, FieldName: "status"}}
	fixed, derived, err := gf.columns(refs)
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	if len(fixed) != 3 || len(derived) != 1 {
		t.Fatalf("columns: fixed=%d derived=%d", len(fixed), len(derived))
	}
	if fixed[0].AdditionalColumnOptions != rg.OptionNone || fixed[1].AdditionalColumnOptions != rg.OptionPickHighest {
		t.Fatalf("options: %q %q", fixed[0].AdditionalColumnOptions, fixed[1].AdditionalColumnOptions)
	}
	if fixed[2].EntityFieldReference == nil || fixed[2].EntityFieldReference.ID != 8 {
		t.Fatalf("field ref not resolved: %+v", fixed[2])
	}

	if _, _, err := gf.columns(nil); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("unknown field ref: expected ErrInvalidArgument, got %v", err)
	}
}

func TestParseGridFileRejectsUnknownKeys(t *testing.T) {
	if _, err := parseGridFile(strings.NewReader("name: x\nexternal_id: y\nbogus: 1\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if _, err := parseGridFile(strings.NewReader("name: x\n")); err == nil {
		t.Fatalf("expected missing external_id error")
	}
}

func TestParseGridRefAndIDs(t *testing.T) {
	if ref := parseGridRef("42"); ref != rg.ByID(42) {
		t.Fatalf("parseGridRef(42) = %v", ref)
	}
	if ref := parseGridRef("APP-COSTS"); ref != rg.ByExternalID("APP-COSTS") {
		t.Fatalf("parseGridRef(ext) = %v", ref)
	}
	ids, err := parseIDs(" 1, 2,,3 ")
	if err != nil || len(ids) != 3 || ids[2] != 3 {
		t.Fatalf("parseIDs: ids=%v err=%v", ids, err)
	}
	if _, err := parseIDs("1,x"); err == nil {
		t.Fatalf("expected parse error")
	}
}
