package reportgrid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/waltz-backend/internal/data/aggregates"
	"github.com/yungbote/waltz-backend/internal/data/repos/testutil"
	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	pkgerrors "github.com/yungbote/waltz-backend/internal/pkg/errors"
	"github.com/yungbote/waltz-backend/internal/platform/dbctx"
)

func TestReportGridRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)

	grids := NewReportGridRepo(db, log)
	members := NewReportGridMemberRepo(db, log)

	public := testutil.SeedGrid(t, ctx, tx, "Public grid", testutil.PtrString("PUB"))
	private, err := grids.Create(dbc, &rg.ReportGrid{
		Name:          "Private grid",
		LastUpdatedAt: time.Now().UTC(),
		LastUpdatedBy: "alice",
		SubjectKind:   entity.Application,
		Kind:          rg.KindPrivate,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := members.Upsert(dbc, []*rg.ReportGridMember{{GridID: private.ID, UserID: "alice", Role: rg.RoleOwner}}); err != nil {
		t.Fatalf("Upsert member: %v", err)
	}

	if g, err := grids.GetByRef(dbc, rg.ByExternalID(" PUB ")); err != nil || g == nil || g.ID != public.ID {
		t.Fatalf("GetByRef(ext): g=%v err=%v", g, err)
	}
	if g, err := grids.GetByRef(dbc, rg.ByID(999999)); err != nil || g != nil {
		t.Fatalf("GetByRef(missing): g=%v err=%v", g, err)
	}
	if rows, err := grids.ListForUser(dbc, "bob"); err != nil || len(rows) != 1 {
		t.Fatalf("ListForUser(bob): err=%v len=%d", err, len(rows))
	}
	if rows, err := grids.ListForUser(dbc, "alice"); err != nil || len(rows) != 2 {
		t.Fatalf("ListForUser(alice): err=%v len=%d", err, len(rows))
	}
	if rows, err := grids.ListForOwner(dbc, "alice"); err != nil || len(rows) != 1 || rows[0].ID != private.ID {
		t.Fatalf("ListForOwner: err=%v rows=%v", err, rows)
	}
	if role, ok, err := members.GetRole(dbc, private.ID, "alice"); err != nil || !ok || role != rg.RoleOwner {
		t.Fatalf("GetRole: role=%q ok=%v err=%v", role, ok, err)
	}
	if err := grids.Touch(dbc, public.ID, "carol", time.Now().UTC()); err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if g, _ := grids.GetByRef(dbc, rg.ByID(public.ID)); g.LastUpdatedBy != "carol" {
		t.Fatalf("Touch did not update last_updated_by: %q", g.LastUpdatedBy)
	}
	if err := grids.Delete(dbc, private.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rows, err := members.ListByGrid(dbc, private.ID); err != nil || len(rows) != 0 {
		t.Fatalf("members should be removed with the grid: err=%v len=%d", err, len(rows))
	}
}

func TestReportGridRepoDuplicateName(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	grids := NewReportGridRepo(db, testutil.Logger(t))

	testutil.SeedGrid(t, ctx, tx, "Dup", nil)
	_, err := grids.Create(dbctx.Context{Ctx: ctx, Tx: tx}, &rg.ReportGrid{
		Name:          "Dup",
		LastUpdatedAt: time.Now().UTC(),
		LastUpdatedBy: "bob",
		SubjectKind:   entity.Application,
	})
	if !aggregates.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestColumnDefinitionRepoReplace(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)

	cols := NewColumnDefinitionRepo(db, log)
	refs := NewEntityFieldReferenceRepo(db, log)
	grid := testutil.SeedGrid(t, ctx, tx, "Columns", nil)

	ref := &rg.EntityFieldReference{EntityKind: entity.SurveyInstance, FieldName: "status", DisplayName: "Status"}
	if err := refs.Upsert(dbc, []*rg.EntityFieldReference{ref}); err != nil {
		t.Fatalf("Upsert ref: %v", err)
	}
	stored, err := refs.ListAll(dbc)
	if err != nil || len(stored) != 1 {
		t.Fatalf("ListAll refs: err=%v len=%d", err, len(stored))
	}

	fixed := []rg.FixedColumn{
		{Position: 2, ColumnEntityKind: entity.CostKind, ColumnEntityID: 7, DisplayName: testutil.PtrString("Cost")},
		{Position: 0, ColumnEntityKind: entity.Measurable, ColumnEntityID: 3, AdditionalColumnOptions: rg.OptionPickHighest},
		{Position: 1, ColumnEntityKind: entity.SurveyTemplate, ColumnEntityID: 4, EntityFieldReference: stored[0]},
	}
	derived := []rg.DerivedColumn{{Position: 3, DerivationScript: "cell('x')"}}
	if err := cols.Replace(dbc, grid.ID, fixed, derived); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	gotFixed, gotDerived, err := cols.ListByGrid(dbc, grid.ID)
	if err != nil {
		t.Fatalf("ListByGrid: %v", err)
	}
	if len(gotFixed) != 3 || len(gotDerived) != 1 {
		t.Fatalf("ListByGrid: fixed=%d derived=%d", len(gotFixed), len(gotDerived))
	}
	if gotFixed[0].Position != 0 || gotFixed[0].AdditionalColumnOptions != rg.OptionPickHighest {
		t.Fatalf("fixed columns not ordered by position: %+v", gotFixed)
	}
	if gotFixed[1].EntityFieldReference == nil || gotFixed[1].EntityFieldReference.FieldName != "status" {
		t.Fatalf("field reference not resolved: %+v", gotFixed[1])
	}
	if gotFixed[2].AdditionalColumnOptions != rg.OptionNone {
		t.Fatalf("empty option should normalise to NONE: %q", gotFixed[2].AdditionalColumnOptions)
	}
	if gotDerived[0].DerivationScript != "cell('x')" {
		t.Fatalf("derived script: %q", gotDerived[0].DerivationScript)
	}

	// replacing again swaps everything out
	if err := cols.Replace(dbc, grid.ID, fixed[:1], nil); err != nil {
		t.Fatalf("second Replace: %v", err)
	}
	gotFixed, gotDerived, err = cols.ListByGrid(dbc, grid.ID)
	if err != nil || len(gotFixed) != 1 || len(gotDerived) != 0 {
		t.Fatalf("after second Replace: fixed=%d derived=%d err=%v", len(gotFixed), len(gotDerived), err)
	}
	var orphans int64
	if err := tx.Model(&rg.FixedColumnDefinition{}).Count(&orphans).Error; err != nil || orphans != 1 {
		t.Fatalf("fixed rows left behind: count=%d err=%v", orphans, err)
	}
}

func TestColumnDefinitionRepoRejectsDuplicatePositions(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	cols := NewColumnDefinitionRepo(db, testutil.Logger(t))
	grid := testutil.SeedGrid(t, ctx, tx, "Dup positions", nil)

	err := cols.Replace(dbctx.Context{Ctx: ctx, Tx: tx}, grid.ID,
		[]rg.FixedColumn{{Position: 1, ColumnEntityKind: entity.Tag}},
		[]rg.DerivedColumn{{Position: 1, DerivationScript: "x"}})
	if !errors.Is(err, pkgerrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
