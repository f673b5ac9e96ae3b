package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/waltz-backend/internal/data/aggregates"
	aggtest "github.com/yungbote/waltz-backend/internal/data/aggregates/testutil"
	"github.com/yungbote/waltz-backend/internal/data/repos"
	"github.com/yungbote/waltz-backend/internal/data/repos/testutil"
	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	reportgrid "github.com/yungbote/waltz-backend/internal/modules/reportgrid"
	"github.com/yungbote/waltz-backend/internal/observability"
	pkgerrors "github.com/yungbote/waltz-backend/internal/pkg/errors"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type gridFixture struct {
	svc  ReportGridService
	deps ReportGridServiceDeps
	db   *gorm.DB
	log  *logger.Logger
	name string
	ou   int64
	app  int64
	ck   int64
}

func newGridFixture(t *testing.T) gridFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	ou := testutil.SeedOrgUnit(t, ctx, db, "Group "+uuid.NewString(), nil)
	testutil.SeedHierarchy(t, ctx, db, entity.OrgUnit, ou.ID)
	app := testutil.SeedApplication(t, ctx, db, "Ledger", ou.ID)
	ck := testutil.SeedCostKind(t, ctx, db, "Infrastructure")
	testutil.SeedCost(t, ctx, db, ck.ID, app.ID, 2022, 10)
	testutil.SeedCost(t, ctx, db, ck.ID, app.ID, 2023, 25)

	names := repos.NewEntityNameRepo(db, log)
	selectors := repos.NewSelectorRepo(db, log)
	resolver := reportgrid.NewResolver(repos.NewCellSourceRepo(db, log), names, log)
	deps := ReportGridServiceDeps{
		Tx:        aggregates.NewGormTxRunner(db),
		Grids:     repos.NewReportGridRepo(db, log),
		Members:   repos.NewReportGridMemberRepo(db, log),
		Columns:   repos.NewColumnDefinitionRepo(db, log),
		FieldRefs: repos.NewEntityFieldReferenceRepo(db, log),
		Names:     names,
		Selectors: selectors,
		Selector:  NewSelectorService(log, selectors),
		Resolver:  resolver,
		Now:       func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) },
	}
	return gridFixture{svc: NewReportGridService(log, deps), deps: deps, db: db, log: log, name: "Costs " + uuid.NewString(), ou: ou.ID, app: app.ID, ck: ck.ID}
}

func TestReportGridServiceLifecycle(t *testing.T) {
	f := newGridFixture(t)
	ctx := context.Background()

	def, err := f.svc.Create(ctx, "alice", CreateCommand{Name: f.name, SubjectKind: entity.Application})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if def.Kind != rg.KindPublic || def.LastUpdatedBy != "alice" || len(def.FixedColumns) != 0 {
		t.Fatalf("unexpected new grid: %+v", def)
	}

	_, err = f.svc.Create(ctx, "bob", CreateCommand{Name: f.name, SubjectKind: entity.Application})
	if !errors.Is(err, pkgerrors.ErrAlreadyExists) {
		t.Fatalf("duplicate Create: expected ErrAlreadyExists, got %v", err)
	}
	if want := "Grid already exists with the name: " + f.name + " for user."; err.Error() != want {
		t.Fatalf("duplicate Create message: got %q want %q", err.Error(), want)
	}

	cols := []rg.FixedColumn{{Position: 0, ColumnEntityKind: entity.CostKind, ColumnEntityID: f.ck}}
	if _, err := f.svc.ReplaceColumns(ctx, def.ID, "bob", cols, nil); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("ReplaceColumns by non-owner: expected ErrUnauthorized, got %v", err)
	}
	def, err = f.svc.ReplaceColumns(ctx, def.ID, "alice", cols, nil)
	if err != nil {
		t.Fatalf("ReplaceColumns: %v", err)
	}
	if len(def.FixedColumns) != 1 || def.FixedColumns[0].ColumnName != "Infrastructure" {
		t.Fatalf("column name not resolved: %+v", def.FixedColumns)
	}

	view, err := f.svc.View(ctx, rg.ByID(def.ID), SelectionOptions{Kind: entity.OrgUnit, IDs: []int64{f.ou}, Scope: ScopeChildren})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(view.Subjects) != 1 || view.Subjects[0].Name != "Ledger" {
		t.Fatalf("View subjects: %+v", view.Subjects)
	}
	if len(view.Cells) != 1 || view.Cells[0].NumberValue == nil || *view.Cells[0].NumberValue != 25 {
		t.Fatalf("View cells: %+v", view.Cells)
	}

	if owned, err := f.svc.ListForOwner(ctx, "alice"); err != nil || len(owned) != 1 {
		t.Fatalf("ListForOwner: err=%v len=%d", err, len(owned))
	}
	if err := f.svc.Remove(ctx, def.ID, "bob"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("Remove by non-owner: expected ErrUnauthorized, got %v", err)
	}
	if err := f.svc.Remove(ctx, def.ID, "alice"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := f.svc.GetDefinition(ctx, rg.ByID(def.ID)); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("GetDefinition after Remove: expected ErrNotFound, got %v", err)
	}
}

func TestReportGridServiceResolveCellsForMissingGrid(t *testing.T) {
	f := newGridFixture(t)
	cells, err := f.svc.ResolveCells(context.Background(), rg.ByExternalID("missing-"+uuid.NewString()), entity.NewSelector(entity.Application, []int64{f.app}))
	if err != nil {
		t.Fatalf("ResolveCells: %v", err)
	}
	if cells == nil || len(cells) != 0 {
		t.Fatalf("expected empty non-nil cells, got %#v", cells)
	}
}

func TestReportGridServiceUpdate(t *testing.T) {
	f := newGridFixture(t)
	ctx := context.Background()
	def, err := f.svc.Create(ctx, "alice", CreateCommand{Name: f.name, SubjectKind: entity.Application})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	renamed := f.name + " (renamed)"
	def, err = f.svc.Update(ctx, def.ID, "alice", UpdateCommand{Name: renamed, Description: "d", Kind: rg.KindPrivate})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if def.Name != renamed || def.Kind != rg.KindPrivate || def.Description != "d" {
		t.Fatalf("Update not applied: %+v", def.ReportGrid)
	}
	if _, err := f.svc.Update(ctx, def.ID, "alice", UpdateCommand{}); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("Update without name: expected ErrInvalidArgument, got %v", err)
	}
}

func TestListAttestationQualifiersIncludesFlowKinds(t *testing.T) {
	f := newGridFixture(t)
	qs, err := f.svc.ListAttestationQualifiers(context.Background())
	if err != nil {
		t.Fatalf("ListAttestationQualifiers: %v", err)
	}
	if len(qs) < 2 {
		t.Fatalf("expected flow qualifiers, got %+v", qs)
	}
	last := qs[len(qs)-2:]
	if last[0].Kind != entity.LogicalDataFlow || last[1].Kind != entity.PhysicalFlow || last[0].ID != nil {
		t.Fatalf("flow qualifiers: %+v", last)
	}
}

func TestReplaceColumnsCommitFailure(t *testing.T) {
	f := newGridFixture(t)
	ctx := context.Background()
	def, err := f.svc.Create(ctx, "alice", CreateCommand{Name: f.name, SubjectKind: entity.Application})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	commitErr := errors.New("commit failed")
	runner := &aggtest.FaultyTxRunner{FailCommit: commitErr}
	metrics := observability.New()
	deps := f.deps
	deps.Tx = runner
	deps.Metrics = metrics
	svc := NewReportGridService(f.log, deps)

	cols := []rg.FixedColumn{{Position: 0, ColumnEntityKind: entity.CostKind, ColumnEntityID: f.ck}}
	if _, err := svc.ReplaceColumns(ctx, def.ID, "alice", cols, nil); !errors.Is(err, commitErr) {
		t.Fatalf("ReplaceColumns: expected commit error, got %v", err)
	}
	if runner.Begins != 1 || runner.Rollbacks != 1 || runner.Commits != 0 {
		t.Fatalf("runner counters begin=%d commit=%d rollback=%d", runner.Begins, runner.Commits, runner.Rollbacks)
	}

	var buf bytes.Buffer
	if err := metrics.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	if want := `waltz_report_grid_column_replace_total{status="error"} 1.000000`; !strings.Contains(buf.String(), want) {
		t.Fatalf("missing %q in:\n%s", want, buf.String())
	}
}

func TestResolveCellsRejectsSelectorOfAnotherKind(t *testing.T) {
	f := newGridFixture(t)
	ctx := context.Background()
	def, err := f.svc.Create(ctx, "alice", CreateCommand{Name: f.name, SubjectKind: entity.Application})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	cols := []rg.FixedColumn{{Position: 0, ColumnEntityKind: entity.CostKind, ColumnEntityID: f.ck}}
	if _, err := f.svc.ReplaceColumns(ctx, def.ID, "alice", cols, nil); err != nil {
		t.Fatalf("ReplaceColumns: %v", err)
	}

	_, err = f.svc.ResolveCells(ctx, rg.ByID(def.ID), entity.NewSelector(entity.ChangeInitiative, []int64{f.app}))
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("change initiative selector on application grid: expected ErrInvalidArgument, got %v", err)
	}
	cells, err := f.svc.ResolveCells(ctx, rg.ByID(def.ID), entity.NewSelector(entity.Application, []int64{f.app}))
	if err != nil {
		t.Fatalf("ResolveCells: %v", err)
	}
	if len(cells) != 1 || cells[0].SubjectID != f.app || *cells[0].NumberValue != 25 {
		t.Fatalf("cells: %+v", cells)
	}
}

func TestReplaceColumnsIsAtomic(t *testing.T) {
	f := newGridFixture(t)
	ctx := context.Background()
	def, err := f.svc.Create(ctx, "alice", CreateCommand{Name: f.name, SubjectKind: entity.Application})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	before := []rg.FixedColumn{{Position: 0, ColumnEntityKind: entity.CostKind, ColumnEntityID: f.ck}}
	if _, err := f.svc.ReplaceColumns(ctx, def.ID, "alice", before, nil); err != nil {
		t.Fatalf("ReplaceColumns: %v", err)
	}

	insertErr := errors.New("derived insert failed")
	const hook = "waltz:test:fail_derived_insert"
	if err := f.db.Callback().Create().Before("gorm:create").Register(hook, func(tx *gorm.DB) {
		if tx.Statement.Table == (rg.DerivedColumnDefinition{}).TableName() {
			_ = tx.AddError(insertErr)
		}
	}); err != nil {
		t.Fatalf("register callback: %v", err)
	}
	t.Cleanup(func() { _ = f.db.Callback().Create().Remove(hook) })

	after := []rg.FixedColumn{
		{Position: 0, ColumnEntityKind: entity.CostKind, ColumnEntityID: f.ck},
		{Position: 1, ColumnEntityKind: entity.CostKind, ColumnEntityID: f.ck},
	}
	derived := []rg.DerivedColumn{{Position: 2, DerivationScript: "1 + 1"}}
	if _, err := f.svc.ReplaceColumns(ctx, def.ID, "alice", after, derived); !errors.Is(err, insertErr) {
		t.Fatalf("ReplaceColumns: expected insert error, got %v", err)
	}

	var columns, fixed, derivedRows int64
	existing := f.db.Model(&rg.ColumnDefinition{}).Select("id").Where("report_grid_id = ?", def.ID)
	if err := f.db.Model(&rg.ColumnDefinition{}).Where("report_grid_id = ?", def.ID).Count(&columns).Error; err != nil {
		t.Fatalf("count columns: %v", err)
	}
	if err := f.db.Model(&rg.FixedColumnDefinition{}).Where("grid_column_id IN (?)", existing).Count(&fixed).Error; err != nil {
		t.Fatalf("count fixed: %v", err)
	}
	if err := f.db.Model(&rg.DerivedColumnDefinition{}).Where("grid_column_id IN (?)", existing).Count(&derivedRows).Error; err != nil {
		t.Fatalf("count derived: %v", err)
	}
	if columns != 1 || fixed != 1 || derivedRows != 0 {
		t.Fatalf("replace was not rolled back: columns=%d fixed=%d derived=%d", columns, fixed, derivedRows)
	}

	got, err := f.svc.GetDefinition(ctx, rg.ByID(def.ID))
	if err != nil {
		t.Fatalf("GetDefinition: %v", err)
	}
	if len(got.FixedColumns) != 1 || got.FixedColumns[0].Position != 0 || len(got.DerivedColumns) != 0 {
		t.Fatalf("definition changed by failed replace: %+v", got)
	}
}
