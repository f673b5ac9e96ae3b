package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/waltz-backend/internal/domain/catalog"
	"github.com/yungbote/waltz-backend/internal/domain/entity"
	"github.com/yungbote/waltz-backend/internal/domain/indicator"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

func SeedOrgUnit(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, parentID *int64) *catalog.OrgUnit {
	tb.Helper()
	ou := &catalog.OrgUnit{Name: name, ParentID: parentID, Provenance: "waltz"}
	if err := tx.WithContext(ctx).Create(ou).Error; err != nil {
		tb.Fatalf("seed org unit: %v", err)
	}
	return ou
}

func SeedApplication(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, orgUnitID int64) *catalog.Application {
	tb.Helper()
	now := time.Now().UTC()
	app := &catalog.Application{
		Name:                  name,
		OrganisationalUnitID:  orgUnitID,
		Kind:                  "IN_HOUSE",
		LifecyclePhase:        "PRODUCTION",
		Provenance:            "waltz",
		EntityLifecycleStatus: "ACTIVE",
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := tx.WithContext(ctx).Create(app).Error; err != nil {
		tb.Fatalf("seed application: %v", err)
	}
	return app
}

// SeedHierarchy writes closure rows for id: itself plus each given ancestor.
func SeedHierarchy(tb testing.TB, ctx context.Context, tx *gorm.DB, kind entity.Kind, id int64, ancestors ...int64) {
	tb.Helper()
	rows := []*catalog.EntityHierarchy{{ID: id, AncestorID: id, Kind: kind, Level: len(ancestors)}}
	for i, a := range ancestors {
		rows = append(rows, &catalog.EntityHierarchy{ID: id, AncestorID: a, Kind: kind, Level: i})
	}
	if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
		tb.Fatalf("seed hierarchy: %v", err)
	}
}

func SeedCostKind(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *indicator.CostKind {
	tb.Helper()
	ck := &indicator.CostKind{Name: name}
	if err := tx.WithContext(ctx).Create(ck).Error; err != nil {
		tb.Fatalf("seed cost kind: %v", err)
	}
	return ck
}

func SeedCost(tb testing.TB, ctx context.Context, tx *gorm.DB, kindID, appID int64, year int, amount float64) *indicator.Cost {
	tb.Helper()
	c := &indicator.Cost{
		CostKindID:    kindID,
		EntityKind:    entity.Application,
		EntityID:      appID,
		Year:          year,
		Amount:        amount,
		Provenance:    "waltz",
		LastUpdatedAt: time.Now().UTC(),
		LastUpdatedBy: "test",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed cost: %v", err)
	}
	return c
}

// SeedTag creates the tag if needed and applies it to the application.
func SeedTag(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, appID int64) *catalog.Tag {
	tb.Helper()
	tag := &catalog.Tag{Name: name, TargetKind: entity.Application}
	if err := tx.WithContext(ctx).
		Where(catalog.Tag{Name: name, TargetKind: entity.Application}).
		FirstOrCreate(tag).Error; err != nil {
		tb.Fatalf("seed tag: %v", err)
	}
	usage := &catalog.TagUsage{
		TagID:      tag.ID,
		EntityID:   appID,
		EntityKind: entity.Application,
		CreatedAt:  time.Now().UTC(),
		CreatedBy:  "test",
		Provenance: "waltz",
	}
	if err := tx.WithContext(ctx).Create(usage).Error; err != nil {
		tb.Fatalf("seed tag usage: %v", err)
	}
	return tag
}

func SeedGrid(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, externalID *string) *rg.ReportGrid {
	tb.Helper()
	g := &rg.ReportGrid{
		Name:          name,
		ExternalID:    externalID,
		Provenance:    rg.DefaultProvenance,
		LastUpdatedAt: time.Now().UTC(),
		LastUpdatedBy: "test",
		SubjectKind:   entity.Application,
		Kind:          rg.KindPublic,
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed grid: %v", err)
	}
	return g
}

func PtrString(v string) *string { return &v }

func PtrInt64(v int64) *int64 { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
