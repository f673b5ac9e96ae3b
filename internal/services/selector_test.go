package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	"github.com/yungbote/waltz-backend/internal/domain/measurable"
	pkgerrors "github.com/yungbote/waltz-backend/internal/pkg/errors"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type stubSelectorRepo struct {
	existing []int64
	orgUnit  []int64
	group    []int64
}

func (s stubSelectorRepo) ExistingIDs(ctx context.Context, kind entity.Kind, ids []int64) ([]int64, error) {
	return s.existing, nil
}
func (s stubSelectorRepo) OrgUnitSubjects(ctx context.Context, kind entity.Kind, ids []int64) ([]int64, error) {
	return s.orgUnit, nil
}
func (s stubSelectorRepo) AppGroupApplications(ctx context.Context, ids []int64) ([]int64, error) {
	return s.group, nil
}
func (s stubSelectorRepo) MeasurableCategories(ctx context.Context) ([]measurable.Category, error) {
	return nil, nil
}

func TestSelectorServiceResolve(t *testing.T) {
	svc := NewSelectorService(logger.NewNop(), stubSelectorRepo{
		existing: []int64{3, 1},
		orgUnit:  []int64{5, 5, 4},
		group:    []int64{9, 7, 9},
	})
	ctx := context.Background()

	tests := []struct {
		name    string
		subject entity.Kind
		opts    SelectionOptions
		want    []int64
		wantErr error
	}{
		{name: "exact", subject: entity.Application, opts: SelectionOptions{IDs: []int64{1, 3}}, want: []int64{1, 3}},
		{name: "org unit children", subject: entity.Application, opts: SelectionOptions{Kind: entity.OrgUnit, IDs: []int64{1}}, want: []int64{4, 5}},
		{name: "org unit exact rejected", subject: entity.Application, opts: SelectionOptions{Kind: entity.OrgUnit, IDs: []int64{1}, Scope: ScopeExact}, wantErr: pkgerrors.ErrInvalidArgument},
		{name: "app group", subject: entity.Application, opts: SelectionOptions{Kind: entity.AppGroup, IDs: []int64{1}}, want: []int64{7, 9}},
		{name: "app group over initiatives", subject: entity.ChangeInitiative, opts: SelectionOptions{Kind: entity.AppGroup, IDs: []int64{1}}, wantErr: pkgerrors.ErrUnsupported},
		{name: "unsupported subject", subject: entity.Person, opts: SelectionOptions{IDs: []int64{1}}, wantErr: pkgerrors.ErrUnsupported},
		{name: "too many ids", subject: entity.Application, opts: SelectionOptions{IDs: make([]int64, maxSelectorSize+1)}, wantErr: pkgerrors.ErrInvalidArgument},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel, err := svc.Resolve(ctx, tc.subject, tc.opts)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if sel.Kind != tc.subject || len(sel.IDs) != len(tc.want) {
				t.Fatalf("Resolve = %+v, want ids %v", sel, tc.want)
			}
			for i := range tc.want {
				if sel.IDs[i] != tc.want[i] {
					t.Fatalf("Resolve ids = %v, want %v", sel.IDs, tc.want)
				}
			}
		})
	}
}
