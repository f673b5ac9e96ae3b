package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/waltz-backend/internal/clients/redis"
	"github.com/yungbote/waltz-backend/internal/data/aggregates"
	"github.com/yungbote/waltz-backend/internal/data/repos"
	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	"github.com/yungbote/waltz-backend/internal/observability"
	pkgerrors "github.com/yungbote/waltz-backend/internal/pkg/errors"
	"github.com/yungbote/waltz-backend/internal/platform/ctxutil"
	"github.com/yungbote/waltz-backend/internal/platform/dbctx"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

// CellResolver evaluates a grid definition over a selector.
type CellResolver interface {
	Resolve(ctx context.Context, def *rg.Definition, sel entity.Selector) ([]rg.Cell, error)
}

type CreateCommand struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	ExternalID  *string     `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	SubjectKind entity.Kind `json:"subject_kind" yaml:"subject_kind"`
	Kind        rg.GridKind `json:"kind" yaml:"kind"`
}

type UpdateCommand struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Kind        rg.GridKind `json:"kind"`
}

// AttestationQualifier is one choice for the qualifier of an attestation
// column. ID is nil for the flow kinds.
type AttestationQualifier struct {
	Kind        entity.Kind `json:"kind"`
	ID          *int64      `json:"id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
}

type ReportGridService interface {
	GetDefinition(ctx context.Context, ref rg.GridRef) (*rg.Definition, error)
	ResolveCells(ctx context.Context, ref rg.GridRef, sel entity.Selector) ([]rg.Cell, error)
	View(ctx context.Context, ref rg.GridRef, opts SelectionOptions) (*rg.Instance, error)
	ReplaceColumns(ctx context.Context, gridID int64, username string, fixed []rg.FixedColumn, derived []rg.DerivedColumn) (*rg.Definition, error)

	Create(ctx context.Context, username string, cmd CreateCommand) (*rg.Definition, error)
	Update(ctx context.Context, gridID int64, username string, cmd UpdateCommand) (*rg.Definition, error)
	Remove(ctx context.Context, gridID int64, username string) error

	ListAll(ctx context.Context) ([]*rg.ReportGrid, error)
	ListForUser(ctx context.Context, username string) ([]*rg.ReportGrid, error)
	ListForOwner(ctx context.Context, username string) ([]*rg.ReportGrid, error)
	ListFieldReferences(ctx context.Context) ([]*rg.EntityFieldReference, error)
	ListAttestationQualifiers(ctx context.Context) ([]AttestationQualifier, error)
}

type ReportGridServiceDeps struct {
	Tx        aggregates.TxRunner
	Grids     repos.ReportGridRepo
	Members   repos.ReportGridMemberRepo
	Columns   repos.ColumnDefinitionRepo
	FieldRefs repos.EntityFieldReferenceRepo
	Names     repos.EntityNameRepo
	Selectors repos.SelectorRepo
	Selector  SelectorService
	Resolver  CellResolver
	Cache     redis.GridCache
	Metrics   *observability.Metrics
	Now       func() time.Time
}

type reportGridService struct {
	log  *logger.Logger
	deps ReportGridServiceDeps
}

func NewReportGridService(baseLog *logger.Logger, deps ReportGridServiceDeps) ReportGridService {
	if deps.Cache == nil {
		deps.Cache = redis.NewDisabledGridCache(baseLog)
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	return &reportGridService{
		log:  baseLog.With("service", "ReportGridService"),
		deps: deps,
	}
}

func (s *reportGridService) GetDefinition(ctx context.Context, ref rg.GridRef) (*rg.Definition, error) {
	if !ref.Valid() {
		return nil, fmt.Errorf("grid ref %s: %w", ref.String(), pkgerrors.ErrInvalidArgument)
	}
	if def, ok := s.deps.Cache.Get(ctx, ref); ok {
		return def, nil
	}
	def, err := s.loadDefinition(dbctx.Background(ctx), ref)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, fmt.Errorf("grid %s: %w", ref.String(), pkgerrors.ErrNotFound)
	}
	s.deps.Cache.Set(ctx, def)
	return def, nil
}

// loadDefinition returns nil, nil when the grid does not exist.
func (s *reportGridService) loadDefinition(dbc dbctx.Context, ref rg.GridRef) (*rg.Definition, error) {
	grid, err := s.deps.Grids.GetByRef(dbc, ref)
	if err != nil {
		return nil, fmt.Errorf("load grid %s: %w", ref.String(), err)
	}
	if grid == nil {
		return nil, nil
	}
	fixed, derived, err := s.deps.Columns.ListByGrid(dbc, grid.ID)
	if err != nil {
		return nil, fmt.Errorf("load columns for grid %d: %w", grid.ID, err)
	}
	if err := s.fillColumnNames(dbc.Ctx, fixed); err != nil {
		return nil, err
	}
	return &rg.Definition{ReportGrid: *grid, FixedColumns: fixed, DerivedColumns: derived}, nil
}

func (s *reportGridService) fillColumnNames(ctx context.Context, cols []rg.FixedColumn) error {
	byKind := map[entity.Kind][]int64{}
	for _, c := range cols {
		byKind[c.ColumnEntityKind] = append(byKind[c.ColumnEntityKind], c.ColumnEntityID)
		if c.ColumnEntityKind == entity.Attestation && c.ColumnQualifierKind != nil && c.ColumnQualifierID != nil {
			byKind[*c.ColumnQualifierKind] = append(byKind[*c.ColumnQualifierKind], *c.ColumnQualifierID)
		}
	}
	names := make(map[entity.Kind]map[int64]string, len(byKind))
	for kind, ids := range byKind {
		got, err := s.deps.Names.Names(ctx, kind, ids)
		if err != nil {
			return fmt.Errorf("column names for %s: %w", kind, err)
		}
		names[kind] = got
	}
	for i := range cols {
		c := &cols[i]
		if c.ColumnEntityKind == entity.Attestation {
			c.ColumnName = attestationColumnName(c, names)
			continue
		}
		c.ColumnName = names[c.ColumnEntityKind][c.ColumnEntityID]
	}
	return nil
}

func attestationColumnName(c *rg.FixedColumn, names map[entity.Kind]map[int64]string) string {
	if c.ColumnQualifierKind == nil {
		return ""
	}
	switch *c.ColumnQualifierKind {
	case entity.LogicalDataFlow:
		return "Logical Flow Attestation"
	case entity.PhysicalFlow:
		return "Physical Flow Attestation"
	case entity.MeasurableCategory:
		if name := names[entity.MeasurableCategory][c.QualifierID()]; name != "" {
			return name + " Attestation"
		}
	}
	return ""
}

func (s *reportGridService) ResolveCells(ctx context.Context, ref rg.GridRef, sel entity.Selector) ([]rg.Cell, error) {
	def, err := s.GetDefinition(ctx, ref)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return []rg.Cell{}, nil
	}
	if err != nil {
		return nil, err
	}
	if sel.Kind != def.SubjectKind {
		return nil, fmt.Errorf("selector kind %s does not match grid subject kind %s: %w", sel.Kind, def.SubjectKind, pkgerrors.ErrInvalidArgument)
	}
	return s.deps.Resolver.Resolve(ctx, def, sel)
}

func (s *reportGridService) View(ctx context.Context, ref rg.GridRef, opts SelectionOptions) (*rg.Instance, error) {
	def, err := s.GetDefinition(ctx, ref)
	if err != nil {
		return nil, err
	}
	sel, err := s.deps.Selector.Resolve(ctx, def.SubjectKind, opts)
	if err != nil {
		return nil, err
	}
	cells, err := s.deps.Resolver.Resolve(ctx, def, sel)
	if err != nil {
		return nil, err
	}
	subjects, err := s.deps.Names.Refs(ctx, def.SubjectKind, sel.IDs)
	if err != nil {
		return nil, fmt.Errorf("subject names: %w", err)
	}
	s.log.Info("grid view resolved", append(ctxutil.LogFields(ctx),
		"grid_id", def.ID,
		"subjects", len(sel.IDs),
		"cells", len(cells),
	)...)
	return &rg.Instance{Definition: def, Subjects: subjects, Cells: cells}, nil
}

func (s *reportGridService) ReplaceColumns(ctx context.Context, gridID int64, username string, fixed []rg.FixedColumn, derived []rg.DerivedColumn) (*rg.Definition, error) {
	for _, f := range fixed {
		if f.ColumnEntityKind == "" {
			return nil, fmt.Errorf("fixed column at position %d has no entity kind: %w", f.Position, pkgerrors.ErrInvalidArgument)
		}
	}
	for _, d := range derived {
		if strings.TrimSpace(d.DerivationScript) == "" {
			return nil, fmt.Errorf("derived column at position %d has no script: %w", d.Position, pkgerrors.ErrInvalidArgument)
		}
	}

	var grid *rg.ReportGrid
	err := s.deps.Tx.InTx(ctx, func(dbc dbctx.Context) error {
		var err error
		grid, err = s.requireOwner(dbc, gridID, username)
		if err != nil {
			return err
		}
		if err := s.deps.Columns.Replace(dbc, gridID, fixed, derived); err != nil {
			return aggregates.MapError("replace columns", err)
		}
		return s.deps.Grids.Touch(dbc, gridID, username, s.deps.Now())
	})
	s.deps.Metrics.IncColumnReplace(err)
	if err != nil {
		return nil, err
	}
	s.deps.Cache.Invalidate(ctx, grid.ID, grid.ExternalID)
	s.log.Info("grid columns replaced", "grid_id", gridID, "fixed", len(fixed), "derived", len(derived), "username", username)
	return s.GetDefinition(ctx, rg.ByID(gridID))
}

// requireOwner loads the grid and checks that username holds the OWNER role.
func (s *reportGridService) requireOwner(dbc dbctx.Context, gridID int64, username string) (*rg.ReportGrid, error) {
	grid, err := s.deps.Grids.GetByRef(dbc, rg.ByID(gridID))
	if err != nil {
		return nil, err
	}
	if grid == nil {
		return nil, fmt.Errorf("grid %d: %w", gridID, pkgerrors.ErrNotFound)
	}
	role, ok, err := s.deps.Members.GetRole(dbc, gridID, username)
	if err != nil {
		return nil, err
	}
	if !ok || role != rg.RoleOwner {
		return nil, fmt.Errorf("user is not an owner of grid %d: %w", gridID, pkgerrors.ErrUnauthorized)
	}
	return grid, nil
}

func (s *reportGridService) Create(ctx context.Context, username string, cmd CreateCommand) (*rg.Definition, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" || strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("grid name and username are required: %w", pkgerrors.ErrInvalidArgument)
	}
	switch cmd.SubjectKind {
	case entity.Application, entity.ChangeInitiative:
	default:
		return nil, fmt.Errorf("unsupported grid subject kind %q: %w", cmd.SubjectKind, pkgerrors.ErrInvalidArgument)
	}
	kind := cmd.Kind
	if kind == "" {
		kind = rg.KindPublic
	}
	var extID *string
	if cmd.ExternalID != nil && strings.TrimSpace(*cmd.ExternalID) != "" {
		v := strings.TrimSpace(*cmd.ExternalID)
		extID = &v
	}

	var gridID int64
	err := s.deps.Tx.InTx(ctx, func(dbc dbctx.Context) error {
		grid, err := s.deps.Grids.Create(dbc, &rg.ReportGrid{
			Name:          name,
			Description:   cmd.Description,
			ExternalID:    extID,
			LastUpdatedAt: s.deps.Now(),
			LastUpdatedBy: username,
			SubjectKind:   cmd.SubjectKind,
			Kind:          kind,
		})
		if err != nil {
			if aggregates.IsUniqueViolation(err) {
				return &messageError{
					msg: fmt.Sprintf("Grid already exists with the name: %s for user.", name),
					err: pkgerrors.ErrAlreadyExists,
				}
			}
			return err
		}
		gridID = grid.ID
		return s.deps.Members.Upsert(dbc, []*rg.ReportGridMember{{GridID: grid.ID, UserID: username, Role: rg.RoleOwner}})
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("grid created", "grid_id", gridID, "username", username)
	return s.GetDefinition(ctx, rg.ByID(gridID))
}

func (s *reportGridService) Update(ctx context.Context, gridID int64, username string, cmd UpdateCommand) (*rg.Definition, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, fmt.Errorf("grid name is required: %w", pkgerrors.ErrInvalidArgument)
	}
	kind := cmd.Kind
	if kind == "" {
		kind = rg.KindPublic
	}
	var grid *rg.ReportGrid
	err := s.deps.Tx.InTx(ctx, func(dbc dbctx.Context) error {
		var err error
		grid, err = s.requireOwner(dbc, gridID, username)
		if err != nil {
			return err
		}
		err = s.deps.Grids.UpdateFields(dbc, gridID, map[string]interface{}{
			"name":            name,
			"description":     cmd.Description,
			"kind":            kind,
			"last_updated_at": s.deps.Now(),
			"last_updated_by": username,
		})
		if aggregates.IsUniqueViolation(err) {
			return &messageError{
				msg: fmt.Sprintf("Grid already exists with the name: %s for user.", name),
				err: pkgerrors.ErrAlreadyExists,
			}
		}
		return aggregates.MapError("update grid", err)
	})
	if err != nil {
		return nil, err
	}
	s.deps.Cache.Invalidate(ctx, grid.ID, grid.ExternalID)
	return s.GetDefinition(ctx, rg.ByID(gridID))
}

func (s *reportGridService) Remove(ctx context.Context, gridID int64, username string) error {
	var grid *rg.ReportGrid
	err := s.deps.Tx.InTx(ctx, func(dbc dbctx.Context) error {
		var err error
		grid, err = s.requireOwner(dbc, gridID, username)
		if err != nil {
			return err
		}
		return s.deps.Grids.Delete(dbc, gridID)
	})
	if err != nil {
		return err
	}
	s.deps.Cache.Invalidate(ctx, grid.ID, grid.ExternalID)
	s.log.Info("grid removed", "grid_id", gridID, "username", username)
	return nil
}

func (s *reportGridService) ListAll(ctx context.Context) ([]*rg.ReportGrid, error) {
	return s.deps.Grids.ListAll(dbctx.Background(ctx))
}

func (s *reportGridService) ListForUser(ctx context.Context, username string) ([]*rg.ReportGrid, error) {
	return s.deps.Grids.ListForUser(dbctx.Background(ctx), username)
}

func (s *reportGridService) ListForOwner(ctx context.Context, username string) ([]*rg.ReportGrid, error) {
	return s.deps.Grids.ListForOwner(dbctx.Background(ctx), username)
}

func (s *reportGridService) ListFieldReferences(ctx context.Context) ([]*rg.EntityFieldReference, error) {
	return s.deps.FieldRefs.ListAll(dbctx.Background(ctx))
}

func (s *reportGridService) ListAttestationQualifiers(ctx context.Context) ([]AttestationQualifier, error) {
	cats, err := s.deps.Selectors.MeasurableCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list measurable categories: %w", err)
	}
	out := make([]AttestationQualifier, 0, len(cats)+2)
	for _, c := range cats {
		id := c.ID
		out = append(out, AttestationQualifier{
			Kind:        entity.MeasurableCategory,
			ID:          &id,
			Name:        c.Name + " Attestation",
			Description: c.Name + ": Last attestation",
		})
	}
	out = append(out,
		AttestationQualifier{Kind: entity.LogicalDataFlow, Name: "Logical Flow Attestation", Description: "Logical Flow Attestation"},
		AttestationQualifier{Kind: entity.PhysicalFlow, Name: "Physical Flow Attestation", Description: "Physical Flow Attestation"},
	)
	return out, nil
}

// messageError reports msg to callers while classifying as err.
type messageError struct {
	msg string
	err error
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.err }
