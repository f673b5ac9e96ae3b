package services

import (
	"context"
	"fmt"

	"github.com/yungbote/waltz-backend/internal/data/repos"
	"github.com/yungbote/waltz-backend/internal/domain/entity"
	pkgerrors "github.com/yungbote/waltz-backend/internal/pkg/errors"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

const maxSelectorSize = 10000

type SelectionScope string

const (
	ScopeExact    SelectionScope = "EXACT"
	ScopeChildren SelectionScope = "CHILDREN"
)

// SelectionOptions says which subjects a grid is evaluated over. Kind names
// what IDs refer to: the subject kind itself, an org unit or an app group.
type SelectionOptions struct {
	Kind  entity.Kind    `json:"kind" yaml:"kind"`
	IDs   []int64        `json:"ids" yaml:"ids"`
	Scope SelectionScope `json:"scope,omitempty" yaml:"scope,omitempty"`
}

type SelectorService interface {
	Resolve(ctx context.Context, subjectKind entity.Kind, opts SelectionOptions) (entity.Selector, error)
}

type selectorService struct {
	log          *logger.Logger
	selectorRepo repos.SelectorRepo
}

func NewSelectorService(baseLog *logger.Logger, selectorRepo repos.SelectorRepo) SelectorService {
	return &selectorService{
		log:          baseLog.With("service", "SelectorService"),
		selectorRepo: selectorRepo,
	}
}

func (s *selectorService) Resolve(ctx context.Context, subjectKind entity.Kind, opts SelectionOptions) (entity.Selector, error) {
	switch subjectKind {
	case entity.Application, entity.ChangeInitiative:
	default:
		return entity.Selector{}, fmt.Errorf("unsupported grid subject kind %s: %w", subjectKind, pkgerrors.ErrUnsupported)
	}
	if len(opts.IDs) > maxSelectorSize {
		return entity.Selector{}, fmt.Errorf("selection of %d ids exceeds limit %d: %w", len(opts.IDs), maxSelectorSize, pkgerrors.ErrInvalidArgument)
	}
	kind := entity.ParseKind(string(opts.Kind))
	if kind == "" {
		kind = subjectKind
	}

	var (
		ids []int64
		err error
	)
	switch kind {
	case subjectKind:
		ids, err = s.selectorRepo.ExistingIDs(ctx, subjectKind, opts.IDs)
	case entity.OrgUnit:
		if opts.Scope != "" && opts.Scope != ScopeChildren {
			return entity.Selector{}, fmt.Errorf("org unit selection supports scope %s only: %w", ScopeChildren, pkgerrors.ErrInvalidArgument)
		}
		ids, err = s.selectorRepo.OrgUnitSubjects(ctx, subjectKind, opts.IDs)
	case entity.AppGroup:
		if subjectKind != entity.Application {
			return entity.Selector{}, fmt.Errorf("cannot return app group selector for kind: %s: %w", subjectKind, pkgerrors.ErrUnsupported)
		}
		ids, err = s.selectorRepo.AppGroupApplications(ctx, opts.IDs)
	default:
		return entity.Selector{}, fmt.Errorf("cannot select %s subjects by %s: %w", subjectKind, kind, pkgerrors.ErrUnsupported)
	}
	if err != nil {
		return entity.Selector{}, fmt.Errorf("resolve selector: %w", err)
	}

	sel := entity.NewSelector(subjectKind, ids)
	if len(sel.IDs) > maxSelectorSize {
		return entity.Selector{}, fmt.Errorf("selector resolved to %d subjects, limit is %d: %w", len(sel.IDs), maxSelectorSize, pkgerrors.ErrInvalidArgument)
	}
	s.log.Debug("selector resolved", "subject_kind", string(subjectKind), "by", string(kind), "subjects", len(sel.IDs))
	return sel, nil
}
