package reportgrid

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	"github.com/yungbote/waltz-backend/internal/observability"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

const defaultConcurrency = 8

type Option func(*Resolver)

// WithClock overrides the evaluation time used for attestation bands.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.fetch.now = now
		}
	}
}

// WithConcurrency caps how many strategies run at once.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.limit = n
		}
	}
}

func WithMetrics(m *observability.Metrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

// Resolver evaluates the fixed columns of a grid over a selector.
type Resolver struct {
	fetch      *fetcher
	strategies map[StrategyKey]Strategy
	limit      int
	metrics    *observability.Metrics
	tracer     trace.Tracer
	log        *logger.Logger
}

func NewResolver(src Source, names NameResolver, baseLog *logger.Logger, opts ...Option) *Resolver {
	log := baseLog.With("module", "ReportGridResolver")
	r := &Resolver{
		fetch:  &fetcher{src: src, names: names, now: time.Now, log: log},
		limit:  defaultConcurrency,
		tracer: otel.Tracer("github.com/yungbote/waltz-backend/internal/modules/reportgrid"),
		log:    log,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.strategies = r.fetch.strategies()
	return r
}

// Resolve returns the merged cell matrix of def over sel, sorted by subject
// then column. Derived columns are not evaluated here.
func (r *Resolver) Resolve(ctx context.Context, def *rg.Definition, sel entity.Selector) ([]rg.Cell, error) {
	if def == nil {
		return []rg.Cell{}, nil
	}
	return r.ResolveColumns(ctx, def.FixedColumns, sel)
}

// ResolveColumns runs every strategy the columns need concurrently. The first
// strategy error cancels the others and is returned.
func (r *Resolver) ResolveColumns(ctx context.Context, cols []rg.FixedColumn, sel entity.Selector) ([]rg.Cell, error) {
	if sel.Empty() || len(cols) == 0 {
		return []rg.Cell{}, nil
	}
	start := time.Now()
	plan := Classify(cols)
	keys := plan.Keys()

	results := make([][]rg.Cell, len(keys))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for i, key := range keys {
		strategy, ok := r.strategies[key]
		if !ok {
			r.log.Debug("no strategy for column group, skipping", "strategy", string(key), "columns", len(plan[key]))
			continue
		}
		i, key, groupCols := i, key, plan[key]
		g.Go(func() error {
			cells, err := r.run(gctx, key, strategy, sel, groupCols)
			if err != nil {
				return fmt.Errorf("report grid strategy %s: %w", key, err)
			}
			mu.Lock()
			results[i] = cells
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	r.metrics.ObserveResolve(string(sel.Kind), err, time.Since(start))
	if err != nil {
		return nil, err
	}

	var all []rg.Cell
	for _, cells := range results {
		all = append(all, cells...)
	}
	merged := Merge(all)
	if merged == nil {
		merged = []rg.Cell{}
	}
	SortCells(merged)
	return merged, nil
}

func (r *Resolver) run(ctx context.Context, key StrategyKey, strategy Strategy, sel entity.Selector, cols []rg.FixedColumn) ([]rg.Cell, error) {
	ctx, span := r.tracer.Start(ctx, "reportgrid.fetch", trace.WithAttributes(
		attribute.String("strategy", string(key)),
		attribute.Int("columns", len(cols)),
		attribute.Int("subjects", len(sel.IDs)),
	))
	defer span.End()

	start := time.Now()
	cells, err := strategy(ctx, sel, cols)
	r.metrics.ObserveStrategy(string(key), len(cells), err, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("cells", len(cells)))
	return cells, nil
}
