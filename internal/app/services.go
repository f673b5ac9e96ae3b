package app

import (
	reportgrid "github.com/yungbote/waltz-backend/internal/modules/reportgrid"
	"github.com/yungbote/waltz-backend/internal/observability"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
	"github.com/yungbote/waltz-backend/internal/services"
)

type Services struct {
	Resolver   *reportgrid.Resolver
	Selector   services.SelectorService
	ReportGrid services.ReportGridService
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	resolver := reportgrid.NewResolver(reposet.CellSource, reposet.EntityName, log,
		reportgrid.WithConcurrency(cfg.StrategyConcurrency),
		reportgrid.WithMetrics(metrics),
	)
	selector := services.NewSelectorService(log, reposet.Selector)
	grids := services.NewReportGridService(log, services.ReportGridServiceDeps{
		Tx:        reposet.Tx,
		Grids:     reposet.Grid,
		Members:   reposet.GridMember,
		Columns:   reposet.Column,
		FieldRefs: reposet.FieldRef,
		Names:     reposet.EntityName,
		Selectors: reposet.Selector,
		Selector:  selector,
		Resolver:  resolver,
		Cache:     clients.GridCache,
		Metrics:   metrics,
	})
	return Services{Resolver: resolver, Selector: selector, ReportGrid: grids}
}
