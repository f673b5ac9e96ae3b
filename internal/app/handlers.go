package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/waltz-backend/internal/http/handlers"
	"github.com/yungbote/waltz-backend/internal/observability"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type Handlers struct {
	ReportGrid *httpH.ReportGridHandler
	Health     *httpH.HealthHandler
	Metrics    *httpH.MetricsHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		ReportGrid: httpH.NewReportGridHandler(log, services.ReportGrid),
		Health:     httpH.NewHealthHandler(db),
		Metrics:    httpH.NewMetricsHandler(metrics),
	}
}
