package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/yungbote/waltz-backend/internal/http"
	"github.com/yungbote/waltz-backend/internal/observability"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics, tracing bool) *gin.Engine {
	serviceName := ""
	if tracing {
		serviceName = cfg.ServiceName
	}
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:               log,
		ServiceName:       serviceName,
		CORSOrigins:       cfg.CORSOrigins,
		Metrics:           metrics,
		AuthMiddleware:    middleware.Auth,
		ReportGridHandler: handlers.ReportGrid,
		HealthHandler:     handlers.Health,
		MetricsHandler:    handlers.Metrics,
	})
}
