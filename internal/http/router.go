package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/waltz-backend/internal/http/handlers"
	httpMW "github.com/yungbote/waltz-backend/internal/http/middleware"
	"github.com/yungbote/waltz-backend/internal/observability"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	CORSOrigins    string
	Metrics        *observability.Metrics
	AuthMiddleware *httpMW.AuthMiddleware

	ReportGridHandler *httpH.ReportGridHandler
	HealthHandler     *httpH.HealthHandler
	MetricsHandler    *httpH.MetricsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", cfg.MetricsHandler.Metrics)
	}

	api := r.Group("/api")
	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Report grids
		if h := cfg.ReportGridHandler; h != nil {
			grids := protected.Group("/report-grid")
			grids.GET("", h.ListAll)
			grids.GET("/mine", h.ListForUser)
			grids.GET("/owned", h.ListForOwner)
			grids.POST("", h.Create)
			grids.PUT("/id/:id", h.Update)
			grids.DELETE("/id/:id", h.Remove)
			grids.GET("/id/:id/definition", h.GetDefinition)
			grids.GET("/external-id/:extId/definition", h.GetDefinition)
			grids.POST("/id/:id/view", h.View)
			grids.POST("/external-id/:extId/view", h.View)
			grids.PUT("/id/:id/columns", h.ReplaceColumns)
			grids.GET("/field-references", h.ListFieldReferences)
			grids.GET("/attestation-qualifiers", h.ListAttestationQualifiers)
		}
	}

	return r
}
