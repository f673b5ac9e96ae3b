package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/waltz-backend/internal/data/db"
	apphttp "github.com/yungbote/waltz-backend/internal/http"
	"github.com/yungbote/waltz-backend/internal/observability"
	"github.com/yungbote/waltz-backend/internal/platform/envutil"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Clients  Clients
	Services Services
	Metrics  *observability.Metrics

	store        *db.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

// NewLogger builds the process logger from LOG_MODE.
func NewLogger() (*logger.Logger, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// OpenStore connects to the configured database, migrating it first when
// migrate is set.
func OpenStore(log *logger.Logger, migrate bool) (*db.Service, error) {
	store, err := db.Open(log)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if migrate {
		if err := db.AutoMigrateAll(store.DB()); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
	}
	return store, nil
}

func New() (*App, error) {
	log, err := NewLogger()
	if err != nil {
		return nil, err
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})
	metrics := observability.Init(log)

	store, err := OpenStore(log, cfg.AutoMigrate)
	if err != nil {
		log.Sync()
		return nil, err
	}
	theDB := store.DB()

	reposet := wireRepos(theDB, log)
	clientset := wireClients(log, metrics)
	serviceset := wireServices(log, cfg, reposet, clientset, metrics)
	handlerset := wireHandlers(log, theDB, serviceset, metrics)
	middleware := wireMiddleware(log, cfg)
	router := wireRouter(log, cfg, handlerset, middleware, metrics, envutil.Bool("OTEL_ENABLED", false))

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Clients:      clientset,
		Services:     serviceset,
		Metrics:      metrics,
		store:        store,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches the background collectors. Calling it twice is a no-op.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Metrics != nil {
		a.Metrics.StartDBCollector(ctx, a.Log, a.DB)
		if client := a.Clients.GridCache.Client(); client != nil {
			a.Metrics.StartRedisCollector(ctx, a.Log, client)
		}
		if a.Cfg.MetricsAddr != "" {
			a.Metrics.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Server listening", "addr", addr)
	srv := &apphttp.Server{Engine: a.Router}
	return srv.Run(ctx, addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Clients.GridCache != nil {
		if err := a.Clients.GridCache.Close(); err != nil {
			a.Log.Warn("Grid cache close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil {
			a.Log.Warn("OTel shutdown failed", "error", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Log.Warn("Database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
