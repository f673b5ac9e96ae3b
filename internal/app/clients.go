package app

import (
	"github.com/yungbote/waltz-backend/internal/clients/redis"
	"github.com/yungbote/waltz-backend/internal/observability"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type Clients struct {
	GridCache redis.GridCache
}

// wireClients never fails on Redis: an unreachable cache is logged and the
// service runs uncached.
func wireClients(log *logger.Logger, metrics *observability.Metrics) Clients {
	log.Info("Wiring clients...")
	cache, err := redis.NewGridCache(log, metrics)
	if err != nil {
		log.Warn("Grid cache unavailable, continuing without it", "error", err)
		cache = redis.NewDisabledGridCache(log)
	}
	return Clients{GridCache: cache}
}
