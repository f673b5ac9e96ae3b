package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	"github.com/yungbote/waltz-backend/internal/observability"
	"github.com/yungbote/waltz-backend/internal/platform/envutil"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

const keyPrefix = "waltz:report-grid:definition:"

// GridCache holds assembled grid definitions keyed by id and by external id.
// A disabled cache misses on every Get and ignores writes.
type GridCache interface {
	Enabled() bool
	Get(ctx context.Context, ref rg.GridRef) (*rg.Definition, bool)
	Set(ctx context.Context, def *rg.Definition)
	Invalidate(ctx context.Context, gridID int64, externalID *string)
	Client() goredis.UniversalClient
	Close() error
}

type gridCache struct {
	log     *logger.Logger
	rdb     goredis.UniversalClient
	ttl     time.Duration
	metrics *observability.Metrics
}

// NewGridCache connects to REDIS_ADDR. An unset address yields a disabled
// cache and no error.
func NewGridCache(log *logger.Logger, metrics *observability.Metrics) (GridCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cacheLog := log.With("service", "RedisGridCache")
	addr := envutil.String("REDIS_ADDR", "", log)
	if addr == "" {
		cacheLog.Info("REDIS_ADDR not set; grid definition cache disabled")
		return NewDisabledGridCache(log), nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    envutil.String("REDIS_PASSWORD", "", nil),
		DB:          envutil.Int("REDIS_DB", 0),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &gridCache{
		log:     cacheLog,
		rdb:     rdb,
		ttl:     envutil.Seconds("GRID_CACHE_TTL_SECONDS", 300*time.Second),
		metrics: metrics,
	}, nil
}

func NewDisabledGridCache(log *logger.Logger) GridCache {
	if log == nil {
		log = logger.NewNop()
	}
	return &gridCache{log: log.With("service", "RedisGridCache")}
}

func (c *gridCache) Enabled() bool { return c != nil && c.rdb != nil }

func (c *gridCache) Client() goredis.UniversalClient {
	if c == nil {
		return nil
	}
	return c.rdb
}

func refKey(ref rg.GridRef) string {
	if ref.ExternalID != "" {
		return keyPrefix + "ext:" + ref.ExternalID
	}
	return keyPrefix + "id:" + strconv.FormatInt(ref.ID, 10)
}

func (c *gridCache) Get(ctx context.Context, ref rg.GridRef) (*rg.Definition, bool) {
	if !c.Enabled() || !ref.Valid() {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, refKey(ref)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("grid cache read failed", "ref", ref.String(), "error", err)
			c.metrics.IncGridCache("error")
		} else {
			c.metrics.IncGridCache("miss")
		}
		return nil, false
	}
	var def rg.Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		c.log.Warn("grid cache entry undecodable", "ref", ref.String(), "error", err)
		c.metrics.IncGridCache("error")
		_ = c.rdb.Del(ctx, refKey(ref)).Err()
		return nil, false
	}
	c.metrics.IncGridCache("hit")
	return &def, true
}

func (c *gridCache) Set(ctx context.Context, def *rg.Definition) {
	if !c.Enabled() || def == nil || def.ID <= 0 {
		return
	}
	raw, err := json.Marshal(def)
	if err != nil {
		c.log.Warn("grid cache encode failed", "grid_id", def.ID, "error", err)
		return
	}
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, refKey(rg.ByID(def.ID)), raw, c.ttl)
	if def.ExternalID != nil && *def.ExternalID != "" {
		pipe.Set(ctx, refKey(rg.ByExternalID(*def.ExternalID)), raw, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("grid cache write failed", "grid_id", def.ID, "error", err)
	}
}

func (c *gridCache) Invalidate(ctx context.Context, gridID int64, externalID *string) {
	if !c.Enabled() {
		return
	}
	keys := []string{}
	if gridID > 0 {
		keys = append(keys, refKey(rg.ByID(gridID)))
	}
	if externalID != nil && *externalID != "" {
		keys = append(keys, refKey(rg.ByExternalID(*externalID)))
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("grid cache invalidate failed", "grid_id", gridID, "error", err)
	}
}

func (c *gridCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
