package redis

import (
	"context"
	"testing"

	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

func TestNewGridCacheWithoutAddressIsDisabled(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	c, err := NewGridCache(logger.NewNop(), nil)
	if err != nil {
		t.Fatalf("NewGridCache: %v", err)
	}
	if c.Enabled() {
		t.Fatalf("cache should be disabled without REDIS_ADDR")
	}
	ctx := context.Background()
	ext := "EXT"
	c.Set(ctx, &rg.Definition{ReportGrid: rg.ReportGrid{ID: 1, ExternalID: &ext}})
	if _, ok := c.Get(ctx, rg.ByID(1)); ok {
		t.Fatalf("disabled cache should always miss")
	}
	c.Invalidate(ctx, 1, &ext)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if c.Client() != nil {
		t.Fatalf("disabled cache should expose no client")
	}
}

func TestRefKey(t *testing.T) {
	if got := refKey(rg.ByID(42)); got != keyPrefix+"id:42" {
		t.Fatalf("refKey(id) = %q", got)
	}
	if got := refKey(rg.ByExternalID(" A-1 ")); got != keyPrefix+"ext:A-1" {
		t.Fatalf("refKey(ext) = %q", got)
	}
}
