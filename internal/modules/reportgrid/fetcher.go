package reportgrid

import (
	"context"
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

// fetcher holds what the strategies share: the row source, the name lookup
// and the evaluation clock.
type fetcher struct {
	src   Source
	names NameResolver
	now   func() time.Time
	log   *logger.Logger
}

// descendantsOf resolves a qualifier subtree for each given ancestor. The
// closure includes the ancestor itself.
func (f *fetcher) descendantsOf(ctx context.Context, kind entity.Kind, ancestorIDs []int64) (map[int64]map[int64]bool, error) {
	if len(ancestorIDs) == 0 {
		return nil, nil
	}
	edges, err := f.src.HierarchyDescendants(ctx, kind, ancestorIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]map[int64]bool, len(ancestorIDs))
	for _, e := range edges {
		if out[e.AncestorID] == nil {
			out[e.AncestorID] = map[int64]bool{}
		}
		out[e.AncestorID][e.DescendantID] = true
	}
	return out, nil
}

func (f *fetcher) lookupNames(ctx context.Context, kind entity.Kind, ids []int64) (map[int64]string, error) {
	if f.names == nil || len(ids) == 0 {
		return map[int64]string{}, nil
	}
	return f.names.Names(ctx, kind, ids)
}
