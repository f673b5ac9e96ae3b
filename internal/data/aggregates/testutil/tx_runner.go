package testutil

import (
	"context"
	"sync"

	"github.com/yungbote/waltz-backend/internal/data/aggregates"
	"github.com/yungbote/waltz-backend/internal/platform/dbctx"
)

// FaultyTxRunner runs the body against the non-transactional handle and can
// be told to fail at begin or at commit. Repos fall back to their own *gorm.DB
// when dbctx.Context carries no Tx, so writes made by the body are not undone.
type FaultyTxRunner struct {
	mu sync.Mutex

	FailBegin  error
	FailCommit error

	Begins    int
	Commits   int
	Rollbacks int
}

var _ aggregates.TxRunner = (*FaultyTxRunner)(nil)

func (r *FaultyTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.Begins++
	failBegin, failCommit := r.FailBegin, r.FailCommit
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	if fn != nil {
		if err := fn(dbctx.Context{Ctx: ctx}); err != nil {
			r.count(&r.Rollbacks)
			return err
		}
	}
	if failCommit != nil {
		r.count(&r.Rollbacks)
		return failCommit
	}
	r.count(&r.Commits)
	return nil
}

func (r *FaultyTxRunner) count(n *int) {
	r.mu.Lock()
	*n++
	r.mu.Unlock()
}
