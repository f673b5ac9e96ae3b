package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/waltz-backend/internal/platform/dbctx"
)

func TestFaultyTxRunner(t *testing.T) {
	bodyErr := errors.New("body")
	commitErr := errors.New("commit")
	beginErr := errors.New("begin")

	tests := []struct {
		name      string
		runner    *FaultyTxRunner
		body      error
		want      error
		ran       bool
		commits   int
		rollbacks int
	}{
		{name: "commit", runner: &FaultyTxRunner{}, ran: true, commits: 1},
		{name: "body error", runner: &FaultyTxRunner{}, body: bodyErr, want: bodyErr, ran: true, rollbacks: 1},
		{name: "commit error", runner: &FaultyTxRunner{FailCommit: commitErr}, want: commitErr, ran: true, rollbacks: 1},
		{name: "begin error", runner: &FaultyTxRunner{FailBegin: beginErr}, want: beginErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ran := false
			err := tt.runner.InTx(context.Background(), func(dbc dbctx.Context) error {
				ran = true
				if dbc.Tx != nil {
					t.Fatalf("expected no transaction handle")
				}
				return tt.body
			})
			if !errors.Is(err, tt.want) || (tt.want == nil && err != nil) {
				t.Fatalf("InTx: got %v want %v", err, tt.want)
			}
			if ran != tt.ran {
				t.Fatalf("body ran=%v want %v", ran, tt.ran)
			}
			if tt.runner.Begins != 1 || tt.runner.Commits != tt.commits || tt.runner.Rollbacks != tt.rollbacks {
				t.Fatalf("counters begin=%d commit=%d rollback=%d", tt.runner.Begins, tt.runner.Commits, tt.runner.Rollbacks)
			}
		})
	}
}
