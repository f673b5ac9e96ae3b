package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/waltz-backend/internal/platform/shutdown"
)

type rootOptions struct {
	user string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	root := &cobra.Command{
		Use:           "gridctl",
		Short:         "Manage and evaluate report grids",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.user, "user", "gridctl", "Username recorded as owner / last updater")
	root.AddCommand(newImportCmd(&opts), newResolveCmd(), newMigrateCmd())
	return root
}

func main() {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
