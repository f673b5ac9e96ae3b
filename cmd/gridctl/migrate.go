package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/waltz-backend/internal/app"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := app.NewLogger()
			if err != nil {
				return err
			}
			defer log.Sync()
			store, err := app.OpenStore(log, true)
			if err != nil {
				return err
			}
			defer store.Close()
			log.Info("Schema migrated", "driver", store.Driver())
			return nil
		},
	}
}
