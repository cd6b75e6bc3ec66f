package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nekogravitycat/barber-booking-backend/internal/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			rt, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			applied, err := db.Migrate(ctx, rt.pool)
			if err != nil {
				return err
			}
			rt.log.Info("migrations applied", zap.Strings("versions", applied))
			return nil
		},
	}
}
