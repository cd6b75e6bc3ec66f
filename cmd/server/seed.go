package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nekogravitycat/barber-booking-backend/internal/barber"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/storage"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo barbers when the directory is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			rt, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			store, err := storage.NewLocalStorage(rt.cfg.StoragePath)
			if err != nil {
				return err
			}

			dir := barber.NewDirectory(barber.NewPgxRepository(rt.pool), store, rt.log)
			n, err := barber.Seed(ctx, dir)
			if err != nil {
				return err
			}
			rt.log.Info("demo barbers seeded", zap.Int("created", n))
			return nil
		},
	}
}
