package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nekogravitycat/barber-booking-backend/internal/app"
	"github.com/nekogravitycat/barber-booking-backend/internal/barber"
	"github.com/nekogravitycat/barber-booking-backend/internal/cache"
	"github.com/nekogravitycat/barber-booking-backend/internal/db"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/storage"
)

func newServeCmd() *cobra.Command {
	var (
		migrateUp bool
		seed      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			// For receiving Ctrl+C / SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer rt.close()
			cfg, log := rt.cfg, rt.log

			if migrateUp {
				applied, err := db.Migrate(ctx, rt.pool)
				if err != nil {
					return err
				}
				log.Info("migrations applied", zap.Strings("versions", applied))
			}

			rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
			if err != nil {
				return err
			}
			defer rdb.Close()

			store, err := storage.NewLocalStorage(cfg.StoragePath)
			if err != nil {
				return err
			}

			if cfg.IsProduction {
				gin.SetMode(gin.ReleaseMode)
			}

			container, err := app.NewContainer(app.Config{
				IsProduction:          cfg.IsProduction,
				ProdOrigins:           cfg.ProdOrigins,
				Logger:                log,
				DBPool:                rt.pool,
				Redis:                 rdb,
				Storage:               store,
				JWTSecret:             cfg.JWTSecret,
				JWTTTL:                cfg.JWTAccessTokenTTL,
				BcryptCost:            cfg.BcryptCost,
				Location:              cfg.Location,
				SlotStep:              cfg.SlotStep,
				AdminNumbers:          cfg.AdminNums,
				VerificationCodeTTL:   cfg.VerificationCodeTTL,
				VerificationRateLimit: cfg.VerificationRateLimit,
				VerificationWindow:    cfg.VerificationWindow,
			})
			if err != nil {
				return err
			}

			if seed {
				n, err := barber.Seed(ctx, container.Directory)
				if err != nil {
					return err
				}
				log.Info("demo barbers seeded", zap.Int("created", n))
			}

			// Use http.Server for graceful shutdown
			server := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           container.Router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("server running", zap.String("addr", cfg.HTTPAddr), zap.String("timezone", cfg.Location.String()))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			// Wait for Ctrl+C or a listener failure
			select {
			case <-ctx.Done():
				log.Info("shutdown signal received")
			case err := <-errCh:
				if err != nil {
					return err
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Warn("server forced to shutdown", zap.Error(err))
			}

			log.Info("server exited gracefully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply pending database migrations before serving")
	cmd.Flags().BoolVar(&seed, "seed", false, "create the demo barbers when the directory is empty")
	return cmd
}
