package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/hims-api/internal/app"
	"github.com/jwalitptl/hims-api/internal/config"
	"github.com/jwalitptl/hims-api/internal/repository/sqlstore"
	"github.com/jwalitptl/hims-api/internal/worker"
	"github.com/jwalitptl/hims-api/pkg/logger"
	"github.com/jwalitptl/hims-api/pkg/messaging"
	"github.com/jwalitptl/hims-api/pkg/messaging/redis"
	"github.com/jwalitptl/hims-api/pkg/metrics"
	"github.com/jwalitptl/hims-api/pkg/security"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "hims-api",
		Short:         "Hospital records API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./config.yaml or ./config/config.yaml)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(hashSecretCmd())
	rootCmd.AddCommand(auditCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Console:    cfg.Log.Console,
	})
	l.SetGlobal()
	return cfg, l, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*sqlstore.Store, error) {
	reg := prometheus.NewRegistry()
	db, err := sqlstore.NewDB(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return sqlstore.NewStore(db, metrics.NewMetrics(reg, "hims")), nil
}

func serveCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			m := metrics.NewMetrics(reg, "hims")

			db, err := sqlstore.NewDB(ctx, cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			if autoMigrate {
				n, err := sqlstore.MigrateUp(ctx, db)
				if err != nil {
					return err
				}
				log.Info().Int("applied", n).Msg("migrations up to date")
			}

			var broker messaging.Broker = messaging.NopBroker{}
			if cfg.Redis.URL != "" {
				broker, err = redis.NewRedisBroker(redis.Config{URL: cfg.Redis.URL}, l.With("redis").Zerolog())
				if err != nil {
					return err
				}
			}
			defer broker.Close()

			r, err := app.NewRouter(app.Options{
				Config:   cfg,
				Store:    sqlstore.NewStore(db, m),
				Broker:   broker,
				Metrics:  m,
				Gatherer: reg,
				Logger:   l,
			})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
				Handler:      r.Engine(),
				ReadTimeout:  cfg.Server.Timeout(),
				WriteTimeout: cfg.Server.Timeout(),
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Int("port", cfg.Server.Port).Str("driver", cfg.Database.Driver).Msg("starting server")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("failed to start server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			log.Info().Msg("server exited properly")
			return nil
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "Apply pending migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			store, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := sqlstore.MigrateUp(cmd.Context(), store.GetDB())
			if err != nil {
				return err
			}
			fmt.Printf("Applied %d migrations\n", n)
			return nil
		},
	})

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			store, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := sqlstore.MigrateDown(cmd.Context(), store.GetDB(), steps)
			if err != nil {
				return err
			}
			fmt.Printf("Rolled back %d migrations\n", n)
			return nil
		},
	}
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back (0 for all)")
	cmd.AddCommand(downCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			store, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			statuses, err := sqlstore.Status(store.GetDB())
			if err != nil {
				return err
			}
			for _, s := range statuses {
				applied := "pending"
				if s.AppliedAt != nil {
					applied = s.AppliedAt.Format(time.RFC3339)
				}
				fmt.Printf("%-30s %s\n", s.ID, applied)
			}
			return nil
		},
	})

	return cmd
}

func hashSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-secret [secret]",
		Short: "Print the bcrypt hash of a shared secret for the access config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var secret string
			if len(args) == 1 {
				secret = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read secret: %w", err)
				}
				secret = strings.TrimRight(line, "\r\n")
			}

			hashed, err := security.NewBcryptHasher(bcrypt.DefaultCost).Hash(secret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hashed)
			return nil
		},
	}
}

func auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Maintain the audit trail",
	}

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete audit entries older than the retention period",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("retention-days")
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			store, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			rows, err := worker.NewAuditCleanup(store.Repositories().Audit, days).Run(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d audit entries\n", rows)
			return nil
		},
	}
	pruneCmd.Flags().Int("retention-days", 365, "Keep entries newer than this many days")
	cmd.AddCommand(pruneCmd)

	return cmd
}
