package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rsrujukan/hospital/internal/config"
	"github.com/rsrujukan/hospital/internal/domain/audit"
	"github.com/rsrujukan/hospital/internal/domain/billing"
	"github.com/rsrujukan/hospital/internal/domain/lab"
	"github.com/rsrujukan/hospital/internal/domain/patient"
	"github.com/rsrujukan/hospital/internal/domain/payroll"
	"github.com/rsrujukan/hospital/internal/domain/pharmacy"
	"github.com/rsrujukan/hospital/internal/domain/procedure"
	"github.com/rsrujukan/hospital/internal/domain/staffing"
	"github.com/rsrujukan/hospital/internal/domain/triage"
	"github.com/rsrujukan/hospital/internal/domain/ward"
	"github.com/rsrujukan/hospital/internal/platform/auth"
	"github.com/rsrujukan/hospital/internal/platform/db"
	"github.com/rsrujukan/hospital/internal/platform/middleware"
	"github.com/rsrujukan/hospital/internal/platform/registry"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital-server",
		Short: "RS Rujukan Regional hospital API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the hospital API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

// registerEntityKinds collects the entity kinds each domain package persists,
// so the schema endpoint tracks the wired packages rather than a fixed list.
func registerEntityKinds(reg *registry.Registry) {
	for _, kinds := range [][]string{
		patient.Kinds(),
		triage.Kinds(),
		staffing.Kinds(),
		ward.Kinds(),
		pharmacy.Kinds(),
		procedure.Kinds(),
		lab.Kinds(),
		audit.Kinds(),
		billing.Kinds(),
		payroll.Kinds(),
	} {
		reg.Register(kinds...)
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.Middleware([]byte(cfg.AuthSecret)))
	}

	// Access trail middleware
	e.Use(middleware.AccessTrail(logger))

	// API group
	api := e.Group("")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	// Repositories
	auditRepo := audit.NewRepoPG(pool)
	patientRepo := patient.NewRepoPG(pool)
	triageRepo := triage.NewRepoPG(pool)
	roomRepo := ward.NewRoomRepoPG(pool)
	admissionRepo := ward.NewAdmissionRepoPG(pool)
	inventoryRepo := pharmacy.NewInventoryRepoPG(pool)
	prescriptionRepo := pharmacy.NewPrescriptionRepoPG(pool)
	procedureRepo := procedure.NewRepoPG(pool)
	labOrderRepo := lab.NewOrderRepoPG(pool)
	labResultRepo := lab.NewResultRepoPG(pool)
	staffRepo := staffing.NewStaffRepoPG(pool)
	shiftRepo := staffing.NewShiftRepoPG(pool)
	claimRepo := billing.NewClaimRepoPG(pool)
	reportRepo := billing.NewReportRepoPG(pool)
	payrollRepo := payroll.NewRepoPG(pool)

	// Services
	recorder := audit.NewRecorder(auditRepo, logger)
	txRunner := db.PoolTxRunner(pool)

	auditSvc := audit.NewService(auditRepo)
	patientSvc := patient.NewService(patientRepo, recorder)
	triageSvc := triage.NewService(triageRepo, recorder)
	wardSvc := ward.NewService(roomRepo, admissionRepo, txRunner, recorder)
	pharmacySvc := pharmacy.NewService(inventoryRepo, prescriptionRepo, recorder)
	procedureSvc := procedure.NewService(procedureRepo, recorder)
	labSvc := lab.NewService(labOrderRepo, labResultRepo, recorder)
	staffingSvc := staffing.NewService(staffRepo, shiftRepo, recorder)
	billingSvc := billing.NewService(claimRepo, reportRepo, recorder)
	payrollSvc := payroll.NewService(payrollRepo, staffRepo, recorder)

	// Handlers
	audit.NewHandler(auditSvc).RegisterRoutes(api)
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	triage.NewHandler(triageSvc).RegisterRoutes(api)
	ward.NewHandler(wardSvc).RegisterRoutes(api)
	pharmacy.NewHandler(pharmacySvc).RegisterRoutes(api)
	procedure.NewHandler(procedureSvc).RegisterRoutes(api)
	lab.NewHandler(labSvc).RegisterRoutes(api)
	staffing.NewHandler(staffingSvc).RegisterRoutes(api)
	billing.NewHandler(billingSvc).RegisterRoutes(api)
	payroll.NewHandler(payrollSvc).RegisterRoutes(api)

	// Entity registry backs the schema endpoint.
	reg := registry.New()
	registerEntityKinds(reg)
	e.GET("/schema", reg.SchemaHandler)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
