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

	"github.com/healthfolio/healthfolio/internal/config"
	"github.com/healthfolio/healthfolio/internal/domain/complaint"
	"github.com/healthfolio/healthfolio/internal/domain/condition"
	"github.com/healthfolio/healthfolio/internal/domain/course"
	"github.com/healthfolio/healthfolio/internal/domain/identity"
	"github.com/healthfolio/healthfolio/internal/domain/profile"
	"github.com/healthfolio/healthfolio/internal/domain/record"
	"github.com/healthfolio/healthfolio/internal/domain/reminder"
	"github.com/healthfolio/healthfolio/internal/domain/share"
	"github.com/healthfolio/healthfolio/internal/domain/vitals"
	"github.com/healthfolio/healthfolio/internal/platform/auth"
	"github.com/healthfolio/healthfolio/internal/platform/clock"
	"github.com/healthfolio/healthfolio/internal/platform/db"
	"github.com/healthfolio/healthfolio/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "healthfolio-server",
		Short: "Personal health record API server",
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
		Short: "Start the API server",
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

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
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
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	jwtSecret := []byte(cfg.JWTSecret)
	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	shareTTL := time.Duration(cfg.ShareTTLMinutes) * time.Minute
	clk := clock.System()

	// API groups. Everything under /api/v1 requires a session; /share/view
	// is the one anonymous surface besides registration and login.
	apiV1 := e.Group("/api/v1")
	apiV1.Use(auth.SessionMiddleware(jwtSecret))
	shareGroup := e.Group("/share")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))
	shareGroup.Use(middleware.RateLimit(rateLimitCfg))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// -- Register domain handlers --

	// Repositories first: the course service reads linked records and
	// complaints through their repos, while the record and complaint
	// services validate course links through the course service. Wiring
	// repos into the course service keeps construction acyclic.
	userRepo := identity.NewRepo(pool)
	profileRepo := profile.NewRepo(pool)
	recordRepo := record.NewRepo(pool)
	courseRepo := course.NewRepo(pool)
	complaintRepo := complaint.NewRepo(pool)
	vitalsRepo := vitals.NewRepo(pool)
	reminderRepo := reminder.NewRepo(pool)
	shareRepo := share.NewRepo(pool)
	conditionRepo := condition.NewRepo(pool)

	// Allergy / chronic disease catalogs. The lists are public so the
	// registration form can offer them before a session exists.
	conditionSvc := condition.NewService(conditionRepo)
	conditionHandler := condition.NewHandler(conditionSvc)
	conditionHandler.RegisterPublicRoutes(e)
	conditionHandler.RegisterRoutes(apiV1)

	// Identity
	identitySvc := identity.NewService(userRepo, conditionSvc)
	identityHandler := identity.NewHandler(identitySvc, jwtSecret, sessionTTL)
	identityHandler.RegisterPublicRoutes(e)
	identityHandler.RegisterRoutes(apiV1)

	// Profile
	profileSvc := profile.NewService(profileRepo)
	profileHandler := profile.NewHandler(profileSvc)
	profileHandler.RegisterRoutes(apiV1)

	// Treatment courses
	courseSvc := course.NewService(courseRepo, recordRepo, complaintRepo)
	courseHandler := course.NewHandler(courseSvc)
	courseHandler.RegisterRoutes(apiV1)

	// Records
	recordSvc := record.NewService(recordRepo, courseSvc)
	recordHandler := record.NewHandler(recordSvc)
	recordHandler.RegisterRoutes(apiV1)

	// Complaints
	complaintSvc := complaint.NewService(complaintRepo, courseSvc)
	complaintHandler := complaint.NewHandler(complaintSvc)
	complaintHandler.RegisterRoutes(apiV1)

	// Vitals
	vitalsSvc := vitals.NewService(vitalsRepo, clk)
	vitalsHandler := vitals.NewHandler(vitalsSvc)
	vitalsHandler.RegisterRoutes(apiV1)

	// Reminders
	reminderSvc := reminder.NewService(reminderRepo)
	reminderHandler := reminder.NewHandler(reminderSvc)
	reminderHandler.RegisterRoutes(apiV1)

	// Sharing
	shareSvc := share.NewService(shareRepo, clk, shareTTL, logger)
	shareSvc.StartPurgeLoop(time.Minute)
	defer shareSvc.Stop()

	assembler := share.NewAssembler(profileSvc, recordSvc, vitalsSvc)
	shareHandler := share.NewHandler(shareSvc, assembler, cfg.ShareBaseURL)
	shareHandler.RegisterRoutes(apiV1)
	shareHandler.RegisterPublicRoutes(shareGroup)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
		return err
	}
	return nil
}
