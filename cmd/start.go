package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"smartwarga/core/loader"
	"smartwarga/core/logger"
	"smartwarga/core/middleware/auth"
	"smartwarga/core/middleware/rayid"
	"smartwarga/feature/health"
	"smartwarga/feature/resident"
	sheetSync "smartwarga/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "smartwarga/docs/swagger"
)

// @title SmartWarga Sync API
// @version 1.0
// @description Resident registry with Google Sheets synchronization.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the SmartWarga server",
	Long:  `Starts the HTTP server, the auto-push worker and the auto-sync scheduler.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, logg, err := loadConfig()
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)
		logg = logg.With(zap.String("neighborhood", cfg.Server.Neighborhood))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// 2. Database, storage and sync services
		a, err := bootstrap(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize services", zap.Error(err))
		}
		defer a.close()
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		// 3. Background workers
		go a.pusher.Run(ctx)

		scheduler := sheetSync.NewScheduler(a.sync.SyncBoth, logg)
		a.sync.SetScheduler(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
		if err := a.sync.RestoreSchedule(ctx); err != nil {
			logg.Warn("Failed to restore auto-sync schedule", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(health.NewFeature(
			health.NewService(a.db, healthTables(), a.storage, cfg.Storage.Bucket, logg).
				WithNeighborhood(cfg.Server.Neighborhood),
		))
		mgr.Register(resident.NewFeature(a.residents, a.pusher, logg))
		mgr.Register(sheetSync.NewFeature(a.sync, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id attached
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (health and docs stay public)
		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Skip: func(c *fiber.Ctx) bool {
				return c.Path() == "/health" || strings.HasPrefix(c.Path(), "/swagger")
			},
		}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.ListenAddr()))
			if err := app.Listen(cfg.Server.ListenAddr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
