package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"mailrecon/core/config"
	"mailrecon/core/credential"
	"mailrecon/core/loader"
	"mailrecon/core/logger"
	"mailrecon/core/mailbox"
	"mailrecon/core/middleware/auth"
	"mailrecon/core/middleware/rayid"
	"mailrecon/core/storage"

	healthfeature "mailrecon/feature/health"
	historyfeature "mailrecon/feature/history"
	reconcilefeature "mailrecon/feature/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "mailrecon/docs/swagger"
)

// @title mailrecon API
// @version 1.0
// @description Deduplicate, compare, merge and filter mailboxes.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation API server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Run history (optional)
		store := openHistory(cfg.Database, logg)
		if store != nil {
			logg.Info("Run history enabled", zap.String("driver", cfg.Database.Driver))
		}

		// 4. Storage and mailbox sources
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		deps := mailbox.Deps{
			Storage: client,
			Bucket:  cfg.Storage.Bucket,
			IMAP:    cfg.IMAP,
			Secrets: credential.Lazy(cfg.Credential),
		}

		app := fiber.New(fiber.Config{
			BodyLimit:             cfg.Server.BodyLimit(),
			DisableStartupMessage: true,
		})

		// 5. Features
		mgr := loader.NewManager()
		mgr.Register(reconcilefeature.NewFeature(reconcilefeature.Options{
			Settings: cfg.Match,
			Deps:     deps,
			DataDir:  cfg.Server.DataDir,
			CacheTTL: cfg.Server.SourceCacheTTL(),
			Store:    store,
		}, logg))
		mgr.Register(historyfeature.NewFeature(store, logg))
		mgr.Register(healthfeature.NewFeature(client, cfg.Storage.Bucket, cfg.Storage.Region, store, logg))

		// RayID first so every log line carries it.
		app.Use(rayid.New())

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

		// Swagger stays public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server",
				zap.String("address", cfg.Server.Address()),
				zap.Bool("filesystem_sources", cfg.Server.DataDir != ""),
			)
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Graceful Shutdown
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
