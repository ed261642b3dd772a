package main

import (
	"fmt"
	"os"

	_ "rollingpaper/docs"
	"rollingpaper/internal/config"
	"rollingpaper/internal/logger"
	"rollingpaper/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title           Rolling Paper API
// @version         1.0
// @description     Shared message boards ("rolling papers") with optional password gates, hearts and Google sign-in.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rollingpaper",
		Short:         "Rolling paper board API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd, migrateCmd)
	return root
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("❌ logger init failed: %w", err)
		}
		defer func() { _ = log.Sync() }()

		s, err := server.Init(cfg, log)
		if err != nil {
			log.Error("❌ Server initialization failed", zap.Error(err))
			return err
		}
		return s.Run()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("❌ logger init failed: %w", err)
		}
		defer func() { _ = log.Sync() }()

		db, err := server.Open(cfg.DB)
		if err != nil {
			return err
		}
		if err := server.Migrate(db); err != nil {
			return err
		}
		log.Info("✅ Schema migrated", zap.String("db", cfg.DB.Name))
		return nil
	},
}
