package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/shopfloor/schedboard/internal/api_server"
	"github.com/shopfloor/schedboard/internal/auth"
	"github.com/shopfloor/schedboard/internal/config"
	"github.com/shopfloor/schedboard/internal/store"
	"github.com/shopfloor/schedboard/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the schedule board API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.InitLog(log.LevelFromString(cfg.Service.LogLevel))
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Named("api").Info("Starting API service")
		defer zap.S().Named("api").Info("API service stopped")

		zap.S().Named("api").Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Named("api").Fatalf("initializing data store: %v", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := s.InitialMigration(); err != nil {
			zap.S().Named("api").Fatalf("running initial migration: %v", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		listener, err := newListener(cfg.Service.Address)
		if err != nil {
			zap.S().Named("api").Fatalf("creating listener: %s", err)
		}

		server := apiserver.New(cfg, s, listener, auth.AllowAll{})
		if err := server.Run(ctx); err != nil {
			zap.S().Named("api").Fatalf("Error running server: %s", err)
		}

		return nil
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
