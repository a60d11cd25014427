package main

import (
	"github.com/shopfloor/schedboard/internal/config"
	"github.com/shopfloor/schedboard/internal/store"
	"github.com/shopfloor/schedboard/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run the database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.InitLog(log.LevelFromString(cfg.Service.LogLevel))
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		db, err := store.InitDB(cfg)
		if err != nil {
			return err
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := s.InitialMigration(); err != nil {
			return err
		}

		zap.S().Named("migrate").Info("migrations applied")
		return nil
	},
}
