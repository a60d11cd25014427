// schedboard is a terminal viewer for the schedule board: it fetches the
// job and priority collections from the gateway, prints the per-machine
// queues with their cumulative-hours projection and the material forecast,
// then keeps polling until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopfloor/schedboard/internal/board"
	"github.com/shopfloor/schedboard/internal/board/cache"
	"github.com/shopfloor/schedboard/internal/board/client"
	"github.com/shopfloor/schedboard/internal/board/derive"
	"github.com/shopfloor/schedboard/internal/board/render"
	"github.com/shopfloor/schedboard/internal/config"
	"github.com/shopfloor/schedboard/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watch bool

var rootCmd = &cobra.Command{
	Use:   "schedboard",
	Short: "Terminal viewer for the manufacturing schedule board",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.InitLog(log.LevelFromString(cfg.Service.LogLevel))
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		gateway := client.New(cfg.Board.GatewayUrl, client.WithTimeout(cfg.Board.RequestTimeout))
		repo := board.NewRepository(gateway, cache.New(cfg.Board.CacheDir))

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		refresher := board.NewRefresher(repo, cfg.Board.RefreshInterval)
		refresher.RefreshOnce(ctx)
		printBoard(cfg.Board.Machines, repo)

		if !watch {
			return nil
		}
		refresher.OnRefresh = func() { printBoard(cfg.Board.Machines, repo) }
		refresher.Run(ctx)
		return nil
	},
}

func printBoard(machines []string, repo *board.Repository) {
	jobs := repo.Jobs()
	view := render.Schedule(machines, jobs, repo.Priorities(), repo.Degraded())

	if view.Degraded {
		fmt.Println("!! gateway unreachable, showing cached snapshot")
	}
	for _, col := range view.Columns {
		if len(col.Cards) == 0 {
			continue
		}
		fmt.Printf("%s [%s] %.1fh\n", col.Machine, col.Priority, col.TotalHours)
		for _, card := range col.Cards {
			marker := " "
			if card.Setup {
				marker = "*"
			}
			fmt.Printf("  %s %-24s %3d%%  +%.1fh\n", marker, card.Title, card.PercentComplete, card.CumulativeHours)
		}
	}

	forecast := derive.MaterialForecast(jobs, derive.DefaultBuckets())
	if len(forecast) > 0 {
		fmt.Println("material forecast (lbs):")
		for material, buckets := range forecast {
			fmt.Printf("  %-16s", material)
			for _, b := range derive.DefaultBuckets() {
				fmt.Printf("  %s=%.1f", b.Label, buckets[b.Label])
			}
			fmt.Println()
		}
	}
}

func main() {
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling and reprinting")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
