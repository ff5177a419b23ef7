package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soutoura/soutoura/app/jobs"
	"github.com/soutoura/soutoura/config"
	"github.com/soutoura/soutoura/pkg/cache"
	"github.com/soutoura/soutoura/pkg/database"
	"github.com/soutoura/soutoura/pkg/logger"
	"github.com/soutoura/soutoura/pkg/queue"
)

var queueWorkersFlag int

// soutoura queue:work — run workers in a standalone process. The redis
// driver is required here: the in-memory queue cannot be shared with the
// API process.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start standalone queue workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if err := database.Connect(); err != nil {
			return err
		}
		if err := cache.Connect(); err != nil {
			return fmt.Errorf("queue:work needs redis: %w", err)
		}
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		jobs.Init()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = config.QueueWorkers()
		}

		fmt.Printf("Queue workers started (%d). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		logger.Info("queue workers stopped")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 0, "Number of concurrent workers")
}
