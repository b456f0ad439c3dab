package cmd

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"queuectl/internal/config"
	"queuectl/internal/storage"
	"queuectl/internal/worker"

	"github.com/spf13/cobra"
)

func WorkerCmd(store *storage.Store, cfg *config.Config) *cobra.Command {
	workerCmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage worker processes",
	}

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start processing jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			if count <= 0 {
				count = cfg.WorkerCount
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := worker.WriteStatus(cfg.DataDir, count); err != nil {
				return fmt.Errorf("could not write worker status: %w", err)
			}
			defer worker.ClearStatus(cfg.DataDir)

			log.Printf("Starting worker with %d slot(s)...", count)
			log.Println("Press Ctrl+C to shut down gracefully.")

			pool := worker.New(store, cfg, count)
			pool.Run(ctx)

			log.Println("Worker has shut down. Exiting.")
			return nil
		},
	}
	startCmd.Flags().Int("count", 0, "Number of concurrent execution slots (defaults to config worker-count)")
	workerCmd.AddCommand(startCmd)

	return workerCmd
}
