package cmd

import (
	"fmt"

	"queuectl/internal/config"
	"queuectl/internal/model"
	"queuectl/internal/storage"
	"queuectl/internal/worker"

	"github.com/spf13/cobra"
)

func ListCmd(store *storage.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by state",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _ := cmd.Flags().GetString("state")

			var jobs []model.Job
			var err error
			if state == "" {
				jobs, err = store.LoadJobs()
			} else {
				if !model.ValidState(state) {
					return fmt.Errorf("unknown state %q", state)
				}
				jobs, err = store.ListByState(state)
			}
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}

			if len(jobs) == 0 {
				fmt.Println("No jobs found.")
				return nil
			}

			fmt.Println("ID\t\tState\t\tCommand\t\tAttempts")
			for _, job := range jobs {
				fmt.Printf("%s\t%s\t%s\t\t%d/%d\n",
					job.ID, job.State, job.Command, job.Attempts, job.MaxRetries)
			}
			return nil
		},
	}
	cmd.Flags().String("state", "", "Filter jobs by state (pending, processing, failed, dead, completed)")
	return cmd
}

func StatusCmd(store *storage.Store, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a summary of job states",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := store.CountByState()
			if err != nil {
				return fmt.Errorf("failed to get stats: %w", err)
			}
			dead, err := store.CountDead()
			if err != nil {
				return fmt.Errorf("failed to count DLQ: %w", err)
			}

			fmt.Println("--- Job Queue Status ---")
			for _, state := range []string{
				model.StatePending, model.StateProcessing,
				model.StateFailed, model.StateCompleted,
			} {
				fmt.Printf("%s:\t%d\n", state, counts[state])
			}
			fmt.Printf("dead letter queue:\t%d\n", dead)

			fmt.Println("\n--- Config ---")
			fmt.Printf("max-retries:\t%d\n", cfg.MaxRetries)
			fmt.Printf("backoff-base:\t%d\n", cfg.BackoffBase)
			fmt.Printf("worker-count:\t%d\n", cfg.WorkerCount)

			fmt.Println("\n--- Worker Status ---")
			status, err := worker.ReadStatus(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("could not read worker status: %w", err)
			}
			if status == nil {
				fmt.Println("Workers:\t0 (stopped)")
				return nil
			}
			fmt.Printf("Workers:\t%d started at %s (pid %d)\n",
				status.Count, status.StartedAt.Format("2006-01-02 15:04:05"), status.Pid)
			return nil
		},
	}
	return cmd
}
