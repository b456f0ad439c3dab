package cmd

import (
	"encoding/json"
	"fmt"

	"queuectl/internal/config"
	"queuectl/internal/model"
	"queuectl/internal/storage"

	"github.com/spf13/cobra"
)

func EnqueueCmd(store *storage.Store, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enqueue <job(json)>",
		Short: "Add a job to the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var job model.Job
			if err := json.Unmarshal([]byte(args[0]), &job); err != nil {
				return fmt.Errorf("invalid job JSON: %w", err)
			}
			if err := job.Prepare(cfg.MaxRetries); err != nil {
				return err
			}
			if err := store.Enqueue(&job); err != nil {
				return fmt.Errorf("failed to enqueue job: %w", err)
			}
			fmt.Printf("Job %s enqueued.\n", job.ID)
			fmt.Printf("  Command: %s\n", job.Command)
			fmt.Printf("  State:   %s\n", job.State)
			return nil
		},
	}
	return cmd
}
