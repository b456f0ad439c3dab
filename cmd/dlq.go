package cmd

import (
	"bufio"
	"fmt"
	"log"
	"strings"

	"queuectl/internal/storage"

	"github.com/spf13/cobra"
)

func DlqCmd(store *storage.Store) *cobra.Command {
	dlqCmd := &cobra.Command{
		Use:   "dlq",
		Short: "Manage the Dead Letter Queue (DLQ)",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all jobs in the DLQ",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := store.LoadDead()
			if err != nil {
				return fmt.Errorf("failed to list DLQ jobs: %w", err)
			}

			if len(jobs) == 0 {
				fmt.Println("Dead Letter Queue is empty.")
				return nil
			}

			fmt.Println("--- Jobs in DLQ ---")
			fmt.Println("ID\t\tCommand\t\tAttempts")
			for _, job := range jobs {
				fmt.Printf("%s\t%s\t\t%d\n", job.ID, job.Command, job.Attempts)
			}
			return nil
		},
	}

	retryCmd := &cobra.Command{
		Use:   "retry [job-id]",
		Short: "Move a job from the DLQ back to the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]
			if err := store.Requeue(jobID); err != nil {
				return err
			}
			log.Printf("Job %s moved from DLQ to 'pending' state.", jobID)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all jobs from the DLQ",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				fmt.Fprint(cmd.OutOrStdout(), "Clear the entire DLQ? [y/N]: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			purged, err := store.PurgeDead()
			if err != nil {
				return fmt.Errorf("failed to clear DLQ: %w", err)
			}
			fmt.Printf("Removed %d job(s) from the DLQ.\n", purged)
			return nil
		},
	}
	clearCmd.Flags().Bool("force", false, "Skip the confirmation prompt")

	dlqCmd.AddCommand(listCmd)
	dlqCmd.AddCommand(retryCmd)
	dlqCmd.AddCommand(clearCmd)
	return dlqCmd
}
