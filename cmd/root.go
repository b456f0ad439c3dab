package cmd

import (
	"log"

	"queuectl/internal/config"
	"queuectl/internal/storage"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "queuectl",
	Short: "A cli-based job queue system",
}

func Execute(store *storage.Store, cfg *config.Config) {
	rootCmd.AddCommand(EnqueueCmd(store, cfg))
	rootCmd.AddCommand(ListCmd(store))
	rootCmd.AddCommand(StatusCmd(store, cfg))
	rootCmd.AddCommand(WorkerCmd(store, cfg))
	rootCmd.AddCommand(DlqCmd(store))
	rootCmd.AddCommand(ConfigCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
