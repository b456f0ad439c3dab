package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"queuectl/internal/config"

	"github.com/spf13/cobra"
)

func ConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (max-retries, backoff-base, worker-count)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid value for %s: %s", key, args[1])
			}
			if value < 1 {
				return fmt.Errorf("%s must be at least 1", key)
			}

			switch key {
			case "max-retries":
				cfg.MaxRetries = value
			case "backoff-base":
				cfg.BackoffBase = value
			case "worker-count":
				cfg.WorkerCount = value
			default:
				return fmt.Errorf("unknown config key: %s", key)
			}

			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("%s = %d\n", key, value)
			return nil
		},
	}

	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(setCmd)
	return configCmd
}
