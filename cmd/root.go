package cmd

import (
	"fmt"
	"os"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/config"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/db"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	debug   bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ubuntu-hooks",
	Short: "Discover and monitor log directories for file activity",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		logger.Init(debug)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		// The history command reads the store directly; the monitor
		// opens it on demand when --store is given.
		if cmd.Name() == "history" {
			if err := db.Init(cfg.DBPath); err != nil {
				return err
			}
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func statusURL(path string) string {
	return fmt.Sprintf("http://localhost:%d%s", cfg.StatusPort, path)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print full event records instead of one-line summaries")
}
