package cmd

import (
	"fmt"
	"sort"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/discovery"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/logger"
	"github.com/spf13/cobra"
)

var discoverMonitor bool

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover and list candidate log directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		dirs := discovery.New(logger.Log).Discover(cfg.IncludeUserDirs)
		sort.Strings(dirs)

		fmt.Printf("found %d candidate log directories:\n", len(dirs))
		for _, dir := range dirs {
			fmt.Printf("  %s\n", dir)
		}

		if !discoverMonitor {
			return nil
		}

		return runMonitor(capDirs(dirs, cfg.MaxDirs))
	},
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverMonitor, "monitor", false, "continue into monitoring the discovered directories")
	rootCmd.AddCommand(discoverCmd)
}
