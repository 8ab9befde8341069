package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/monitor"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View the running monitor's status",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(statusURL("/status"))
		if err != nil {
			return fmt.Errorf("monitor not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var snap monitor.Snapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			return fmt.Errorf("failed to decode status response: %w", err)
		}

		fmt.Printf("state:   %s\n", snap.State)
		fmt.Printf("events:  %d\n", snap.Events)
		fmt.Printf("uptime:  %s\n", time.Since(snap.StartedAt).Round(time.Second))
		fmt.Printf("watched: %d directories\n", len(snap.Directories))

		sort.Strings(snap.Directories)
		for _, dir := range snap.Directories {
			fmt.Printf("  %s\n", dir)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
