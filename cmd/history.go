package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/repository"
	"github.com/spf13/cobra"
)

var historyN int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View persisted log events",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := repository.NewEventRepository()

		records, err := repo.GetRecent(historyN)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("no events recorded yet")
			return nil
		}

		for _, rec := range records {
			line := fmt.Sprintf("[%s] %-24s %s",
				rec.OccurredAt.Format("2006-01-02 15:04:05"),
				rec.EventType,
				filepath.Join(rec.Directory, rec.Filename))
			if rec.Size != nil {
				line += fmt.Sprintf(" (%d bytes)", *rec.Size)
			}
			fmt.Println(line)
		}

		if stats, err := repo.GetStats(); err == nil {
			fmt.Printf("\n%d events across %d directories\n", stats.Total, stats.Directories)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyN, "n", 20, "number of events to show")
	rootCmd.AddCommand(historyCmd)
}
