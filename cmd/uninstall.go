package cmd

import (
	"fmt"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/autostart"
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the monitor's login service registration",
	RunE: func(cmd *cobra.Command, args []string) error {
		as := autostart.New()

		installed, err := as.IsInstalled()
		if err != nil {
			return err
		}
		if !installed {
			fmt.Println("not installed")
			return nil
		}

		if err := as.Uninstall(); err != nil {
			return err
		}

		fmt.Println("ubuntu-hooks monitor unregistered")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
