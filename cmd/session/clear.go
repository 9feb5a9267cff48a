package session

import (
	"github.com/markusressel/dbw2go/internal/ui"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openPersistence().DeleteSessions(); err != nil {
			return err
		}
		ui.Success("Deleted all recorded sessions")
		return nil
	},
}

func init() {
	Command.AddCommand(clearCmd)
}
