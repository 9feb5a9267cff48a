package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/markusressel/dbw2go/cmd/global"
	"github.com/markusressel/dbw2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := openPersistence().LoadSessions()
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			ui.Printfln("No sessions recorded yet...")
			return nil
		}

		var rows [][]string
		for _, session := range sessions {
			rows = append(rows, []string{
				session.Start.Local().Format(time.DateTime),
				session.End.Sub(session.Start).Round(time.Second).String(),
				strconv.FormatInt(session.Ticks, 10),
				strconv.FormatInt(session.EnabledTicks, 10),
				strconv.FormatInt(session.AuthorityTransitions, 10),
				strconv.FormatInt(session.PublishErrors, 10),
				fmt.Sprintf("%.3f", session.PeakThrottle),
				fmt.Sprintf("%.1f", session.PeakBrake),
				fmt.Sprintf("%.3f", session.PeakSteer),
			})
		}

		tab := table.Table{
			Headers: []string{"Start", "Duration", "Ticks", "Enabled", "Transitions", "Errors", "Throttle", "Brake", "Steer"},
			Rows:    rows,
		}
		tableString, err := global.RenderTable(tab)
		if err != nil {
			return err
		}
		ui.Printfln(tableString)
		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
