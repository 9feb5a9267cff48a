package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/dbw2go/cmd/global"
	"github.com/markusressel/dbw2go/internal/configuration"
	"github.com/markusressel/dbw2go/internal/controller"
	"github.com/markusressel/dbw2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var scenario controller.Scenario

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the controller against a simulated vehicle and plot the result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.SetupUi()
		loadAndValidateConfig()

		points, err := controller.RunScenario(
			context.Background(),
			configuration.CurrentConfig.Vehicle,
			configuration.CurrentConfig.Controller,
			scenario,
		)
		if err != nil {
			return err
		}

		velocities := make([]float64, 0, len(points))
		throttles := make([]float64, 0, len(points))
		brakes := make([]float64, 0, len(points))
		var peakThrottle, peakBrake float64
		enabledTicks := 0
		for _, point := range points {
			velocities = append(velocities, point.Velocity)
			throttles = append(throttles, point.Output.Throttle)
			brakes = append(brakes, point.Output.Brake)
			peakThrottle = max(peakThrottle, point.Output.Throttle)
			peakBrake = max(peakBrake, point.Output.Brake)
			if point.Authority == controller.AuthorityEnabled {
				enabledTicks++
			}
		}
		last := points[len(points)-1]

		tab := table.Table{
			Headers: []string{"", ""},
			Rows: [][]string{
				{"Target velocity", fmt.Sprintf("%.2f m/s", scenario.TargetLinearVelocity)},
				{"Final velocity", fmt.Sprintf("%.2f m/s", last.Velocity)},
				{"Ticks", fmt.Sprintf("%d (%d enabled)", len(points), enabledTicks)},
				{"Peak throttle", fmt.Sprintf("%.3f", peakThrottle)},
				{"Peak brake", fmt.Sprintf("%.1f Nm", peakBrake)},
			},
		}
		tableString, err := global.RenderTable(tab)
		if err != nil {
			return err
		}
		ui.Printfln(tableString)

		ui.Printfln(asciigraph.Plot(velocities, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption("velocity [m/s] / time")))
		ui.Printfln("")
		ui.Printfln(asciigraph.Plot(throttles, asciigraph.Height(10), asciigraph.Width(100), asciigraph.Caption("throttle / time")))
		ui.Printfln("")
		ui.Printfln(asciigraph.Plot(brakes, asciigraph.Height(10), asciigraph.Width(100), asciigraph.Caption("brake torque [Nm] / time")))
		return nil
	},
}

func init() {
	simulateCmd.Flags().Float64VarP(&scenario.TargetLinearVelocity, "target", "t", 5, "Target linear velocity in m/s")
	simulateCmd.Flags().Float64VarP(&scenario.TargetAngularVelocity, "angular", "a", 0, "Target angular velocity in rad/s")
	simulateCmd.Flags().Float64VarP(&scenario.InitialVelocity, "initial", "i", 0, "Initial velocity of the vehicle in m/s")
	simulateCmd.Flags().DurationVarP(&scenario.Duration, "duration", "d", 30*time.Second, "Simulated time")
	simulateCmd.Flags().DurationVarP(&scenario.DisableAt, "disable-at", "", 0, "Drop control authority at this time")
	simulateCmd.Flags().DurationVarP(&scenario.EnableAt, "enable-at", "", 0, "Regain control authority at this time")
	rootCmd.AddCommand(simulateCmd)
}
