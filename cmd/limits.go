package cmd

import (
	"fmt"

	"github.com/markusressel/dbw2go/cmd/global"
	"github.com/markusressel/dbw2go/internal/configuration"
	"github.com/markusressel/dbw2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Print the vehicle limits and derived values of the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.SetupUi()
		loadAndValidateConfig()

		vehicle := configuration.CurrentConfig.Vehicle
		controller := configuration.CurrentConfig.Controller
		tab := table.Table{
			Headers: []string{"Parameter", "Value"},
			Rows: [][]string{
				{"Vehicle mass", fmt.Sprintf("%.1f kg", vehicle.VehicleMass)},
				{"Fuel capacity", fmt.Sprintf("%.1f", vehicle.FuelCapacity)},
				{"Fuel load", fmt.Sprintf("%.0f %%", vehicle.FuelLoadFraction*100)},
				{"Effective mass", fmt.Sprintf("%.2f kg", vehicle.EffectiveMass())},
				{"Wheel radius", fmt.Sprintf("%.3f m", vehicle.WheelRadius)},
				{"Wheel base", fmt.Sprintf("%.3f m", vehicle.WheelBase)},
				{"Steer ratio", fmt.Sprintf("%.2f", vehicle.SteerRatio)},
				{"Max steer angle", fmt.Sprintf("%.2f rad", vehicle.MaxSteerAngle)},
				{"Max lateral accel", fmt.Sprintf("%.2f m/s²", vehicle.MaxLatAccel)},
				{"Accel limit", fmt.Sprintf("%.2f m/s²", vehicle.AccelLimit)},
				{"Decel limit", fmt.Sprintf("%.2f m/s²", vehicle.DecelLimit)},
				{"Brake deadband", fmt.Sprintf("%.2f m/s²", vehicle.BrakeDeadband)},
				{"Max brake torque", fmt.Sprintf("%.1f Nm", vehicle.MaxBrakeTorque())},
				{"Stop hold torque", fmt.Sprintf("%.1f Nm", controller.StopHoldTorque)},
				{"Control rate", controller.Rate.String()},
			},
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
	rootCmd.AddCommand(limitsCmd)
}
