package config

import (
	"fmt"
	"os"

	"github.com/markusressel/dbw2go/internal/configuration"
	"github.com/markusressel/dbw2go/internal/ui"
	"github.com/markusressel/dbw2go/internal/util"
	"github.com/spf13/cobra"
)

var (
	initPath  string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes the default configuration to a file",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(initPath); err == nil && !initForce {
			return fmt.Errorf("%s already exists, use --force to overwrite it", initPath)
		}

		if err := util.WriteFileAtomic(initPath, configuration.DefaultConfigYaml); err != nil {
			return err
		}

		ui.Success("Wrote default configuration to %s", initPath)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initPath, "path", "p", "./dbw2go.yaml", "Target file")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
	Command.AddCommand(initCmd)
}
