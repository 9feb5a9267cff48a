package session

import (
	"github.com/markusressel/dbw2go/cmd/global"
	"github.com/markusressel/dbw2go/internal/configuration"
	"github.com/markusressel/dbw2go/internal/persistence"
	"github.com/markusressel/dbw2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "session",
	Short:            "Commands for the recorded controller sessions",
	Long:             ``,
	TraverseChildren: true,
}

func openPersistence() persistence.Persistence {
	global.SetupUi()

	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()

	return persistence.NewPersistence(configuration.CurrentConfig.DbPath)
}
