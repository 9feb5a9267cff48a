package global

import (
	"github.com/markusressel/dbw2go/internal/ui"
	"github.com/pterm/pterm"
)

// SetupUi applies the persistent output flags
func SetupUi() {
	ui.SetDebugEnabled(Verbose)

	if NoColor {
		pterm.DisableColor()
	}
	if NoStyle {
		pterm.DisableStyling()
	}
}
