package global

import (
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestSetupUiEnablesDebugWhenVerbose(t *testing.T) {
	// GIVEN
	defer func(verbose bool, debug bool) {
		Verbose = verbose
		pterm.PrintDebugMessages = debug
	}(Verbose, pterm.PrintDebugMessages)
	Verbose = true

	// WHEN
	SetupUi()

	// THEN
	assert.True(t, pterm.PrintDebugMessages)

	// WHEN
	Verbose = false
	SetupUi()

	// THEN
	assert.False(t, pterm.PrintDebugMessages)
}
