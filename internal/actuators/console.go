package actuators

import (
	"context"

	"github.com/markusressel/dbw2go/internal/ui"
)

// ConsolePublisher only logs the commands, which is useful for dry runs
type ConsolePublisher struct{}

func NewConsolePublisher() *ConsolePublisher {
	return &ConsolePublisher{}
}

func (p *ConsolePublisher) Publish(_ context.Context, commands Commands) error {
	ui.Debug("throttle: %.3f (%s), brake: %.1f (%s), steer: %.3f",
		commands.Throttle.Value, commands.Throttle.Mode,
		commands.Brake.Value, commands.Brake.Mode,
		commands.Steering.Value,
	)
	return nil
}
