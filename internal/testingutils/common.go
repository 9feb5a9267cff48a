package testingutils

import (
	"context"
	"sync"

	"github.com/markusressel/dbw2go/internal/actuators"
	"github.com/markusressel/dbw2go/internal/configuration"
)

// CreateConfig returns a valid configuration with all outer surfaces disabled
func CreateConfig() configuration.Configuration {
	return configuration.Configuration{
		Vehicle:    configuration.DefaultVehicleConfig(),
		Controller: configuration.DefaultControllerConfig(),
	}
}

// RecordingPublisher remembers every published command set
type RecordingPublisher struct {
	mu       sync.Mutex
	commands []actuators.Commands

	// returned by every Publish call
	Err error
}

func (p *RecordingPublisher) Publish(_ context.Context, commands actuators.Commands) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.commands = append(p.commands, commands)
	return p.Err
}

func (p *RecordingPublisher) Commands() []actuators.Commands {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]actuators.Commands, len(p.commands))
	copy(result, p.commands)
	return result
}

func (p *RecordingPublisher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.commands)
}
