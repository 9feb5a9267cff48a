package actuators

import (
	"context"
	"errors"
	"time"
)

// PedalMode selects how the value of a pedal command is interpreted
type PedalMode uint8

const (
	PedalModeNone PedalMode = iota
	// raw pedal position
	PedalModePedal
	// fraction of full travel in [0, 1]
	PedalModePercent
	// wheel torque in N*m
	PedalModeTorque
)

func (m PedalMode) String() string {
	switch m {
	case PedalModePedal:
		return "pedal"
	case PedalModePercent:
		return "percent"
	case PedalModeTorque:
		return "torque"
	default:
		return "none"
	}
}

type ThrottleCommand struct {
	Enabled bool      `json:"enabled"`
	Mode    PedalMode `json:"mode"`
	Value   float64   `json:"value"`
}

type BrakeCommand struct {
	Enabled bool      `json:"enabled"`
	Mode    PedalMode `json:"mode"`
	Value   float64   `json:"value"`
}

type SteeringCommand struct {
	Enabled bool `json:"enabled"`
	// steering wheel angle in rad
	Value float64 `json:"value"`
}

// Commands is the set of actuator commands of a single control tick
type Commands struct {
	Throttle ThrottleCommand `json:"throttle"`
	Brake    BrakeCommand    `json:"brake"`
	Steering SteeringCommand `json:"steering"`

	Timestamp time.Time `json:"timestamp"`
}

// NewCommands wraps the controller outputs into enabled actuator commands
func NewCommands(throttle, brake, steer float64, timestamp time.Time) Commands {
	return Commands{
		Throttle: ThrottleCommand{
			Enabled: true,
			Mode:    PedalModePercent,
			Value:   throttle,
		},
		Brake: BrakeCommand{
			Enabled: true,
			Mode:    PedalModeTorque,
			Value:   brake,
		},
		Steering: SteeringCommand{
			Enabled: true,
			Value:   steer,
		},
		Timestamp: timestamp,
	}
}

// Publisher delivers actuator commands to the vehicle
type Publisher interface {
	Publish(ctx context.Context, commands Commands) error
}

// PublisherFunc adapts a function to the Publisher interface
type PublisherFunc func(ctx context.Context, commands Commands) error

func (f PublisherFunc) Publish(ctx context.Context, commands Commands) error {
	return f(ctx, commands)
}

// MultiPublisher publishes to all of its publishers, even if some of them fail
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, commands Commands) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, commands); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
