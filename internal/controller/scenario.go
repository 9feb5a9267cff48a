package controller

import (
	"context"
	"errors"
	"time"

	"github.com/markusressel/dbw2go/internal/actuators"
	"github.com/markusressel/dbw2go/internal/configuration"
	"github.com/markusressel/dbw2go/internal/vehicle"
)

// Scenario is an offline run of the controller against the simulated vehicle
type Scenario struct {
	TargetLinearVelocity  float64
	TargetAngularVelocity float64
	InitialVelocity       float64
	Duration              time.Duration
	// authority is dropped at DisableAt and regained at EnableAt, zero means never
	DisableAt time.Duration
	EnableAt  time.Duration
}

// ScenarioPoint is the vehicle and controller state after a single simulated tick
type ScenarioPoint struct {
	Time      time.Duration
	Authority Authority
	Velocity  float64
	Output    Output
}

// RunScenario steps a fresh controller with the nominal period until the scenario
// duration has elapsed. Commands are fed back into the simulation instead of being published.
func RunScenario(ctx context.Context, vehicleConfig configuration.VehicleConfig, controllerConfig configuration.ControllerConfig, scenario Scenario) ([]ScenarioPoint, error) {
	if scenario.Duration <= 0 {
		return nil, errors.New("scenario duration must be positive")
	}

	state := vehicle.NewState()
	discard := actuators.PublisherFunc(func(context.Context, actuators.Commands) error { return nil })
	c := NewTwistController(vehicleConfig, controllerConfig, state, discard)
	sim := vehicle.NewSimulation(vehicleConfig.Limits(), scenario.InitialVelocity)

	period := c.Period()
	dt := period.Seconds()
	state.OnVelocityRequest(vehicle.VelocityRequest{
		TargetLinearVelocity:  scenario.TargetLinearVelocity,
		TargetAngularVelocity: scenario.TargetAngularVelocity,
	})

	points := make([]ScenarioPoint, 0, int(scenario.Duration/period))
	for elapsed := time.Duration(0); elapsed < scenario.Duration; elapsed += period {
		if err := ctx.Err(); err != nil {
			return points, err
		}

		state.OnAuthorityChange(scenarioAuthority(scenario, elapsed) == AuthorityEnabled)
		state.OnVehicleState(sim.State())

		request := NewControlRequest(state.Snapshot(), scenarioAuthority(scenario, elapsed), dt)
		output := c.Step(ctx, request)
		measured := sim.Step(output.Throttle, output.Brake, output.Steer, dt)

		points = append(points, ScenarioPoint{
			Time:      elapsed + period,
			Authority: request.Authority,
			Velocity:  measured.CurrentLinearVelocity,
			Output:    output,
		})
	}
	return points, nil
}

func scenarioAuthority(scenario Scenario, elapsed time.Duration) Authority {
	disabled := scenario.DisableAt > 0 && elapsed >= scenario.DisableAt
	if disabled && scenario.EnableAt > scenario.DisableAt && elapsed >= scenario.EnableAt {
		disabled = false
	}
	return Authority(!disabled)
}
