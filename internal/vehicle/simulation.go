package vehicle

import (
	"math"

	"github.com/markusressel/dbw2go/internal/control_loop"
)

// RollingResistance is the deceleration (m/s^2) of a coasting vehicle
const RollingResistance = 0.05

// Simulation is a first-order longitudinal model of the vehicle with a
// kinematic bicycle model for the yaw rate.
type Simulation struct {
	limits control_loop.VehicleLimits

	linearVelocity  float64
	angularVelocity float64
}

func NewSimulation(limits control_loop.VehicleLimits, initialVelocity float64) *Simulation {
	return &Simulation{
		limits:         limits,
		linearVelocity: math.Max(initialVelocity, 0),
	}
}

// Step applies the given commands for dt seconds and returns the resulting state
func (s *Simulation) Step(throttle, brake, steer, dt float64) VehicleState {
	if dt <= 0 {
		return s.State()
	}

	accel := throttle * s.limits.AccelLimit
	if torquePerAccel := s.limits.EffectiveMass() * s.limits.WheelRadius; torquePerAccel > 0 {
		accel -= brake / torquePerAccel
	}
	if s.linearVelocity > 0 {
		accel -= RollingResistance
	}

	s.linearVelocity = math.Max(s.linearVelocity+accel*dt, 0)

	s.angularVelocity = 0
	if s.limits.SteerRatio != 0 && s.limits.WheelBase != 0 {
		wheelAngle := steer / s.limits.SteerRatio
		s.angularVelocity = s.linearVelocity * math.Tan(wheelAngle) / s.limits.WheelBase
	}

	return s.State()
}

func (s *Simulation) State() VehicleState {
	return VehicleState{
		CurrentLinearVelocity:  s.linearVelocity,
		CurrentAngularVelocity: s.angularVelocity,
	}
}
