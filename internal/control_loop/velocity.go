package control_loop

import (
	"github.com/markusressel/dbw2go/internal/ui"
	"github.com/markusressel/dbw2go/internal/util"
)

type PidGains struct {
	P float64
	I float64
	D float64
	// absolute limit of the integral, 0 means unlimited
	IntegralLimit float64
}

var (
	DefaultPidGains = PidGains{
		P: 0.3,
		I: 0.1,
		D: 0.0,
	}
)

// VelocityControlLoop is a PidLoop based longitudinal controller. Its output is
// an acceleration command in m/s^2 within [decelLimit, accelLimit].
type VelocityControlLoop struct {
	pidLoop *util.PidLoop
}

// NewVelocityControlLoop creates a VelocityControlLoop bound to the acceleration limits of the vehicle.
func NewVelocityControlLoop(gains PidGains, limits VehicleLimits) *VelocityControlLoop {
	pidLoop := util.NewPidLoop(gains.P, gains.I, gains.D, limits.DecelLimit, limits.AccelLimit).
		WithIntegralLimit(gains.IntegralLimit)
	return &VelocityControlLoop{
		pidLoop: pidLoop,
	}
}

func (l *VelocityControlLoop) Compute(targetVelocity float64, currentVelocity float64, dt float64) float64 {
	accelCmd := l.pidLoop.Loop(targetVelocity, currentVelocity, dt)

	ui.Debug("VelocityControlLoop: target: %.4f, measured: %.4f, dt: %.4f, accel: %.4f, integral: %.4f",
		targetVelocity, currentVelocity, dt, accelCmd, l.pidLoop.Integral())

	return accelCmd
}

func (l *VelocityControlLoop) Reset() {
	l.pidLoop.Reset()
}

func (l *VelocityControlLoop) Integral() float64 {
	return l.pidLoop.Integral()
}

func (l *VelocityControlLoop) LastError() float64 {
	return l.pidLoop.LastError()
}
