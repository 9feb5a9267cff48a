package configuration

import (
	"time"

	"github.com/markusressel/dbw2go/internal/control_loop"
)

type PidConfig struct {
	P float64 `json:"p"`
	I float64 `json:"i"`
	D float64 `json:"d"`
	// absolute limit of the integral, 0 disables the limit
	IntegralLimit float64 `json:"integralLimit"`
}

type ControllerConfig struct {
	// Control loop frequency
	Rate Hertz     `json:"rate"`
	Pid  PidConfig `json:"pid"`

	// Speed floor used by the steering controller
	MinSpeed float64 `json:"minSpeed"`

	// Time constants of the output filters, in seconds
	ThrottleFilterTau float64 `json:"throttleFilterTau"`
	BrakeFilterTau    float64 `json:"brakeFilterTau"`
	SteerFilterTau    float64 `json:"steerFilterTau"`

	// Brake torque (N*m) applied when a stop is requested
	StopHoldTorque float64 `json:"stopHoldTorque"`
	// Target velocities below this value are treated as a stop request
	StopVelocityThreshold float64 `json:"stopVelocityThreshold"`

	// Time after which a missing authority signal counts as disabled, 0 never expires
	AuthorityTimeout time.Duration `json:"authorityTimeout"`
	// Tick gaps larger than this multiple of the period fall back to the nominal period
	MaxTickGap int `json:"maxTickGap"`

	TrackingErrorWindowSize int `json:"trackingErrorWindowSize"`
}

func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		Rate: 50,
		Pid: PidConfig{
			P: 0.3,
			I: 0.1,
			D: 0.0,
		},
		MinSpeed:                0.1,
		ThrottleFilterTau:       0.5,
		BrakeFilterTau:          0.5,
		SteerFilterTau:          0.1,
		StopHoldTorque:          700,
		StopVelocityThreshold:   0.01,
		AuthorityTimeout:        0,
		MaxTickGap:              5,
		TrackingErrorWindowSize: 50,
	}
}

// Period is the nominal duration of a single control tick
func (c ControllerConfig) Period() time.Duration {
	return c.Rate.Period()
}

func (c PidConfig) Gains() control_loop.PidGains {
	return control_loop.PidGains{
		P:             c.P,
		I:             c.I,
		D:             c.D,
		IntegralLimit: c.IntegralLimit,
	}
}

func (c ControllerConfig) StopHold() control_loop.StopHold {
	return control_loop.StopHold{
		Threshold: c.StopVelocityThreshold,
		Torque:    c.StopHoldTorque,
	}
}
