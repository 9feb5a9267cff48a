package control_loop

import (
	"math"

	"github.com/markusressel/dbw2go/internal/util"
)

const (
	DefaultStopHoldTorque        = 700.0
	DefaultStopVelocityThreshold = 0.01
)

// StopHold configures the brake torque that keeps the vehicle stationary
type StopHold struct {
	// target velocities (m/s) below this value request a stop
	Threshold float64
	// brake torque (N*m) applied while stopped
	Torque float64
}

// CommandSynthesizer splits a signed acceleration command into
// a throttle fraction and a brake torque.
type CommandSynthesizer struct {
	limits   VehicleLimits
	stopHold StopHold

	throttleFilter *util.LowPassFilter
	brakeFilter    *util.LowPassFilter
}

func NewCommandSynthesizer(
	limits VehicleLimits,
	stopHold StopHold,
	throttleFilter *util.LowPassFilter,
	brakeFilter *util.LowPassFilter,
) *CommandSynthesizer {
	return &CommandSynthesizer{
		limits:         limits,
		stopHold:       stopHold,
		throttleFilter: throttleFilter,
		brakeFilter:    brakeFilter,
	}
}

// Synthesize returns the filtered throttle in [0, 1] and brake torque in N*m.
// At most one of them is non-zero.
func (s *CommandSynthesizer) Synthesize(accelCmd float64, targetLinearVelocity float64) (throttle float64, brake float64) {
	if s.Holding(targetLinearVelocity) {
		s.Reset()
		return 0, s.stopHold.Torque
	}

	if accelCmd >= 0 {
		s.brakeFilter.Reset()
		raw := 0.0
		if s.limits.AccelLimit > 0 {
			raw = util.Coerce(accelCmd/s.limits.AccelLimit, 0, 1)
		}
		return util.Coerce(s.throttleFilter.Filter(raw), 0, 1), 0
	}

	s.throttleFilter.Reset()
	decel := -accelCmd
	if decel < s.limits.BrakeDeadband {
		// coast
		s.brakeFilter.Reset()
		return 0, 0
	}

	decel = math.Min(decel, math.Abs(s.limits.DecelLimit))
	raw := s.limits.BrakeTorque(decel)
	return 0, math.Max(s.brakeFilter.Filter(raw), 0)
}

// Holding reports whether the stop override applies to the given target velocity
func (s *CommandSynthesizer) Holding(targetLinearVelocity float64) bool {
	return targetLinearVelocity < s.stopHold.Threshold
}

// Reset resets the throttle and brake filters
func (s *CommandSynthesizer) Reset() {
	s.throttleFilter.Reset()
	s.brakeFilter.Reset()
}
