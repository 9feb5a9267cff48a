package control_loop

import (
	"math"

	"github.com/markusressel/dbw2go/internal/util"
)

// DefaultMinSpeed is the speed floor (m/s) used when dividing by velocities
const DefaultMinSpeed = 0.1

// YawController derives a steering wheel angle from a target yaw rate using a
// kinematic bicycle model. It keeps no state between calls.
type YawController struct {
	wheelBase     float64
	steerRatio    float64
	minSpeed      float64
	maxLatAccel   float64
	maxSteerAngle float64
}

func NewYawController(limits VehicleLimits, minSpeed float64) *YawController {
	return &YawController{
		wheelBase:     limits.WheelBase,
		steerRatio:    limits.SteerRatio,
		minSpeed:      minSpeed,
		maxLatAccel:   limits.MaxLatAccel,
		maxSteerAngle: math.Abs(limits.MaxSteerAngle),
	}
}

// Compute returns the steering wheel angle in rad, within [-maxSteerAngle, maxSteerAngle]
func (c *YawController) Compute(currentLinearVelocity, targetLinearVelocity, targetAngularVelocity float64) float64 {
	angularVelocity := targetAngularVelocity

	// lateral acceleration is zero at standstill, so there is nothing to limit
	lateralSpeed := math.Max(currentLinearVelocity, c.minSpeed)
	if lateralSpeed > 0 {
		maxYawRate := math.Abs(c.maxLatAccel / lateralSpeed)
		angularVelocity = util.Coerce(angularVelocity, -maxYawRate, maxYawRate)
	}

	speed := math.Max(targetLinearVelocity, c.minSpeed)
	if speed <= 0 {
		return 0
	}
	curvature := angularVelocity / speed

	steer := math.Atan(c.wheelBase*curvature) * c.steerRatio
	return util.Coerce(steer, -c.maxSteerAngle, c.maxSteerAngle)
}
