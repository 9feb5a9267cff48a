package control_loop

// GasDensity is the mass of one gallon of fuel in kg
const GasDensity = 2.858

// LongitudinalLoop turns a velocity error into an acceleration command
type LongitudinalLoop interface {
	// Compute advances the loop by dt seconds
	Compute(targetVelocity float64, currentVelocity float64, dt float64) float64
	// Reset clears all accumulated state
	Reset()
	// Integral returns the accumulated integral error
	Integral() float64
}

// VehicleLimits are the physical constants of the controlled vehicle
type VehicleLimits struct {
	VehicleMass      float64
	FuelCapacity     float64
	FuelLoadFraction float64
	WheelRadius      float64
	WheelBase        float64
	SteerRatio       float64
	DecelLimit       float64
	AccelLimit       float64
	MaxLatAccel      float64
	MaxSteerAngle    float64
	BrakeDeadband    float64
}

// EffectiveMass is the vehicle mass including the nominal fuel load
func (l VehicleLimits) EffectiveMass() float64 {
	return l.VehicleMass + l.FuelCapacity*GasDensity*l.FuelLoadFraction
}

// BrakeTorque converts a deceleration magnitude (m/s^2) into wheel torque (N*m)
func (l VehicleLimits) BrakeTorque(decel float64) float64 {
	return decel * l.EffectiveMass() * l.WheelRadius
}

// MaxBrakeTorque is the torque needed to decelerate at DecelLimit
func (l VehicleLimits) MaxBrakeTorque() float64 {
	decel := l.DecelLimit
	if decel < 0 {
		decel = -decel
	}
	return l.BrakeTorque(decel)
}
