package configuration

import "github.com/markusressel/dbw2go/internal/control_loop"

// VehicleConfig holds the physical limits of the vehicle.
// These values are supplied once at startup and never change afterwards.
type VehicleConfig struct {
	VehicleMass  float64 `json:"vehicleMass"`
	FuelCapacity float64 `json:"fuelCapacity"`
	// Fraction of a full tank that is assumed to be on board when
	// converting a deceleration into brake torque. This is a calibration
	// constant, not a live fuel level.
	FuelLoadFraction float64 `json:"fuelLoadFraction"`
	BrakeDeadband    float64 `json:"brakeDeadband"`
	DecelLimit       float64 `json:"decelLimit"`
	AccelLimit       float64 `json:"accelLimit"`
	WheelRadius      float64 `json:"wheelRadius"`
	WheelBase        float64 `json:"wheelBase"`
	SteerRatio       float64 `json:"steerRatio"`
	MaxLatAccel      float64 `json:"maxLatAccel"`
	MaxSteerAngle    float64 `json:"maxSteerAngle"`
}

// DefaultVehicleConfig returns the limits of the reference vehicle
func DefaultVehicleConfig() VehicleConfig {
	return VehicleConfig{
		VehicleMass:      1736.35,
		FuelCapacity:     13.5,
		FuelLoadFraction: 1.0,
		BrakeDeadband:    0.1,
		DecelLimit:       -5,
		AccelLimit:       1.0,
		WheelRadius:      0.2413,
		WheelBase:        2.8498,
		SteerRatio:       14.8,
		MaxLatAccel:      3.0,
		MaxSteerAngle:    8.0,
	}
}

// Limits converts the configuration into the limits used by the control loops
func (c VehicleConfig) Limits() control_loop.VehicleLimits {
	return control_loop.VehicleLimits{
		VehicleMass:      c.VehicleMass,
		FuelCapacity:     c.FuelCapacity,
		FuelLoadFraction: c.FuelLoadFraction,
		WheelRadius:      c.WheelRadius,
		WheelBase:        c.WheelBase,
		SteerRatio:       c.SteerRatio,
		DecelLimit:       c.DecelLimit,
		AccelLimit:       c.AccelLimit,
		MaxLatAccel:      c.MaxLatAccel,
		MaxSteerAngle:    c.MaxSteerAngle,
		BrakeDeadband:    c.BrakeDeadband,
	}
}

func (c VehicleConfig) EffectiveMass() float64 {
	return c.Limits().EffectiveMass()
}

func (c VehicleConfig) MaxBrakeTorque() float64 {
	return c.Limits().MaxBrakeTorque()
}
