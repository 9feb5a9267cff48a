package configuration

import (
	"errors"
	"fmt"
	"strings"
)

const maxControllerRate Hertz = 1000

func Validate(configPath string) error {
	err := validateConfig(&CurrentConfig)
	if err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}
	return nil
}

func validateConfig(config *Configuration) error {
	err := validateVehicle(&config.Vehicle)
	if err != nil {
		return err
	}
	err = validateController(&config.Controller)
	if err != nil {
		return err
	}
	return validateEndpoints(config)
}

func validateVehicle(config *VehicleConfig) error {
	positive := []struct {
		name  string
		value float64
	}{
		{"vehicleMass", config.VehicleMass},
		{"wheelRadius", config.WheelRadius},
		{"wheelBase", config.WheelBase},
		{"steerRatio", config.SteerRatio},
		{"maxLatAccel", config.MaxLatAccel},
		{"maxSteerAngle", config.MaxSteerAngle},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("vehicle: %s must be positive, got %v", p.name, p.value)
		}
	}

	if config.FuelCapacity < 0 {
		return fmt.Errorf("vehicle: fuelCapacity must not be negative, got %v", config.FuelCapacity)
	}
	if config.FuelLoadFraction < 0 || config.FuelLoadFraction > 1 {
		return fmt.Errorf("vehicle: fuelLoadFraction must be in [0, 1], got %v", config.FuelLoadFraction)
	}
	if config.BrakeDeadband < 0 {
		return fmt.Errorf("vehicle: brakeDeadband must not be negative, got %v", config.BrakeDeadband)
	}
	if config.DecelLimit >= 0 {
		return fmt.Errorf("vehicle: decelLimit must be negative, got %v", config.DecelLimit)
	}
	if config.AccelLimit <= 0 {
		return fmt.Errorf("vehicle: accelLimit must be positive, got %v", config.AccelLimit)
	}
	return nil
}

func validateController(config *ControllerConfig) error {
	if config.Rate <= 0 || config.Rate > maxControllerRate {
		return fmt.Errorf("controller: rate must be in (0, %s], got %s", maxControllerRate, config.Rate)
	}
	if config.MinSpeed < 0 {
		return fmt.Errorf("controller: minSpeed must not be negative, got %v", config.MinSpeed)
	}
	if config.ThrottleFilterTau < 0 || config.BrakeFilterTau < 0 || config.SteerFilterTau < 0 {
		return errors.New("controller: filter time constants must not be negative")
	}
	if config.StopHoldTorque < 0 {
		return fmt.Errorf("controller: stopHoldTorque must not be negative, got %v", config.StopHoldTorque)
	}
	if config.StopVelocityThreshold < 0 {
		return fmt.Errorf("controller: stopVelocityThreshold must not be negative, got %v", config.StopVelocityThreshold)
	}
	if config.AuthorityTimeout < 0 {
		return fmt.Errorf("controller: authorityTimeout must not be negative, got %s", config.AuthorityTimeout)
	}
	if config.MaxTickGap < 1 {
		return fmt.Errorf("controller: maxTickGap must be at least 1, got %d", config.MaxTickGap)
	}
	if config.Pid.IntegralLimit < 0 {
		return fmt.Errorf("controller: pid.integralLimit must not be negative, got %v", config.Pid.IntegralLimit)
	}
	return nil
}

func validateEndpoints(config *Configuration) error {
	if config.Can.Enabled && strings.TrimSpace(config.Can.Interface) == "" {
		return errors.New("can: interface is required when can is enabled")
	}
	if config.Bridge.Enabled {
		if err := validatePort("bridge", config.Bridge.Port); err != nil {
			return err
		}
		if !strings.HasPrefix(config.Bridge.Path, "/") {
			return fmt.Errorf("bridge: path must start with '/', got '%s'", config.Bridge.Path)
		}
	}
	if config.Api.Enabled {
		if err := validatePort("api", config.Api.Port); err != nil {
			return err
		}
	}
	if config.Statistics.Enabled {
		if err := validatePort("statistics", config.Statistics.Port); err != nil {
			return err
		}
	}
	influx := config.Telemetry.Influx
	if influx.Enabled {
		if influx.Url == "" || influx.Org == "" || influx.Bucket == "" {
			return errors.New("telemetry.influx: url, org and bucket are required when influx is enabled")
		}
	}
	return nil
}

func validatePort(section string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s: invalid port %d", section, port)
	}
	return nil
}
