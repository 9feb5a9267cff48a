package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Configuration {
	return Configuration{
		Vehicle:    DefaultVehicleConfig(),
		Controller: DefaultControllerConfig(),
	}
}

func TestValidateDefaultConfig(t *testing.T) {
	// GIVEN
	config := validConfig()

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateVehicleMassMustBePositive(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Vehicle.VehicleMass = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "vehicle: vehicleMass must be positive, got 0")
}

func TestValidateDecelLimitMustBeNegative(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Vehicle.DecelLimit = 2

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "vehicle: decelLimit must be negative, got 2")
}

func TestValidateAccelLimitMustBePositive(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Vehicle.AccelLimit = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "vehicle: accelLimit must be positive, got 0")
}

func TestValidateFuelLoadFractionRange(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Vehicle.FuelLoadFraction = 1.5

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "vehicle: fuelLoadFraction must be in [0, 1], got 1.5")
}

func TestValidateControllerRate(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Controller.Rate = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "controller: rate must be in (0, 1000Hz], got 0Hz")
}

func TestValidateControllerRateTooHigh(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Controller.Rate = 2000

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestValidateNegativeFilterTau(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Controller.SteerFilterTau = -0.1

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "controller: filter time constants must not be negative")
}

func TestValidateMaxTickGap(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Controller.MaxTickGap = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "controller: maxTickGap must be at least 1, got 0")
}

func TestValidateCanInterfaceRequired(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Can = CanConfig{Enabled: true, Interface: " "}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "can: interface is required when can is enabled")
}

func TestValidateCanInterfaceIgnoredWhenDisabled(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Can = CanConfig{Enabled: false}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateBridgePort(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Bridge = BridgeConfig{Enabled: true, Host: "localhost", Port: 70000, Path: "/ws"}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "bridge: invalid port 70000")
}

func TestValidateBridgePath(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Bridge = BridgeConfig{Enabled: true, Host: "localhost", Port: 4567, Path: "ws"}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "bridge: path must start with '/', got 'ws'")
}

func TestValidateApiPort(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Api = ApiConfig{Enabled: true, Host: "localhost", Port: 0}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "api: invalid port 0")
}

func TestValidateInfluxRequiresBucket(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Telemetry.Influx = InfluxConfig{Enabled: true, Url: "http://localhost:8086", Org: "dbw2go"}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "telemetry.influx: url, org and bucket are required when influx is enabled")
}
