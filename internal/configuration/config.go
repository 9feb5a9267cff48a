package configuration

import (
	_ "embed"
	"os"
	"strings"
	"time"

	"github.com/markusressel/dbw2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	Vehicle    VehicleConfig    `json:"vehicle"`
	Controller ControllerConfig `json:"controller"`

	Can    CanConfig    `json:"can"`
	Bridge BridgeConfig `json:"bridge"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	Telemetry  TelemetryConfig  `json:"telemetry"`
}

// DefaultConfigYaml is the documented default configuration, written by "config init"
//
//go:embed dbw2go.yaml
var DefaultConfigYaml []byte

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("dbw2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/dbw2go/")
	}

	viper.SetEnvPrefix("DBW2GO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbPath", "/etc/dbw2go/dbw2go.db")

	viper.SetDefault("vehicle.vehicleMass", 1736.35)
	viper.SetDefault("vehicle.fuelCapacity", 13.5)
	viper.SetDefault("vehicle.fuelLoadFraction", 1.0)
	viper.SetDefault("vehicle.brakeDeadband", 0.1)
	viper.SetDefault("vehicle.decelLimit", -5.0)
	viper.SetDefault("vehicle.accelLimit", 1.0)
	viper.SetDefault("vehicle.wheelRadius", 0.2413)
	viper.SetDefault("vehicle.wheelBase", 2.8498)
	viper.SetDefault("vehicle.steerRatio", 14.8)
	viper.SetDefault("vehicle.maxLatAccel", 3.0)
	viper.SetDefault("vehicle.maxSteerAngle", 8.0)

	viper.SetDefault("controller.rate", 50.0)
	viper.SetDefault("controller.pid.p", 0.3)
	viper.SetDefault("controller.pid.i", 0.1)
	viper.SetDefault("controller.pid.d", 0.0)
	viper.SetDefault("controller.pid.integralLimit", 0.0)
	viper.SetDefault("controller.minSpeed", 0.1)
	viper.SetDefault("controller.throttleFilterTau", 0.5)
	viper.SetDefault("controller.brakeFilterTau", 0.5)
	viper.SetDefault("controller.steerFilterTau", 0.1)
	viper.SetDefault("controller.stopHoldTorque", 700.0)
	viper.SetDefault("controller.stopVelocityThreshold", 0.01)
	viper.SetDefault("controller.authorityTimeout", 0*time.Second)
	viper.SetDefault("controller.maxTickGap", 5)
	viper.SetDefault("controller.trackingErrorWindowSize", 50)

	viper.SetDefault("can.enabled", false)
	viper.SetDefault("can.interface", "can0")

	viper.SetDefault("bridge.enabled", false)
	viper.SetDefault("bridge.host", "0.0.0.0")
	viper.SetDefault("bridge.port", 4567)
	viper.SetDefault("bridge.path", "/ws")

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("telemetry.influx.enabled", false)
	viper.SetDefault("telemetry.influx.url", "http://localhost:8086")
	viper.SetDefault("telemetry.influx.token", "")
	viper.SetDefault("telemetry.influx.org", "dbw2go")
	viper.SetDefault("telemetry.influx.bucket", "actuation")
	viper.SetDefault("telemetry.influx.batchSize", 500)
	viper.SetDefault("telemetry.influx.flushInterval", 1*time.Second)
}

// DetectConfigFile reads the config file and returns its path
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		HertzHookFunc(),
	)
}
