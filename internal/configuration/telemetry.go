package configuration

import "time"

type TelemetryConfig struct {
	Influx InfluxConfig `json:"influx"`
}

type InfluxConfig struct {
	Enabled       bool          `json:"enabled"`
	Url           string        `json:"url"`
	Token         string        `json:"token"`
	Org           string        `json:"org"`
	Bucket        string        `json:"bucket"`
	BatchSize     uint          `json:"batchSize"`
	FlushInterval time.Duration `json:"flushInterval"`
}
