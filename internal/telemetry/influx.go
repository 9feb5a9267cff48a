package telemetry

import (
	"context"
	"sync"
	"sync/atomic"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/markusressel/dbw2go/internal/configuration"
	"github.com/markusressel/dbw2go/internal/controller"
	"github.com/markusressel/dbw2go/internal/ui"
)

const (
	Measurement  = "actuation"
	TagAuthority = "authority"

	// samples queued between the control loop and the writer
	SampleBufferSize = 256
)

// InfluxSink writes one point per control tick to InfluxDB.
// Record only queues the sample; Run hands it to the write API. When the
// queue is full or the sink is closed, samples are dropped.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI

	samples   chan controller.Sample
	dropped   atomic.Int64
	closed    atomic.Bool
	closeOnce sync.Once
}

func NewInfluxSink(config configuration.InfluxConfig) *InfluxSink {
	options := influxdb2.DefaultOptions()
	if config.BatchSize > 0 {
		options.SetBatchSize(config.BatchSize)
	}
	if config.FlushInterval > 0 {
		options.SetFlushInterval(uint(config.FlushInterval.Milliseconds()))
	}

	client := influxdb2.NewClientWithOptions(config.Url, config.Token, options)
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPI(config.Org, config.Bucket),
		samples:  make(chan controller.Sample, SampleBufferSize),
	}
}

// Record queues the sample without blocking
func (s *InfluxSink) Record(sample controller.Sample) {
	if s.closed.Load() {
		s.dropped.Add(1)
		return
	}
	select {
	case s.samples <- sample:
	default:
		if s.dropped.Add(1)%SampleBufferSize == 1 {
			ui.Warning("Telemetry queue is full, dropping samples")
		}
	}
}

// Dropped is the number of samples that were never written
func (s *InfluxSink) Dropped() int64 {
	return s.dropped.Load()
}

// Run writes queued samples and reports write errors until ctx is
// cancelled, then flushes pending points and closes the sink
func (s *InfluxSink) Run(ctx context.Context) error {
	errorsCh := s.writeAPI.Errors()
	for {
		select {
		case <-ctx.Done():
			s.Close()
			return nil
		case sample := <-s.samples:
			s.writeAPI.WritePoint(NewPoint(sample))
		case err := <-errorsCh:
			ui.Warning("Error writing telemetry to influxdb: %v", err)
		}
	}
}

// Close flushes pending points. Samples recorded afterwards are dropped.
func (s *InfluxSink) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.writeAPI.Flush()
		s.client.Close()
	})
}

// NewPoint converts a sample into an influx point
func NewPoint(sample controller.Sample) *write.Point {
	request := sample.Request
	output := sample.Output
	return influxdb2.NewPoint(
		Measurement,
		map[string]string{
			TagAuthority: request.Authority.String(),
		},
		map[string]interface{}{
			"target_linear_velocity":   request.TargetLinearVelocity,
			"target_angular_velocity":  request.TargetAngularVelocity,
			"current_linear_velocity":  request.CurrentLinearVelocity,
			"current_angular_velocity": request.CurrentAngularVelocity,
			"dt":                       request.Dt,
			"accel_cmd":                output.AccelCmd,
			"throttle":                 output.Throttle,
			"brake":                    output.Brake,
			"steer":                    output.Steer,
			"integral":                 sample.Integral,
		},
		sample.Timestamp,
	)
}
