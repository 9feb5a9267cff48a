package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/markusressel/dbw2go/internal/configuration"
	"github.com/markusressel/dbw2go/internal/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoint(t *testing.T) {
	// GIVEN
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sample := controller.Sample{
		Timestamp: now,
		Request: controller.ControlRequest{
			TargetLinearVelocity:  5,
			CurrentLinearVelocity: 4,
			Authority:             controller.AuthorityEnabled,
			Dt:                    0.02,
		},
		Output: controller.Output{
			AccelCmd:  0.3,
			Throttle:  0.3,
			Published: true,
		},
		Integral: 0.5,
	}

	// WHEN
	point := NewPoint(sample)

	// THEN
	assert.Equal(t, Measurement, point.Name())
	assert.Equal(t, now, point.Time())
	require.Len(t, point.TagList(), 1)
	assert.Equal(t, TagAuthority, point.TagList()[0].Key)
	assert.Equal(t, "ENABLED", point.TagList()[0].Value)

	fields := map[string]interface{}{}
	for _, field := range point.FieldList() {
		fields[field.Key] = field.Value
	}
	assert.Len(t, fields, 10)
	assert.Equal(t, 5.0, fields["target_linear_velocity"])
	assert.Equal(t, 0.3, fields["throttle"])
	assert.Equal(t, 0.5, fields["integral"])
	assert.Equal(t, 0.0, fields["brake"])
}

func TestNewPointDisabled(t *testing.T) {
	// WHEN
	point := NewPoint(controller.Sample{Timestamp: time.Now()})

	// THEN
	assert.Equal(t, "DISABLED", point.TagList()[0].Value)
}

func TestInfluxSinkStopsOnCancel(t *testing.T) {
	// GIVEN
	sink := NewInfluxSink(configuration.InfluxConfig{
		Enabled:       true,
		Url:           "http://127.0.0.1:1",
		Org:           "dbw2go",
		Bucket:        "actuation",
		BatchSize:     1000,
		FlushInterval: time.Hour,
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN
	err := sink.Run(ctx)

	// THEN
	assert.NoError(t, err)
}

func createSink(url string) *InfluxSink {
	return NewInfluxSink(configuration.InfluxConfig{
		Enabled:       true,
		Url:           url,
		Org:           "dbw2go",
		Bucket:        "actuation",
		BatchSize:     1,
		FlushInterval: time.Hour,
	})
}

func TestInfluxSinkRecordDoesNotWaitForSlowServer(t *testing.T) {
	// GIVEN
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sink := createSink(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sink.Run(ctx)
	}()

	// WHEN
	var worst time.Duration
	for i := 0; i < 10; i++ {
		start := time.Now()
		sink.Record(controller.Sample{Timestamp: time.Now()})
		worst = max(worst, time.Since(start))
		time.Sleep(time.Millisecond)
	}

	// THEN
	assert.Less(t, worst, 20*time.Millisecond)
	assert.Equal(t, int64(0), sink.Dropped())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("sink did not stop")
	}
}

func TestInfluxSinkDropsSamplesWhenQueueIsFull(t *testing.T) {
	// GIVEN
	sink := createSink("http://127.0.0.1:1")
	defer sink.Close()

	// WHEN
	for i := 0; i < SampleBufferSize+5; i++ {
		sink.Record(controller.Sample{Timestamp: time.Now()})
	}

	// THEN
	assert.Equal(t, int64(5), sink.Dropped())
}

func TestInfluxSinkRecordAfterClose(t *testing.T) {
	// GIVEN
	sink := createSink("http://127.0.0.1:1")
	sink.Close()

	// WHEN
	assert.NotPanics(t, func() {
		sink.Record(controller.Sample{Timestamp: time.Now()})
		sink.Close()
	})

	// THEN
	assert.Equal(t, int64(1), sink.Dropped())
}
