package control_loop

import (
	"testing"

	"github.com/markusressel/dbw2go/internal/util"
	"github.com/stretchr/testify/assert"
)

var testStopHold = StopHold{
	Threshold: DefaultStopVelocityThreshold,
	Torque:    DefaultStopHoldTorque,
}

func createSynthesizer(alpha float64) *CommandSynthesizer {
	return NewCommandSynthesizer(
		defaultLimits(),
		testStopHold,
		util.NewLowPassFilter(alpha),
		util.NewLowPassFilter(alpha),
	)
}

func TestSynthesize_PositiveAccelerationNeverBrakes(t *testing.T) {
	tests := []struct {
		accel    float64
		throttle float64
	}{
		{0, 0},
		{0.3, 0.3},
		{1.0, 1.0},
		{5.0, 1.0},
	}

	for _, tt := range tests {
		// GIVEN
		synthesizer := createSynthesizer(1)

		// WHEN
		throttle, brake := synthesizer.Synthesize(tt.accel, 5)

		// THEN
		assert.Equal(t, 0.0, brake)
		assert.InDelta(t, tt.throttle, throttle, 1e-12)
	}
}

func TestSynthesize_DeadbandCoasts(t *testing.T) {
	// GIVEN
	synthesizer := createSynthesizer(1)

	// WHEN
	throttle, brake := synthesizer.Synthesize(-0.05, 5)

	// THEN
	assert.Equal(t, 0.0, throttle)
	assert.Equal(t, 0.0, brake)
}

func TestSynthesize_BrakeTorque(t *testing.T) {
	// GIVEN
	synthesizer := createSynthesizer(1)

	// WHEN
	throttle, brake := synthesizer.Synthesize(-2, 5)

	// THEN
	assert.Equal(t, 0.0, throttle)
	assert.InDelta(t, 2*1774.933*0.2413, brake, 1e-9)
}

func TestSynthesize_BrakeTorqueLimitedByDecelLimit(t *testing.T) {
	// GIVEN
	synthesizer := createSynthesizer(1)

	// WHEN
	_, brake := synthesizer.Synthesize(-50, 5)

	// THEN
	assert.InDelta(t, defaultLimits().MaxBrakeTorque(), brake, 1e-9)
}

func TestSynthesize_StopOverride(t *testing.T) {
	for _, accel := range []float64{-5, -0.05, 0, 0.5, 1} {
		// GIVEN
		synthesizer := createSynthesizer(0.2)
		synthesizer.Synthesize(1, 5)

		// WHEN
		throttle, brake := synthesizer.Synthesize(accel, 0.005)

		// THEN
		assert.Equal(t, 0.0, throttle)
		assert.Equal(t, DefaultStopHoldTorque, brake)
	}
}

func TestSynthesize_StopOverrideResetsFilters(t *testing.T) {
	// GIVEN
	synthesizer := createSynthesizer(0.2)
	synthesizer.Synthesize(1, 5)
	synthesizer.Synthesize(1, 5)

	// WHEN
	synthesizer.Synthesize(1, 0)
	throttle, _ := synthesizer.Synthesize(0.4, 5)

	// THEN
	assert.InDelta(t, 0.4, throttle, 1e-12)
}

func TestSynthesize_FiltersThrottle(t *testing.T) {
	// GIVEN
	synthesizer := createSynthesizer(0.5)

	// WHEN
	first, _ := synthesizer.Synthesize(1, 5)
	second, _ := synthesizer.Synthesize(0.5, 5)

	// THEN
	assert.Equal(t, 1.0, first)
	assert.InDelta(t, 0.75, second, 1e-12)
}

func TestSynthesize_ThrottleAndBrakeAreExclusiveWhileFiltering(t *testing.T) {
	// GIVEN
	synthesizer := createSynthesizer(0.1)
	for i := 0; i < 10; i++ {
		synthesizer.Synthesize(1, 5)
	}

	// WHEN
	throttle, brake := synthesizer.Synthesize(-2, 5)

	// THEN
	assert.Equal(t, 0.0, throttle)
	assert.InDelta(t, 2*1774.933*0.2413, brake, 1e-9)

	// WHEN
	throttle, brake = synthesizer.Synthesize(0.5, 5)

	// THEN
	assert.InDelta(t, 0.5, throttle, 1e-12)
	assert.Equal(t, 0.0, brake)
}

func TestSynthesize_ResetIsIdempotent(t *testing.T) {
	// GIVEN
	synthesizer := createSynthesizer(0.3)
	synthesizer.Synthesize(0.8, 5)

	// WHEN
	synthesizer.Reset()
	synthesizer.Reset()
	throttle, brake := synthesizer.Synthesize(0.2, 5)

	// THEN
	assert.InDelta(t, 0.2, throttle, 1e-12)
	assert.Equal(t, 0.0, brake)
}

func TestSynthesize_Holding(t *testing.T) {
	synthesizer := createSynthesizer(1)

	assert.True(t, synthesizer.Holding(0))
	assert.True(t, synthesizer.Holding(DefaultStopVelocityThreshold/2))
	assert.False(t, synthesizer.Holding(DefaultStopVelocityThreshold))
	assert.False(t, synthesizer.Holding(5))
}
