package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowPassFilter_FirstValueSeeds(t *testing.T) {
	// GIVEN
	filter := NewLowPassFilter(0.2)

	// WHEN
	result := filter.Filter(10)

	// THEN
	assert.Equal(t, 10.0, result)
	assert.True(t, filter.Ready())
}

func TestLowPassFilter_Blends(t *testing.T) {
	// GIVEN
	filter := NewLowPassFilter(0.25)
	filter.Filter(0)

	// WHEN
	result := filter.Filter(8)

	// THEN
	assert.InDelta(t, 2.0, result, 1e-9)

	// WHEN
	result = filter.Filter(8)

	// THEN
	assert.InDelta(t, 3.5, result, 1e-9)
}

func TestLowPassFilter_AlphaOneIsPassThrough(t *testing.T) {
	// GIVEN
	filter := NewLowPassFilter(1)
	filter.Filter(3)

	// WHEN
	result := filter.Filter(-7)

	// THEN
	assert.Equal(t, -7.0, result)
}

func TestLowPassFilter_ResetReseeds(t *testing.T) {
	// GIVEN
	filter := NewLowPassFilter(0.1)
	filter.Filter(100)
	filter.Filter(50)

	// WHEN
	filter.Reset()
	result := filter.Filter(3)

	// THEN
	assert.Equal(t, 3.0, result)
}

func TestLowPassFilter_ResetIsIdempotent(t *testing.T) {
	// GIVEN
	filter := NewLowPassFilter(0.1)
	filter.Filter(100)

	// WHEN
	filter.Reset()
	once := *filter
	filter.Reset()

	// THEN
	assert.Equal(t, once, *filter)
	assert.False(t, filter.Ready())
	assert.Equal(t, 0.0, filter.Value())
}

func TestNewLowPassFilter_InvalidAlphaIsCoerced(t *testing.T) {
	assert.Equal(t, 1.0, NewLowPassFilter(3).Alpha())
	assert.Equal(t, 1e-6, NewLowPassFilter(0).Alpha())
	assert.Equal(t, 1e-6, NewLowPassFilter(-1).Alpha())
}

func TestNewLowPassFilterFromTimeConstant(t *testing.T) {
	// GIVEN
	tau, ts := 0.5, 0.02

	// WHEN
	filter := NewLowPassFilterFromTimeConstant(tau, ts)

	// THEN
	assert.InDelta(t, 0.02/0.52, filter.Alpha(), 1e-12)
	assert.Equal(t, 1.0, NewLowPassFilterFromTimeConstant(0, ts).Alpha())
}
