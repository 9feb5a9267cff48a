package controller

import (
	"context"
	"testing"
	"time"

	"github.com/markusressel/dbw2go/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScenarioRejectsEmptyDuration(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()

	// WHEN
	points, err := RunScenario(context.Background(), config.Vehicle, config.Controller, Scenario{TargetLinearVelocity: 5})

	// THEN
	assert.Error(t, err)
	assert.Empty(t, points)
}

func TestRunScenarioProducesOnePointPerTick(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()

	// WHEN
	points, err := RunScenario(context.Background(), config.Vehicle, config.Controller, Scenario{
		TargetLinearVelocity: 5,
		Duration:             time.Second,
	})

	// THEN
	require.NoError(t, err)
	assert.Len(t, points, 50)
	assert.Equal(t, 20*time.Millisecond, points[0].Time)
	assert.Equal(t, time.Second, points[len(points)-1].Time)
}

func TestRunScenarioAcceleratesTowardsTarget(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()

	// WHEN
	points, err := RunScenario(context.Background(), config.Vehicle, config.Controller, Scenario{
		TargetLinearVelocity: 5,
		Duration:             5 * time.Second,
	})

	// THEN
	require.NoError(t, err)
	last := points[len(points)-1]
	assert.Greater(t, last.Velocity, 0.0)
	assert.Equal(t, AuthorityEnabled, last.Authority)
}

func TestRunScenarioPublishesNothingWhileDisabled(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()

	// WHEN
	points, err := RunScenario(context.Background(), config.Vehicle, config.Controller, Scenario{
		TargetLinearVelocity: 5,
		Duration:             3 * time.Second,
		DisableAt:            time.Second,
		EnableAt:             2 * time.Second,
	})

	// THEN
	require.NoError(t, err)
	for _, point := range points {
		start := point.Time - 20*time.Millisecond
		if start >= time.Second && start < 2*time.Second {
			assert.Equal(t, AuthorityDisabled, point.Authority)
			assert.Equal(t, Output{}, point.Output)
		} else {
			assert.Equal(t, AuthorityEnabled, point.Authority)
		}
	}
}

func TestScenarioAuthority(t *testing.T) {
	scenario := Scenario{DisableAt: time.Second, EnableAt: 2 * time.Second}

	assert.Equal(t, AuthorityEnabled, scenarioAuthority(scenario, 0))
	assert.Equal(t, AuthorityDisabled, scenarioAuthority(scenario, time.Second))
	assert.Equal(t, AuthorityEnabled, scenarioAuthority(scenario, 2*time.Second))
	assert.Equal(t, AuthorityDisabled, scenarioAuthority(Scenario{DisableAt: time.Second}, 10*time.Second))
	assert.Equal(t, AuthorityEnabled, scenarioAuthority(Scenario{}, 10*time.Second))
}

func TestRunScenarioStopsOnCancel(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN
	_, err := RunScenario(ctx, config.Vehicle, config.Controller, Scenario{TargetLinearVelocity: 5, Duration: time.Second})

	// THEN
	assert.ErrorIs(t, err, context.Canceled)
}
