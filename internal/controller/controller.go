package controller

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/dbw2go/internal/actuators"
	"github.com/markusressel/dbw2go/internal/configuration"
	"github.com/markusressel/dbw2go/internal/control_loop"
	"github.com/markusressel/dbw2go/internal/ui"
	"github.com/markusressel/dbw2go/internal/util"
)

// DefaultPeriod is used when the configured rate is not positive
const DefaultPeriod = 20 * time.Millisecond

type TwistControllerStatistics struct {
	StartedAt            time.Time `json:"startedAt"`
	Ticks                int64     `json:"ticks"`
	EnabledTicks         int64     `json:"enabledTicks"`
	Resets               int64     `json:"resets"`
	Publishes            int64     `json:"publishes"`
	PublishErrors        int64     `json:"publishErrors"`
	AuthorityTransitions int64     `json:"authorityTransitions"`
	PeakThrottle         float64   `json:"peakThrottle"`
	PeakBrake            float64   `json:"peakBrake"`
	PeakSteer            float64   `json:"peakSteer"`
	// root mean square of the velocity error over the tracking window
	TrackingErrorRms float64 `json:"trackingErrorRms"`
}

// TwistController turns velocity requests into actuator commands while it
// has control authority.
type TwistController struct {
	mu sync.RWMutex

	source    StateSource
	publisher actuators.Publisher
	sinks     []SampleSink

	velocity    control_loop.LongitudinalLoop
	yaw         *control_loop.YawController
	synthesizer *control_loop.CommandSynthesizer
	steerFilter *util.LowPassFilter

	period           time.Duration
	authorityTimeout time.Duration
	maxTickGap       int

	authority     Authority
	lastSample    Sample
	lastCommands  *actuators.Commands
	trackingError *rolling.PointPolicy
	stats         TwistControllerStatistics

	now func() time.Time
}

func NewTwistController(
	vehicleConfig configuration.VehicleConfig,
	controllerConfig configuration.ControllerConfig,
	source StateSource,
	publisher actuators.Publisher,
	sinks ...SampleSink,
) *TwistController {
	limits := vehicleConfig.Limits()
	period := controllerConfig.Period()
	if period <= 0 {
		period = DefaultPeriod
	}
	ts := period.Seconds()

	windowSize := controllerConfig.TrackingErrorWindowSize
	if windowSize < 1 {
		windowSize = 1
	}

	return &TwistController{
		source:    source,
		publisher: publisher,
		sinks:     sinks,

		velocity: control_loop.NewVelocityControlLoop(controllerConfig.Pid.Gains(), limits),
		yaw:      control_loop.NewYawController(limits, controllerConfig.MinSpeed),
		synthesizer: control_loop.NewCommandSynthesizer(
			limits,
			controllerConfig.StopHold(),
			util.NewLowPassFilterFromTimeConstant(controllerConfig.ThrottleFilterTau, ts),
			util.NewLowPassFilterFromTimeConstant(controllerConfig.BrakeFilterTau, ts),
		),
		steerFilter: util.NewLowPassFilterFromTimeConstant(controllerConfig.SteerFilterTau, ts),

		period:           period,
		authorityTimeout: controllerConfig.AuthorityTimeout,
		maxTickGap:       controllerConfig.MaxTickGap,

		authority:     AuthorityDisabled,
		trackingError: util.CreateRollingWindow(windowSize),
		stats: TwistControllerStatistics{
			StartedAt: time.Now(),
		},

		now: time.Now,
	}
}

// Run drives the controller at its configured rate until ctx is cancelled
func (c *TwistController) Run(ctx context.Context) error {
	ui.Info("Starting control loop with a period of %s", c.period)

	ticker := time.NewTicker(c.period)
	defer ticker.Stop()

	lastTick := c.now()
	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return nil
		case tick := <-ticker.C:
			dt := c.measureDt(lastTick, tick)
			lastTick = tick
			c.Tick(ctx, dt)
		}
	}
}

// measureDt returns the seconds between two ticks, falling back to the
// nominal period for non-positive or implausibly large gaps
func (c *TwistController) measureDt(last time.Time, current time.Time) float64 {
	dt := current.Sub(last)
	maxGap := time.Duration(c.maxTickGap) * c.period
	if dt <= 0 || (c.maxTickGap > 0 && dt > maxGap) {
		return c.period.Seconds()
	}
	return dt.Seconds()
}

// Tick runs a single control cycle with the latest inputs
func (c *TwistController) Tick(ctx context.Context, dt float64) Output {
	snapshot := c.source.Snapshot()
	authority := Authority(snapshot.Enabled)
	if authority && c.authorityTimeout > 0 && c.now().Sub(snapshot.AuthorityUpdated) > c.authorityTimeout {
		authority = AuthorityDisabled
	}
	return c.Step(ctx, NewControlRequest(snapshot, authority, dt))
}

// Step runs a single control cycle with the given request
func (c *TwistController) Step(ctx context.Context, request ControlRequest) Output {
	now := c.now()

	c.mu.Lock()
	c.stats.Ticks++
	c.updateAuthority(request.Authority)

	if request.Authority == AuthorityDisabled {
		c.reset()
		sample := Sample{Timestamp: now, Request: request}
		c.lastSample = sample
		c.mu.Unlock()

		c.record(sample)
		return sample.Output
	}

	c.stats.EnabledTicks++
	output := c.compute(request)
	commands := actuators.NewCommands(output.Throttle, output.Brake, output.Steer, now)
	c.lastCommands = &commands
	sample := Sample{
		Timestamp: now,
		Request:   request,
		Output:    output,
		Integral:  c.velocity.Integral(),
	}
	c.lastSample = sample
	c.mu.Unlock()

	err := c.publisher.Publish(ctx, commands)

	c.mu.Lock()
	if err != nil {
		c.stats.PublishErrors++
		ui.Warning("Error publishing actuator commands: %v", err)
	} else {
		c.stats.Publishes++
	}
	c.mu.Unlock()

	c.record(sample)
	return output
}

func (c *TwistController) compute(request ControlRequest) Output {
	accelCmd := 0.0
	if c.synthesizer.Holding(request.TargetLinearVelocity) {
		// the hold torque replaces the PID output, so nothing may accumulate meanwhile
		c.velocity.Reset()
	} else {
		accelCmd = c.velocity.Compute(request.TargetLinearVelocity, request.CurrentLinearVelocity, request.Dt)
	}
	throttle, brake := c.synthesizer.Synthesize(accelCmd, request.TargetLinearVelocity)
	steer := c.steerFilter.Filter(c.yaw.Compute(
		request.CurrentLinearVelocity,
		request.TargetLinearVelocity,
		request.TargetAngularVelocity,
	))

	c.trackingError.Append(request.TargetLinearVelocity - request.CurrentLinearVelocity)
	c.stats.PeakThrottle = math.Max(c.stats.PeakThrottle, throttle)
	c.stats.PeakBrake = math.Max(c.stats.PeakBrake, brake)
	c.stats.PeakSteer = util.MaxAbs(c.stats.PeakSteer, steer)

	return Output{
		AccelCmd:  accelCmd,
		Throttle:  throttle,
		Brake:     brake,
		Steer:     steer,
		Published: true,
	}
}

func (c *TwistController) updateAuthority(authority Authority) {
	if c.authority == authority {
		return
	}
	ui.Info("Control authority changed: %s -> %s", c.authority, authority)
	c.authority = authority
	c.stats.AuthorityTransitions++
}

// reset clears all state that integrates over time
func (c *TwistController) reset() {
	c.velocity.Reset()
	c.synthesizer.Reset()
	c.steerFilter.Reset()
	c.stats.Resets++
}

func (c *TwistController) record(sample Sample) {
	for _, sink := range c.sinks {
		sink.Record(sample)
	}
}

func (c *TwistController) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateAuthority(AuthorityDisabled)
	c.reset()
	ui.Info("Control loop stopped")
}

func (c *TwistController) Authority() Authority {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authority
}

// LastCommands returns the most recently published commands, nil if nothing was published yet
func (c *TwistController) LastCommands() *actuators.Commands {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lastCommands == nil {
		return nil
	}
	commands := *c.lastCommands
	return &commands
}

func (c *TwistController) LastSample() Sample {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSample
}

func (c *TwistController) Integral() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.velocity.Integral()
}

func (c *TwistController) GetStatistics() TwistControllerStatistics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats := c.stats
	stats.TrackingErrorRms = util.GetWindowRms(c.trackingError)
	return stats
}

func (c *TwistController) Period() time.Duration {
	return c.period
}
