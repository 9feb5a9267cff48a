package controller

import (
	"time"

	"github.com/markusressel/dbw2go/internal/vehicle"
)

// Authority is the control authority of the autonomous system
type Authority bool

const (
	AuthorityDisabled Authority = false
	AuthorityEnabled  Authority = true
)

func (a Authority) String() string {
	if a {
		return "ENABLED"
	}
	return "DISABLED"
}

// ControlRequest holds the inputs of a single control tick
type ControlRequest struct {
	TargetLinearVelocity   float64 `json:"targetLinearVelocity"`
	TargetAngularVelocity  float64 `json:"targetAngularVelocity"`
	CurrentLinearVelocity  float64 `json:"currentLinearVelocity"`
	CurrentAngularVelocity float64 `json:"currentAngularVelocity"`

	Authority Authority `json:"authority"`

	// seconds since the previous tick
	Dt float64 `json:"dt"`
}

// NewControlRequest builds the request of a tick from a snapshot of the vehicle state
func NewControlRequest(snapshot vehicle.Snapshot, authority Authority, dt float64) ControlRequest {
	return ControlRequest{
		TargetLinearVelocity:   snapshot.Request.TargetLinearVelocity,
		TargetAngularVelocity:  snapshot.Request.TargetAngularVelocity,
		CurrentLinearVelocity:  snapshot.State.CurrentLinearVelocity,
		CurrentAngularVelocity: snapshot.State.CurrentAngularVelocity,
		Authority:              authority,
		Dt:                     dt,
	}
}

// Output is the result of a single control tick
type Output struct {
	AccelCmd float64 `json:"accelCmd"`
	Throttle float64 `json:"throttle"`
	Brake    float64 `json:"brake"`
	Steer    float64 `json:"steer"`
	// false on DISABLED ticks, in which case nothing was computed
	Published bool `json:"published"`
}

// Sample is everything that happened during a single tick
type Sample struct {
	Timestamp time.Time      `json:"timestamp"`
	Request   ControlRequest `json:"request"`
	Output    Output         `json:"output"`
	Integral  float64        `json:"integral"`
}

// SampleSink receives a Sample after every tick
type SampleSink interface {
	Record(sample Sample)
}

type StateSource interface {
	Snapshot() vehicle.Snapshot
}
