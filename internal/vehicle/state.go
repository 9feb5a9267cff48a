package vehicle

import (
	"sync"
	"time"
)

// VelocityRequest is the requested motion of the vehicle
type VelocityRequest struct {
	TargetLinearVelocity  float64 `json:"targetLinearVelocity"`
	TargetAngularVelocity float64 `json:"targetAngularVelocity"`
}

// VehicleState is the measured motion of the vehicle
type VehicleState struct {
	CurrentLinearVelocity  float64 `json:"currentLinearVelocity"`
	CurrentAngularVelocity float64 `json:"currentAngularVelocity"`
}

// InboundPort receives the inputs of the controller from a transport
type InboundPort interface {
	OnVelocityRequest(request VelocityRequest)
	OnVehicleState(state VehicleState)
	OnAuthorityChange(enabled bool)
}

// Snapshot is a consistent copy of the latest inputs
type Snapshot struct {
	Request VelocityRequest `json:"request"`
	State   VehicleState    `json:"state"`

	Enabled bool `json:"enabled"`

	// time of the last update, zero if never received
	RequestUpdated   time.Time `json:"requestUpdated"`
	StateUpdated     time.Time `json:"stateUpdated"`
	AuthorityUpdated time.Time `json:"authorityUpdated"`
}

// State caches the latest value of every input. Older values are overwritten.
type State struct {
	mu  sync.RWMutex
	now func() time.Time

	snapshot Snapshot
}

func NewState() *State {
	return &State{
		now: time.Now,
	}
}

func (s *State) OnVelocityRequest(request VelocityRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Request = request
	s.snapshot.RequestUpdated = s.now()
}

func (s *State) OnVehicleState(state VehicleState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.State = state
	s.snapshot.StateUpdated = s.now()
}

func (s *State) OnAuthorityChange(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Enabled = enabled
	s.snapshot.AuthorityUpdated = s.now()
}

// Snapshot returns a copy of the latest inputs
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
