package bridge

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/markusressel/dbw2go/internal/actuators"
	"github.com/markusressel/dbw2go/internal/vehicle"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// topics
const (
	TopicTwistCmd        = "twist_cmd"
	TopicCurrentVelocity = "current_velocity"
	TopicDbwEnabled      = "dbw_enabled"
	TopicActuation       = "actuation"
)

type Message struct {
	Topic string `json:"topic"`

	LinearVelocity  float64 `json:"linearVelocity,omitempty"`
	AngularVelocity float64 `json:"angularVelocity,omitempty"`
	Enabled         *bool   `json:"enabled,omitempty"`

	Commands *actuators.Commands `json:"commands,omitempty"`
}

// HandleMessage decodes an inbound message and forwards it to the port
func HandleMessage(data []byte, port vehicle.InboundPort) error {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	switch message.Topic {
	case TopicTwistCmd:
		port.OnVelocityRequest(vehicle.VelocityRequest{
			TargetLinearVelocity:  message.LinearVelocity,
			TargetAngularVelocity: message.AngularVelocity,
		})
	case TopicCurrentVelocity:
		port.OnVehicleState(vehicle.VehicleState{
			CurrentLinearVelocity:  message.LinearVelocity,
			CurrentAngularVelocity: message.AngularVelocity,
		})
	case TopicDbwEnabled:
		if message.Enabled == nil {
			return fmt.Errorf("topic %s: missing 'enabled'", message.Topic)
		}
		port.OnAuthorityChange(*message.Enabled)
	default:
		return fmt.Errorf("unknown topic '%s'", message.Topic)
	}
	return nil
}

func encodeCommands(commands actuators.Commands) ([]byte, error) {
	return json.Marshal(Message{
		Topic:    TopicActuation,
		Commands: &commands,
	})
}
