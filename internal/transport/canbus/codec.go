package canbus

import (
	"math"

	"github.com/markusressel/dbw2go/internal/actuators"
	"github.com/markusressel/dbw2go/internal/util"
	"github.com/markusressel/dbw2go/internal/vehicle"
	"go.einride.tech/can"
)

// frame ids
const (
	IdBrakeCmd       uint32 = 0x060
	IdThrottleCmd    uint32 = 0x062
	IdSteeringCmd    uint32 = 0x064
	IdTwistCmd       uint32 = 0x066
	IdVelocityReport uint32 = 0x067
	IdDbwStatus      uint32 = 0x068
)

// signal resolutions
const (
	brakeTorqueScale     = 0.1
	throttleScale        = 1.0 / math.MaxUint16
	steerAngleScale      = 0.001
	linearVelocityScale  = 0.01
	angularVelocityScale = 0.001
)

const frameLength = 8

// bit positions shared by the pedal commands
const (
	pedalValueStart  = 0
	pedalValueLength = 16
	pedalModeStart   = 16
	pedalModeLength  = 8
	pedalEnableBit   = 24

	steerEnableBit = 16
)

func EncodeThrottle(command actuators.ThrottleCommand) can.Frame {
	raw := math.Round(util.Coerce(command.Value, 0, 1) / throttleScale)
	return encodePedal(IdThrottleCmd, command.Enabled, command.Mode, raw)
}

func EncodeBrake(command actuators.BrakeCommand) can.Frame {
	raw := math.Round(math.Max(command.Value, 0) / brakeTorqueScale)
	return encodePedal(IdBrakeCmd, command.Enabled, command.Mode, raw)
}

func encodePedal(id uint32, enabled bool, mode actuators.PedalMode, raw float64) can.Frame {
	frame := can.Frame{ID: id, Length: frameLength}
	frame.Data.SetUnsignedBitsLittleEndian(pedalValueStart, pedalValueLength, uint64(util.Coerce(raw, 0, math.MaxUint16)))
	frame.Data.SetUnsignedBitsLittleEndian(pedalModeStart, pedalModeLength, uint64(mode))
	frame.Data.SetBit(pedalEnableBit, enabled)
	return frame
}

func EncodeSteering(command actuators.SteeringCommand) can.Frame {
	frame := can.Frame{ID: IdSteeringCmd, Length: frameLength}
	frame.Data.SetSignedBitsLittleEndian(0, 16, encodeInt16(command.Value, steerAngleScale))
	frame.Data.SetBit(steerEnableBit, command.Enabled)
	return frame
}

// EncodeCommands returns the frames of all three actuators
func EncodeCommands(commands actuators.Commands) []can.Frame {
	return []can.Frame{
		EncodeThrottle(commands.Throttle),
		EncodeBrake(commands.Brake),
		EncodeSteering(commands.Steering),
	}
}

// EncodeTwist encodes a linear and angular velocity pair with the given frame id
func EncodeTwist(id uint32, linear float64, angular float64) can.Frame {
	frame := can.Frame{ID: id, Length: frameLength}
	frame.Data.SetSignedBitsLittleEndian(0, 16, encodeInt16(linear, linearVelocityScale))
	frame.Data.SetSignedBitsLittleEndian(16, 16, encodeInt16(angular, angularVelocityScale))
	return frame
}

func DecodeTwist(frame can.Frame) (linear float64, angular float64) {
	linear = float64(frame.Data.SignedBitsLittleEndian(0, 16)) * linearVelocityScale
	angular = float64(frame.Data.SignedBitsLittleEndian(16, 16)) * angularVelocityScale
	return linear, angular
}

func EncodeDbwStatus(enabled bool) can.Frame {
	frame := can.Frame{ID: IdDbwStatus, Length: frameLength}
	frame.Data.SetBit(0, enabled)
	return frame
}

// Dispatch forwards a received frame to the inbound port.
// It returns false for frames that are not handled.
func Dispatch(frame can.Frame, port vehicle.InboundPort) bool {
	if frame.IsRemote || frame.IsExtended {
		return false
	}
	switch frame.ID {
	case IdTwistCmd:
		linear, angular := DecodeTwist(frame)
		port.OnVelocityRequest(vehicle.VelocityRequest{
			TargetLinearVelocity:  linear,
			TargetAngularVelocity: angular,
		})
	case IdVelocityReport:
		linear, angular := DecodeTwist(frame)
		port.OnVehicleState(vehicle.VehicleState{
			CurrentLinearVelocity:  linear,
			CurrentAngularVelocity: angular,
		})
	case IdDbwStatus:
		port.OnAuthorityChange(frame.Data.Bit(0))
	default:
		return false
	}
	return true
}

func encodeInt16(value float64, scale float64) int64 {
	return int64(util.Coerce(math.Round(value/scale), math.MinInt16, math.MaxInt16))
}
