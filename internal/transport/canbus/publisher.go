package canbus

import (
	"context"
	"fmt"
	"net"

	"github.com/markusressel/dbw2go/internal/actuators"
	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

type FrameTransmitter interface {
	TransmitFrame(ctx context.Context, frame can.Frame) error
}

// Publisher sends actuator commands as CAN frames
type Publisher struct {
	conn net.Conn
	tx   FrameTransmitter
}

// Dial opens a SocketCAN connection on the given interface, f.ex. "can0"
func Dial(ctx context.Context, iface string) (*Publisher, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial %s: %w", iface, err)
	}
	return &Publisher{
		conn: conn,
		tx:   socketcan.NewTransmitter(conn),
	}, nil
}

func NewPublisher(tx FrameTransmitter) *Publisher {
	return &Publisher{tx: tx}
}

func (p *Publisher) Publish(ctx context.Context, commands actuators.Commands) error {
	for _, frame := range EncodeCommands(commands) {
		if err := p.tx.TransmitFrame(ctx, frame); err != nil {
			return fmt.Errorf("transmit frame 0x%03X: %w", frame.ID, err)
		}
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
