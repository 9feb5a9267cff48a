package canbus

import (
	"context"
	"fmt"
	"net"

	"github.com/markusressel/dbw2go/internal/ui"
	"github.com/markusressel/dbw2go/internal/vehicle"
	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

type FrameReceiver interface {
	Receive() bool
	Frame() can.Frame
	Err() error
}

// Receiver forwards velocity reports, twist commands and the
// drive-by-wire status from the bus to the inbound port
type Receiver struct {
	conn net.Conn
	rx   FrameReceiver
	port vehicle.InboundPort
}

func Listen(ctx context.Context, iface string, port vehicle.InboundPort) (*Receiver, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial %s: %w", iface, err)
	}
	return &Receiver{
		conn: conn,
		rx:   socketcan.NewReceiver(conn),
		port: port,
	}, nil
}

func NewReceiver(rx FrameReceiver, port vehicle.InboundPort) *Receiver {
	return &Receiver{rx: rx, port: port}
}

// Run blocks until the connection is closed or ctx is cancelled
func (r *Receiver) Run(ctx context.Context) error {
	if r.conn != nil {
		stop := context.AfterFunc(ctx, func() {
			_ = r.conn.Close()
		})
		defer stop()
	}

	for r.rx.Receive() {
		frame := r.rx.Frame()
		if !Dispatch(frame, r.port) {
			ui.Debug("Ignoring CAN frame 0x%03X", frame.ID)
		}
		if ctx.Err() != nil {
			return nil
		}
	}

	if ctx.Err() != nil {
		return nil
	}
	if err := r.rx.Err(); err != nil {
		return fmt.Errorf("receive: %w", err)
	}
	return nil
}

func (r *Receiver) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
