package bridge

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/markusressel/dbw2go/internal/actuators"
	"github.com/markusressel/dbw2go/internal/ui"
	"github.com/markusressel/dbw2go/internal/vehicle"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	sendBufferSize = 64
	writeWait      = time.Second
)

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Bridge connects simulators over websocket. Inbound messages are forwarded
// to the inbound port, published commands are broadcast to every client.
type Bridge struct {
	port     vehicle.InboundPort
	upgrader websocket.Upgrader
	clients  cmap.ConcurrentMap[string, *client]
	nextId   atomic.Uint64
}

func NewBridge(port vehicle.InboundPort) *Bridge {
	return &Bridge{
		port: port,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  2048,
			WriteBufferSize: 2048,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: cmap.New[*client](),
	}
}

func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		ui.Warning("Websocket upgrade error: %v", err)
		return
	}

	c := &client{
		id:   strconv.FormatUint(b.nextId.Add(1), 10),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	b.clients.Set(c.id, c)
	ui.Info("Bridge client %s connected from %s", c.id, r.RemoteAddr)

	go b.writeLoop(c)
	b.readLoop(c)

	b.clients.Remove(c.id)
	close(c.send)
	ui.Info("Bridge client %s disconnected", c.id)
}

func (b *Bridge) readLoop(c *client) {
	defer func() {
		_ = c.conn.Close()
	}()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ui.Debug("Bridge client %s read error: %v", c.id, err)
			}
			return
		}
		if err := HandleMessage(data, b.port); err != nil {
			ui.Warning("Bridge client %s: %v", c.id, err)
		}
	}
}

func (b *Bridge) writeLoop(c *client) {
	for data := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			break
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			ui.Debug("Bridge client %s write error: %v", c.id, err)
			break
		}
	}
	_ = c.conn.Close()
	// drain until the read loop closes the channel
	for range c.send {
	}
}

// Publish broadcasts the commands to all connected clients.
// Slow clients drop messages instead of blocking the caller.
func (b *Bridge) Publish(_ context.Context, commands actuators.Commands) error {
	if b.clients.Count() == 0 {
		return nil
	}
	data, err := encodeCommands(commands)
	if err != nil {
		return err
	}
	b.clients.IterCb(func(id string, c *client) {
		select {
		case c.send <- data:
		default:
			ui.Debug("Bridge client %s is too slow, dropping commands", id)
		}
	})
	return nil
}

func (b *Bridge) ClientCount() int {
	return b.clients.Count()
}

// Run serves the bridge on addr until ctx is cancelled
func (b *Bridge) Run(ctx context.Context, addr string, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, b)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(timeoutCtx)
	}()

	ui.Info("Websocket bridge listening on ws://%s%s", addr, path)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
