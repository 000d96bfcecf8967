// Package websocket streams target trajectories to monitoring clients.
package websocket

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/target"
	"github.com/robotalks/mpctarget/pkg/target/msgs"
)

// Path is where clients connect.
const Path = "/targets"

// Client formats, selected by the format query parameter.
const (
	FormatTyped = "typed"
	FormatJSON  = "json"
)

type client struct {
	conn   *websocket.Conn
	format string
	done   chan struct{}
}

// Broadcaster sends every published trajectory to all connected clients.
// Clients failing to receive are disconnected.
type Broadcaster struct {
	Addr string

	lock    sync.Mutex
	clients map[*client]struct{}
}

// NewBroadcaster creates a Broadcaster listening on addr.
func NewBroadcaster(addr string) *Broadcaster {
	return &Broadcaster{Addr: addr, clients: make(map[*client]struct{})}
}

// AddToLoop implements LoopAdder.
func (b *Broadcaster) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(fx.NamedRun("websocket", b))
}

// Handler serves websocket clients.
func (b *Broadcaster) Handler() http.Handler {
	return websocket.Handler(b.serve)
}

// Run implements Runnable.
func (b *Broadcaster) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", b.Addr)
	if err != nil {
		return err
	}
	glog.Infof("websocket listening on %s%s", ln.Addr(), Path)
	mux := http.NewServeMux()
	mux.Handle(Path, b.Handler())
	server := &http.Server{Handler: mux}
	return fx.RunWithContextCloser(ctx, server, func() error {
		return server.Serve(ln)
	})
}

// Clients returns the number of connected clients.
func (b *Broadcaster) Clients() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return len(b.clients)
}

func (b *Broadcaster) serve(conn *websocket.Conn) {
	c := &client{conn: conn, format: FormatTyped, done: make(chan struct{})}
	if conn.Request().URL.Query().Get("format") == FormatJSON {
		c.format = FormatJSON
	}
	b.lock.Lock()
	b.clients[c] = struct{}{}
	b.lock.Unlock()
	glog.V(2).Infof("websocket client %s connected", conn.Request().RemoteAddr)
	go func() {
		// Anything from the client is discarded, a read error means
		// it's gone.
		var discard []byte
		for websocket.Message.Receive(conn, &discard) == nil {
		}
		b.remove(c)
	}()
	<-c.done
}

func (b *Broadcaster) remove(c *client) {
	b.lock.Lock()
	_, ok := b.clients[c]
	delete(b.clients, c)
	b.lock.Unlock()
	if ok {
		glog.V(2).Infof("websocket client %s disconnected", c.conn.Request().RemoteAddr)
		close(c.done)
	}
}

// Publish sends the trajectories to all clients.
func (b *Broadcaster) Publish(_ context.Context, traj *target.TargetTrajectories) error {
	msg := msgs.TargetTrajectoriesFrom(traj)
	data, err := msgs.Encode(msg)
	if err != nil {
		return err
	}
	b.lock.Lock()
	clients := make([]*client, 0, len(b.clients))
	for c := range b.clients {
		clients = append(clients, c)
	}
	b.lock.Unlock()
	for _, c := range clients {
		if c.format == FormatJSON {
			err = websocket.JSON.Send(c.conn, msg)
		} else {
			err = websocket.Message.Send(c.conn, data)
		}
		if err != nil {
			glog.Warningf("websocket client %s: %v", c.conn.Request().RemoteAddr, err)
			b.remove(c)
		}
	}
	return nil
}
