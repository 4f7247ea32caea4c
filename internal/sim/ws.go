package sim

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/drewsortega/bonnaroo-led/internal/remote"
)

// The websocket control surface speaks JSON text frames with a small
// envelope: {type, ts, data}.
//
// Inbound:  {"type":"press","data":{"code":"0xF50ABF00"}}
//           {"type":"press","data":{"button":"RIGHT"}}
// Outbound: {"type":"state","ts":...,"data":{index,total,brightness,item,halted}}
// A "state" message is also sent on connect.
type wsEnvelope struct {
	Type string          `json:"type"`
	Ts   *time.Time      `json:"ts,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

type wsPressData struct {
	Code   string `json:"code,omitempty"`
	Button string `json:"button,omitempty"`
}

const (
	wsWriteWait  = 5 * time.Second
	wsPongWait   = 30 * time.Second
	wsPingPeriod = 20 * time.Second

	// statePollInterval bounds how often the broadcaster re-reads playback
	// state; unchanged state is not re-sent.
	statePollInterval = 250 * time.Millisecond
)

// ControlServer is the websocket hub: it fans playback state out to every
// connected client and feeds their press messages into the injection
// queue.
type ControlServer struct {
	logger *slog.Logger
	queue  *remote.Queue
	status StatusFunc

	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *wsClient

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

// NewControlServer wires a hub over the given queue and status source.
// Call Run(ctx) to start it and Register to mount the handler.
func NewControlServer(logger *slog.Logger, queue *remote.Queue, status StatusFunc) *ControlServer {
	return &ControlServer{
		logger:     logger,
		queue:      queue,
		status:     status,
		broadcast:  make(chan []byte, 64),
		register:   make(chan *wsClient, 16),
		unregister: make(chan *wsClient, 16),
		clients:    make(map[*wsClient]struct{}),
	}
}

// Register mounts the websocket handler on mux at path.
func (s *ControlServer) Register(mux *http.ServeMux, path string) {
	mux.HandleFunc(path, s.handleWS)
}

// Run processes hub events and periodically broadcasts playback state
// until ctx is cancelled. Clients that cannot keep up are disconnected.
func (s *ControlServer) Run(ctx context.Context) error {
	ticker := time.NewTicker(statePollInterval)
	defer ticker.Stop()

	var lastState []byte
	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return ctx.Err()

		case c := <-s.register:
			s.mu.Lock()
			s.clients[c] = struct{}{}
			n := len(s.clients)
			s.mu.Unlock()
			s.logger.Info("ws client connected", "remote_addr", c.remoteAddr, "clients", n)

		case c := <-s.unregister:
			s.remove(c, "disconnect")

		case <-ticker.C:
			msg := s.stateMessage()
			if msg == nil || string(msg) == string(lastState) {
				continue
			}
			lastState = msg
			s.fanOut(msg)
		}
	}
}

func (s *ControlServer) stateMessage() []byte {
	if s.status == nil {
		return nil
	}
	st := s.status()
	data, err := json.Marshal(st)
	if err != nil {
		return nil
	}
	now := time.Now().UTC()
	msg, err := json.Marshal(wsEnvelope{Type: "state", Ts: &now, Data: data})
	if err != nil {
		return nil
	}
	return msg
}

func (s *ControlServer) fanOut(msg []byte) {
	var slow []*wsClient
	s.mu.Lock()
	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	s.mu.Unlock()
	for _, c := range slow {
		s.remove(c, "slow_client")
	}
}

func (s *ControlServer) remove(c *wsClient, reason string) {
	s.mu.Lock()
	_, ok := s.clients[c]
	if ok {
		delete(s.clients, c)
	}
	n := len(s.clients)
	s.mu.Unlock()

	if ok {
		_ = c.conn.Close()
		c.closeSend()
		s.logger.Info("ws client removed", "remote_addr", c.remoteAddr, "reason", reason, "clients", n)
	}
}

func (s *ControlServer) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		_ = c.conn.Close()
		c.closeSend()
		delete(s.clients, c)
	}
}

var wsUpgrader = websocket.Upgrader{
	// Local tooling surface; no origin restrictions.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *ControlServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", "error", err)
		return
	}

	c := &wsClient{
		server:     s,
		conn:       conn,
		send:       make(chan []byte, 32),
		remoteAddr: r.RemoteAddr,
		logger:     s.logger,
	}
	s.register <- c

	// Pumps outlive the handler; the hub owns the connection lifetime.
	go c.writePump()
	go c.readPump()

	if msg := s.stateMessage(); msg != nil {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// handlePress decodes an inbound press payload and injects the code. The
// quit sentinel is dropped by the queue itself.
func (s *ControlServer) handlePress(data json.RawMessage) {
	var press wsPressData
	if err := json.Unmarshal(data, &press); err != nil {
		s.logger.Warn("ws bad press payload", "error", err)
		return
	}

	var code uint32
	switch {
	case press.Code != "":
		v, err := strconv.ParseUint(strings.TrimPrefix(press.Code, "0x"), 16, 32)
		if err != nil {
			s.logger.Warn("ws bad press code", "code", press.Code)
			return
		}
		code = uint32(v)
	case press.Button != "":
		v, ok := remote.CodeForName(strings.ToUpper(press.Button))
		if !ok {
			s.logger.Warn("ws unknown button", "button", press.Button)
			return
		}
		code = v
	default:
		return
	}
	s.queue.Inject(code)
}

type wsClient struct {
	server *ControlServer

	conn *websocket.Conn
	send chan []byte

	closeOnce  sync.Once
	remoteAddr string
	logger     *slog.Logger
}

func (c *wsClient) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					c.logger.Info("ws write pump exiting", "remote_addr", c.remoteAddr, "error", err)
				}
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump handles inbound press messages until the connection drops,
// then unregisters the client.
func (c *wsClient) readPump() {
	defer func() { c.server.unregister <- c }()

	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			var ce *websocket.CloseError
			if !errors.As(err, &ce) && !errors.Is(err, websocket.ErrCloseSent) {
				c.logger.Info("ws read pump exiting", "remote_addr", c.remoteAddr, "error", err)
			}
			return
		}

		var env wsEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.logger.Warn("ws bad message", "remote_addr", c.remoteAddr, "error", err)
			continue
		}
		if env.Type == "press" {
			c.server.handlePress(env.Data)
		}
	}
}
