package realtime

import (
	"context"
	"encoding/json"
	"expvar"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const fanoutChannel = "realtime:changes"

var (
	wsConnectionsGauge   = expvar.NewInt("realtime_connections")
	wsEventsSentTotal    = expvar.NewInt("realtime_events_sent_total")
	wsEventsDroppedTotal = expvar.NewInt("realtime_events_dropped_total")
)

// Connection represents one WebSocket subscriber
type Connection struct {
	Conn *websocket.Conn
	Send chan []byte

	mu   sync.Mutex
	subs map[string]map[string]bool // table -> event set
}

func newConnection(ws *websocket.Conn) *Connection {
	return &Connection{
		Conn: ws,
		Send: make(chan []byte, 16),
		subs: make(map[string]map[string]bool),
	}
}

func (c *Connection) subscribe(table, event string) {
	if event == "" {
		event = EventAll
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subs[table] == nil {
		c.subs[table] = make(map[string]bool)
	}
	c.subs[table][event] = true
}

func (c *Connection) unsubscribe(table, event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if event == "" || event == EventAll {
		delete(c.subs, table)
		return
	}
	if set := c.subs[table]; set != nil {
		delete(set, event)
	}
}

func (c *Connection) matches(table, event string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range []string{table, EventAll} {
		if set := c.subs[t]; set != nil && (set[EventAll] || set[event]) {
			return true
		}
	}
	return false
}

// Hub fans table-change events out to WebSocket subscribers. With Redis
// configured, events also travel between instances over Pub/Sub so that a
// console connected to one instance sees mutations applied on another.
type Hub struct {
	mu    sync.RWMutex
	conns map[*Connection]bool

	redis  *redis.Client
	pubsub *redis.PubSub

	ctx    context.Context
	cancel context.CancelFunc

	instanceID string
}

// NewHub creates a realtime hub. redisClient may be nil for single-instance setups.
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		conns:      make(map[*Connection]bool),
		redis:      redisClient,
		ctx:        ctx,
		cancel:     cancel,
		instanceID: uuid.NewString(),
	}

	if redisClient != nil {
		h.pubsub = redisClient.Subscribe(ctx, fanoutChannel)
	}

	return h
}

// Run consumes cross-instance events from Redis. Call in a goroutine; it is a
// no-op without Redis.
func (h *Hub) Run() {
	if h.pubsub == nil {
		return
	}
	fanout := h.pubsub.Channel()

	for {
		select {
		case <-h.ctx.Done():
			return

		case msg, ok := <-fanout:
			if !ok {
				return
			}
			var fm fanoutMessage
			if err := json.Unmarshal([]byte(msg.Payload), &fm); err != nil {
				log.Warn().Err(err).Msg("bad realtime fanout message")
				continue
			}
			if fm.SenderInstanceID == h.instanceID {
				continue
			}
			h.broadcast(fm.Payload)
		}
	}
}

// Publish broadcasts a change event to local subscribers and, when Redis is
// configured, to every other instance. Send failures only drop the event;
// mutations never depend on delivery.
func (h *Hub) Publish(ctx context.Context, table, event string) {
	e := ChangeEvent{Type: "change", Table: table, Event: event}
	h.broadcast(e)

	if h.redis == nil {
		return
	}
	payload, _ := json.Marshal(fanoutMessage{SenderInstanceID: h.instanceID, Payload: e})
	if err := h.redis.Publish(ctx, fanoutChannel, payload).Err(); err != nil {
		log.Warn().Err(err).Str("table", table).Msg("failed to fan out change event")
	}
}

func (h *Hub) broadcast(e ChangeEvent) {
	data := e.Marshal()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns {
		if !c.matches(e.Table, e.Event) {
			continue
		}
		select {
		case c.Send <- data:
			wsEventsSentTotal.Add(1)
		default:
			// Slow consumer; it will refetch on the next event anyway
			wsEventsDroppedTotal.Add(1)
		}
	}
}

// Register adds a connection to the hub
func (h *Hub) Register(c *Connection) {
	h.mu.Lock()
	h.conns[c] = true
	h.mu.Unlock()
	wsConnectionsGauge.Add(1)
}

// Unregister removes a connection and closes its send channel
func (h *Hub) Unregister(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[c] {
		delete(h.conns, c)
		close(c.Send)
		wsConnectionsGauge.Add(-1)
	}
}

// ConnectionCount reports connections on this instance
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Close shuts the hub down and releases the Redis subscription
func (h *Hub) Close() {
	h.cancel()
	if h.pubsub != nil {
		_ = h.pubsub.Close()
	}
}
