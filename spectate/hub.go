package spectate

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tifye/haunted/assert"
	"github.com/tifye/haunted/events"
)

const clientBufferSize = 64

// Hub fans simulation events out to connected spectators. It
// never blocks an actor: a client whose buffer is full misses
// the event.
type Hub struct {
	logger *log.Logger

	mu      sync.RWMutex
	clients map[uuid.UUID]chan []byte

	dropped atomic.Uint64
}

func NewHub(logger *log.Logger) *Hub {
	assert.AssertNotNil(logger)
	return &Hub{
		logger:  logger,
		clients: map[uuid.UUID]chan []byte{},
	}
}

// Register adds a client. The returned channel is closed by Unregister.
func (h *Hub) Register() (uuid.UUID, <-chan []byte) {
	id := uuid.New()
	ch := make(chan []byte, clientBufferSize)

	h.mu.Lock()
	h.clients[id] = ch
	h.mu.Unlock()

	h.logger.Debug("Spectator registered", "id", id)
	return id, ch
}

func (h *Hub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	ch, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()

	if ok {
		close(ch)
		h.logger.Debug("Spectator unregistered", "id", id)
	}
}

func (h *Hub) NumClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped counts events that did not fit in a client's buffer.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) Emit(e events.Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		h.logger.Error("marshal event", "err", err, "kind", e.Kind)
		return
	}

	// Holding the read lock keeps Unregister from closing a
	// channel while it is being sent on.
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.clients {
		select {
		case ch <- msg:
		default:
			h.dropped.Add(1)
		}
	}
}
