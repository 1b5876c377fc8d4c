package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	VisitorCheckIn  = "visitor.check_in"
	VisitorCheckOut = "visitor.check_out"

	defaultBuffer = 16
	writeWait     = 10 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = (pongWait * 9) / 10
)

// Event is the JSON frame sent to subscribers.
type Event struct {
	Type      string      `json:"type"`
	SocietyID uint        `json:"society_id"`
	Visitor   interface{} `json:"visitor"`
	At        time.Time   `json:"at"`
}

// Subscriber receives encoded events for one society. C is closed when the
// subscriber is removed or falls too far behind.
type Subscriber struct {
	C         <-chan []byte
	ch        chan []byte
	societyID uint
	once      sync.Once
}

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

// Hub fans visitor events out to websocket subscribers grouped by society.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint]map[*Subscriber]struct{}
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{subs: make(map[uint]map[*Subscriber]struct{}), buffer: buffer}
}

func (h *Hub) Subscribe(societyID uint) *Subscriber {
	ch := make(chan []byte, h.buffer)
	sub := &Subscriber{C: ch, ch: ch, societyID: societyID}

	h.mu.Lock()
	set, ok := h.subs[societyID]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.subs[societyID] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	h.remove(sub)
	h.mu.Unlock()
}

// remove must be called with mu held for writing.
func (h *Hub) remove(sub *Subscriber) {
	if set, ok := h.subs[sub.societyID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.societyID)
		}
	}
	sub.close()
}

// Subscribers returns the number of live subscribers for a society.
func (h *Hub) Subscribers(societyID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[societyID])
}

// Publish delivers an event to every subscriber of societyID without
// blocking. Subscribers whose buffer is full are dropped.
func (h *Hub) Publish(societyID uint, eventType string, visitor interface{}) {
	data, err := json.Marshal(Event{Type: eventType, SocietyID: societyID, Visitor: visitor, At: time.Now().UTC()})
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to encode event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[societyID] {
		select {
		case sub.ch <- data:
		default:
			log.Warn().Uint("society_id", societyID).Msg("Dropping slow event subscriber")
			h.remove(sub)
		}
	}
}

// Serve streams events for societyID to conn until the client goes away,
// ctx ends or the subscriber is dropped.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, societyID uint) {
	sub := h.Subscribe(societyID)
	defer h.Unsubscribe(sub)
	defer conn.Close()

	// Reader: only control frames are expected; any error means the peer is gone.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Debug().Err(err).Msg("Event stream read error")
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "subscriber too slow"))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		}
	}
}
