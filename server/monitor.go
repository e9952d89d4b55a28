package server

import (
	"sync"
	"time"
)

const eventRingSize = 64

// Event is one completed request/response exchange as seen by the
// connection loop.
type Event struct {
	ConnID string    `json:"conn_id"`
	Remote string    `json:"remote"`
	Method string    `json:"method"`
	URI    string    `json:"uri"`
	Status int       `json:"status"`
	Time   time.Time `json:"time"`
}

// Stats are aggregate counters for the whole process.
type Stats struct {
	Accepted      uint64            `json:"accepted"`
	Requests      uint64            `json:"requests"`
	ParseFailures uint64            `json:"parse_failures"`
	ByMethod      map[string]uint64 `json:"by_method"`
}

// Monitor collects counters and a bounded ring of recent events. It is the
// only state shared between connections; everything protocol-level stays
// connection-local.
type Monitor struct {
	mu       sync.Mutex
	accepted uint64
	requests uint64
	failures uint64
	byMethod map[string]uint64
	events   []Event
	subs     map[string]chan Event
}

func NewMonitor() *Monitor {
	return &Monitor{
		byMethod: make(map[string]uint64),
		subs:     make(map[string]chan Event),
	}
}

func (m *Monitor) ConnAccepted() {
	m.mu.Lock()
	m.accepted++
	m.mu.Unlock()
}

func (m *Monitor) RecordParseFailure() {
	m.mu.Lock()
	m.failures++
	m.mu.Unlock()
}

// RecordRequest updates the counters, appends the event to the ring and
// fans it out to subscribers. Slow subscribers miss events rather than
// block the connection loop.
func (m *Monitor) RecordRequest(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
	m.byMethod[ev.Method]++

	m.events = append(m.events, ev)
	if len(m.events) > eventRingSize {
		m.events = m.events[len(m.events)-eventRingSize:]
	}

	for _, ch := range m.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	byMethod := make(map[string]uint64, len(m.byMethod))
	for k, v := range m.byMethod {
		byMethod[k] = v
	}
	return Stats{
		Accepted:      m.accepted,
		Requests:      m.requests,
		ParseFailures: m.failures,
		ByMethod:      byMethod,
	}
}

// Events returns the recent-event ring, oldest first.
func (m *Monitor) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Subscribe registers a live event channel under the given id.
func (m *Monitor) Subscribe(id string) <-chan Event {
	ch := make(chan Event, eventRingSize)
	m.mu.Lock()
	m.subs[id] = ch
	m.mu.Unlock()
	return ch
}

func (m *Monitor) Unsubscribe(id string) {
	m.mu.Lock()
	if ch, ok := m.subs[id]; ok {
		delete(m.subs, id)
		close(ch)
	}
	m.mu.Unlock()
}
