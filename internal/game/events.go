package game

// EventType identifies a gameplay event.
type EventType int

const (
	EventPlayerHitObstacle EventType = iota
	EventPlayerHitBuilding
	EventPlayerHitTraffic
	EventPlayerCaptured
	EventPlayerFell
	EventNearMiss
	EventWantedIncreased
	EventBoostStarted
	EventGameOver
)

// Event carries an event type plus a small numeric payload whose meaning
// depends on the type (damage dealt, new wanted level, bonus score).
type Event struct {
	Type  EventType
	Value int
	X, Z  float64
}

type EventHandler func(Event)

// EventQueue buffers events emitted during a tick and dispatches them to
// subscribers at a single point in the tick, in emission order.
type EventQueue struct {
	pending  []Event
	handlers map[EventType][]EventHandler
}

func NewEventQueue() *EventQueue {
	return &EventQueue{
		pending:  make([]Event, 0, 16),
		handlers: make(map[EventType][]EventHandler),
	}
}

func (q *EventQueue) Subscribe(t EventType, h EventHandler) {
	q.handlers[t] = append(q.handlers[t], h)
}

// Emit appends the event. Handlers run later, in Drain.
func (q *EventQueue) Emit(e Event) {
	q.pending = append(q.pending, e)
}

// Drain dispatches all buffered events in the order they were emitted and
// clears the queue. Events emitted by handlers during Drain are dispatched in
// the same pass.
func (q *EventQueue) Drain() {
	for i := 0; i < len(q.pending); i++ {
		e := q.pending[i]
		for _, h := range q.handlers[e.Type] {
			h(e)
		}
	}
	q.pending = q.pending[:0]
}

func (q *EventQueue) PendingCount() int {
	return len(q.pending)
}
