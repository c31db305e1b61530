package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventQueueDispatchOrder(t *testing.T) {
	q := NewEventQueue()
	var got []EventType
	q.Subscribe(EventNearMiss, func(e Event) { got = append(got, e.Type) })
	q.Subscribe(EventPlayerHitObstacle, func(e Event) { got = append(got, e.Type) })

	q.Emit(Event{Type: EventPlayerHitObstacle})
	q.Emit(Event{Type: EventNearMiss})
	q.Emit(Event{Type: EventPlayerHitObstacle})
	assert.Empty(t, got, "handlers run at drain, not at emit")

	q.Drain()
	assert.Equal(t, []EventType{EventPlayerHitObstacle, EventNearMiss, EventPlayerHitObstacle}, got)
	assert.Equal(t, 0, q.PendingCount())
}

func TestEventQueueMultipleHandlers(t *testing.T) {
	q := NewEventQueue()
	calls := 0
	q.Subscribe(EventNearMiss, func(Event) { calls++ })
	q.Subscribe(EventNearMiss, func(Event) { calls++ })

	q.Emit(Event{Type: EventNearMiss})
	q.Drain()
	assert.Equal(t, 2, calls)
}

func TestEventQueueEmitDuringDrain(t *testing.T) {
	q := NewEventQueue()
	var got []EventType
	q.Subscribe(EventPlayerFell, func(Event) {
		got = append(got, EventPlayerFell)
		q.Emit(Event{Type: EventGameOver})
	})
	q.Subscribe(EventGameOver, func(Event) { got = append(got, EventGameOver) })

	q.Emit(Event{Type: EventPlayerFell})
	q.Drain()
	assert.Equal(t, []EventType{EventPlayerFell, EventGameOver}, got)
	assert.Equal(t, 0, q.PendingCount())
}

func TestEventQueueUnsubscribedTypeIgnored(t *testing.T) {
	q := NewEventQueue()
	q.Emit(Event{Type: EventBoostStarted})
	q.Drain()
	assert.Equal(t, 0, q.PendingCount())
}
