package service

import "sync"

// EventQueue buffers events until the presentation layer drains them. Only
// the latest StateChanged is kept, so an idle consumer costs a bounded
// amount of memory.
type EventQueue struct {
	events []Event
	ready  chan struct{}
	mu     sync.Mutex
}

func NewEventQueue() *EventQueue {
	return &EventQueue{
		events: []Event{},
		ready:  make(chan struct{}, 1),
	}
}

func (q *EventQueue) Push(e Event) {
	q.mu.Lock()
	if e.Kind() == EventStateChanged {
		q.events = dropStateChanges(q.events)
	}
	q.events = append(q.events, e)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Drain removes and returns every queued event in push order.
func (q *EventQueue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	events := q.events
	q.events = []Event{}
	return events
}

// Ready is signalled after a push; the signal may cover several events.
func (q *EventQueue) Ready() <-chan struct{} {
	return q.ready
}

func (q *EventQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

func dropStateChanges(events []Event) []Event {
	kept := events[:0]
	for _, e := range events {
		if e.Kind() != EventStateChanged {
			kept = append(kept, e)
		}
	}
	return kept
}
