package conversation

import (
	"github.com/google/uuid"

	"github.com/aadinq/catty/backend/internal/model/chat"
	"github.com/aadinq/catty/backend/internal/model/mood"
)

// Event kinds broadcast to subscribers.
const (
	EventMessage = "message"
	EventMood    = "mood"
	EventReset   = "reset"
)

// Event notifies stream subscribers of a state transition.
type Event struct {
	Kind    string        `json:"kind"`
	Mood    mood.Mood     `json:"mood"`
	Message *chat.Message `json:"message,omitempty"`
}

// Subscribe registers an event channel. The returned cancel func must be
// called when the consumer goes away.
func (s *Service) Subscribe() (<-chan Event, func()) {
	id := uuid.NewString()
	ch := make(chan Event, 8)

	s.mu.Lock()
	s.subscribers[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
	return ch, cancel
}

// publish fans an event out without blocking; slow consumers drop events
// rather than stalling the state machine. Caller must hold s.mu.
func (s *Service) publish(event Event) {
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
