package display

import "sync"

// subscriberBuffer is the per-subscriber backlog before updates are dropped.
const subscriberBuffer = 16

// Screen is a text output surface. Every write is fanned out to subscribers.
// Slow subscribers miss intermediate updates rather than block the writer.
type Screen struct {
	mu     sync.RWMutex
	text   string
	nextID int
	subs   map[int]chan string
}

// NewScreen creates an empty screen.
func NewScreen() *Screen {
	return &Screen{subs: make(map[int]chan string)}
}

// SetText replaces the screen's text.
func (s *Screen) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = text
	for _, ch := range s.subs {
		select {
		case ch <- text:
		default:
		}
	}
}

// Text returns the current text.
func (s *Screen) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// Subscribe returns a channel of subsequent writes and a func that
// unsubscribes and closes the channel.
func (s *Screen) Subscribe() (<-chan string, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan string, subscriberBuffer)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
}

// Close unsubscribes everyone.
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
