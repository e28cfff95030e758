package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/patrickmn/go-cache"

	"calculator-backend/config"
	"calculator-backend/internal/calc"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// Registry holds live sessions. Idle sessions expire after the configured
// TTL and have their run loops stopped.
type Registry struct {
	store     *cache.Cache
	queueSize int
	opts      calc.Options
}

// NewRegistry creates a registry from the session and calculator config.
func NewRegistry(cfg *config.Config) *Registry {
	store := cache.New(cfg.Session.TTL, cfg.Session.Cleanup)
	store.OnEvicted(func(id string, v interface{}) {
		if s, ok := v.(*Session); ok {
			log.Printf("Session %s evicted", id)
			s.close()
		}
	})

	return &Registry{
		store:     store,
		queueSize: cfg.Session.QueueSize,
		opts: calc.Options{
			GreetingDelay: cfg.Calculator.GreetingDelay,
			FarewellDelay: cfg.Calculator.FarewellDelay,
		},
	}
}

// Create starts a new session.
func (r *Registry) Create() (*Session, error) {
	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	s := newSession(id, r.queueSize, r.opts)
	if err := r.store.Add(id, s, cache.DefaultExpiration); err != nil {
		s.close()
		return nil, fmt.Errorf("failed to register session %s: %w", id, err)
	}
	log.Printf("Session %s created", id)
	return s, nil
}

// Get returns a live session and extends its lifetime.
func (r *Registry) Get(id string) (*Session, error) {
	v, found := r.store.Get(id)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	// An eviction racing this lookup may already have stopped the session;
	// drop it instead of extending a dead entry.
	s := v.(*Session)
	if s.stopped() {
		r.store.Delete(id)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.store.Set(id, s, cache.DefaultExpiration)
	return s, nil
}

// Delete stops and removes a session.
func (r *Registry) Delete(id string) error {
	if _, found := r.store.Get(id); !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.store.Delete(id)
	return nil
}

// Len reports the number of sessions, including expired ones not yet cleaned up.
func (r *Registry) Len() int {
	return r.store.ItemCount()
}

// Close stops every session.
func (r *Registry) Close() {
	for id := range r.store.Items() {
		r.store.Delete(id)
	}
}

func newID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
