package cartstate

import (
	"bytes"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"

	"storefront-web/internal/domain"
	"storefront-web/internal/event"
)

// stateKey is the fixed key the serialized snapshot lives under for the
// lifetime of the session.
const stateKey = "cartState"

// Store caches the last-known cart snapshot for one page session. The
// snapshot is kept in serialized form and parsed on read, so a corrupt entry
// degrades to "no cached state" rather than an error.
type Store struct {
	mu        sync.Mutex
	sessionID string
	values    map[string][]byte
	bus       *event.Bus
	logger    *log.Logger
}

// New builds a session store bound to the bus. External overwrite requests
// published on the bus are applied through the same validation as Set.
func New(bus *event.Bus, logger *log.Logger) *Store {
	s := &Store{
		sessionID: uuid.NewString(),
		values:    make(map[string][]byte),
		bus:       bus,
		logger:    logger,
	}
	bus.OnCartUpdate(s.Set)
	return s
}

// SessionID identifies the session this store's cache belongs to.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Get returns the last cached snapshot. Absent or malformed cached data
// reads as absent; no error ever propagates to the caller.
func (s *Store) Get() (*domain.CartSnapshot, bool) {
	s.mu.Lock()
	raw, ok := s.values[stateKey]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	var snap domain.CartSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

// Set replaces the cached snapshot with the given raw payload. Only a JSON
// object is accepted; primitives, arrays and null are silently ignored. On
// acceptance the store publishes, synchronously and in order, a state-updated
// notification followed by an item-count-changed notification.
func (s *Store) Set(raw json.RawMessage) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return
	}
	var snap domain.CartSnapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		s.logger.Printf("rejecting cart state update: %v", err)
		return
	}
	s.store(snap)
}

// SetSnapshot replaces the cached snapshot with an already-parsed one. A nil
// snapshot is silently ignored.
func (s *Store) SetSnapshot(snap *domain.CartSnapshot) {
	if snap == nil {
		return
	}
	s.store(*snap)
}

// Clear removes the cached snapshot. Idempotent, publishes nothing.
func (s *Store) Clear() {
	s.mu.Lock()
	delete(s.values, stateKey)
	s.mu.Unlock()
}

func (s *Store) store(snap domain.CartSnapshot) {
	encoded, err := json.Marshal(snap)
	if err != nil {
		s.logger.Printf("serialize cart state: %v", err)
		return
	}
	s.mu.Lock()
	s.values[stateKey] = encoded
	s.mu.Unlock()

	s.bus.PublishStateUpdated(snap)
	s.bus.PublishItemCountChanged(snap.ItemCount())
}
