package event

import (
	"encoding/json"
	"sync"

	"storefront-web/internal/domain"
)

// ModalAction is the direction of a modal visibility change.
type ModalAction string

const (
	ModalOpen  ModalAction = "open"
	ModalClose ModalAction = "close"
)

// ModalChange describes a modal being opened or closed and by what.
type ModalChange struct {
	Action    ModalAction
	Element   string
	Initiator string
}

// Bus is a process-wide synchronous publish/subscribe channel. Delivery is
// same-goroutine and in subscription order; there is no queuing and no
// de-duplication, so subscribers must be idempotent to repeated
// notifications with identical payloads.
type Bus struct {
	mu            sync.Mutex
	stateUpdated  []func(domain.CartSnapshot)
	itemCount     []func(int)
	cartUpdate    []func(json.RawMessage)
	modalCloseAll []func()
	modalChange   []func(ModalChange)
}

func NewBus() *Bus {
	return &Bus{}
}

// OnStateUpdated registers a listener for accepted snapshot replacements.
func (b *Bus) OnStateUpdated(fn func(domain.CartSnapshot)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stateUpdated = append(b.stateUpdated, fn)
}

// OnItemCountChanged registers a listener for cart quantity totals.
func (b *Bus) OnItemCountChanged(fn func(int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.itemCount = append(b.itemCount, fn)
}

// OnCartUpdate registers a listener for external requests to overwrite the
// cached cart state with a raw snapshot payload.
func (b *Bus) OnCartUpdate(fn func(json.RawMessage)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cartUpdate = append(b.cartUpdate, fn)
}

// OnModalCloseAll registers a listener for the close-everything broadcast.
func (b *Bus) OnModalCloseAll(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.modalCloseAll = append(b.modalCloseAll, fn)
}

// OnModalChange registers a listener for individual modal transitions.
func (b *Bus) OnModalChange(fn func(ModalChange)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.modalChange = append(b.modalChange, fn)
}

// PublishStateUpdated notifies listeners that a new snapshot was accepted.
func (b *Bus) PublishStateUpdated(snap domain.CartSnapshot) {
	for _, fn := range b.stateUpdatedListeners() {
		fn(snap)
	}
}

// PublishItemCountChanged notifies listeners of the new quantity total.
func (b *Bus) PublishItemCountChanged(count int) {
	for _, fn := range b.itemCountListeners() {
		fn(count)
	}
}

// PublishCartUpdate asks the state store to overwrite its snapshot.
func (b *Bus) PublishCartUpdate(raw json.RawMessage) {
	for _, fn := range b.cartUpdateListeners() {
		fn(raw)
	}
}

// PublishModalCloseAll broadcasts that every open modal should close.
func (b *Bus) PublishModalCloseAll() {
	for _, fn := range b.modalCloseAllListeners() {
		fn()
	}
}

// PublishModalChange broadcasts a single modal transition.
func (b *Bus) PublishModalChange(change ModalChange) {
	for _, fn := range b.modalChangeListeners() {
		fn(change)
	}
}

func (b *Bus) stateUpdatedListeners() []func(domain.CartSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]func(domain.CartSnapshot){}, b.stateUpdated...)
}

func (b *Bus) itemCountListeners() []func(int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]func(int){}, b.itemCount...)
}

func (b *Bus) cartUpdateListeners() []func(json.RawMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]func(json.RawMessage){}, b.cartUpdate...)
}

func (b *Bus) modalCloseAllListeners() []func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]func(){}, b.modalCloseAll...)
}

func (b *Bus) modalChangeListeners() []func(ModalChange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]func(ModalChange){}, b.modalChange...)
}
