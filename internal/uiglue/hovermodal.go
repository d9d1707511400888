package uiglue

import (
	"sync"

	"storefront-web/internal/event"
)

// HoverModal is the timing glue for a modal opened by hovering its trigger.
// Leaving either the trigger or the modal starts a close delay; re-entering
// either cancels it. Transitions are published as modal-change events so the
// aria state of the trigger can follow along.
type HoverModal struct {
	bus       *event.Bus
	clock     Clock
	element   string
	initiator string

	mu         sync.Mutex
	open       bool
	closeTimer Timer
}

func NewHoverModal(bus *event.Bus, clock Clock, element, initiator string) *HoverModal {
	m := &HoverModal{bus: bus, clock: clock, element: element, initiator: initiator}
	bus.OnModalCloseAll(func() { m.close() })
	return m
}

// Open reports whether the modal is currently open.
func (m *HoverModal) Open() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// TriggerEnter handles the pointer entering the trigger: a pending close is
// canceled and a closed modal opens.
func (m *HoverModal) TriggerEnter() {
	m.cancelClose()
	m.mu.Lock()
	open := m.open
	m.mu.Unlock()
	if open {
		return
	}
	m.mu.Lock()
	m.open = true
	m.mu.Unlock()
	m.bus.PublishModalChange(event.ModalChange{
		Action:    event.ModalOpen,
		Element:   m.element,
		Initiator: m.initiator,
	})
}

// TriggerLeave starts the close delay.
func (m *HoverModal) TriggerLeave() {
	m.startClose()
}

// ModalEnter cancels the close delay while the pointer is over the modal.
func (m *HoverModal) ModalEnter() {
	m.cancelClose()
}

// ModalLeave starts the close delay when the pointer leaves the modal.
func (m *HoverModal) ModalLeave() {
	m.startClose()
}

// Activate handles a click on the trigger. A click on an open modal's
// trigger follows the trigger's link; otherwise the click is the opening
// action and the link is not followed.
func (m *HoverModal) Activate() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

func (m *HoverModal) startClose() {
	m.cancelClose()
	m.mu.Lock()
	m.closeTimer = m.clock.AfterFunc(CloseDelay, func() {
		m.close()
		m.bus.PublishModalChange(event.ModalChange{
			Action:    event.ModalClose,
			Element:   m.element,
			Initiator: m.initiator,
		})
	})
	m.mu.Unlock()
}

func (m *HoverModal) close() {
	m.mu.Lock()
	m.open = false
	m.mu.Unlock()
}

func (m *HoverModal) cancelClose() {
	m.mu.Lock()
	t := m.closeTimer
	m.closeTimer = nil
	m.mu.Unlock()
	if t != nil {
		t.Stop()
	}
}
