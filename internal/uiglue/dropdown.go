package uiglue

import (
	"sync"

	"storefront-web/internal/event"
)

// Dropdown is the timing glue for one navigation dropdown. Hovering toggles
// it, leaving starts a close delay that re-entering cancels, and opening one
// dropdown broadcasts a close to everything else first.
type Dropdown struct {
	bus     *event.Bus
	clock   Clock
	element string

	mu         sync.Mutex
	open       bool
	closeTimer Timer
}

func NewDropdown(bus *event.Bus, clock Clock, element string) *Dropdown {
	d := &Dropdown{bus: bus, clock: clock, element: element}
	bus.OnModalCloseAll(d.Close)
	return d
}

// Expanded reports the aria-expanded state of the dropdown trigger.
func (d *Dropdown) Expanded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Enter handles the pointer entering the trigger: any pending close is
// canceled and the dropdown toggles.
func (d *Dropdown) Enter() {
	d.cancelClose()
	d.Toggle()
}

// Toggle opens a closed dropdown and closes an open one.
func (d *Dropdown) Toggle() {
	d.mu.Lock()
	open := d.open
	d.mu.Unlock()
	if open {
		d.Close()
	} else {
		d.openNow()
	}
}

// Leave schedules a close after CloseDelay. Re-entering before the delay
// elapses keeps the dropdown open.
func (d *Dropdown) Leave() {
	d.cancelClose()
	d.mu.Lock()
	d.closeTimer = d.clock.AfterFunc(CloseDelay, d.Close)
	d.mu.Unlock()
}

// Reenter cancels a pending delayed close without toggling.
func (d *Dropdown) Reenter() {
	d.cancelClose()
}

// Close closes the dropdown immediately. Used for Escape and focus loss.
func (d *Dropdown) Close() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
}

// Activate handles keyboard activation. It reports whether the trigger's
// link should be followed: an already-open dropdown follows the link, a
// closed one opens instead.
func (d *Dropdown) Activate() bool {
	d.mu.Lock()
	open := d.open
	d.mu.Unlock()
	if open {
		return true
	}
	d.openNow()
	return false
}

func (d *Dropdown) openNow() {
	// Closing every other modal first keeps a single dropdown open at a time.
	d.bus.PublishModalCloseAll()
	d.mu.Lock()
	d.open = true
	d.mu.Unlock()
}

func (d *Dropdown) cancelClose() {
	d.mu.Lock()
	t := d.closeTimer
	d.closeTimer = nil
	d.mu.Unlock()
	if t != nil {
		t.Stop()
	}
}
