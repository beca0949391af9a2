package widget

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// maskedPlaceholder is rendered while the balance is hidden or unavailable.
const maskedPlaceholder = "$ ******"

// Snapshotter is the single read the widget needs from the inventory layer.
type Snapshotter interface {
	SnapshotTotalValue() (float64, error)
}

// Poller renders the home-surface widget text. It holds no standing
// subscription: each tick (or external trigger) performs one snapshot read of
// the inventory total, so the display tolerates staleness between polls.
type Poller struct {
	service  Snapshotter
	interval time.Duration

	mu       sync.Mutex
	visible  bool
	rendered string

	stop chan struct{}
	once sync.Once
}

// NewPoller creates a poller with the balance visible. Call Start to begin
// timed refreshes; Refresh works on its own for trigger-driven updates.
func NewPoller(service Snapshotter, interval time.Duration) *Poller {
	p := &Poller{
		service:  service,
		interval: interval,
		visible:  true,
		rendered: maskedPlaceholder,
		stop:     make(chan struct{}),
	}
	p.Refresh()
	return p
}

// Start launches the timer loop. Stop ends it.
func (p *Poller) Start() {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				p.Refresh()
			}
		}
	}()
}

// Stop ends the timer loop. Idempotent.
func (p *Poller) Stop() {
	p.once.Do(func() { close(p.stop) })
}

// Refresh performs a single snapshot read and re-renders the widget text.
func (p *Poller) Refresh() {
	total, err := p.service.SnapshotTotalValue()
	if err != nil {
		log.Printf("widget refresh failed: %v", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil || !p.visible || total <= 0 {
		p.rendered = maskedPlaceholder
		return
	}
	p.rendered = fmt.Sprintf("$ %.2f", total)
}

// ToggleVisibility flips the balance between shown and masked and refreshes
// immediately.
func (p *Poller) ToggleVisibility() {
	p.mu.Lock()
	p.visible = !p.visible
	p.mu.Unlock()
	p.Refresh()
}

// Visible reports whether the balance is currently shown.
func (p *Poller) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// Rendered returns the current widget text.
func (p *Poller) Rendered() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rendered
}
