package contact

import (
	"sync"
	"time"
)

// DefaultAlertTTL is how long the success notification stays up.
const DefaultAlertTTL = 3 * time.Second

// Timer is a pending AfterFunc callback.
type Timer interface {
	Stop() bool
}

// Clock schedules deferred callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// Alert is the transient "message sent" notification. It is visible from a
// successful submission until its TTL runs out; showing it again restarts
// the countdown rather than adding a second one.
type Alert struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   Clock
	visible bool
	timer   Timer
	gen     uint64
	subs    []func(visible bool)
	closed  bool
}

// NewAlert returns a hidden alert. A zero ttl means DefaultAlertTTL and a nil
// clock means SystemClock.
func NewAlert(ttl time.Duration, clock Clock) *Alert {
	if ttl <= 0 {
		ttl = DefaultAlertTTL
	}
	if clock == nil {
		clock = SystemClock
	}
	return &Alert{ttl: ttl, clock: clock}
}

// TTL returns how long the alert stays visible.
func (a *Alert) TTL() time.Duration { return a.ttl }

// Visible reports whether the alert is showing.
func (a *Alert) Visible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visible
}

// Subscribe registers fn to be called with the new visibility each time it
// flips.
func (a *Alert) Subscribe(fn func(visible bool)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.subs = append(a.subs, fn)
}

// Show makes the alert visible and (re)starts its expiry timer.
func (a *Alert) Show() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.gen++
	gen := a.gen
	a.timer = a.clock.AfterFunc(a.ttl, func() { a.expire(gen) })
	changed := !a.visible
	a.visible = true
	subs := a.subs
	a.mu.Unlock()

	if changed {
		notify(subs, true)
	}
}

// expire hides the alert if gen is still the latest Show. A timer that lost
// the race with Stop carries a stale gen and is ignored.
func (a *Alert) expire(gen uint64) {
	a.mu.Lock()
	if a.closed || gen != a.gen || !a.visible {
		a.mu.Unlock()
		return
	}
	a.visible = false
	a.timer = nil
	subs := a.subs
	a.mu.Unlock()

	notify(subs, false)
}

// Close releases the timer and subscribers. The alert stays hidden for good.
func (a *Alert) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.closed = true
	a.visible = false
	a.subs = nil
}

func notify(subs []func(bool), visible bool) {
	for _, fn := range subs {
		fn(visible)
	}
}
