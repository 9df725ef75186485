// Package throttle gates how often the recommendation pipeline may be
// re-invoked for the same session.
package throttle

import (
	"sync"
	"time"

	"moodfm/model"
)

const (
	// DefaultCooldown is the window during which repeat refreshes are
	// rejected, reapplied every time a refresh is accepted.
	DefaultCooldown = 10 * time.Second

	// dissatisfiedSwitchEvery is how many consecutive "bad list" signals
	// trigger the switch to free-text input mode.
	dissatisfiedSwitchEvery = 3
)

// State is a snapshot of the throttle for callers and diagnostics.
type State struct {
	DissatisfiedCount int                   `json:"dissatisfiedCount"`
	CooldownSeconds   int                   `json:"cooldownSeconds"`
	LastProfile       *model.EmotionProfile `json:"lastProfile,omitempty"`
}

// Throttle is single-writer/single-reader from the orchestration caller;
// the mutex only guards against accidental cross-request interleaving, the
// caller is still responsible for serializing pipeline invocations.
type Throttle struct {
	mu           sync.Mutex
	now          func() time.Time
	cooldown     time.Duration
	until        time.Time
	dissatisfied int
	lastProfile  *model.EmotionProfile
}

// New creates a Throttle with the given cooldown window.
func New(cooldown time.Duration) *Throttle {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Throttle{now: time.Now, cooldown: cooldown}
}

// NewWithClock creates a Throttle with an injected clock, for tests.
func NewWithClock(cooldown time.Duration, now func() time.Time) *Throttle {
	t := New(cooldown)
	t.now = now
	return t
}

// RequestRefresh reports whether a refresh may run now. Accepting a refresh
// immediately restarts the cooldown window; rejecting has no side effects.
func (t *Throttle) RequestRefresh() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.now().Before(t.until) {
		return false
	}
	t.until = t.now().Add(t.cooldown)
	return true
}

// CooldownRemaining returns the whole seconds left in the cooldown window,
// counting down once per second to zero.
func (t *Throttle) CooldownRemaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	remaining := t.until.Sub(t.now())
	if remaining <= 0 {
		return 0
	}
	// Ceiling, so a freshly started window reads the full cooldown.
	return int((remaining + time.Second - 1) / time.Second)
}

// RecordDissatisfied registers a "not satisfied with results" signal.
// Every third consecutive signal returns true (switch the user to free-text
// input) and resets the counter. Accepted refreshes do not reset it; only
// a fresh non-refresh invocation does, via Reset.
func (t *Throttle) RecordDissatisfied() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.dissatisfied++
	if t.dissatisfied >= dissatisfiedSwitchEvery {
		t.dissatisfied = 0
		return true
	}
	return false
}

// Reset clears the dissatisfaction counter. Called when the user supplies
// new input through the full (non-refresh) entry point.
func (t *Throttle) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dissatisfied = 0
}

// SaveProfile snapshots the last intensity input so refreshes can replay it.
func (t *Throttle) SaveProfile(profile model.EmotionProfile) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastProfile = &profile
}

// LastProfile returns the snapshot of the last intensity input, if any.
func (t *Throttle) LastProfile() (model.EmotionProfile, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastProfile == nil {
		return model.EmotionProfile{}, false
	}
	return *t.lastProfile, true
}

// Snapshot returns the current throttle state.
func (t *Throttle) Snapshot() State {
	t.mu.Lock()
	dissatisfied := t.dissatisfied
	profile := t.lastProfile
	t.mu.Unlock()

	return State{
		DissatisfiedCount: dissatisfied,
		CooldownSeconds:   t.CooldownRemaining(),
		LastProfile:       profile,
	}
}
