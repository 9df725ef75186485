// Package player owns the shared playback session: one connection-session
// object per process, injected into every surface that controls playback,
// with explicit state transitions and listener registration instead of
// ambient global access.
package player

import (
	"context"
	"sync"

	"moodfm/logger"
	"moodfm/model"

	"github.com/google/uuid"
)

// Listener receives player-state change notifications.
type Listener func(state model.PlayerState)

// Session wraps a Remote with connection lifecycle and an observer list.
// Construct once per process and share by injection.
type Session struct {
	remote Remote

	mu          sync.RWMutex
	connState   model.ConnectionState
	cachedState *model.PlayerState
	listeners   map[string]Listener
}

// NewSession constructs a Session in the Disconnected state.
func NewSession(remote Remote) *Session {
	return &Session{
		remote:    remote,
		connState: model.ConnDisconnected,
		listeners: make(map[string]Listener),
	}
}

// ConnectionState returns the session lifecycle state.
func (s *Session) ConnectionState() model.ConnectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connState
}

// Connect probes the remote and transitions Disconnected -> Connecting ->
// Connected, or Failed when the probe errors. Connecting on an already
// connected session is a no-op.
func (s *Session) Connect(ctx context.Context, accessToken string) error {
	s.mu.Lock()
	if s.connState == model.ConnConnected || s.connState == model.ConnConnecting {
		s.mu.Unlock()
		return nil
	}
	s.connState = model.ConnConnecting
	s.mu.Unlock()

	state, err := s.remote.State(ctx, accessToken)

	s.mu.Lock()
	if err != nil {
		s.connState = model.ConnFailed
		s.mu.Unlock()
		logger.Error("[Player] connect failed", logger.ErrorField(err))
		return err
	}
	s.connState = model.ConnConnected
	if state != nil {
		s.cachedState = state
	}
	s.mu.Unlock()

	logger.Info("[Player] connected")
	if state != nil {
		s.publish(*state)
	}
	return nil
}

// Disconnect drops back to the Disconnected state and clears the cached
// player state. Listeners stay registered.
func (s *Session) Disconnect() {
	s.mu.Lock()
	s.connState = model.ConnDisconnected
	s.cachedState = nil
	s.mu.Unlock()
	logger.Info("[Player] disconnected")
}

// Subscribe registers a state-change listener and returns an unsubscribe
// function. The cached last-known state, when present, is delivered to the
// new listener immediately.
func (s *Session) Subscribe(l Listener) func() {
	id := uuid.New().String()

	s.mu.Lock()
	s.listeners[id] = l
	cached := s.cachedState
	s.mu.Unlock()

	if cached != nil {
		l(*cached)
	}

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Play starts playback of a track and publishes the optimistic new state.
func (s *Session) Play(ctx context.Context, accessToken string, track model.Track) error {
	if err := s.remote.Play(ctx, accessToken, track.URI()); err != nil {
		return err
	}
	s.publish(model.PlayerState{
		TrackID:    track.TrackID,
		Title:      track.Title,
		Artist:     track.Artist,
		Paused:     false,
		DurationMs: track.DurationMs,
	})
	return nil
}

// Pause pauses playback.
func (s *Session) Pause(ctx context.Context, accessToken string) error {
	if err := s.remote.Pause(ctx, accessToken); err != nil {
		return err
	}
	s.mu.Lock()
	state := s.cachedState
	s.mu.Unlock()
	if state != nil {
		next := *state
		next.Paused = true
		s.publish(next)
	}
	return nil
}

// Resume resumes the paused playback.
func (s *Session) Resume(ctx context.Context, accessToken string) error {
	if err := s.remote.Resume(ctx, accessToken); err != nil {
		return err
	}
	s.mu.Lock()
	state := s.cachedState
	s.mu.Unlock()
	if state != nil {
		next := *state
		next.Paused = false
		s.publish(next)
	}
	return nil
}

// Seek jumps to a position in the current track.
func (s *Session) Seek(ctx context.Context, accessToken string, positionMs int64) error {
	if err := s.remote.Seek(ctx, accessToken, positionMs); err != nil {
		return err
	}
	s.mu.Lock()
	state := s.cachedState
	s.mu.Unlock()
	if state != nil {
		next := *state
		next.PositionMs = positionMs
		s.publish(next)
	}
	return nil
}

// RefreshState reads the remote state, refreshes the cache and notifies
// listeners. Returns the new state, which may be nil when nothing plays.
func (s *Session) RefreshState(ctx context.Context, accessToken string) (*model.PlayerState, error) {
	state, err := s.remote.State(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if state != nil {
		s.publish(*state)
	}
	return state, nil
}

// LastKnownState returns the cached player state, if any.
func (s *Session) LastKnownState() *model.PlayerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cachedState == nil {
		return nil
	}
	state := *s.cachedState
	return &state
}

func (s *Session) publish(state model.PlayerState) {
	s.mu.Lock()
	cached := state
	s.cachedState = &cached
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
}
