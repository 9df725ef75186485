package player

import (
	"context"
	"errors"
	"sync"
	"testing"

	"moodfm/model"
)

type fakeRemote struct {
	mu       sync.Mutex
	playURIs []string
	pauses   int
	resumes  int
	seeks    []int64
	state    *model.PlayerState
	stateErr error
	failPlay error
}

func (f *fakeRemote) Play(_ context.Context, _ string, trackURI string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPlay != nil {
		return f.failPlay
	}
	f.playURIs = append(f.playURIs, trackURI)
	return nil
}

func (f *fakeRemote) Pause(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	return nil
}

func (f *fakeRemote) Resume(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes++
	return nil
}

func (f *fakeRemote) Seek(_ context.Context, _ string, positionMs int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, positionMs)
	return nil
}

func (f *fakeRemote) State(_ context.Context, _ string) (*model.PlayerState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.stateErr
}

func collectStates(s *Session) (*[]model.PlayerState, func()) {
	var (
		mu     sync.Mutex
		states []model.PlayerState
	)
	unsubscribe := s.Subscribe(func(state model.PlayerState) {
		mu.Lock()
		states = append(states, state)
		mu.Unlock()
	})
	return &states, unsubscribe
}

func TestConnectTransitions(t *testing.T) {
	remote := &fakeRemote{state: &model.PlayerState{TrackID: "abc123", Paused: true}}
	s := NewSession(remote)

	if got := s.ConnectionState(); got != model.ConnDisconnected {
		t.Fatalf("initial state = %q", got)
	}

	if err := s.Connect(context.Background(), "token"); err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	if got := s.ConnectionState(); got != model.ConnConnected {
		t.Fatalf("state after connect = %q", got)
	}

	s.Disconnect()
	if got := s.ConnectionState(); got != model.ConnDisconnected {
		t.Fatalf("state after disconnect = %q", got)
	}
	if s.LastKnownState() != nil {
		t.Error("disconnect must clear the cached state")
	}
}

func TestConnectFailure(t *testing.T) {
	remote := &fakeRemote{stateErr: errors.New("remote unreachable")}
	s := NewSession(remote)

	if err := s.Connect(context.Background(), "token"); err == nil {
		t.Fatal("expected connect error")
	}
	if got := s.ConnectionState(); got != model.ConnFailed {
		t.Fatalf("state after failed connect = %q", got)
	}
}

func TestSubscribeDeliversCachedState(t *testing.T) {
	remote := &fakeRemote{}
	s := NewSession(remote)

	track := model.Track{TrackID: "abc123", Title: "Hey Jude", Artist: "The Beatles", DurationMs: 431333}
	if err := s.Play(context.Background(), "token", track); err != nil {
		t.Fatalf("Play returned error: %v", err)
	}

	states, unsubscribe := collectStates(s)
	defer unsubscribe()

	if len(*states) != 1 {
		t.Fatalf("late subscriber received %d states, want the cached one", len(*states))
	}
	got := (*states)[0]
	if got.TrackID != "abc123" || got.Paused {
		t.Errorf("cached state = %+v", got)
	}
}

func TestPlayPublishesAndCaches(t *testing.T) {
	remote := &fakeRemote{}
	s := NewSession(remote)

	states, unsubscribe := collectStates(s)
	defer unsubscribe()

	track := model.Track{TrackID: "abc123", Title: "Hey Jude", DurationMs: 431333}
	if err := s.Play(context.Background(), "token", track); err != nil {
		t.Fatalf("Play returned error: %v", err)
	}

	if len(remote.playURIs) != 1 || remote.playURIs[0] != "spotify:track:abc123" {
		t.Errorf("remote received URIs %v", remote.playURIs)
	}
	if len(*states) != 1 || (*states)[0].TrackID != "abc123" {
		t.Fatalf("published states = %+v", *states)
	}

	cached := s.LastKnownState()
	if cached == nil || cached.TrackID != "abc123" || cached.DurationMs != 431333 {
		t.Errorf("cached state = %+v", cached)
	}
}

func TestPlayFailureDoesNotPublish(t *testing.T) {
	remote := &fakeRemote{failPlay: errors.New("no active device")}
	s := NewSession(remote)

	states, unsubscribe := collectStates(s)
	defer unsubscribe()

	if err := s.Play(context.Background(), "token", model.Track{TrackID: "abc123"}); err == nil {
		t.Fatal("expected play error")
	}
	if len(*states) != 0 {
		t.Errorf("failed play published states %+v", *states)
	}
	if s.LastKnownState() != nil {
		t.Error("failed play must not cache a state")
	}
}

func TestPauseResumeSeekUpdateCachedState(t *testing.T) {
	remote := &fakeRemote{}
	s := NewSession(remote)

	track := model.Track{TrackID: "abc123", DurationMs: 200000}
	if err := s.Play(context.Background(), "token", track); err != nil {
		t.Fatalf("Play returned error: %v", err)
	}

	if err := s.Pause(context.Background(), "token"); err != nil {
		t.Fatalf("Pause returned error: %v", err)
	}
	if state := s.LastKnownState(); state == nil || !state.Paused {
		t.Errorf("state after pause = %+v", state)
	}

	if err := s.Resume(context.Background(), "token"); err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}
	if state := s.LastKnownState(); state == nil || state.Paused {
		t.Errorf("state after resume = %+v", state)
	}

	if err := s.Seek(context.Background(), "token", 90000); err != nil {
		t.Fatalf("Seek returned error: %v", err)
	}
	if state := s.LastKnownState(); state == nil || state.PositionMs != 90000 {
		t.Errorf("state after seek = %+v", state)
	}
	if len(remote.seeks) != 1 || remote.seeks[0] != 90000 {
		t.Errorf("remote seeks = %v", remote.seeks)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	remote := &fakeRemote{}
	s := NewSession(remote)

	states, unsubscribe := collectStates(s)
	unsubscribe()

	if err := s.Play(context.Background(), "token", model.Track{TrackID: "abc123"}); err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if len(*states) != 0 {
		t.Errorf("unsubscribed listener received states %+v", *states)
	}
}

func TestRefreshStatePublishes(t *testing.T) {
	remote := &fakeRemote{state: &model.PlayerState{TrackID: "xyz789", PositionMs: 1000}}
	s := NewSession(remote)

	states, unsubscribe := collectStates(s)
	defer unsubscribe()

	state, err := s.RefreshState(context.Background(), "token")
	if err != nil {
		t.Fatalf("RefreshState returned error: %v", err)
	}
	if state == nil || state.TrackID != "xyz789" {
		t.Fatalf("state = %+v", state)
	}
	if len(*states) != 1 {
		t.Errorf("listeners received %d states, want 1", len(*states))
	}
}

func TestRefreshStateNoActivePlayback(t *testing.T) {
	remote := &fakeRemote{state: nil}
	s := NewSession(remote)

	state, err := s.RefreshState(context.Background(), "token")
	if err != nil {
		t.Fatalf("RefreshState returned error: %v", err)
	}
	if state != nil {
		t.Errorf("state = %+v, want nil when nothing plays", state)
	}
}
