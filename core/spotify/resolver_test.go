package spotify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"moodfm/model"
)

type stubSearcher struct {
	mu          sync.Mutex
	calls       int
	lookup      func(title, artist string) (*model.SpotifyTrack, error)
	inflight    int32
	maxInflight int32
}

func (s *stubSearcher) SearchTrack(_ context.Context, _ string, title, artist string) (*model.SpotifyTrack, error) {
	cur := atomic.AddInt32(&s.inflight, 1)
	for {
		max := atomic.LoadInt32(&s.maxInflight)
		if cur <= max || atomic.CompareAndSwapInt32(&s.maxInflight, max, cur) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt32(&s.inflight, -1)

	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.lookup(title, artist)
}

func candidateList(titles ...string) []model.Candidate {
	out := make([]model.Candidate, 0, len(titles))
	for _, title := range titles {
		out = append(out, model.Candidate{Title: title, Artist: "Artist"})
	}
	return out
}

func TestResolveAllPreservesOrder(t *testing.T) {
	searcher := &stubSearcher{lookup: func(title, _ string) (*model.SpotifyTrack, error) {
		return &model.SpotifyTrack{ID: "id-" + title, Name: title}, nil
	}}
	r := NewResolver(searcher, 3)

	tracks := r.ResolveAll(context.Background(), "token", candidateList("A", "B", "C", "D", "E"))
	if len(tracks) != 5 {
		t.Fatalf("got %d tracks, want 5", len(tracks))
	}
	for i, want := range []string{"A", "B", "C", "D", "E"} {
		if tracks[i].Title != want {
			t.Errorf("tracks[%d].Title = %q, want %q", i, tracks[i].Title, want)
		}
	}
}

func TestResolveAllDropsFailures(t *testing.T) {
	searcher := &stubSearcher{lookup: func(title, _ string) (*model.SpotifyTrack, error) {
		switch title {
		case "B":
			return nil, errors.New("search timeout")
		case "D":
			return nil, nil
		default:
			return &model.SpotifyTrack{ID: "id-" + title, Name: title}, nil
		}
	}}
	r := NewResolver(searcher, 2)

	tracks := r.ResolveAll(context.Background(), "token", candidateList("A", "B", "C", "D"))
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2: %+v", len(tracks), tracks)
	}
	if tracks[0].Title != "A" || tracks[1].Title != "C" {
		t.Errorf("survivors = [%q, %q], want [A, C]", tracks[0].Title, tracks[1].Title)
	}
}

func TestResolveAllBoundsConcurrency(t *testing.T) {
	searcher := &stubSearcher{lookup: func(title, _ string) (*model.SpotifyTrack, error) {
		return &model.SpotifyTrack{ID: "id-" + title, Name: title}, nil
	}}
	r := NewResolver(searcher, 2)

	var titles []string
	for i := 0; i < 10; i++ {
		titles = append(titles, fmt.Sprintf("Song %d", i))
	}
	r.ResolveAll(context.Background(), "token", candidateList(titles...))

	if got := atomic.LoadInt32(&searcher.maxInflight); got > 2 {
		t.Errorf("observed %d concurrent searches, want at most 2", got)
	}
	if searcher.calls != 10 {
		t.Errorf("searcher called %d times, want 10", searcher.calls)
	}
}

func TestResolveAllEmptyInput(t *testing.T) {
	searcher := &stubSearcher{lookup: func(string, string) (*model.SpotifyTrack, error) {
		t.Fatal("searcher must not be called for empty input")
		return nil, nil
	}}
	r := NewResolver(searcher, 5)

	if tracks := r.ResolveAll(context.Background(), "token", nil); len(tracks) != 0 {
		t.Errorf("got %d tracks, want 0", len(tracks))
	}
}

func TestResolveAllMapsTrackFields(t *testing.T) {
	searcher := &stubSearcher{lookup: func(title, _ string) (*model.SpotifyTrack, error) {
		return &model.SpotifyTrack{
			ID:         "abc123",
			Name:       title,
			DurationMs: 431333,
			Artists:    []model.SpotifyArtist{{Name: "The Beatles"}, {Name: "Someone Else"}},
			Album: model.SpotifyAlbum{Images: []model.SpotifyImage{
				{URL: "https://img/large", Width: 640, Height: 640},
				{URL: "https://img/medium", Width: 300, Height: 300},
				{URL: "https://img/small", Width: 64, Height: 64},
			}},
		}, nil
	}}
	r := NewResolver(searcher, 1)

	tracks := r.ResolveAll(context.Background(), "token", candidateList("Hey Jude"))
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
	track := tracks[0]
	if track.TrackID != "abc123" || track.DurationMs != 431333 {
		t.Errorf("track = %+v", track)
	}
	if track.Artist != "The Beatles" {
		t.Errorf("artist = %q, want first artist only", track.Artist)
	}
	if track.ImageURL != "https://img/large" || track.ThumbnailURL != "https://img/small" {
		t.Errorf("images = full %q thumb %q", track.ImageURL, track.ThumbnailURL)
	}
}
