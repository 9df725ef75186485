package spotify

import (
	"context"
	"sync"

	"moodfm/logger"
	"moodfm/model"
)

// DefaultResolveWorkers bounds concurrent in-flight catalog searches.
const DefaultResolveWorkers = 5

// Searcher is the catalog lookup the resolver fans out over. Implemented by
// Client; tests substitute a stub.
type Searcher interface {
	SearchTrack(ctx context.Context, accessToken string, title, artist string) (*model.SpotifyTrack, error)
}

// Resolver resolves candidate lists against the catalog with bounded
// concurrency. Per-candidate failures are logged and dropped; they never
// abort sibling candidates.
type Resolver struct {
	searcher Searcher
	workers  int
}

// NewResolver constructs a Resolver over the given searcher.
func NewResolver(searcher Searcher, workers int) *Resolver {
	if workers <= 0 {
		workers = DefaultResolveWorkers
	}
	return &Resolver{searcher: searcher, workers: workers}
}

// ResolveAll dispatches one search per candidate across the worker pool,
// blocks until every search completes or fails, and returns the surviving
// tracks in original candidate order. Results missing a track ID are
// filtered out. The bound holds for any candidate count, not just the cap.
func (r *Resolver) ResolveAll(ctx context.Context, accessToken string, candidates []model.Candidate) []model.Track {
	if len(candidates) == 0 {
		return nil
	}

	// Indexed slots keep result order deterministic: position is decided by
	// candidate index, never by completion time.
	slots := make([]*model.Track, len(candidates))

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := r.workers
	if workers > len(candidates) {
		workers = len(candidates)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				slots[i] = r.resolveOne(ctx, accessToken, candidates[i])
			}
		}()
	}

	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	tracks := make([]model.Track, 0, len(candidates))
	for _, slot := range slots {
		if slot != nil && slot.TrackID != "" {
			tracks = append(tracks, *slot)
		}
	}
	return tracks
}

func (r *Resolver) resolveOne(ctx context.Context, accessToken string, candidate model.Candidate) *model.Track {
	match, err := r.searcher.SearchTrack(ctx, accessToken, candidate.Title, candidate.Artist)
	if err != nil {
		logger.Warn("[Resolver] candidate search failed",
			logger.String("title", candidate.Title),
			logger.String("artist", candidate.Artist),
			logger.ErrorField(err))
		return nil
	}
	if match == nil {
		logger.Debug("[Resolver] no catalog match",
			logger.String("title", candidate.Title),
			logger.String("artist", candidate.Artist))
		return nil
	}

	return &model.Track{
		Title:        match.Name,
		Artist:       match.FirstArtistName(),
		ThumbnailURL: match.ThumbnailURL(),
		ImageURL:     match.LargeImageURL(),
		TrackID:      match.ID,
		DurationMs:   match.DurationMs,
	}
}
