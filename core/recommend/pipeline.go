package recommend

import (
	"context"
	"errors"
	"fmt"

	"moodfm/core/gemini"
	"moodfm/core/prompt"
	"moodfm/logger"
	"moodfm/model"

	"github.com/google/uuid"
)

// MaxCandidates caps how many model suggestions are sent to catalog
// resolution per invocation.
const MaxCandidates = 8

// ModelClient generates text from a prompt. Implemented by gemini.Client.
type ModelClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Resolver resolves candidates against the catalog search service.
// Implemented by spotify.Resolver. Per-candidate failures degrade to
// omission; ResolveAll itself never fails.
type Resolver interface {
	ResolveAll(ctx context.Context, accessToken string, candidates []model.Candidate) []model.Track
}

// Pipeline sequences prompt building, the model call, sanitizing, parsing
// and catalog resolution. It holds no per-invocation state; the access token
// is passed by value on every call and never cached.
type Pipeline struct {
	llm      ModelClient
	resolver Resolver
}

// NewPipeline constructs a Pipeline.
func NewPipeline(llm ModelClient, resolver Resolver) *Pipeline {
	return &Pipeline{llm: llm, resolver: resolver}
}

// Result carries the outcome of an asynchronous pipeline invocation.
// Exactly one Result is delivered per dispatch.
type Result struct {
	Tracks []model.Track
	Err    error
}

// Recommend runs the intensity-mode pipeline synchronously in the caller's
// goroutine. The profile must already be validated by the entry point.
func (p *Pipeline) Recommend(ctx context.Context, profile model.EmotionProfile, accessToken string) ([]model.Track, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return p.run(ctx, prompt.BuildFromEmotions(profile), accessToken)
}

// RecommendFromText runs the free-text-mode pipeline synchronously.
func (p *Pipeline) RecommendFromText(ctx context.Context, text string, accessToken string) ([]model.Track, error) {
	if err := model.ValidateEmotionText(text); err != nil {
		return nil, err
	}
	return p.run(ctx, prompt.BuildFromText(text), accessToken)
}

// Go dispatches the intensity-mode pipeline off the caller's goroutine and
// returns a channel that receives exactly one Result.
func (p *Pipeline) Go(ctx context.Context, profile model.EmotionProfile, accessToken string) <-chan Result {
	return p.dispatch(func() ([]model.Track, error) {
		return p.Recommend(ctx, profile, accessToken)
	})
}

// GoFromText dispatches the free-text-mode pipeline off the caller's
// goroutine and returns a channel that receives exactly one Result.
func (p *Pipeline) GoFromText(ctx context.Context, text string, accessToken string) <-chan Result {
	return p.dispatch(func() ([]model.Track, error) {
		return p.RecommendFromText(ctx, text, accessToken)
	})
}

func (p *Pipeline) dispatch(invoke func() ([]model.Track, error)) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		tracks, err := invoke()
		ch <- Result{Tracks: tracks, Err: err}
	}()
	return ch
}

func (p *Pipeline) run(ctx context.Context, promptText string, accessToken string) ([]model.Track, error) {
	invocationID := uuid.New().String()

	raw, err := p.llm.GenerateText(ctx, promptText)
	if err != nil {
		if errors.Is(err, gemini.ErrRateLimited) {
			logger.Warn("[Pipeline] model rate limited",
				logger.String("invocation", invocationID))
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	cleaned := CleanModelResponse(raw)
	if cleaned == "" {
		logger.Warn("[Pipeline] model returned no usable text",
			logger.String("invocation", invocationID))
		return nil, ErrEmptyRecommendation
	}

	candidates, err := ParseCandidates(cleaned)
	if err != nil {
		logger.Warn("[Pipeline] candidate parse failed",
			logger.String("invocation", invocationID),
			logger.ErrorField(err))
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyRecommendation
	}
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	logger.Debug("[Pipeline] resolving candidates",
		logger.String("invocation", invocationID),
		logger.Int("count", len(candidates)))

	tracks := p.resolver.ResolveAll(ctx, accessToken, candidates)
	if len(tracks) == 0 {
		return nil, ErrResolutionExhausted
	}

	logger.Info("[Pipeline] recommendation complete",
		logger.String("invocation", invocationID),
		logger.Int("candidates", len(candidates)),
		logger.Int("resolved", len(tracks)))

	return tracks, nil
}
