package recommend

import "errors"

// Pipeline failure taxonomy. Callers branch with errors.Is; the user-visible
// split is rate-limit vs everything else, the rest exists for diagnostics.
var (
	// ErrRateLimited means the language-model service signalled quota or
	// rate exhaustion. Callers should show "try again later" and must not
	// retry automatically.
	ErrRateLimited = errors.New("recommendation: model request limit reached")

	// ErrEmptyRecommendation means the model produced no parseable song
	// candidates.
	ErrEmptyRecommendation = errors.New("recommendation: model returned no usable songs")

	// ErrResolutionExhausted means every parsed candidate failed catalog
	// resolution.
	ErrResolutionExhausted = errors.New("recommendation: no candidate resolved to a playable track")

	// ErrParse means the sanitized model text is not a valid candidate
	// array.
	ErrParse = errors.New("recommendation: response is not a valid song list")
)
