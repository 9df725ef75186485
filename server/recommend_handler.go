package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"moodfm/core/recommend"
	"moodfm/logger"
	"moodfm/model"
)

// recommendationResponse is the success body for all recommendation routes.
type recommendationResponse struct {
	Tracks []model.Track `json:"tracks"`
}

// RecommendationsHandler runs the intensity-mode pipeline. Intensities are
// validated eagerly, before any upstream call.
func (h *APIHandler) RecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r)
	accessToken, ok := accessTokenFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "session carries no access token", "UNAUTHORIZED")
		return
	}

	var profile model.EmotionProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if err := profile.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), "VALIDATION")
		return
	}

	// A fresh full invocation resets the dissatisfaction counter and
	// snapshots the profile for later refreshes.
	t := h.userThrottle(userID)
	t.Reset()
	t.SaveProfile(profile)

	result := <-h.pipeline.Go(r.Context(), profile, accessToken)
	if result.Err != nil {
		writePipelineError(w, result.Err)
		return
	}
	respondJSON(w, http.StatusOK, recommendationResponse{Tracks: result.Tracks})
}

// RecommendationsTextHandler runs the free-text-mode pipeline.
func (h *APIHandler) RecommendationsTextHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r)
	accessToken, ok := accessTokenFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "session carries no access token", "UNAUTHORIZED")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := model.ValidateEmotionText(req.Text); err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), "VALIDATION")
		return
	}

	h.userThrottle(userID).Reset()

	result := <-h.pipeline.GoFromText(r.Context(), req.Text, accessToken)
	if result.Err != nil {
		writePipelineError(w, result.Err)
		return
	}
	respondJSON(w, http.StatusOK, recommendationResponse{Tracks: result.Tracks})
}

// RefreshRecommendationsHandler replays the last intensity profile, gated by
// the per-user cooldown. A dissatisfied signal is counted first; every third
// one switches the client to free-text input instead of refreshing.
func (h *APIHandler) RefreshRecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r)
	accessToken, ok := accessTokenFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "session carries no access token", "UNAUTHORIZED")
		return
	}

	var req struct {
		Dissatisfied bool `json:"dissatisfied"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	t := h.userThrottle(userID)

	if remaining := t.CooldownRemaining(); remaining > 0 {
		respondJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":           "refresh is cooling down",
			"code":            "COOLDOWN",
			"cooldownSeconds": remaining,
		})
		return
	}

	if req.Dissatisfied && t.RecordDissatisfied() {
		respondJSON(w, http.StatusOK, map[string]bool{"switchToTextInput": true})
		return
	}

	profile, ok := t.LastProfile()
	if !ok {
		respondError(w, http.StatusConflict, "no previous emotion input to refresh", "NO_PROFILE")
		return
	}

	if !t.RequestRefresh() {
		respondJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":           "refresh is cooling down",
			"code":            "COOLDOWN",
			"cooldownSeconds": t.CooldownRemaining(),
		})
		return
	}

	result := <-h.pipeline.Go(r.Context(), profile, accessToken)
	if result.Err != nil {
		writePipelineError(w, result.Err)
		return
	}
	respondJSON(w, http.StatusOK, recommendationResponse{Tracks: result.Tracks})
}

// writePipelineError maps the pipeline failure taxonomy onto HTTP statuses.
// Rate limiting gets its own code so clients can show "try again later" and
// suppress retry; the rest share the generic failure path.
func writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrRateLimited):
		respondError(w, http.StatusTooManyRequests, "API request limit reached", "RATE_LIMITED")
	case errors.Is(err, recommend.ErrEmptyRecommendation),
		errors.Is(err, recommend.ErrParse),
		errors.Is(err, recommend.ErrResolutionExhausted):
		logger.Warn("[API] recommendation failed", logger.ErrorField(err))
		respondError(w, http.StatusBadGateway, "failed to get recommendations", "RECOMMENDATION_FAILED")
	default:
		logger.Error("[API] recommendation error", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to get recommendations", "INTERNAL")
	}
}
