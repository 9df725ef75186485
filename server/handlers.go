package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"moodfm/config"
	"moodfm/core/player"
	"moodfm/core/recommend"
	"moodfm/core/throttle"
	"moodfm/repository"
)

// APIHandler handles all API requests.
type APIHandler struct {
	pipeline     *recommend.Pipeline
	favoriteRepo repository.FavoriteRepository
	session      *player.Session
	cfg          *config.Config

	// Per-user refresh throttles. Single-writer per user by contract: the
	// client disables the refresh action while an invocation is in flight.
	throttleMu sync.Mutex
	throttles  map[int64]*throttle.Throttle
}

// NewAPIHandler creates the API handler.
func NewAPIHandler(
	pipeline *recommend.Pipeline,
	favoriteRepo repository.FavoriteRepository,
	session *player.Session,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		pipeline:     pipeline,
		favoriteRepo: favoriteRepo,
		session:      session,
		cfg:          cfg,
		throttles:    make(map[int64]*throttle.Throttle),
	}
}

// userThrottle returns the refresh throttle for a user, creating it lazily.
func (h *APIHandler) userThrottle(userID int64) *throttle.Throttle {
	h.throttleMu.Lock()
	defer h.throttleMu.Unlock()

	t, ok := h.throttles[userID]
	if !ok {
		t = throttle.New(throttle.DefaultCooldown)
		h.throttles[userID] = t
	}
	return t
}

// errorBody is the uniform error response shape.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string, code string) {
	respondJSON(w, status, errorBody{Error: message, Code: code})
}
