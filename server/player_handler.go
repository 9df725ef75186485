package server

import (
	"encoding/json"
	"net/http"

	"moodfm/logger"
	"moodfm/model"
)

// ConnectHandler probes the remote player and brings the session up.
func (h *APIHandler) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := accessTokenFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "session carries no access token", "UNAUTHORIZED")
		return
	}
	if err := h.session.Connect(r.Context(), accessToken); err != nil {
		respondError(w, http.StatusBadGateway, "failed to connect to player", "PLAYER")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"connectionState": h.session.ConnectionState(),
	})
}

// DisconnectHandler tears the playback session down.
func (h *APIHandler) DisconnectHandler(w http.ResponseWriter, r *http.Request) {
	h.session.Disconnect()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"connectionState": h.session.ConnectionState(),
	})
}

// PlayHandler starts playback of a track through the remote player.
func (h *APIHandler) PlayHandler(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := accessTokenFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "session carries no access token", "UNAUTHORIZED")
		return
	}

	var req struct {
		TrackID    string `json:"trackId"`
		Title      string `json:"title"`
		Artist     string `json:"artist"`
		DurationMs int64  `json:"durationMs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.TrackID == "" {
		respondError(w, http.StatusBadRequest, "track id is required", "VALIDATION")
		return
	}

	track := model.Track{
		TrackID:    req.TrackID,
		Title:      req.Title,
		Artist:     req.Artist,
		DurationMs: req.DurationMs,
	}
	if err := h.session.Play(r.Context(), accessToken, track); err != nil {
		logger.Error("[API] play failed",
			logger.String("trackId", req.TrackID), logger.ErrorField(err))
		respondError(w, http.StatusBadGateway, "failed to start playback", "PLAYER")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"playing": true})
}

func (h *APIHandler) PauseHandler(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := accessTokenFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "session carries no access token", "UNAUTHORIZED")
		return
	}
	if err := h.session.Pause(r.Context(), accessToken); err != nil {
		logger.Error("[API] pause failed", logger.ErrorField(err))
		respondError(w, http.StatusBadGateway, "failed to pause playback", "PLAYER")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"playing": false})
}

func (h *APIHandler) ResumeHandler(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := accessTokenFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "session carries no access token", "UNAUTHORIZED")
		return
	}
	if err := h.session.Resume(r.Context(), accessToken); err != nil {
		logger.Error("[API] resume failed", logger.ErrorField(err))
		respondError(w, http.StatusBadGateway, "failed to resume playback", "PLAYER")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"playing": true})
}

// SeekHandler moves the playhead to an absolute position.
func (h *APIHandler) SeekHandler(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := accessTokenFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "session carries no access token", "UNAUTHORIZED")
		return
	}

	var req struct {
		PositionMs int64 `json:"positionMs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.PositionMs < 0 {
		respondError(w, http.StatusBadRequest, "position must not be negative", "VALIDATION")
		return
	}

	if err := h.session.Seek(r.Context(), accessToken, req.PositionMs); err != nil {
		logger.Error("[API] seek failed",
			logger.Int64("positionMs", req.PositionMs), logger.ErrorField(err))
		respondError(w, http.StatusBadGateway, "failed to seek", "PLAYER")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"positionMs": req.PositionMs})
}

// PlayerStateHandler returns the current playback state. It asks the remote
// first and falls back to the last known state when the remote is silent.
func (h *APIHandler) PlayerStateHandler(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := accessTokenFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "session carries no access token", "UNAUTHORIZED")
		return
	}

	state, err := h.session.RefreshState(r.Context(), accessToken)
	if err != nil {
		logger.Warn("[API] remote state fetch failed, using cached state", logger.ErrorField(err))
		state = h.session.LastKnownState()
	}
	if state == nil {
		// The remote reports nothing during the gap between issuing a play
		// command and the device picking it up; the optimistic local state
		// covers that gap.
		state = h.session.LastKnownState()
	}
	if state == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{"active": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"active": true,
		"state":  state,
	})
}
