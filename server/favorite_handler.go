package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"moodfm/cache"
	"moodfm/logger"
	"moodfm/model"
)

var errInvalidRange = errors.New("from/to must be unix milliseconds")

// SaveFavoriteHandler upserts a favorite. The full track payload rides in the
// body so the row can be rebuilt without another catalog lookup.
func (h *APIHandler) SaveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r)
	trackID := mux.Vars(r)["trackId"]
	if trackID == "" {
		respondError(w, http.StatusBadRequest, "track id is required", "BAD_REQUEST")
		return
	}

	var track model.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	track.TrackID = trackID
	if track.Title == "" {
		respondError(w, http.StatusBadRequest, "track title is required", "VALIDATION")
		return
	}

	fav := model.FavoriteFromTrack(userID, track)
	if err := h.favoriteRepo.Upsert(&fav); err != nil {
		logger.Error("[API] failed to save favorite",
			logger.String("trackId", trackID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to save favorite", "INTERNAL")
		return
	}
	if err := cache.PutFavorite(r.Context(), fav); err != nil {
		logger.Warn("[API] favorite cache write failed",
			logger.String("trackId", trackID), logger.ErrorField(err))
	}

	respondJSON(w, http.StatusOK, map[string]bool{"favorited": true})
}

// DeleteFavoriteHandler removes a favorite by track id. Deleting a track that
// was never favorited still succeeds.
func (h *APIHandler) DeleteFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	trackID := mux.Vars(r)["trackId"]
	if trackID == "" {
		respondError(w, http.StatusBadRequest, "track id is required", "BAD_REQUEST")
		return
	}

	if err := h.favoriteRepo.DeleteByTrackID(trackID); err != nil {
		logger.Error("[API] failed to delete favorite",
			logger.String("trackId", trackID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to delete favorite", "INTERNAL")
		return
	}
	if err := cache.RemoveFavorite(r.Context(), trackID); err != nil {
		logger.Warn("[API] favorite cache delete failed",
			logger.String("trackId", trackID), logger.ErrorField(err))
	}

	respondJSON(w, http.StatusOK, map[string]bool{"favorited": false})
}

// FavoriteStatusHandler answers whether a track is favorited, preferring the
// cache and falling back to the database.
func (h *APIHandler) FavoriteStatusHandler(w http.ResponseWriter, r *http.Request) {
	trackID := mux.Vars(r)["trackId"]
	if trackID == "" {
		respondError(w, http.StatusBadRequest, "track id is required", "BAD_REQUEST")
		return
	}

	if hit, err := cache.HasFavorite(r.Context(), trackID); err == nil && hit {
		respondJSON(w, http.StatusOK, map[string]bool{"favorited": true})
		return
	}

	exists, err := h.favoriteRepo.Exists(trackID)
	if err != nil {
		logger.Error("[API] failed to check favorite",
			logger.String("trackId", trackID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to check favorite", "INTERNAL")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"favorited": exists})
}

// ListFavoritesHandler returns the caller's favorites, newest first. Optional
// from/to query params (unix milliseconds) narrow the range.
func (h *APIHandler) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r)

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	var (
		favorites []model.Favorite
		err       error
	)
	if fromStr != "" || toStr != "" {
		from, to, perr := parseDateRange(fromStr, toStr)
		if perr != nil {
			respondError(w, http.StatusBadRequest, perr.Error(), "BAD_REQUEST")
			return
		}
		favorites, err = h.favoriteRepo.ListByDateRange(userID, from, to)
	} else {
		favorites, err = h.favoriteRepo.ListAll(userID)
	}
	if err != nil {
		logger.Error("[API] failed to list favorites", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to list favorites", "INTERNAL")
		return
	}

	tracks := make([]model.Track, 0, len(favorites))
	for _, fav := range favorites {
		tracks = append(tracks, fav.Track())
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tracks": tracks,
		"count":  len(tracks),
	})
}

func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Unix(0, 0)
	to := time.Now()
	if fromStr != "" {
		ms, err := strconv.ParseInt(fromStr, 10, 64)
		if err != nil {
			return from, to, errInvalidRange
		}
		from = time.UnixMilli(ms)
	}
	if toStr != "" {
		ms, err := strconv.ParseInt(toStr, 10, 64)
		if err != nil {
			return from, to, errInvalidRange
		}
		to = time.UnixMilli(ms)
	}
	return from, to, nil
}
